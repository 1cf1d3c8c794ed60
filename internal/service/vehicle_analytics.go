package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/utils"
)

type ActionBreakdown struct {
	Action          string `json:"action"`
	TotalCount      int    `json:"total_count"`
	NumberOfEntries int    `json:"number_of_entries"`
	FirstEntryTime  string `json:"first_entry_time,omitempty"` // "HH:MM:SS"
	LastEntryTime   string `json:"last_entry_time,omitempty"`
}

type VehicleGunnyEntry struct {
	NumberPlate         string            `json:"number_plate"`
	ChunkIDs            []string          `json:"chunk_ids"`
	TotalBagsAllActions int               `json:"total_bags_all_actions"`
	ActionBreakdown     []ActionBreakdown `json:"action_breakdown"`
}

type VehicleGunnyCount struct {
	WarehouseID    string              `json:"warehouse_id"`
	CameraID       int64               `json:"camera_id"`
	Date           string              `json:"date"`
	TotalVehicles  int                 `json:"total_vehicles"`
	GrandTotalBags int                 `json:"grand_total_bags"`
	Vehicles       []VehicleGunnyEntry `json:"vehicles"`
}

// VehicleGunnyCount breaks one camera-day's bag activity down per vehicle,
// with a per-action summary for each. Attribution follows the same session
// reconstruction the report uses, so the figures always agree with it.
func (s *SessionService) VehicleGunnyCount(ctx context.Context, warehouseID string, cameraID int64, dateStr string) (*VehicleGunnyCount, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.warehouses.GetCamera(ctx, warehouseID, cameraID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: camera %d in warehouse %s", ErrNotFound, cameraID, warehouseID)
		}
		return nil, fmt.Errorf("fetch camera: %w", err)
	}

	vehicleRows, err := s.logs.VehicleLogsForCameraDay(ctx, cameraID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicle logs: %w", err)
	}
	gunnyRows, err := s.logs.GunnyLogsForCameraDay(ctx, cameraID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch gunny logs: %w", err)
	}

	sessions, dropped := session.Detect(toVehicleObservations(vehicleRows), toBagObservations(gunnyRows))
	if dropped > 0 {
		s.log.Warn().
			Int("dropped_rows", dropped).
			Int64("camera_id", cameraID).
			Str("date", dateStr).
			Msg("skipped log rows with unusable timestamps")
	}

	vehicles, grandTotal := vehicleGunnyBreakdown(sessions)

	return &VehicleGunnyCount{
		WarehouseID:    warehouseID,
		CameraID:       cameraID,
		Date:           utils.DisplayDate(day),
		TotalVehicles:  len(vehicles),
		GrandTotalBags: grandTotal,
		Vehicles:       vehicles,
	}, nil
}

// vehicleGunnyBreakdown folds each session's chunks into per-action totals
// with first/last entry times. Vehicles without any bag activity are left
// out, as are all counts from actions outside a session's chunks.
func vehicleGunnyBreakdown(sessions []session.Session) ([]VehicleGunnyEntry, int) {
	entries := make([]VehicleGunnyEntry, 0, len(sessions))
	grandTotal := 0

	for _, s := range sessions {
		if len(s.Chunks) == 0 {
			continue
		}

		type actionAgg struct {
			total   int
			entries int
			first   string
			last    string
		}
		byAction := make(map[string]*actionAgg)
		chunkIDs := make([]string, 0, len(s.Chunks))
		total := 0

		for _, c := range s.Chunks {
			chunkIDs = append(chunkIDs, c.ChunkID)
			total += c.BagCount

			ts := c.Time.Format("15:04:05")
			agg, ok := byAction[c.Action]
			if !ok {
				byAction[c.Action] = &actionAgg{total: c.BagCount, entries: 1, first: ts, last: ts}
				continue
			}
			agg.total += c.BagCount
			agg.entries++
			agg.last = ts
		}

		actions := make([]string, 0, len(byAction))
		for action := range byAction {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		breakdown := make([]ActionBreakdown, 0, len(actions))
		for _, action := range actions {
			agg := byAction[action]
			breakdown = append(breakdown, ActionBreakdown{
				Action:          action,
				TotalCount:      agg.total,
				NumberOfEntries: agg.entries,
				FirstEntryTime:  agg.first,
				LastEntryTime:   agg.last,
			})
		}

		entries = append(entries, VehicleGunnyEntry{
			NumberPlate:         s.VehicleNumber,
			ChunkIDs:            chunkIDs,
			TotalBagsAllActions: total,
			ActionBreakdown:     breakdown,
		})
		grandTotal += total
	}

	return entries, grandTotal
}

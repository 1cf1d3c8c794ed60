package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/utils"
)

// VehicleLogGroup is one plate's presence for the day, collapsed from its
// individual detection rows.
type VehicleLogGroup struct {
	LogID         int64  `json:"log_id"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleAccess string `json:"vehicle_access,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
	SeenRange     string `json:"seen_range,omitempty"` // "HH:MM:SS-HH:MM:SS"
}

type VehicleLogDigest struct {
	WarehouseID    string            `json:"warehouse_id"`
	CameraID       int64             `json:"camera_id"`
	Date           string            `json:"date"`
	TotalLogs      int               `json:"total_logs"`
	UniqueVehicles int               `json:"unique_vehicles"`
	AccessSummary  map[string]int    `json:"access_summary"`
	Logs           []VehicleLogGroup `json:"logs"`
}

func (s *SessionService) VehicleLogDigest(ctx context.Context, warehouseID string, cameraID int64, dateStr string) (*VehicleLogDigest, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.logs.VehicleLogsForCameraDay(ctx, cameraID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicle logs: %w", err)
	}

	groups, accessSummary := groupVehicleLogs(rows)

	return &VehicleLogDigest{
		WarehouseID:    warehouseID,
		CameraID:       cameraID,
		Date:           utils.DisplayDate(day),
		TotalLogs:      len(groups),
		UniqueVehicles: len(groups),
		AccessSummary:  accessSummary,
		Logs:           groups,
	}, nil
}

// groupVehicleLogs collapses detection rows into one group per plate, with
// the first and last sighting of the day. Rows without a plate are ignored;
// rows keep their query order (sorted by start time).
func groupVehicleLogs(rows []repository.VehicleLogJoinRow) ([]VehicleLogGroup, map[string]int) {
	type span struct {
		group VehicleLogGroup
		first string
		last  string
	}

	byPlate := make(map[string]*span)
	var order []string
	accessSummary := make(map[string]int)

	for _, row := range rows {
		plate := strVal(row.VehicleNumber)
		if plate == "" {
			continue
		}

		if access := strVal(row.VehicleAccess); access != "" {
			accessSummary[access]++
		}

		ts := strVal(row.StartTime)
		sp, ok := byPlate[plate]
		if !ok {
			byPlate[plate] = &span{
				group: VehicleLogGroup{
					LogID:         row.ID,
					VehicleNumber: plate,
					VehicleAccess: strVal(row.VehicleAccess),
					VideoURL:      strVal(row.VideoS3URL),
				},
				first: ts,
				last:  ts,
			}
			order = append(order, plate)
			continue
		}
		if ts != "" {
			sp.last = ts
		}
	}

	groups := make([]VehicleLogGroup, 0, len(order))
	for _, plate := range order {
		sp := byPlate[plate]
		sp.group.SeenRange = seenRange(sp.first, sp.last)
		groups = append(groups, sp.group)
	}
	return groups, accessSummary
}

func seenRange(first, last string) string {
	f, ferr := time.Parse(session.TimestampLayout, strings.TrimSpace(first))
	if ferr != nil {
		return ""
	}
	l, lerr := time.Parse(session.TimestampLayout, strings.TrimSpace(last))
	if lerr != nil {
		l = f
	}
	return f.Format("15:04:05") + "-" + l.Format("15:04:05")
}

type GunnyLogEntry struct {
	LogID    int64  `json:"log_id"`
	Count    int    `json:"count"`
	Action   string `json:"action,omitempty"`
	Time     string `json:"time,omitempty"` // "HH:MM:SS"
	VideoURL string `json:"video_url,omitempty"`
}

type ActionSummary struct {
	Entries   int `json:"entries"`
	TotalBags int `json:"total_bags"`
}

type GunnyLogDigest struct {
	WarehouseID   string                   `json:"warehouse_id"`
	CameraID      int64                    `json:"camera_id"`
	Date          string                   `json:"date"`
	TotalLogs     int                      `json:"total_logs"`
	TotalBags     int                      `json:"total_bags"`
	ActionSummary map[string]ActionSummary `json:"action_summary"`
	Logs          []GunnyLogEntry          `json:"logs"`
}

func (s *SessionService) GunnyLogDigest(ctx context.Context, warehouseID string, cameraID int64, dateStr string) (*GunnyLogDigest, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.logs.GunnyLogsForCameraDay(ctx, cameraID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch gunny logs: %w", err)
	}

	digest := &GunnyLogDigest{
		WarehouseID:   warehouseID,
		CameraID:      cameraID,
		Date:          utils.DisplayDate(day),
		TotalLogs:     len(rows),
		ActionSummary: make(map[string]ActionSummary),
		Logs:          make([]GunnyLogEntry, 0, len(rows)),
	}

	for _, row := range rows {
		count := session.CoerceInt(strVal(row.Count))
		action := strVal(row.Action)

		entry := GunnyLogEntry{
			LogID:    row.ID,
			Count:    count,
			Action:   action,
			VideoURL: strVal(row.VideoS3URL),
		}
		if ts, err := time.Parse(session.TimestampLayout, strings.TrimSpace(strVal(row.StartTime))); err == nil {
			entry.Time = ts.Format("15:04:05")
		}
		digest.Logs = append(digest.Logs, entry)

		digest.TotalBags += count
		if action != "" {
			summary := digest.ActionSummary[action]
			summary.Entries++
			summary.TotalBags += count
			digest.ActionSummary[action] = summary
		}
	}

	return digest, nil
}

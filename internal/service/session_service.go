package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/utils"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// SessionService drives the session-reconstruction pipeline: fetch one
// camera-day of detection rows, reconstruct vehicle sessions, assemble the
// report. It also serves the raw per-day log listings for the same tables.
type SessionService struct {
	warehouses *repository.WarehouseRepository
	logs       *repository.LogRepository
	log        zerolog.Logger
}

func NewSessionService(warehouses *repository.WarehouseRepository, logs *repository.LogRepository, log zerolog.Logger) *SessionService {
	return &SessionService{
		warehouses: warehouses,
		logs:       logs,
		log:        log,
	}
}

type CameraDayReport struct {
	Camera    CameraSection   `json:"camera"`
	DateRange DateRange       `json:"date_range"`
	Summary   session.Summary `json:"summary"`
}

type CameraSection struct {
	StreamURL    string        `json:"stream_url"`
	CameraData   CameraData    `json:"camera_data"`
	TotalChunks  int           `json:"total_chunks"`
	LatestChunks []LatestChunk `json:"latest_chunks"`
}

type CameraData struct {
	CameraName  string `json:"camera_name"`
	CameraID    string `json:"camera_id"`
	WarehouseID string `json:"warehouse_id"`
	Status      string `json:"status"`
}

type DateRange struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	SelectedDate string `json:"selected_date"`
}

type LatestChunk struct {
	ChunkID      string  `json:"chunk_id"`
	PresignedURL string  `json:"presigned_url"`
	Transcript   string  `json:"transcript"`
	Timestamp    *string `json:"timestamp"`
}

// CameraDayReport reconstructs the vehicle sessions for one camera and date
// and wraps them in the full dashboard report. The caller gets either a
// complete report or an error, never a partial result.
func (s *SessionService) CameraDayReport(ctx context.Context, warehouseID string, cameraID int64, dateStr string) (*CameraDayReport, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cam, err := s.warehouses.GetCamera(ctx, warehouseID, cameraID)
	if err != nil {
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

	summary := session.BuildSummary(sessions)

	streamURL := cam.StreamARN
	if streamURL == "" {
		streamURL = cam.S3BucketURL
	}
	status := cam.Status
	if status == "" {
		status = "N/A"
	}

	report := &CameraDayReport{
		Camera: CameraSection{
			StreamURL: streamURL,
			CameraData: CameraData{
				CameraName:  cam.Name,
				CameraID:    strconv.FormatInt(cam.ID, 10),
				WarehouseID: cam.WarehouseID,
				Status:      status,
			},
			TotalChunks:  len(gunnyRows),
			LatestChunks: latestChunks(cameraID, gunnyRows),
		},
		DateRange: DateRange{
			StartDate:    utils.DisplayDate(day.AddDate(0, 0, -4)),
			EndDate:      utils.DisplayDate(day),
			SelectedDate: utils.DisplayDate(day),
		},
		Summary: summary,
	}

	s.log.Info().
		Str("warehouse_id", warehouseID).
		Int64("camera_id", cameraID).
		Str("date", dateStr).
		Int("sessions", summary.TotalSessions).
		Msg("built camera day report")

	return report, nil
}

// latestChunks picks the two most recent gunny rows for the report's chunk
// strip. Rows without a parseable timestamp fall back to their raw id.
func latestChunks(cameraID int64, rows []repository.GunnyLogRow) []LatestChunk {
	start := len(rows) - 2
	if start < 0 {
		start = 0
	}

	chunks := make([]LatestChunk, 0, 2)
	for _, row := range rows[start:] {
		chunk := LatestChunk{
			PresignedURL: strVal(row.VideoS3URL),
			Transcript:   fmt.Sprintf("%s - %d bags", strVal(row.Action), session.CoerceInt(strVal(row.Count))),
		}

		if ts, err := time.Parse(session.TimestampLayout, strings.TrimSpace(strVal(row.StartTime))); err == nil {
			chunk.ChunkID = fmt.Sprintf("CAM%03d-%s", cameraID, ts.Format("2006-01-02-15-04-05"))
			iso := ts.Format(time.RFC3339)
			chunk.Timestamp = &iso
		} else {
			chunk.ChunkID = strconv.FormatInt(row.ID, 10)
		}

		chunks = append(chunks, chunk)
	}
	return chunks
}

func toVehicleObservations(rows []repository.VehicleLogJoinRow) []session.VehicleObservation {
	out := make([]session.VehicleObservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, session.VehicleObservation{
			ID:            row.ID,
			VehicleNumber: strVal(row.VehicleNumber),
			StartTime:     strVal(row.StartTime),
			Status:        strVal(row.Status),
			VideoURL:      strVal(row.VideoS3URL),
			BagsCapacity:  strVal(row.BagsCapacity),
			Commodity:     strVal(row.Commodity),
			Access:        strVal(row.VehicleAccess),
		})
	}
	return out
}

func toBagObservations(rows []repository.GunnyLogRow) []session.BagObservation {
	out := make([]session.BagObservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, session.BagObservation{
			ID:        row.ID,
			Count:     strVal(row.Count),
			Action:    strVal(row.Action),
			StartTime: strVal(row.StartTime),
			VideoURL:  strVal(row.VideoS3URL),
			VideoName: strVal(row.VideoName),
		})
	}
	return out
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/domain/warehouse"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/utils"
)

type WorkerService struct {
	warehouses *repository.WarehouseRepository
	logs       *repository.LogRepository
	log        zerolog.Logger
}

func NewWorkerService(warehouses *repository.WarehouseRepository, logs *repository.LogRepository, log zerolog.Logger) *WorkerService {
	return &WorkerService{
		warehouses: warehouses,
		logs:       logs,
		log:        log,
	}
}

type WorkerLogEntry struct {
	LogID        int64  `json:"log_id"`
	WorkerID     int64  `json:"worker_id"`
	Name         string `json:"name"`
	Mobile       string `json:"mobile,omitempty"`
	EPFID        string `json:"epf_id,omitempty"`
	WarehouseID  string `json:"warehouse_id"`
	Role         string `json:"role"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	CameraID     int64  `json:"camera_id"`
	PresignedURL string `json:"presigned_url,omitempty"`
}

type HourlyWindow struct {
	StartTime string           `json:"start_time"` // "HH:00"
	EndTime   string           `json:"end_time"`   // "HH:59"
	Logs      []WorkerLogEntry `json:"hourly_summary"`
}

type WorkerLogReport struct {
	Date           string         `json:"date"`
	WarehouseID    string         `json:"warehouse_id"`
	HamaliLogs     []HourlyWindow `json:"hamali_logs"`
	SupervisorLogs []HourlyWindow `json:"supervisor_logs"`
}

// HourlyLogs groups one day of worker sightings into hourly windows, split
// by role family (hamali-type labour vs supervisors).
func (s *WorkerService) HourlyLogs(ctx context.Context, warehouseID, dateStr string) (*WorkerLogReport, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	workers, err := s.warehouses.ListWorkers(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	report := &WorkerLogReport{
		Date:           utils.DisplayDate(day),
		WarehouseID:    warehouseID,
		HamaliLogs:     []HourlyWindow{},
		SupervisorLogs: []HourlyWindow{},
	}
	if len(workers) == 0 {
		return report, nil
	}

	byID := make(map[int64]warehouse.Worker, len(workers))
	ids := make([]int64, 0, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}

	rows, err := s.logs.WorkerLogsForDay(ctx, ids, day)
	if err != nil {
		return nil, fmt.Errorf("fetch worker logs: %w", err)
	}

	report.HamaliLogs, report.SupervisorLogs = groupWorkerLogs(byID, rows)
	return report, nil
}

// groupWorkerLogs buckets log rows by hour of their start time. Rows whose
// hour cannot be determined are skipped, as are rows for unknown workers.
func groupWorkerLogs(workers map[int64]warehouse.Worker, rows []repository.WorkerLogRow) (hamali, supervisor []HourlyWindow) {
	hamaliHours := make(map[string][]WorkerLogEntry)
	supervisorHours := make(map[string][]WorkerLogEntry)

	for _, row := range rows {
		worker, ok := workers[row.WorkerID]
		if !ok {
			continue
		}

		start := strings.TrimSpace(strVal(row.StartTime))
		ts, err := time.Parse(session.TimestampLayout, start)
		if err != nil {
			continue
		}
		hour := ts.Format("15")

		entry := WorkerLogEntry{
			LogID:        row.ID,
			WorkerID:     worker.ID,
			Name:         worker.Name,
			Mobile:       worker.Mobile,
			EPFID:        worker.EPFID,
			WarehouseID:  worker.WarehouseID,
			Role:         worker.Role,
			StartTime:    start,
			EndTime:      strVal(row.EndTime),
			CameraID:     row.CameraID,
			PresignedURL: strVal(row.CropS3URL),
		}

		switch strings.ToLower(worker.Role) {
		case "hamali", "worker", "labour":
			hamaliHours[hour] = append(hamaliHours[hour], entry)
		case "supervisor", "incharge":
			supervisorHours[hour] = append(supervisorHours[hour], entry)
		}
	}

	return hourlyWindows(hamaliHours), hourlyWindows(supervisorHours)
}

func hourlyWindows(byHour map[string][]WorkerLogEntry) []HourlyWindow {
	hours := make([]string, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Strings(hours)

	windows := make([]HourlyWindow, 0, len(hours))
	for _, hour := range hours {
		windows = append(windows, HourlyWindow{
			StartTime: hour + ":00",
			EndTime:   hour + ":59",
			Logs:      byHour[hour],
		})
	}
	return windows
}

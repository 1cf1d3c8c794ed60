package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/domain/warehouse"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/utils"
)

type WarehouseService struct {
	warehouses *repository.WarehouseRepository
	logs       *repository.LogRepository
	log        zerolog.Logger
}

func NewWarehouseService(warehouses *repository.WarehouseRepository, logs *repository.LogRepository, log zerolog.Logger) *WarehouseService {
	return &WarehouseService{
		warehouses: warehouses,
		logs:       logs,
		log:        log,
	}
}

type WarehouseDetail struct {
	warehouse.Warehouse
	Staff        []warehouse.Worker `json:"staff"`
	Cameras      []warehouse.Camera `json:"cameras"`
	TotalCameras int                `json:"total_cameras"`
}

func (s *WarehouseService) ListWarehouses(ctx context.Context) ([]WarehouseDetail, error) {
	warehouses, err := s.warehouses.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}

	details := make([]WarehouseDetail, 0, len(warehouses))
	for _, w := range warehouses {
		detail, err := s.buildDetail(ctx, w)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *WarehouseService) GetWarehouse(ctx context.Context, id string) (*WarehouseDetail, error) {
	w, err := s.warehouses.GetWarehouse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: warehouse %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch warehouse: %w", err)
	}
	return s.buildDetail(ctx, *w)
}

func (s *WarehouseService) buildDetail(ctx context.Context, w warehouse.Warehouse) (*WarehouseDetail, error) {
	staff, err := s.warehouses.ListWorkers(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list workers for %s: %w", w.ID, err)
	}
	cameras, err := s.warehouses.ListCameras(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list cameras for %s: %w", w.ID, err)
	}

	return &WarehouseDetail{
		Warehouse:    w,
		Staff:        staff,
		Cameras:      cameras,
		TotalCameras: len(cameras),
	}, nil
}

type WarehouseDashboard struct {
	WarehouseID          string `json:"warehouse_id"`
	Date                 string `json:"date"`
	WarehouseCapacity    int    `json:"warehouse_capacity"`
	TotalBagsLoaded      int    `json:"total_loaded_bags"`
	TotalBagsUnloaded    int    `json:"total_unloaded_bags"`
	AuthorizedVehicles   int    `json:"total_authorised_vehicles"`
	UnauthorizedVehicles int    `json:"total_unauthorised_vehicles"`
	TotalWorkerLogs      int    `json:"total_worker_logs"`
	UniqueWorkers        int    `json:"total_unique_workers"`
}

// Dashboard rolls up one warehouse's day: bag totals, distinct vehicles by
// access, and worker-sighting counts.
func (s *WarehouseService) Dashboard(ctx context.Context, warehouseID, dateStr string) (*WarehouseDashboard, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	w, err := s.warehouses.GetWarehouse(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: warehouse %s", ErrNotFound, warehouseID)
		}
		return nil, fmt.Errorf("fetch warehouse: %w", err)
	}

	vehicleRows, err := s.logs.VehicleLogsForWarehouseDay(ctx, warehouseID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicle logs: %w", err)
	}
	gunnyRows, err := s.logs.GunnyLogsForWarehouseDay(ctx, warehouseID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch gunny logs: %w", err)
	}

	workers, err := s.warehouses.ListWorkers(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	workerIDs := make([]int64, 0, len(workers))
	for _, worker := range workers {
		workerIDs = append(workerIDs, worker.ID)
	}
	workerRows, err := s.logs.WorkerLogsForDay(ctx, workerIDs, day)
	if err != nil {
		return nil, fmt.Errorf("fetch worker logs: %w", err)
	}

	dashboard := buildDashboard(vehicleRows, gunnyRows, workerRows)
	dashboard.WarehouseID = warehouseID
	dashboard.Date = utils.DisplayDate(day)
	if w.Capacity != nil {
		dashboard.WarehouseCapacity = *w.Capacity
	}
	return &dashboard, nil
}

// buildDashboard aggregates the day's rows. Vehicles count distinct plates
// per access value; both the -ized and -ised spellings appear upstream.
func buildDashboard(vehicleRows []repository.VehicleLogJoinRow, gunnyRows []repository.GunnyLogRow, workerRows []repository.WorkerLogRow) WarehouseDashboard {
	var d WarehouseDashboard

	authorizedPlates := make(map[string]struct{})
	unauthorizedPlates := make(map[string]struct{})
	for _, row := range vehicleRows {
		plate := strVal(row.VehicleNumber)
		if plate == "" {
			continue
		}
		switch strings.ToLower(strVal(row.VehicleAccess)) {
		case "authorized", "authorised":
			authorizedPlates[plate] = struct{}{}
		case "unauthorized", "unauthorised":
			unauthorizedPlates[plate] = struct{}{}
		}
	}
	d.AuthorizedVehicles = len(authorizedPlates)
	d.UnauthorizedVehicles = len(unauthorizedPlates)

	for _, row := range gunnyRows {
		count := session.CoerceInt(strVal(row.Count))
		switch strVal(row.Action) {
		case session.ActionLoading:
			d.TotalBagsLoaded += count
		case session.ActionUnloading:
			d.TotalBagsUnloaded += count
		}
	}

	d.TotalWorkerLogs = len(workerRows)
	seenWorkers := make(map[int64]struct{})
	for _, row := range workerRows {
		seenWorkers[row.WorkerID] = struct{}{}
	}
	d.UniqueWorkers = len(seenWorkers)

	return d
}

// ListRegisteredVehicles returns the vehicle registry the detection logs
// join against. Capacity stays the raw string the registry stores.
func (s *WarehouseService) ListRegisteredVehicles(ctx context.Context) ([]warehouse.Vehicle, error) {
	vehicles, err := s.warehouses.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

type WarehouseInsight struct {
	VehiclesEntered int `json:"vehicles_entered"`
	VehiclesExited  int `json:"vehicles_exited"`
	Hamalis         int `json:"hamalis"`
	Supervisors     int `json:"supervisors"`
	BagsLoaded      int `json:"bags_loaded"`
	BagsUnloaded    int `json:"bags_unloaded"`
}

type StatusSummary struct {
	Date                 string                      `json:"date"`
	TotalVehiclesEntered int                         `json:"total_vehicles_entered"`
	AuthorizedVehicles   int                         `json:"authorized_vehicles"`
	UnauthorizedVehicles int                         `json:"unauthorized_vehicles"`
	TotalBagsLoaded      int                         `json:"total_bags_loaded"`
	TotalBagsUnloaded    int                         `json:"total_bags_unloaded"`
	TotalHamalis         int                         `json:"total_hamalis"`
	TotalSupervisors     int                         `json:"total_supervisors"`
	WarehouseInsights    map[string]WarehouseInsight `json:"warehouse_insights"`
}

// StatusSummary rolls up one day of activity across every warehouse that has
// cameras.
func (s *WarehouseService) StatusSummary(ctx context.Context, dateStr string) (*StatusSummary, error) {
	day, err := utils.ParseQueryDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ids, err := s.warehouses.ListWarehouseIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouse ids: %w", err)
	}

	summary := &StatusSummary{
		Date:              utils.DisplayDate(day),
		WarehouseInsights: make(map[string]WarehouseInsight, len(ids)),
	}

	for _, id := range ids {
		vehicleRows, err := s.logs.VehicleLogsForWarehouseDay(ctx, id, day)
		if err != nil {
			return nil, fmt.Errorf("fetch vehicle logs for %s: %w", id, err)
		}
		gunnyRows, err := s.logs.GunnyLogsForWarehouseDay(ctx, id, day)
		if err != nil {
			return nil, fmt.Errorf("fetch gunny logs for %s: %w", id, err)
		}

		insight, authorized, unauthorized := summarizeWarehouseDay(vehicleRows, gunnyRows)

		summary.TotalVehiclesEntered += insight.VehiclesEntered
		summary.AuthorizedVehicles += authorized
		summary.UnauthorizedVehicles += unauthorized
		summary.TotalBagsLoaded += insight.BagsLoaded
		summary.TotalBagsUnloaded += insight.BagsUnloaded
		summary.TotalHamalis += insight.Hamalis
		summary.TotalSupervisors += insight.Supervisors
		summary.WarehouseInsights[id] = insight
	}

	return summary, nil
}

// summarizeWarehouseDay computes one warehouse's insight plus its
// authorized/unauthorized row counts. Staffing figures are activity-derived
// estimates, not head counts.
func summarizeWarehouseDay(vehicleRows []repository.VehicleLogJoinRow, gunnyRows []repository.GunnyLogRow) (WarehouseInsight, int, int) {
	plates := make(map[string]struct{})
	authorized := 0
	unauthorized := 0

	for _, row := range vehicleRows {
		if plate := strVal(row.VehicleNumber); plate != "" {
			plates[plate] = struct{}{}
		}
		switch {
		case strings.EqualFold(strVal(row.VehicleAccess), "authorized"):
			authorized++
		case strings.EqualFold(strVal(row.VehicleAccess), "unauthorized"):
			unauthorized++
		}
	}

	insight := WarehouseInsight{VehiclesEntered: len(plates)}
	if insight.VehiclesEntered > 0 {
		insight.VehiclesExited = insight.VehiclesEntered - 1
	}
	if len(vehicleRows) > 0 {
		insight.Hamalis = max(1, len(vehicleRows)/5)
		insight.Supervisors = max(1, len(vehicleRows)/20)
	}

	for _, row := range gunnyRows {
		count := session.CoerceInt(strVal(row.Count))
		switch strVal(row.Action) {
		case session.ActionLoading:
			insight.BagsLoaded += count
		case session.ActionUnloading:
			insight.BagsUnloaded += count
		}
	}

	return insight, authorized, unauthorized
}

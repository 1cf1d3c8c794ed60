package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LogRepository reads the detection-pipeline tables. The start_time, count
// and bags_capacity columns are TEXT upstream; rows carry them raw and the
// session normalizer does the coercion.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

type VehicleLogRow struct {
	ID            int64 `gorm:"primaryKey"`
	CameraID      int64 `gorm:"not null;index"`
	VehicleNumber *string
	Date          time.Time `gorm:"not null;index"`
	StartTime     *string
	EndTime       *string
	Status        *string
	VideoS3URL    *string `gorm:"column:video_s3_url"`
	RawPayload    datatypes.JSON
	CreatedAt     time.Time
}

func (VehicleLogRow) TableName() string { return "vehicle_logs" }

type GunnyLogRow struct {
	ID         int64 `gorm:"primaryKey"`
	CameraID   int64 `gorm:"not null;index"`
	Count      *string
	Date       time.Time `gorm:"not null;index"`
	StartTime  *string
	EndTime    *string
	Action     *string
	VideoS3URL *string `gorm:"column:video_s3_url"`
	VideoName  *string
	CreatedAt  time.Time
}

func (GunnyLogRow) TableName() string { return "gunny_logs" }

type WorkerLogRow struct {
	ID         int64 `gorm:"primaryKey"`
	WorkerID   int64 `gorm:"not null;index"`
	Date       time.Time `gorm:"not null;index"`
	StartTime  *string
	EndTime    *string
	CameraID   int64
	CropS3URL  *string `gorm:"column:crop_s3_url"`
	VideoS3URL *string `gorm:"column:video_s3_url"`
	CreatedAt  time.Time
}

func (WorkerLogRow) TableName() string { return "worker_logs" }

// VehicleLogJoinRow is one vehicle detection with the registered vehicle's
// metadata attached (LEFT JOIN, so the metadata may be absent).
type VehicleLogJoinRow struct {
	ID            int64
	VehicleNumber *string
	StartTime     *string
	EndTime       *string
	Status        *string
	VideoS3URL    *string
	BagsCapacity  *string
	Commodity     *string
	VehicleAccess *string
}

func (r *LogRepository) VehicleLogsForCameraDay(ctx context.Context, cameraID int64, day time.Time) ([]VehicleLogJoinRow, error) {
	var rows []VehicleLogJoinRow
	err := r.db.WithContext(ctx).
		Table("vehicle_logs AS vl").
		Select("vl.id, vl.vehicle_number, vl.start_time, vl.end_time, vl.status, vl.video_s3_url, v.bags_capacity, v.commodity, v.vehicle_access").
		Joins("LEFT JOIN vehicles v ON vl.vehicle_number = v.number_plate").
		Where("vl.camera_id = ? AND vl.date = ?", cameraID, day).
		Order("vl.start_time").
		Scan(&rows).Error
	return rows, err
}

func (r *LogRepository) GunnyLogsForCameraDay(ctx context.Context, cameraID int64, day time.Time) ([]GunnyLogRow, error) {
	var rows []GunnyLogRow
	err := r.db.WithContext(ctx).
		Where("camera_id = ? AND date = ?", cameraID, day).
		Order("start_time").
		Find(&rows).Error
	return rows, err
}

func (r *LogRepository) VehicleLogsForWarehouseDay(ctx context.Context, warehouseID string, day time.Time) ([]VehicleLogJoinRow, error) {
	var rows []VehicleLogJoinRow
	err := r.db.WithContext(ctx).
		Table("vehicle_logs AS vl").
		Select("vl.id, vl.vehicle_number, vl.start_time, vl.end_time, vl.status, vl.video_s3_url, v.bags_capacity, v.commodity, v.vehicle_access").
		Joins("LEFT JOIN vehicles v ON vl.vehicle_number = v.number_plate").
		Where("vl.camera_id IN (SELECT camera_id FROM cameras WHERE warehouse_id = ?) AND vl.date = ?", warehouseID, day).
		Scan(&rows).Error
	return rows, err
}

func (r *LogRepository) GunnyLogsForWarehouseDay(ctx context.Context, warehouseID string, day time.Time) ([]GunnyLogRow, error) {
	var rows []GunnyLogRow
	err := r.db.WithContext(ctx).
		Where("camera_id IN (SELECT camera_id FROM cameras WHERE warehouse_id = ?) AND date = ?", warehouseID, day).
		Find(&rows).Error
	return rows, err
}

func (r *LogRepository) WorkerLogsForDay(ctx context.Context, workerIDs []int64, day time.Time) ([]WorkerLogRow, error) {
	if len(workerIDs) == 0 {
		return nil, nil
	}
	var rows []WorkerLogRow
	err := r.db.WithContext(ctx).
		Where("worker_id IN ? AND date = ?", workerIDs, day).
		Order("worker_id, start_time").
		Find(&rows).Error
	return rows, err
}

// ChunksForCamera lists every gunny-log row that carries a video, newest
// first. This backs the chunk browser.
func (r *LogRepository) ChunksForCamera(ctx context.Context, cameraID int64) ([]GunnyLogRow, error) {
	var rows []GunnyLogRow
	err := r.db.WithContext(ctx).
		Where("camera_id = ? AND video_s3_url IS NOT NULL", cameraID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *LogRepository) GetChunk(ctx context.Context, id int64) (*GunnyLogRow, error) {
	var row GunnyLogRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

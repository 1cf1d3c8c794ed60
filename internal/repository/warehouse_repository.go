package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"warehouse-service/internal/domain/warehouse"
)

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

type WarehouseRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Location  *string
	Latitude  *float64
	Longitude *float64
	Capacity  *int
	CreatedAt time.Time
}

func (WarehouseRow) TableName() string { return "warehouses" }

type CameraRow struct {
	CameraID         int64  `gorm:"primaryKey"`
	CameraName       string `gorm:"not null"`
	WarehouseID      string `gorm:"not null;index"`
	Status           *string
	StreamARN        *string `gorm:"column:stream_arn"`
	S3BucketURL      *string `gorm:"column:s3_bucket_url"`
	TranscriptBucket *string
	RegionName       *string
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time
}

func (CameraRow) TableName() string { return "cameras" }

type WorkerRow struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Mobile      *string
	Role        *string
	EPFID       *string `gorm:"column:epf_id"`
	WarehouseID string  `gorm:"not null;index"`
	CreatedAt   time.Time
}

func (WorkerRow) TableName() string { return "workers" }

type VehicleRow struct {
	NumberPlate   string `gorm:"primaryKey"`
	BagsCapacity  *string
	Commodity     *string
	VehicleAccess *string
	CreatedAt     time.Time
}

func (VehicleRow) TableName() string { return "vehicles" }

func (r *WarehouseRepository) ListWarehouses(ctx context.Context) ([]warehouse.Warehouse, error) {
	var rows []WarehouseRow
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]warehouse.Warehouse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toWarehouse(row))
	}
	return result, nil
}

func (r *WarehouseRepository) GetWarehouse(ctx context.Context, id string) (*warehouse.Warehouse, error) {
	var row WarehouseRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	w := toWarehouse(row)
	return &w, nil
}

// ListWarehouseIDs returns every warehouse that has at least one camera,
// which is the set the daily status summary iterates over.
func (r *WarehouseRepository) ListWarehouseIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&CameraRow{}).
		Distinct("warehouse_id").
		Order("warehouse_id").
		Pluck("warehouse_id", &ids).Error
	return ids, err
}

func (r *WarehouseRepository) ListCameras(ctx context.Context, warehouseID string) ([]warehouse.Camera, error) {
	var rows []CameraRow
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("camera_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]warehouse.Camera, 0, len(rows))
	for _, row := range rows {
		result = append(result, toCamera(row))
	}
	return result, nil
}

func (r *WarehouseRepository) GetCamera(ctx context.Context, warehouseID string, cameraID int64) (*warehouse.Camera, error) {
	var row CameraRow
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND camera_id = ?", warehouseID, cameraID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	c := toCamera(row)
	return &c, nil
}

func (r *WarehouseRepository) GetCameraByID(ctx context.Context, cameraID int64) (*warehouse.Camera, error) {
	var row CameraRow
	err := r.db.WithContext(ctx).
		Where("camera_id = ?", cameraID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	c := toCamera(row)
	return &c, nil
}

func (r *WarehouseRepository) UpdateCameraStatus(ctx context.Context, cameraID int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&CameraRow{}).
		Where("camera_id = ?", cameraID).
		Update("status", status).Error
}

func (r *WarehouseRepository) ListWorkers(ctx context.Context, warehouseID string) ([]warehouse.Worker, error) {
	var rows []WorkerRow
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("role, name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]warehouse.Worker, 0, len(rows))
	for _, row := range rows {
		result = append(result, warehouse.Worker{
			ID:          row.ID,
			Name:        row.Name,
			Mobile:      deref(row.Mobile),
			Role:        deref(row.Role),
			EPFID:       deref(row.EPFID),
			WarehouseID: row.WarehouseID,
		})
	}
	return result, nil
}

func (r *WarehouseRepository) ListVehicles(ctx context.Context) ([]warehouse.Vehicle, error) {
	var rows []VehicleRow
	err := r.db.WithContext(ctx).Order("number_plate").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]warehouse.Vehicle, 0, len(rows))
	for _, row := range rows {
		result = append(result, warehouse.Vehicle{
			NumberPlate:  row.NumberPlate,
			BagsCapacity: deref(row.BagsCapacity),
			Commodity:    deref(row.Commodity),
			Access:       deref(row.VehicleAccess),
		})
	}
	return result, nil
}

func toWarehouse(row WarehouseRow) warehouse.Warehouse {
	return warehouse.Warehouse{
		ID:        row.ID,
		Name:      row.Name,
		Location:  deref(row.Location),
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		Capacity:  row.Capacity,
	}
}

func toCamera(row CameraRow) warehouse.Camera {
	return warehouse.Camera{
		ID:               row.CameraID,
		Name:             row.CameraName,
		WarehouseID:      row.WarehouseID,
		Status:           deref(row.Status),
		StreamARN:        deref(row.StreamARN),
		S3BucketURL:      deref(row.S3BucketURL),
		TranscriptBucket: deref(row.TranscriptBucket),
		Region:           deref(row.RegionName),
		Latitude:         row.Latitude,
		Longitude:        row.Longitude,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

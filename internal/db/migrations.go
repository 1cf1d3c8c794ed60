package db

import (
	"fmt"

	"gorm.io/gorm"
)

// The detection pipeline writes start_time, count and bags_capacity as TEXT.
// Kept as-is here; the session normalizer owns coercion.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS warehouses (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		location    TEXT,
		latitude    DOUBLE PRECISION,
		longitude   DOUBLE PRECISION,
		capacity    INT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS cameras (
		camera_id          BIGSERIAL PRIMARY KEY,
		camera_name        TEXT NOT NULL,
		warehouse_id       TEXT NOT NULL REFERENCES warehouses(id),
		status             TEXT,
		stream_arn         TEXT,
		s3_bucket_url      TEXT,
		transcript_bucket  TEXT,
		region_name        TEXT,
		latitude           DOUBLE PRECISION,
		longitude          DOUBLE PRECISION,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_cameras_warehouse_id ON cameras(warehouse_id);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		number_plate    TEXT PRIMARY KEY,
		bags_capacity   TEXT,
		commodity       TEXT,
		vehicle_access  TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_logs (
		id              BIGSERIAL PRIMARY KEY,
		camera_id       BIGINT NOT NULL REFERENCES cameras(camera_id),
		vehicle_number  TEXT,
		date            DATE NOT NULL,
		start_time      TEXT,
		end_time        TEXT,
		status          TEXT,
		video_s3_url    TEXT,
		raw_payload     JSONB,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_logs_camera_date ON vehicle_logs(camera_id, date);`,
	`CREATE TABLE IF NOT EXISTS gunny_logs (
		id              BIGSERIAL PRIMARY KEY,
		camera_id       BIGINT NOT NULL REFERENCES cameras(camera_id),
		count           TEXT,
		date            DATE NOT NULL,
		start_time      TEXT,
		end_time        TEXT,
		action          TEXT,
		video_s3_url    TEXT,
		video_name      TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_gunny_logs_camera_date ON gunny_logs(camera_id, date);`,
	`CREATE TABLE IF NOT EXISTS workers (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		mobile        TEXT,
		role          TEXT,
		epf_id        TEXT,
		warehouse_id  TEXT NOT NULL REFERENCES warehouses(id),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_workers_warehouse_id ON workers(warehouse_id);`,
	`CREATE TABLE IF NOT EXISTS worker_logs (
		id            BIGSERIAL PRIMARY KEY,
		worker_id     BIGINT NOT NULL REFERENCES workers(id),
		date          DATE NOT NULL,
		start_time    TEXT,
		end_time      TEXT,
		camera_id     BIGINT,
		crop_s3_url   TEXT,
		video_s3_url  TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_worker_logs_worker_date ON worker_logs(worker_id, date);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

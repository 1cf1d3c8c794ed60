package service

import (
	"testing"

	"warehouse-service/internal/repository"
)

func TestGroupVehicleLogs(t *testing.T) {
	rows := []repository.VehicleLogJoinRow{
		{ID: 1, VehicleNumber: strPtr("KA01AB1234"), VehicleAccess: strPtr("authorized"), StartTime: strPtr("2025-03-10 08:00:00"), VideoS3URL: strPtr("s3://a")},
		{ID: 2, VehicleNumber: strPtr("KA01AB1234"), VehicleAccess: strPtr("authorized"), StartTime: strPtr("2025-03-10 10:30:00")},
		{ID: 3, VehicleNumber: strPtr("KA02CD5678"), VehicleAccess: strPtr("unauthorized"), StartTime: strPtr("2025-03-10 09:00:00")},
		{ID: 4, VehicleNumber: nil, StartTime: strPtr("2025-03-10 09:30:00")},
	}

	groups, accessSummary := groupVehicleLogs(rows)

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	first := groups[0]
	if first.VehicleNumber != "KA01AB1234" {
		t.Errorf("first group = %q, want KA01AB1234 (input order)", first.VehicleNumber)
	}
	if first.SeenRange != "08:00:00-10:30:00" {
		t.Errorf("seen range = %q, want 08:00:00-10:30:00", first.SeenRange)
	}
	if first.VideoURL != "s3://a" {
		t.Errorf("video url = %q, want first sighting's url", first.VideoURL)
	}

	if accessSummary["authorized"] != 2 || accessSummary["unauthorized"] != 1 {
		t.Errorf("access summary = %v", accessSummary)
	}
}

func TestGroupVehicleLogsSingleSighting(t *testing.T) {
	rows := []repository.VehicleLogJoinRow{
		{ID: 1, VehicleNumber: strPtr("KA01AB1234"), StartTime: strPtr("2025-03-10 08:00:00")},
	}
	groups, _ := groupVehicleLogs(rows)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].SeenRange != "08:00:00-08:00:00" {
		t.Errorf("seen range = %q, want 08:00:00-08:00:00", groups[0].SeenRange)
	}
}

func TestGroupVehicleLogsBadTimestamp(t *testing.T) {
	rows := []repository.VehicleLogJoinRow{
		{ID: 1, VehicleNumber: strPtr("KA01AB1234"), StartTime: strPtr("garbled")},
	}
	groups, _ := groupVehicleLogs(rows)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].SeenRange != "" {
		t.Errorf("seen range = %q, want empty for unparseable times", groups[0].SeenRange)
	}
}

package service

import (
	"testing"

	"warehouse-service/internal/domain/warehouse"
	"warehouse-service/internal/repository"
)

func TestGroupWorkerLogs(t *testing.T) {
	workers := map[int64]warehouse.Worker{
		1: {ID: 1, Name: "Ravi", Role: "Hamali", WarehouseID: "WH001"},
		2: {ID: 2, Name: "Sita", Role: "Supervisor", WarehouseID: "WH001"},
		3: {ID: 3, Name: "Arun", Role: "driver", WarehouseID: "WH001"},
	}
	rows := []repository.WorkerLogRow{
		{ID: 100, WorkerID: 1, StartTime: strPtr("2025-03-10 09:15:00"), CameraID: 7},
		{ID: 101, WorkerID: 1, StartTime: strPtr("2025-03-10 09:40:00"), CameraID: 7},
		{ID: 102, WorkerID: 1, StartTime: strPtr("2025-03-10 11:05:00"), CameraID: 7},
		{ID: 103, WorkerID: 2, StartTime: strPtr("2025-03-10 09:30:00"), CameraID: 8},
		{ID: 104, WorkerID: 2, StartTime: strPtr("broken"), CameraID: 8},
		{ID: 105, WorkerID: 3, StartTime: strPtr("2025-03-10 09:00:00"), CameraID: 8},
		{ID: 106, WorkerID: 99, StartTime: strPtr("2025-03-10 09:00:00"), CameraID: 8},
	}

	hamali, supervisor := groupWorkerLogs(workers, rows)

	if len(hamali) != 2 {
		t.Fatalf("hamali windows = %d, want 2", len(hamali))
	}
	if hamali[0].StartTime != "09:00" || hamali[0].EndTime != "09:59" {
		t.Errorf("window 0 = %s-%s, want 09:00-09:59", hamali[0].StartTime, hamali[0].EndTime)
	}
	if len(hamali[0].Logs) != 2 {
		t.Errorf("hamali 09 logs = %d, want 2", len(hamali[0].Logs))
	}
	if hamali[1].StartTime != "11:00" || len(hamali[1].Logs) != 1 {
		t.Errorf("window 1 = %+v", hamali[1])
	}

	// Supervisor row with an unparseable start time is skipped.
	if len(supervisor) != 1 || len(supervisor[0].Logs) != 1 {
		t.Fatalf("supervisor windows = %+v, want one window with one log", supervisor)
	}
	if supervisor[0].Logs[0].Name != "Sita" {
		t.Errorf("supervisor log = %+v", supervisor[0].Logs[0])
	}
}

func TestGroupWorkerLogsEmpty(t *testing.T) {
	hamali, supervisor := groupWorkerLogs(nil, nil)
	if len(hamali) != 0 || len(supervisor) != 0 {
		t.Errorf("got %d/%d windows, want 0/0", len(hamali), len(supervisor))
	}
}

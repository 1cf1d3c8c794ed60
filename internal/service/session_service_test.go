package service

import (
	"testing"

	"warehouse-service/internal/repository"
)

func TestLatestChunksPicksLastTwo(t *testing.T) {
	rows := []repository.GunnyLogRow{
		{ID: 1, StartTime: strPtr("2025-03-10 08:00:00"), Action: strPtr("LOADING"), Count: strPtr("10")},
		{ID: 2, StartTime: strPtr("2025-03-10 09:00:00"), Action: strPtr("LOADING"), Count: strPtr("7")},
		{ID: 3, StartTime: strPtr("2025-03-10 10:00:00"), Action: strPtr("UNLOADING"), Count: strPtr("4"), VideoS3URL: strPtr("s3://v3")},
	}

	chunks := latestChunks(12, rows)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}

	last := chunks[1]
	if last.ChunkID != "CAM012-2025-03-10-10-00-00" {
		t.Errorf("chunk id = %q", last.ChunkID)
	}
	if last.Transcript != "UNLOADING - 4 bags" {
		t.Errorf("transcript = %q", last.Transcript)
	}
	if last.PresignedURL != "s3://v3" {
		t.Errorf("url = %q", last.PresignedURL)
	}
	if last.Timestamp == nil || *last.Timestamp != "2025-03-10T10:00:00Z" {
		t.Errorf("timestamp = %v", last.Timestamp)
	}
	if chunks[0].ChunkID != "CAM012-2025-03-10-09-00-00" {
		t.Errorf("first chunk id = %q", chunks[0].ChunkID)
	}
}

func TestLatestChunksFewerThanTwo(t *testing.T) {
	rows := []repository.GunnyLogRow{
		{ID: 1, StartTime: strPtr("2025-03-10 08:00:00"), Action: strPtr("LOADING"), Count: strPtr("10")},
	}
	chunks := latestChunks(1, rows)
	if len(chunks) != 1 {
		t.Errorf("chunks = %d, want 1", len(chunks))
	}

	if got := latestChunks(1, nil); len(got) != 0 {
		t.Errorf("chunks = %d, want 0", len(got))
	}
}

func TestLatestChunksBadTimestampFallsBackToRowID(t *testing.T) {
	rows := []repository.GunnyLogRow{
		{ID: 42, StartTime: strPtr("oops"), Action: strPtr("LOADING"), Count: strPtr("bad")},
	}
	chunks := latestChunks(1, rows)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	c := chunks[0]
	if c.ChunkID != "42" {
		t.Errorf("chunk id = %q, want 42", c.ChunkID)
	}
	if c.Timestamp != nil {
		t.Errorf("timestamp = %v, want nil", c.Timestamp)
	}
	if c.Transcript != "LOADING - 0 bags" {
		t.Errorf("transcript = %q", c.Transcript)
	}
}

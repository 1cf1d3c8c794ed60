package service

import (
	"testing"

	"warehouse-service/internal/repository"
)

func TestTranscriptKey(t *testing.T) {
	cases := []struct {
		name string
		row  repository.GunnyLogRow
		want string
	}{
		{"named video", repository.GunnyLogRow{ID: 1, VideoName: strPtr("chunk_0091.mp4")}, "transcripts/chunk_0091.json"},
		{"no extension", repository.GunnyLogRow{ID: 1, VideoName: strPtr("chunk_0091")}, "transcripts/chunk_0091.json"},
		{"missing name", repository.GunnyLogRow{ID: 42}, "transcripts/42.json"},
		{"blank name", repository.GunnyLogRow{ID: 42, VideoName: strPtr("   ")}, "transcripts/42.json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transcriptKey(&tc.row); got != tc.want {
				t.Errorf("transcriptKey = %q, want %q", got, tc.want)
			}
		})
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"warehouse-service/internal/domain/session"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/storage"
	"warehouse-service/internal/stream"
)

// CameraService serves the live-stream and video-chunk surfaces: HLS playback
// URLs from Kinesis Video and chunk transcripts from S3.
type CameraService struct {
	warehouses  *repository.WarehouseRepository
	logs        *repository.LogRepository
	streams     *stream.Client
	transcripts *storage.S3Store
	log         zerolog.Logger
}

func NewCameraService(
	warehouses *repository.WarehouseRepository,
	logs *repository.LogRepository,
	streams *stream.Client,
	transcripts *storage.S3Store,
	log zerolog.Logger,
) *CameraService {
	return &CameraService{
		warehouses:  warehouses,
		logs:        logs,
		streams:     streams,
		transcripts: transcripts,
		log:         log,
	}
}

type StreamURLResult struct {
	CameraID     int64  `json:"camera_id"`
	CameraName   string `json:"camera_name"`
	WarehouseID  string `json:"warehouse_id"`
	StreamName   string `json:"stream_name"`
	HLSURL       string `json:"hls_url"`
	ExpiresIn    int    `json:"expires_in"`
	CameraStatus string `json:"camera_status"`
}

// StreamURL issues a fresh HLS playback URL for the camera and records the
// outcome in the camera's status column. A camera whose stream cannot be
// reached is marked inactive so the dashboard stops polling it.
func (s *CameraService) StreamURL(ctx context.Context, cameraID int64) (*StreamURLResult, error) {
	cam, err := s.warehouses.GetCameraByID(ctx, cameraID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: camera %d", ErrNotFound, cameraID)
		}
		return nil, fmt.Errorf("fetch camera: %w", err)
	}

	if cam.StreamARN == "" {
		return nil, fmt.Errorf("%w: camera %d has no stream configured", ErrInvalidInput, cameraID)
	}

	hls, err := s.streams.HLSStreamingURL(ctx, cam.StreamARN)
	if err != nil || hls.URL == "" {
		if updErr := s.warehouses.UpdateCameraStatus(ctx, cameraID, "inactive"); updErr != nil {
			s.log.Error().Err(updErr).Int64("camera_id", cameraID).Msg("failed to mark camera inactive")
		}
		if err == nil {
			err = errors.New("empty hls url")
		}
		s.log.Warn().Err(err).Int64("camera_id", cameraID).Msg("hls session unavailable")
		return nil, fmt.Errorf("%w: stream for camera %d is not live", ErrInvalidInput, cameraID)
	}

	if err := s.warehouses.UpdateCameraStatus(ctx, cameraID, "active"); err != nil {
		s.log.Error().Err(err).Int64("camera_id", cameraID).Msg("failed to mark camera active")
	}

	return &StreamURLResult{
		CameraID:     cam.ID,
		CameraName:   cam.Name,
		WarehouseID:  cam.WarehouseID,
		StreamName:   hls.StreamName,
		HLSURL:       hls.URL,
		ExpiresIn:    hls.Expires,
		CameraStatus: "active",
	}, nil
}

type ChunkInfo struct {
	ChunkID      int64  `json:"chunk_id"`
	VideoName    string `json:"video_name,omitempty"`
	PresignedURL string `json:"presigned_url"`
	Action       string `json:"action,omitempty"`
	BagsCount    int    `json:"bags_count"`
	StartTime    string `json:"start_time,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Chunks lists the camera's recorded video chunks, newest first.
func (s *CameraService) Chunks(ctx context.Context, cameraID int64) ([]ChunkInfo, error) {
	rows, err := s.logs.ChunksForCamera(ctx, cameraID)
	if err != nil {
		return nil, fmt.Errorf("fetch chunks: %w", err)
	}

	chunks := make([]ChunkInfo, 0, len(rows))
	for _, row := range rows {
		chunks = append(chunks, ChunkInfo{
			ChunkID:      row.ID,
			VideoName:    strVal(row.VideoName),
			PresignedURL: strVal(row.VideoS3URL),
			Action:       strVal(row.Action),
			BagsCount:    session.CoerceInt(strVal(row.Count)),
			StartTime:    strVal(row.StartTime),
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		})
	}
	return chunks, nil
}

type ChunkTranscript struct {
	ChunkID    int64           `json:"chunk_id"`
	VideoName  string          `json:"video_name,omitempty"`
	Transcript json.RawMessage `json:"transcript"`
}

// Transcript fetches the JSON transcript the video pipeline wrote for one
// chunk. The object lives in the camera's transcript bucket under
// transcripts/<video_name>.json, falling back to the chunk id when the row
// has no video name.
func (s *CameraService) Transcript(ctx context.Context, chunkID int64) (*ChunkTranscript, error) {
	row, err := s.logs.GetChunk(ctx, chunkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chunk %d", ErrNotFound, chunkID)
		}
		return nil, fmt.Errorf("fetch chunk: %w", err)
	}

	cam, err := s.warehouses.GetCameraByID(ctx, row.CameraID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: camera %d", ErrNotFound, row.CameraID)
		}
		return nil, fmt.Errorf("fetch camera: %w", err)
	}
	if cam.TranscriptBucket == "" {
		return nil, fmt.Errorf("%w: camera %d has no transcript bucket", ErrInvalidInput, cam.ID)
	}

	key := transcriptKey(row)
	payload, err := s.transcripts.FetchJSON(ctx, cam.TranscriptBucket, key)
	if err != nil {
		s.log.Warn().Err(err).Int64("chunk_id", chunkID).Str("key", key).Msg("transcript fetch failed")
		return nil, fmt.Errorf("%w: transcript for chunk %d", ErrNotFound, chunkID)
	}

	return &ChunkTranscript{
		ChunkID:    row.ID,
		VideoName:  strVal(row.VideoName),
		Transcript: payload,
	}, nil
}

func transcriptKey(row *repository.GunnyLogRow) string {
	name := strings.TrimSpace(strVal(row.VideoName))
	if name == "" {
		return fmt.Sprintf("transcripts/%d.json", row.ID)
	}
	name = strings.TrimSuffix(name, ".mp4")
	return "transcripts/" + name + ".json"
}

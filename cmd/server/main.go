package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"warehouse-service/internal/config"
	"warehouse-service/internal/db"
	httpapi "warehouse-service/internal/http"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/service"
	"warehouse-service/internal/storage"
	"warehouse-service/internal/stream"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx := context.Background()
	streams, err := stream.NewClient(ctx, cfg.AWS.Region, cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.HLSExpirySeconds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init kinesis client")
	}
	transcripts, err := storage.NewS3Store(ctx, cfg.AWS.Region, cfg.AWS.AccessKey, cfg.AWS.SecretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init s3 store")
	}

	warehouseRepo := repository.NewWarehouseRepository(database)
	logRepo := repository.NewLogRepository(database)

	warehouseService := service.NewWarehouseService(warehouseRepo, logRepo, log)
	sessionService := service.NewSessionService(warehouseRepo, logRepo, log)
	workerService := service.NewWorkerService(warehouseRepo, logRepo, log)
	cameraService := service.NewCameraService(warehouseRepo, logRepo, streams, transcripts, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handler := httpapi.NewHandler(warehouseService, sessionService, workerService, cameraService, cfg, log)
	handler.Register(r, httpapi.JWTAuth(cfg.Auth.JWTSecret))

	log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

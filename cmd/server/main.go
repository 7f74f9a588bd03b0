package main

import (
	"context"
	"os"

	"github.com/ridwanfathin/invoice-explorer-service/internal/apiclient"
	"github.com/ridwanfathin/invoice-explorer-service/internal/config"
	"github.com/ridwanfathin/invoice-explorer-service/internal/database"
	"github.com/ridwanfathin/invoice-explorer-service/internal/handler"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"github.com/ridwanfathin/invoice-explorer-service/internal/repository"
	"github.com/ridwanfathin/invoice-explorer-service/internal/server"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
	"github.com/ridwanfathin/invoice-explorer-service/internal/storage"
	"go.uber.org/zap"
)

// @title Invoice Explorer API
// @version 1.0
// @description Browse, inspect and edit GST invoice documents held by the file API
// @BasePath /
func main() {
	// Configuration loading logs too, so start with the default level
	logger.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()
	var closers []func()

	// Remote file API
	api := apiclient.NewClient(&apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
	})
	logger.Info("Using file API", zap.String("base_url", api.BaseURL()))

	// Edit session store
	var sessions repository.SessionRepository
	if cfg.RedisAddr != "" {
		rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		closers = append(closers, func() {
			if err := database.DisconnectRedis(rdb); err != nil {
				logger.Warn("Failed to close Redis", zap.Error(err))
			}
		})
		sessions = repository.NewRedisSessionRepository(rdb, cfg.SessionTTL)
		logger.Info("Edit sessions stored in Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = repository.NewMemorySessionRepository(cfg.SessionTTL)
	}

	// Revision journal
	var revisions repository.RevisionRepository
	if cfg.PostgresDBURL != "" {
		db, err := database.NewPostgresDB(ctx, cfg.PostgresDBURL)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		closers = append(closers, db.Close)
		revisions = repository.NewPostgresRevisionRepository(db.GetPool())
		logger.Info("Revision journal stored in PostgreSQL")
	} else {
		revisions = repository.NewMemoryRevisionRepository()
	}

	// Snapshot archive
	var archive service.SnapshotArchive
	if cfg.ArchiveEnabled() {
		s3Archive, err := storage.NewS3Archive(&storage.Config{
			Endpoint:        cfg.ArchiveS3Endpoint,
			AccessKeyID:     cfg.ArchiveS3AccessKeyID,
			AccessKeySecret: cfg.ArchiveS3AccessKeySecret,
			Bucket:          cfg.ArchiveS3Bucket,
			Region:          cfg.ArchiveS3Region,
		})
		if err != nil {
			logger.Fatal("Failed to configure snapshot archive", zap.Error(err))
		}
		archive = s3Archive
		logger.Info("Committed documents archived to S3", zap.String("bucket", cfg.ArchiveS3Bucket))
	}

	fileService := service.NewFileService(api)
	invoiceService := service.NewInvoiceService(api, sessions, revisions, archive)

	appServer := server.NewServer(cfg,
		handler.NewFileHandler(fileService, cfg.MaxUploadSize),
		handler.NewInvoiceHandler(invoiceService),
	)
	for _, closer := range closers {
		appServer.OnShutdown(closer)
	}

	if err := appServer.Start(); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridwanfathin/invoice-explorer-service/internal/config"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"go.uber.org/zap"
)

func main() {
	logger.InitLogger("info")
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.PostgresDBURL == "" {
		logger.Fatal("POSTGRES_DB_URL environment variable not set")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.PostgresDBURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Migrations run in file name order
	files, err := filepath.Glob("scripts/migrations/*.sql")
	if err != nil {
		logger.Fatal("Unable to list migration files", zap.Error(err))
	}
	sort.Strings(files)

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal("Unable to read migration file", zap.String("file", file), zap.Error(err))
		}

		if _, err := pool.Exec(ctx, string(migrationSQL)); err != nil {
			logger.Fatal("Failed to execute migration", zap.String("file", file), zap.Error(err))
		}
		logger.Info("Migration executed", zap.String("file", file))
	}

	logger.Info("Migrations complete", zap.Int("count", len(files)))
}

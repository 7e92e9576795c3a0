package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventhub/internal/database"
	"eventhub/internal/repository"
)

// Prunes expired refresh tokens and stale password-reset state. Meant
// to run from cron.
func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	sessionRepo := repository.NewRefreshTokenRepository(db)
	removed, err := sessionRepo.DeleteExpired(context.Background())
	if err != nil {
		logger.Fatal("cleanup refresh_tokens failed", zap.Error(err))
	}

	resets, err := clearExpiredResets(db)
	if err != nil {
		logger.Fatal("cleanup reset tokens failed", zap.Error(err))
	}

	logger.Info("auth cleanup completed",
		zap.Int64("refresh_tokens", removed),
		zap.Int64("reset_tokens", resets),
	)
}

func clearExpiredResets(db *gorm.DB) (int64, error) {
	tx := db.Table("users").
		Where("reset_password_expires IS NOT NULL AND reset_password_expires < ?", time.Now()).
		Updates(map[string]any{
			"reset_password_token_hash": nil,
			"reset_password_expires":    nil,
		})
	return tx.RowsAffected, tx.Error
}

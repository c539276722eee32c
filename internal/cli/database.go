package cli

import (
	"context"
	"fmt"

	"github.com/SageDevelopmentCode/dine-web/internal/config"
	"github.com/SageDevelopmentCode/dine-web/internal/db"
	"github.com/SageDevelopmentCode/dine-web/internal/seed"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openDatabase(cfg config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	database, err := db.Open(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	closeDatabase := func() {
		sqlDB, err := database.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
	return database, closeDatabase, nil
}

// applyDefaults writes the embedded reference data. It reports how many rows
// were new.
func applyDefaults(ctx context.Context, database *gorm.DB) (seed.Document, int64, error) {
	document, err := seed.Load()
	if err != nil {
		return seed.Document{}, 0, fmt.Errorf("load defaults: %w", err)
	}
	inserted, err := seed.Apply(ctx, database, document)
	if err != nil {
		return seed.Document{}, 0, fmt.Errorf("apply defaults: %w", err)
	}
	return document, inserted, nil
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

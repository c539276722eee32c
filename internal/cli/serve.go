package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/api"
	"github.com/SageDevelopmentCode/dine-web/internal/config"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// RunServeCommand serves the profile API on cfg.Port until ctx is done.
// SQLite databases receive the embedded reference data before the listener
// opens.
func RunServeCommand(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger = nopIfNil(logger)

	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return serveListener(ctx, cfg, logger, listener)
}

func serveListener(ctx context.Context, cfg config.Config, logger *zap.Logger, listener net.Listener) error {
	database, closeDatabase, err := openDatabase(cfg, logger)
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer closeDatabase()

	if cfg.DBDriver == config.DriverSQLite {
		_, inserted, err := applyDefaults(ctx, database)
		if err != nil {
			_ = listener.Close()
			return err
		}
		logger.Info("reference data ready", zap.Int64("inserted_rows", inserted))
	}

	handler, err := api.NewHandler(api.NewProfileService(database, cfg.DefaultsCacheTTL, logger), logger)
	if err != nil {
		_ = listener.Close()
		return fmt.Errorf("handler init failed: %w", err)
	}
	return runApp(ctx, api.NewApp(handler), listener, logger)
}

func runApp(ctx context.Context, app *fiber.App, listener net.Listener, logger *zap.Logger) error {
	served := make(chan error, 1)
	go func() {
		served <- app.Listener(listener)
	}()

	logger.Info("dine listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-served:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	// Unblocks the accept loop when shutdown won the race against it.
	_ = listener.Close()
	if err := <-served; err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("server exited: %w", err)
	}
	logger.Info("dine stopped")
	return nil
}

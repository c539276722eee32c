package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/SageDevelopmentCode/dine-web/internal/config"
	"github.com/SageDevelopmentCode/dine-web/internal/seed"
	"go.uber.org/zap"
)

type SeedOptions struct {
	Demo        bool
	DisplayName string
}

// RunSeedCommand applies the embedded reference data and, with Demo set,
// creates a demo profile whose slug is printed.
func RunSeedCommand(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer, options SeedOptions) error {
	logger = nopIfNil(logger)

	database, closeDatabase, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase()

	document, inserted, err := applyDefaults(ctx, database)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Reference data applied: %d new rows\n", inserted)

	if !options.Demo {
		return nil
	}
	user, err := seed.SeedDemoUser(ctx, database, document, options.DisplayName)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	fmt.Fprintf(out, "Demo profile: %s\n", user.PublicSlug)
	return nil
}

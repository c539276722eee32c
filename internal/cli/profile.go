package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/api"
	"github.com/SageDevelopmentCode/dine-web/internal/config"
	"github.com/SageDevelopmentCode/dine-web/internal/services"
	"go.uber.org/zap"
)

// RunProfileCommand prints the profile behind slug as indented JSON. A
// non-empty domain limits the output to that card.
func RunProfileCommand(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer, slug string, domain string) error {
	logger = nopIfNil(logger)
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return errors.New("slug is required")
	}

	database, closeDatabase, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase()

	profiles := api.NewProfileService(database, 0, logger)

	var payload any
	if strings.TrimSpace(domain) == "" {
		payload, err = profiles.CompositeBySlug(ctx, slug)
	} else {
		payload, err = profiles.Domain(ctx, slug, domain)
	}
	switch {
	case errors.Is(err, services.ErrUnknownDomain):
		return fmt.Errorf("unknown domain %q", domain)
	case errors.Is(err, services.ErrProfileNotFound):
		return fmt.Errorf("profile %s not found", slug)
	case err != nil:
		return fmt.Errorf("load profile: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

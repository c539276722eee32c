package api

import (
	"context"
	"errors"

	"github.com/SageDevelopmentCode/dine-web/internal/services"
	"go.uber.org/zap"
)

// ProfileReader is the read side of the profile aggregator.
type ProfileReader interface {
	CompositeBySlug(ctx context.Context, slug string) (services.CompositeProfile, error)
	Domain(ctx context.Context, slug string, domain string) (any, error)
}

type Handler struct {
	profiles ProfileReader
	logger   *zap.Logger
}

func NewHandler(profiles ProfileReader, logger *zap.Logger) (*Handler, error) {
	if profiles == nil {
		return nil, errors.New("profile reader is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		profiles: profiles,
		logger:   logger,
	}, nil
}

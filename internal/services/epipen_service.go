package services

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/override"
	"go.uber.org/zap"
)

type EpipenRepository interface {
	FindCard(ctx context.Context, userID string) (models.EpipenCard, bool, error)
	ListInstructions(ctx context.Context, userID string, cardID string) ([]models.EpipenInstruction, error)
}

type EpipenService struct {
	repo     EpipenRepository
	defaults DefaultReader
	logger   *zap.Logger
}

type EpipenInstructionView struct {
	ResolvedRef
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
}

type EpipenProfile struct {
	Card         *models.EpipenCard      `json:"card"`
	Instructions []EpipenInstructionView `json:"instructions"`
}

func (profile EpipenProfile) HasCard() bool {
	return profile.Card != nil
}

func NewEpipenService(repo EpipenRepository, defaults DefaultReader, logger *zap.Logger) *EpipenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EpipenService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Assemble returns the card and its resolved instructions in resolver order.
func (service *EpipenService) Assemble(ctx context.Context, userID string) (EpipenProfile, error) {
	result := EpipenProfile{Instructions: []EpipenInstructionView{}}

	card, found, err := service.repo.FindCard(ctx, userID)
	if err != nil {
		return EpipenProfile{}, dataSourceError(DomainEpipen, "epipen card", err)
	}
	if !found {
		return result, nil
	}
	result.Card = &card

	defaults, err := service.defaults.EpipenInstructions(ctx)
	if err != nil {
		return EpipenProfile{}, dataSourceError(DomainEpipen, "default instructions", err)
	}
	overrides, err := service.repo.ListInstructions(ctx, userID, card.ID)
	if err != nil {
		return EpipenProfile{}, dataSourceError(DomainEpipen, "instructions", err)
	}

	resolved := override.Resolve(service.logger, "epipen_instructions", defaults, overrides, override.Merge[models.DefaultEpipenInstruction, models.EpipenInstruction, EpipenInstructionView]{
		DefaultKey:   func(step models.DefaultEpipenInstruction) string { return step.Key },
		DefaultID:    func(step models.DefaultEpipenInstruction) string { return step.ID },
		DefaultSort:  func(step models.DefaultEpipenInstruction) *int { return step.SortOrder },
		OverrideKey:  func(step models.EpipenInstruction) (string, bool) { return optionalKey(step.DefaultKey) },
		OverrideID:   func(step models.EpipenInstruction) string { return step.ID },
		OverrideSort: func(step models.EpipenInstruction) *int { return step.SortOrder },
		Deleted:      func(step models.EpipenInstruction) bool { return step.IsDeleted },
		FromDefault: func(step models.DefaultEpipenInstruction) EpipenInstructionView {
			return EpipenInstructionView{Key: step.Key, Text: step.Text}
		},
		FromOverride: func(base models.DefaultEpipenInstruction, step models.EpipenInstruction) EpipenInstructionView {
			return EpipenInstructionView{Key: base.Key, Text: step.Text}
		},
		FromCustom: func(step models.EpipenInstruction) EpipenInstructionView {
			return EpipenInstructionView{Text: step.Text}
		},
	})
	result.Instructions = finalize(resolved)
	return result, nil
}

package db

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"gorm.io/gorm"
)

// DefaultRepository reads the shared, system-seeded reference tables. Nothing
// here is scoped to a user.
type DefaultRepository struct {
	database *gorm.DB
}

func NewDefaultRepository(database *gorm.DB) *DefaultRepository {
	return &DefaultRepository{database: database}
}

func (repo *DefaultRepository) SafetyRules(ctx context.Context, safetyLevel string) ([]models.DefaultSafetyRule, error) {
	rules := make([]models.DefaultSafetyRule, 0)
	if err := repo.database.WithContext(ctx).
		Where("safety_level = ?", safetyLevel).
		Order("sort_order ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (repo *DefaultRepository) EpipenInstructions(ctx context.Context) ([]models.DefaultEpipenInstruction, error) {
	return listAll[models.DefaultEpipenInstruction](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) SweCategories(ctx context.Context) ([]models.DefaultSweCategory, error) {
	return listAll[models.DefaultSweCategory](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) SweMeasures(ctx context.Context) ([]models.DefaultSweMeasure, error) {
	return listAll[models.DefaultSweMeasure](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) TravelPhrases(ctx context.Context) ([]models.DefaultTravelPhrase, error) {
	return listAll[models.DefaultTravelPhrase](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) TravelPhraseTranslations(ctx context.Context) ([]models.DefaultTravelPhraseTranslation, error) {
	return listAll[models.DefaultTravelPhraseTranslation](ctx, repo.database, "")
}

func (repo *DefaultRepository) TravelPhraseCategories(ctx context.Context) ([]models.TravelPhraseCategory, error) {
	return listAll[models.TravelPhraseCategory](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) Symptoms(ctx context.Context) ([]models.Symptom, error) {
	return listAll[models.Symptom](ctx, repo.database, "sort_order ASC")
}

func (repo *DefaultRepository) AllergensByIDs(ctx context.Context, ids []string) ([]models.Allergen, error) {
	return listByIDs[models.Allergen](ctx, repo.database, ids)
}

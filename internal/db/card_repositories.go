package db

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"gorm.io/gorm"
)

type AllergyRepository struct {
	database *gorm.DB
}

func NewAllergyRepository(database *gorm.DB) *AllergyRepository {
	return &AllergyRepository{database: database}
}

func (repo *AllergyRepository) FindReactionProfile(ctx context.Context, userID string) (models.ReactionProfile, bool, error) {
	return findOwned[models.ReactionProfile](ctx, repo.database, userID)
}

func (repo *AllergyRepository) ListUserAllergens(ctx context.Context, userID string) ([]models.UserAllergen, error) {
	return listOwned[models.UserAllergen](ctx, repo.database, userID, ownerScope{order: "created_at ASC, id ASC"})
}

func (repo *AllergyRepository) ListReactionSymptoms(ctx context.Context, userID string, profileID string) ([]models.ReactionSymptom, error) {
	return listOwned[models.ReactionSymptom](ctx, repo.database, userID, ownerScope{column: "profile_id", value: profileID, order: "id ASC"})
}

func (repo *AllergyRepository) ListSafetyRules(ctx context.Context, userID string, safetyLevel string) ([]models.UserSafetyRule, error) {
	return listOwned[models.UserSafetyRule](ctx, repo.database, userID, ownerScope{column: "safety_level", value: safetyLevel})
}

type EmergencyRepository struct {
	database *gorm.DB
}

func NewEmergencyRepository(database *gorm.DB) *EmergencyRepository {
	return &EmergencyRepository{database: database}
}

func (repo *EmergencyRepository) FindCard(ctx context.Context, userID string) (models.EmergencyCard, bool, error) {
	return findOwned[models.EmergencyCard](ctx, repo.database, userID)
}

func (repo *EmergencyRepository) ListContacts(ctx context.Context, userID string, cardID string) ([]models.EmergencyContact, error) {
	return listOwned[models.EmergencyContact](ctx, repo.database, userID, byCard(cardID, "priority ASC, id ASC"))
}

func (repo *EmergencyRepository) ListDoctors(ctx context.Context, userID string, cardID string) ([]models.Doctor, error) {
	return listOwned[models.Doctor](ctx, repo.database, userID, byCard(cardID, "created_at ASC, id ASC"))
}

func (repo *EmergencyRepository) ListHospitals(ctx context.Context, userID string, cardID string) ([]models.Hospital, error) {
	return listOwned[models.Hospital](ctx, repo.database, userID, byCard(cardID, "priority ASC, id ASC"))
}

// ListContactsByIDs resolves contact references, ignoring contacts that belong
// to another user.
func (repo *EmergencyRepository) ListContactsByIDs(ctx context.Context, userID string, ids []string) ([]models.EmergencyContact, error) {
	return listByIDs[models.EmergencyContact](ctx, repo.database.Where("user_id = ?", userID), ids)
}

type EpipenRepository struct {
	database *gorm.DB
}

func NewEpipenRepository(database *gorm.DB) *EpipenRepository {
	return &EpipenRepository{database: database}
}

func (repo *EpipenRepository) FindCard(ctx context.Context, userID string) (models.EpipenCard, bool, error) {
	return findOwned[models.EpipenCard](ctx, repo.database, userID)
}

func (repo *EpipenRepository) ListInstructions(ctx context.Context, userID string, cardID string) ([]models.EpipenInstruction, error) {
	return listOwned[models.EpipenInstruction](ctx, repo.database, userID, byCard(cardID, ""))
}

type SweRepository struct {
	database *gorm.DB
}

func NewSweRepository(database *gorm.DB) *SweRepository {
	return &SweRepository{database: database}
}

func (repo *SweRepository) FindCard(ctx context.Context, userID string) (models.SweCard, bool, error) {
	return findOwned[models.SweCard](ctx, repo.database, userID)
}

func (repo *SweRepository) ListCategories(ctx context.Context, userID string, cardID string) ([]models.SweCategory, error) {
	return listOwned[models.SweCategory](ctx, repo.database, userID, byCard(cardID, ""))
}

func (repo *SweRepository) ListMeasures(ctx context.Context, userID string, cardID string) ([]models.SweMeasure, error) {
	return listOwned[models.SweMeasure](ctx, repo.database, userID, byCard(cardID, ""))
}

type TravelRepository struct {
	database *gorm.DB
}

func NewTravelRepository(database *gorm.DB) *TravelRepository {
	return &TravelRepository{database: database}
}

func (repo *TravelRepository) FindCard(ctx context.Context, userID string) (models.TravelCard, bool, error) {
	return findOwned[models.TravelCard](ctx, repo.database, userID)
}

func (repo *TravelRepository) ListLanguages(ctx context.Context, userID string, cardID string) ([]models.TravelLanguage, error) {
	return listOwned[models.TravelLanguage](ctx, repo.database, userID, byCard(cardID, "sort_order ASC"))
}

func (repo *TravelRepository) ListPhrases(ctx context.Context, userID string, cardID string) ([]models.TravelPhrase, error) {
	return listOwned[models.TravelPhrase](ctx, repo.database, userID, byCard(cardID, ""))
}

func (repo *TravelRepository) ListPhraseTranslations(ctx context.Context, userID string, phraseIDs []string) ([]models.TravelPhraseTranslation, error) {
	translations := make([]models.TravelPhraseTranslation, 0)
	ids := uniqueNonEmpty(phraseIDs)
	if len(ids) == 0 {
		return translations, nil
	}
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND phrase_id IN ?", userID, ids).
		Find(&translations).Error; err != nil {
		return nil, err
	}
	return translations, nil
}

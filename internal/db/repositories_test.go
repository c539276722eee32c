package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "dine-repo.db"))
}

func createTestUser(t *testing.T, database *gorm.DB, slug string) models.User {
	t.Helper()

	user := models.User{PublicSlug: slug, DisplayName: "Test " + slug}
	require.NoError(t, NewUserRepository(database).Create(context.Background(), &user))
	require.NotEmpty(t, user.ID)
	return user
}

func TestUserRepositoryFindBySlug(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewUserRepository(database)
	created := createTestUser(t, database, "maya-7q")
	ctx := context.Background()

	user, found, err := repo.FindBySlug(ctx, "  maya-7q ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, user.ID)

	_, found, err = repo.FindBySlug(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)

	byID, found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "maya-7q", byID.PublicSlug)

	exists, err := repo.ExistsBySlug(ctx, "maya-7q")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFindOwnedReportsAbsentRowWithoutError(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "absent-card")

	_, found, err := NewEpipenRepository(database).FindCard(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmergencyRepositoryScopesByOwnerAndOrdersByPriority(t *testing.T) {
	database := openTestDatabase(t)
	owner := createTestUser(t, database, "owner")
	other := createTestUser(t, database, "other")
	ctx := context.Background()

	card := models.EmergencyCard{OwnedRow: models.OwnedRow{UserID: owner.ID}, FullName: "Owner"}
	require.NoError(t, database.Create(&card).Error)
	otherCard := models.EmergencyCard{OwnedRow: models.OwnedRow{UserID: other.ID}}
	require.NoError(t, database.Create(&otherCard).Error)

	contacts := []models.EmergencyContact{
		{OwnedRow: models.OwnedRow{UserID: owner.ID}, CardID: card.ID, Name: "Low", Phone: "1", Priority: 5},
		{OwnedRow: models.OwnedRow{UserID: owner.ID}, CardID: card.ID, Name: "High", Phone: "2", Priority: 1},
	}
	require.NoError(t, database.Create(&contacts).Error)
	foreign := models.EmergencyContact{OwnedRow: models.OwnedRow{UserID: other.ID}, CardID: otherCard.ID, Name: "Foreign", Phone: "3"}
	require.NoError(t, database.Create(&foreign).Error)

	repo := NewEmergencyRepository(database)
	found, ok, err := repo.FindCard(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, card.ID, found.ID)

	listed, err := repo.ListContacts(ctx, owner.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "High", listed[0].Name)
	assert.Equal(t, "Low", listed[1].Name)

	byIDs, err := repo.ListContactsByIDs(ctx, owner.ID, []string{contacts[0].ID, foreign.ID, contacts[0].ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 1, "foreign contacts are never resolved")
	assert.Equal(t, contacts[0].ID, byIDs[0].ID)
}

func TestTravelPhraseReferenceColumnsRoundTrip(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "traveller")
	ctx := context.Background()

	card := models.TravelCard{OwnedRow: models.OwnedRow{UserID: user.ID}, Title: "Lisbon"}
	require.NoError(t, database.Create(&card).Error)
	phrase := models.TravelPhrase{
		OwnedRow:            models.OwnedRow{UserID: user.ID},
		CardID:              card.ID,
		Text:                "I cannot eat [allergens]",
		AllergenIDs:         []string{"a1", "a2"},
		EmergencyContactIDs: []string{},
	}
	require.NoError(t, database.Create(&phrase).Error)
	translation := models.TravelPhraseTranslation{OwnedRow: models.OwnedRow{UserID: user.ID}, PhraseID: phrase.ID, LanguageCode: "pt", Text: "Não posso comer [allergens]"}
	require.NoError(t, database.Create(&translation).Error)

	repo := NewTravelRepository(database)
	phrases, err := repo.ListPhrases(ctx, user.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, phrases, 1)
	assert.Equal(t, []string{"a1", "a2"}, phrases[0].AllergenIDs)
	assert.Nil(t, phrases[0].DefaultPhraseID)

	translations, err := repo.ListPhraseTranslations(ctx, user.ID, []string{phrase.ID})
	require.NoError(t, err)
	require.Len(t, translations, 1)
	assert.Equal(t, "pt", translations[0].LanguageCode)

	none, err := repo.ListPhraseTranslations(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDefaultRepositoryFiltersSafetyRulesByLevel(t *testing.T) {
	database := openTestDatabase(t)
	rules := []models.DefaultSafetyRule{
		{Key: "std-2", SafetyLevel: models.SafetyLevelStandard, Text: "Second", SortOrder: intPtr(2)},
		{Key: "std-1", SafetyLevel: models.SafetyLevelStandard, Text: "First", SortOrder: intPtr(1)},
		{Key: "max-1", SafetyLevel: models.SafetyLevelMaximum, Text: "Max"},
	}
	require.NoError(t, database.Create(&rules).Error)

	loaded, err := NewDefaultRepository(database).SafetyRules(context.Background(), models.SafetyLevelStandard)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "std-1", loaded[0].Key)
	assert.Equal(t, "std-2", loaded[1].Key)
}

func TestAllergensByIDsWithEmptySetSkipsQuery(t *testing.T) {
	database := openTestDatabase(t)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	repo := NewDefaultRepository(database)
	allergens, err := repo.AllergensByIDs(context.Background(), []string{"", ""})
	require.NoError(t, err, "an empty ID set must not reach the closed database")
	assert.NotNil(t, allergens)
	assert.Empty(t, allergens)

	_, err = repo.AllergensByIDs(context.Background(), []string{"a1"})
	assert.Error(t, err)
}

func TestUniqueNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, uniqueNonEmpty([]string{"b", "", "a", "b"}))
	assert.Empty(t, uniqueNonEmpty(nil))
}

func intPtr(value int) *int {
	return &value
}

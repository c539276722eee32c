package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/db"
	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/security"
	"gorm.io/gorm"
)

const slugAttempts = 5

// SeedDemoUser creates a user with one row of every card, mixing unedited
// defaults, overrides and custom records. The reference data of document must
// already be applied.
func SeedDemoUser(ctx context.Context, database *gorm.DB, document Document, displayName string) (models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = "Demo Diner"
	}

	var user models.User
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := db.NewUserRepository(tx)
		slug, err := uniqueSlug(ctx, users, displayName)
		if err != nil {
			return err
		}
		user = models.User{PublicSlug: slug, DisplayName: displayName}
		if err := users.Create(ctx, &user); err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}
		return seedDemoCards(tx, user.ID, document)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func uniqueSlug(ctx context.Context, users *db.UserRepository, displayName string) (string, error) {
	for range slugAttempts {
		slug, err := security.NewPublicSlug(displayName)
		if err != nil {
			return "", fmt.Errorf("generate slug: %w", err)
		}
		taken, err := users.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
	}
	return "", fmt.Errorf("no free slug after %d attempts", slugAttempts)
}

func seedDemoCards(tx *gorm.DB, userID string, document Document) error {
	owner := models.OwnedRow{UserID: userID}
	now := time.Now().UTC()
	expires := now.AddDate(1, 0, 0)

	safetyOverrideKey := "strict-chef-card"
	instructionKey := "call-emergency"
	lunchCategoryID := ReferenceID("default_swe_categories", "lunch")
	allergicPhraseID := ReferenceID("default_travel_phrases", "dining-i-am-allergic")
	emergencyCategoryID := ReferenceID("travel_phrase_categories", "emergency")
	peanutID := ReferenceID("allergens", "peanut")
	sesameID := ReferenceID("allergens", "sesame")

	profile := models.ReactionProfile{OwnedRow: owner, Severity: models.SeveritySevere, SafetyLevel: models.SafetyLevelStrict, Notes: "Anaphylaxis in 2019."}
	emergency := models.EmergencyCard{OwnedRow: owner, FullName: "Demo Diner", BloodType: "O+", Medications: "Cetirizine"}
	epipen := models.EpipenCard{OwnedRow: owner, BrandName: "EpiPen", Dosage: "0.3 mg", CarriedWhere: "Front pocket of backpack", ExpiresOn: &expires}
	swe := models.SweCard{OwnedRow: owner, Title: "Workplace plan"}
	travel := models.TravelCard{OwnedRow: owner, Title: "Trip to Paris"}
	for _, card := range []any{&profile, &emergency, &epipen, &swe, &travel} {
		if err := tx.Create(card).Error; err != nil {
			return fmt.Errorf("create demo card: %w", err)
		}
	}

	contact := models.EmergencyContact{OwnedRow: owner, CardID: emergency.ID, Name: "Alex Diner", Relationship: "Partner", Phone: "+1 555 0100", Priority: 1}
	if err := tx.Create(&contact).Error; err != nil {
		return fmt.Errorf("create demo contact: %w", err)
	}

	symptomRows := document.Rows().Symptoms
	records := []any{
		&[]models.UserAllergen{
			{OwnedRow: owner, AllergenID: peanutID, Severity: models.SeveritySevere},
			{OwnedRow: owner, AllergenID: sesameID, Severity: models.SeverityModerate},
		},
		&[]models.UserSafetyRule{
			{OwnedRow: owner, DefaultKey: &safetyOverrideKey, SafetyLevel: models.SafetyLevelStrict, Text: "Hand the chef card to the kitchen and wait for confirmation."},
			{OwnedRow: owner, SafetyLevel: models.SafetyLevelStrict, Text: "Never eat from buffets.", IconType: "buffet", SortOrder: intValue(10)},
		},
		&[]models.Doctor{
			{OwnedRow: owner, CardID: emergency.ID, Name: "Dr. Rivera", DoctorType: models.DoctorTypeAllergySpecialist, Specialty: "Allergy and immunology", Phone: "+1 555 0110"},
			{OwnedRow: owner, CardID: emergency.ID, Name: "Dr. Okafor", DoctorType: models.DoctorTypePrimaryCare, Phone: "+1 555 0120"},
		},
		&models.Hospital{OwnedRow: owner, CardID: emergency.ID, Name: "City General", Address: "1 Main St", Phone: "+1 555 0199", Priority: 1},
		&models.EpipenInstruction{OwnedRow: owner, CardID: epipen.ID, DefaultKey: &instructionKey, Text: "Call 911 and say the word anaphylaxis."},
		&models.SweMeasure{OwnedRow: owner, CardID: swe.ID, CategoryID: lunchCategoryID, Text: "Keep the shared fridge shelf allergen-free.", SortOrder: intValue(3)},
		&models.TravelLanguage{OwnedRow: owner, CardID: travel.ID, LanguageCode: "fr", Name: "French", SortOrder: 1},
	}
	if len(symptomRows) > 0 {
		records = append(records, &models.ReactionSymptom{OwnedRow: owner, ProfileID: profile.ID, SymptomID: symptomRows[0].ID})
	}
	for _, record := range records {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("create demo record: %w", err)
		}
	}

	phrases := []models.TravelPhrase{
		{OwnedRow: owner, CardID: travel.ID, DefaultPhraseID: &allergicPhraseID, Text: "I have a severe allergy to [allergens].", AllergenIDs: []string{peanutID, sesameID}},
		{OwnedRow: owner, CardID: travel.ID, CategoryID: &emergencyCategoryID, Text: "If I collapse, call [emergency contact].", EmergencyContactIDs: []string{contact.ID}, SortOrder: intValue(9)},
	}
	if err := tx.Create(&phrases).Error; err != nil {
		return fmt.Errorf("create demo phrases: %w", err)
	}
	translations := []models.TravelPhraseTranslation{
		{OwnedRow: owner, PhraseID: phrases[0].ID, LanguageCode: "fr", Text: "J'ai une allergie grave à [allergens]."},
		{OwnedRow: owner, PhraseID: phrases[1].ID, LanguageCode: "fr", Text: "Si je m'effondre, appelez [emergency contact]."},
	}
	if err := tx.Create(&translations).Error; err != nil {
		return fmt.Errorf("create demo translations: %w", err)
	}
	return nil
}

func intValue(value int) *int {
	return &value
}

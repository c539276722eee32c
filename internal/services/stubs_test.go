package services

import (
	"context"
	"sync"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
)

func intPtr(value int) *int {
	return &value
}

func strPtr(value string) *string {
	return &value
}

func owned(id string, userID string) models.OwnedRow {
	return models.OwnedRow{Row: models.Row{ID: id}, UserID: userID}
}

type stubDefaults struct {
	mu sync.Mutex

	safetyRules        []models.DefaultSafetyRule
	epipenInstructions []models.DefaultEpipenInstruction
	sweCategories      []models.DefaultSweCategory
	sweMeasures        []models.DefaultSweMeasure
	phrases            []models.DefaultTravelPhrase
	translations       []models.DefaultTravelPhraseTranslation
	phraseCategories   []models.TravelPhraseCategory
	symptoms           []models.Symptom
	allergens          []models.Allergen

	err           error
	calls         map[string]int
	requestedIDs  [][]string
	requestLevels []string
}

func (stub *stubDefaults) record(name string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.calls == nil {
		stub.calls = map[string]int{}
	}
	stub.calls[name]++
	return stub.err
}

func (stub *stubDefaults) callCount(name string) int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.calls[name]
}

func (stub *stubDefaults) SafetyRules(_ context.Context, safetyLevel string) ([]models.DefaultSafetyRule, error) {
	if err := stub.record("SafetyRules"); err != nil {
		return nil, err
	}
	stub.mu.Lock()
	stub.requestLevels = append(stub.requestLevels, safetyLevel)
	stub.mu.Unlock()

	rules := make([]models.DefaultSafetyRule, 0, len(stub.safetyRules))
	for _, rule := range stub.safetyRules {
		if rule.SafetyLevel == safetyLevel {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (stub *stubDefaults) EpipenInstructions(context.Context) ([]models.DefaultEpipenInstruction, error) {
	return stub.epipenInstructions, stub.record("EpipenInstructions")
}

func (stub *stubDefaults) SweCategories(context.Context) ([]models.DefaultSweCategory, error) {
	return stub.sweCategories, stub.record("SweCategories")
}

func (stub *stubDefaults) SweMeasures(context.Context) ([]models.DefaultSweMeasure, error) {
	return stub.sweMeasures, stub.record("SweMeasures")
}

func (stub *stubDefaults) TravelPhrases(context.Context) ([]models.DefaultTravelPhrase, error) {
	return stub.phrases, stub.record("TravelPhrases")
}

func (stub *stubDefaults) TravelPhraseTranslations(context.Context) ([]models.DefaultTravelPhraseTranslation, error) {
	return stub.translations, stub.record("TravelPhraseTranslations")
}

func (stub *stubDefaults) TravelPhraseCategories(context.Context) ([]models.TravelPhraseCategory, error) {
	return stub.phraseCategories, stub.record("TravelPhraseCategories")
}

func (stub *stubDefaults) Symptoms(context.Context) ([]models.Symptom, error) {
	return stub.symptoms, stub.record("Symptoms")
}

func (stub *stubDefaults) AllergensByIDs(_ context.Context, ids []string) ([]models.Allergen, error) {
	if err := stub.record("AllergensByIDs"); err != nil {
		return nil, err
	}
	stub.mu.Lock()
	stub.requestedIDs = append(stub.requestedIDs, ids)
	stub.mu.Unlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	matched := make([]models.Allergen, 0, len(ids))
	for _, allergen := range stub.allergens {
		if _, ok := wanted[allergen.ID]; ok {
			matched = append(matched, allergen)
		}
	}
	return matched, nil
}

type stubAllergyRepo struct {
	profile       *models.ReactionProfile
	userAllergens []models.UserAllergen
	symptoms      []models.ReactionSymptom
	rules         []models.UserSafetyRule
	err           error
	symptomCalls  int
}

func (stub *stubAllergyRepo) FindReactionProfile(context.Context, string) (models.ReactionProfile, bool, error) {
	if stub.err != nil {
		return models.ReactionProfile{}, false, stub.err
	}
	if stub.profile == nil {
		return models.ReactionProfile{}, false, nil
	}
	return *stub.profile, true, nil
}

func (stub *stubAllergyRepo) ListUserAllergens(context.Context, string) ([]models.UserAllergen, error) {
	return stub.userAllergens, nil
}

func (stub *stubAllergyRepo) ListReactionSymptoms(context.Context, string, string) ([]models.ReactionSymptom, error) {
	stub.symptomCalls++
	return stub.symptoms, nil
}

func (stub *stubAllergyRepo) ListSafetyRules(_ context.Context, _ string, safetyLevel string) ([]models.UserSafetyRule, error) {
	rules := make([]models.UserSafetyRule, 0, len(stub.rules))
	for _, rule := range stub.rules {
		if rule.SafetyLevel == safetyLevel {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

type stubEmergencyRepo struct {
	card       *models.EmergencyCard
	contacts   []models.EmergencyContact
	doctors    []models.Doctor
	hospitals  []models.Hospital
	err        error
	childCalls int
}

func (stub *stubEmergencyRepo) FindCard(context.Context, string) (models.EmergencyCard, bool, error) {
	if stub.err != nil {
		return models.EmergencyCard{}, false, stub.err
	}
	if stub.card == nil {
		return models.EmergencyCard{}, false, nil
	}
	return *stub.card, true, nil
}

func (stub *stubEmergencyRepo) ListContacts(context.Context, string, string) ([]models.EmergencyContact, error) {
	stub.childCalls++
	return stub.contacts, nil
}

func (stub *stubEmergencyRepo) ListDoctors(context.Context, string, string) ([]models.Doctor, error) {
	stub.childCalls++
	return stub.doctors, nil
}

func (stub *stubEmergencyRepo) ListHospitals(context.Context, string, string) ([]models.Hospital, error) {
	stub.childCalls++
	return stub.hospitals, nil
}

func (stub *stubEmergencyRepo) ListContactsByIDs(_ context.Context, userID string, ids []string) ([]models.EmergencyContact, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	matched := make([]models.EmergencyContact, 0, len(ids))
	for _, contact := range stub.contacts {
		if _, ok := wanted[contact.ID]; ok && contact.UserID == userID {
			matched = append(matched, contact)
		}
	}
	return matched, nil
}

type stubEpipenRepo struct {
	card         *models.EpipenCard
	instructions []models.EpipenInstruction
	err          error
}

func (stub *stubEpipenRepo) FindCard(context.Context, string) (models.EpipenCard, bool, error) {
	if stub.err != nil {
		return models.EpipenCard{}, false, stub.err
	}
	if stub.card == nil {
		return models.EpipenCard{}, false, nil
	}
	return *stub.card, true, nil
}

func (stub *stubEpipenRepo) ListInstructions(context.Context, string, string) ([]models.EpipenInstruction, error) {
	return stub.instructions, nil
}

type stubSweRepo struct {
	card       *models.SweCard
	categories []models.SweCategory
	measures   []models.SweMeasure
	err        error
}

func (stub *stubSweRepo) FindCard(context.Context, string) (models.SweCard, bool, error) {
	if stub.err != nil {
		return models.SweCard{}, false, stub.err
	}
	if stub.card == nil {
		return models.SweCard{}, false, nil
	}
	return *stub.card, true, nil
}

func (stub *stubSweRepo) ListCategories(context.Context, string, string) ([]models.SweCategory, error) {
	return stub.categories, nil
}

func (stub *stubSweRepo) ListMeasures(context.Context, string, string) ([]models.SweMeasure, error) {
	return stub.measures, nil
}

type stubTravelRepo struct {
	card         *models.TravelCard
	languages    []models.TravelLanguage
	phrases      []models.TravelPhrase
	translations []models.TravelPhraseTranslation
	err          error
}

func (stub *stubTravelRepo) FindCard(context.Context, string) (models.TravelCard, bool, error) {
	if stub.err != nil {
		return models.TravelCard{}, false, stub.err
	}
	if stub.card == nil {
		return models.TravelCard{}, false, nil
	}
	return *stub.card, true, nil
}

func (stub *stubTravelRepo) ListLanguages(context.Context, string, string) ([]models.TravelLanguage, error) {
	return stub.languages, nil
}

func (stub *stubTravelRepo) ListPhrases(context.Context, string, string) ([]models.TravelPhrase, error) {
	return stub.phrases, nil
}

func (stub *stubTravelRepo) ListPhraseTranslations(_ context.Context, _ string, phraseIDs []string) ([]models.TravelPhraseTranslation, error) {
	wanted := make(map[string]struct{}, len(phraseIDs))
	for _, id := range phraseIDs {
		wanted[id] = struct{}{}
	}
	matched := make([]models.TravelPhraseTranslation, 0)
	for _, row := range stub.translations {
		if _, ok := wanted[row.PhraseID]; ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

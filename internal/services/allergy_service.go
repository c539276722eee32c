package services

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/override"
	"go.uber.org/zap"
)

type AllergyRepository interface {
	FindReactionProfile(ctx context.Context, userID string) (models.ReactionProfile, bool, error)
	ListUserAllergens(ctx context.Context, userID string) ([]models.UserAllergen, error)
	ListReactionSymptoms(ctx context.Context, userID string, profileID string) ([]models.ReactionSymptom, error)
	ListSafetyRules(ctx context.Context, userID string, safetyLevel string) ([]models.UserSafetyRule, error)
}

type AllergyService struct {
	repo     AllergyRepository
	defaults DefaultReader
	logger   *zap.Logger
}

type UserAllergenView struct {
	ID         string `json:"id"`
	AllergenID string `json:"allergen_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Severity   string `json:"severity"`
}

type ReactionSymptomView struct {
	ID        string `json:"id"`
	SymptomID string `json:"symptom_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
}

type SafetyRuleView struct {
	ResolvedRef
	Key      string `json:"key,omitempty"`
	Text     string `json:"text"`
	IconType string `json:"icon_type"`
}

// AllergyProfile is nil-safe: ReactionProfile is nil when the user never
// created one, and Symptoms is then empty.
type AllergyProfile struct {
	ReactionProfile *models.ReactionProfile `json:"reaction_profile"`
	SafetyLevel     string                  `json:"safety_level"`
	Allergens       []UserAllergenView      `json:"allergens"`
	Symptoms        []ReactionSymptomView   `json:"symptoms"`
	SafetyRules     []SafetyRuleView        `json:"safety_rules"`
}

func (profile AllergyProfile) HasCard() bool {
	return profile.ReactionProfile != nil
}

func NewAllergyService(repo AllergyRepository, defaults DefaultReader, logger *zap.Logger) *AllergyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllergyService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

func (service *AllergyService) Assemble(ctx context.Context, userID string) (AllergyProfile, error) {
	result := AllergyProfile{
		SafetyLevel: models.DefaultSafetyLevel,
		Allergens:   []UserAllergenView{},
		Symptoms:    []ReactionSymptomView{},
		SafetyRules: []SafetyRuleView{},
	}

	profile, found, err := service.repo.FindReactionProfile(ctx, userID)
	if err != nil {
		return AllergyProfile{}, dataSourceError(DomainAllergy, "reaction profile", err)
	}
	if found {
		result.ReactionProfile = &profile
		if profile.SafetyLevel != "" {
			result.SafetyLevel = profile.SafetyLevel
		}
	}

	allergens, err := service.loadAllergens(ctx, userID)
	if err != nil {
		return AllergyProfile{}, err
	}
	result.Allergens = allergens

	if found {
		symptoms, err := service.loadSymptoms(ctx, userID, profile.ID)
		if err != nil {
			return AllergyProfile{}, err
		}
		result.Symptoms = symptoms
	}

	rules, err := service.ResolveSafetyRules(ctx, userID, result.SafetyLevel)
	if err != nil {
		return AllergyProfile{}, err
	}
	result.SafetyRules = rules

	return result, nil
}

// ResolveSafetyRules merges the default rules of safetyLevel with the user's
// rules for the same level. An edited rule without an icon keeps the default
// icon.
func (service *AllergyService) ResolveSafetyRules(ctx context.Context, userID string, safetyLevel string) ([]SafetyRuleView, error) {
	defaults, err := service.defaults.SafetyRules(ctx, safetyLevel)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "default safety rules", err)
	}
	overrides, err := service.repo.ListSafetyRules(ctx, userID, safetyLevel)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "safety rules", err)
	}

	resolved := override.Resolve(service.logger, "safety_rules", defaults, overrides, override.Merge[models.DefaultSafetyRule, models.UserSafetyRule, SafetyRuleView]{
		DefaultKey:   func(rule models.DefaultSafetyRule) string { return rule.Key },
		DefaultID:    func(rule models.DefaultSafetyRule) string { return rule.ID },
		DefaultSort:  func(rule models.DefaultSafetyRule) *int { return rule.SortOrder },
		OverrideKey:  func(rule models.UserSafetyRule) (string, bool) { return optionalKey(rule.DefaultKey) },
		OverrideID:   func(rule models.UserSafetyRule) string { return rule.ID },
		OverrideSort: func(rule models.UserSafetyRule) *int { return rule.SortOrder },
		Deleted:      func(rule models.UserSafetyRule) bool { return rule.IsDeleted },
		FromDefault: func(rule models.DefaultSafetyRule) SafetyRuleView {
			return SafetyRuleView{Key: rule.Key, Text: rule.Text, IconType: rule.IconType}
		},
		FromOverride: func(base models.DefaultSafetyRule, rule models.UserSafetyRule) SafetyRuleView {
			return SafetyRuleView{Key: base.Key, Text: rule.Text, IconType: firstNonEmpty(rule.IconType, base.IconType)}
		},
		FromCustom: func(rule models.UserSafetyRule) SafetyRuleView {
			return SafetyRuleView{Text: rule.Text, IconType: rule.IconType}
		},
	})
	return finalize(resolved), nil
}

func (service *AllergyService) loadAllergens(ctx context.Context, userID string) ([]UserAllergenView, error) {
	userAllergens, err := service.repo.ListUserAllergens(ctx, userID)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "user allergens", err)
	}

	ids := make([]string, 0, len(userAllergens))
	for _, entry := range userAllergens {
		ids = append(ids, entry.AllergenID)
	}
	allergens, err := service.defaults.AllergensByIDs(ctx, ids)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "allergens", err)
	}
	allergenByID := make(map[string]models.Allergen, len(allergens))
	for _, allergen := range allergens {
		allergenByID[allergen.ID] = allergen
	}

	views := make([]UserAllergenView, 0, len(userAllergens))
	for _, entry := range userAllergens {
		allergen, ok := allergenByID[entry.AllergenID]
		if !ok {
			continue
		}
		views = append(views, UserAllergenView{
			ID:         entry.ID,
			AllergenID: allergen.ID,
			Name:       allergen.Name,
			Icon:       allergen.Icon,
			Severity:   entry.Severity,
		})
	}
	return views, nil
}

func (service *AllergyService) loadSymptoms(ctx context.Context, userID string, profileID string) ([]ReactionSymptomView, error) {
	entries, err := service.repo.ListReactionSymptoms(ctx, userID, profileID)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "reaction symptoms", err)
	}
	if len(entries) == 0 {
		return []ReactionSymptomView{}, nil
	}

	symptoms, err := service.defaults.Symptoms(ctx)
	if err != nil {
		return nil, dataSourceError(DomainAllergy, "symptoms", err)
	}
	symptomByID := make(map[string]models.Symptom, len(symptoms))
	for _, symptom := range symptoms {
		symptomByID[symptom.ID] = symptom
	}

	views := make([]ReactionSymptomView, 0, len(entries))
	for _, entry := range entries {
		symptom, ok := symptomByID[entry.SymptomID]
		if !ok {
			continue
		}
		views = append(views, ReactionSymptomView{
			ID:        entry.ID,
			SymptomID: symptom.ID,
			Name:      symptom.Name,
			Icon:      symptom.Icon,
		})
	}
	return views, nil
}

package services

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/override"
	"go.uber.org/zap"
)

type TravelRepository interface {
	FindCard(ctx context.Context, userID string) (models.TravelCard, bool, error)
	ListLanguages(ctx context.Context, userID string, cardID string) ([]models.TravelLanguage, error)
	ListPhrases(ctx context.Context, userID string, cardID string) ([]models.TravelPhrase, error)
	ListPhraseTranslations(ctx context.Context, userID string, phraseIDs []string) ([]models.TravelPhraseTranslation, error)
}

// ContactLookup resolves emergency contact references owned by userID.
type ContactLookup interface {
	ListContactsByIDs(ctx context.Context, userID string, ids []string) ([]models.EmergencyContact, error)
}

type TravelService struct {
	repo     TravelRepository
	contacts ContactLookup
	defaults DefaultReader
	logger   *zap.Logger
}

type TravelLanguageView struct {
	ID           string `json:"id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	SortOrder    int    `json:"sort_order"`
}

type PhraseCategoryView struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type PhraseAllergen struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type PhraseContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type TravelPhraseView struct {
	ResolvedRef
	Text                 string              `json:"text"`
	Category             *PhraseCategoryView `json:"category"`
	Allergens            []PhraseAllergen    `json:"allergens"`
	EmergencyContacts    []PhraseContact     `json:"emergency_contacts"`
	Translations         map[string]string   `json:"translations"`
	RenderedText         string              `json:"rendered_text"`
	RenderedTranslations map[string]string   `json:"rendered_translations"`

	categoryRef string
	allergenIDs []string
	contactIDs  []string
}

type TravelProfile struct {
	Card      *models.TravelCard   `json:"card"`
	Languages []TravelLanguageView `json:"languages"`
	Phrases   []TravelPhraseView   `json:"phrases"`
}

func (profile TravelProfile) HasCard() bool {
	return profile.Card != nil
}

func NewTravelService(repo TravelRepository, contacts ContactLookup, defaults DefaultReader, logger *zap.Logger) *TravelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelService{
		repo:     repo,
		contacts: contacts,
		defaults: defaults,
		logger:   logger,
	}
}

func (service *TravelService) Assemble(ctx context.Context, userID string) (TravelProfile, error) {
	result := TravelProfile{
		Languages: []TravelLanguageView{},
		Phrases:   []TravelPhraseView{},
	}

	card, found, err := service.repo.FindCard(ctx, userID)
	if err != nil {
		return TravelProfile{}, dataSourceError(DomainTravel, "travel card", err)
	}
	if !found {
		return result, nil
	}
	result.Card = &card

	languages, err := service.repo.ListLanguages(ctx, userID, card.ID)
	if err != nil {
		return TravelProfile{}, dataSourceError(DomainTravel, "languages", err)
	}
	for _, language := range languages {
		result.Languages = append(result.Languages, TravelLanguageView{
			ID:           language.ID,
			LanguageCode: language.LanguageCode,
			Name:         language.Name,
			SortOrder:    language.SortOrder,
		})
	}

	phrases, err := service.resolvePhrases(ctx, userID, card.ID)
	if err != nil {
		return TravelProfile{}, err
	}
	if err := service.attachTranslations(ctx, userID, phrases); err != nil {
		return TravelProfile{}, err
	}
	if err := service.attachCategories(ctx, phrases); err != nil {
		return TravelProfile{}, err
	}
	if err := service.attachReferences(ctx, userID, phrases); err != nil {
		return TravelProfile{}, err
	}
	for index := range phrases {
		RenderTravelPhrase(&phrases[index])
	}

	result.Phrases = phrases
	return result, nil
}

// resolvePhrases merges default phrases with the card's phrases. Phrases are
// keyed by default phrase ID rather than a text key.
func (service *TravelService) resolvePhrases(ctx context.Context, userID string, cardID string) ([]TravelPhraseView, error) {
	defaults, err := service.defaults.TravelPhrases(ctx)
	if err != nil {
		return nil, dataSourceError(DomainTravel, "default phrases", err)
	}
	overrides, err := service.repo.ListPhrases(ctx, userID, cardID)
	if err != nil {
		return nil, dataSourceError(DomainTravel, "phrases", err)
	}

	resolved := override.Resolve(service.logger, "travel_phrases", defaults, overrides, override.Merge[models.DefaultTravelPhrase, models.TravelPhrase, TravelPhraseView]{
		DefaultKey:   func(phrase models.DefaultTravelPhrase) string { return phrase.ID },
		DefaultID:    func(phrase models.DefaultTravelPhrase) string { return phrase.ID },
		DefaultSort:  func(phrase models.DefaultTravelPhrase) *int { return phrase.SortOrder },
		OverrideKey:  func(phrase models.TravelPhrase) (string, bool) { return optionalKey(phrase.DefaultPhraseID) },
		OverrideID:   func(phrase models.TravelPhrase) string { return phrase.ID },
		OverrideSort: func(phrase models.TravelPhrase) *int { return phrase.SortOrder },
		Deleted:      func(phrase models.TravelPhrase) bool { return phrase.IsDeleted },
		FromDefault: func(phrase models.DefaultTravelPhrase) TravelPhraseView {
			return TravelPhraseView{Text: phrase.Text, categoryRef: phrase.CategoryID}
		},
		FromOverride: func(base models.DefaultTravelPhrase, phrase models.TravelPhrase) TravelPhraseView {
			return TravelPhraseView{
				Text:        phrase.Text,
				categoryRef: base.CategoryID,
				allergenIDs: phrase.AllergenIDs,
				contactIDs:  phrase.EmergencyContactIDs,
			}
		},
		FromCustom: func(phrase models.TravelPhrase) TravelPhraseView {
			categoryRef := ""
			if phrase.CategoryID != nil {
				categoryRef = *phrase.CategoryID
			}
			return TravelPhraseView{
				Text:        phrase.Text,
				categoryRef: categoryRef,
				allergenIDs: phrase.AllergenIDs,
				contactIDs:  phrase.EmergencyContactIDs,
			}
		},
	})
	return finalize(resolved), nil
}

// attachTranslations fills Translations. Unedited defaults read the default
// translations; user phrases read only their own rows.
func (service *TravelService) attachTranslations(ctx context.Context, userID string, phrases []TravelPhraseView) error {
	rowIDs := make([]string, 0, len(phrases))
	hasSynthetic := false
	for _, phrase := range phrases {
		if phrase.RowID != "" {
			rowIDs = append(rowIDs, phrase.RowID)
		} else {
			hasSynthetic = true
		}
	}

	defaultTranslations := map[string]map[string]string{}
	if hasSynthetic {
		rows, err := service.defaults.TravelPhraseTranslations(ctx)
		if err != nil {
			return dataSourceError(DomainTravel, "default phrase translations", err)
		}
		for _, row := range rows {
			addTranslation(defaultTranslations, row.PhraseID, row.LanguageCode, row.Text)
		}
	}

	userTranslations := map[string]map[string]string{}
	rows, err := service.repo.ListPhraseTranslations(ctx, userID, rowIDs)
	if err != nil {
		return dataSourceError(DomainTravel, "phrase translations", err)
	}
	for _, row := range rows {
		addTranslation(userTranslations, row.PhraseID, row.LanguageCode, row.Text)
	}

	for index := range phrases {
		phrase := &phrases[index]
		var source map[string]string
		if phrase.Source == override.SourceDefault {
			source = defaultTranslations[phrase.DefaultID]
		} else {
			source = userTranslations[phrase.RowID]
		}
		phrase.Translations = make(map[string]string, len(source))
		for code, text := range source {
			phrase.Translations[code] = text
		}
	}
	return nil
}

func addTranslation(target map[string]map[string]string, phraseID string, languageCode string, text string) {
	byLanguage, ok := target[phraseID]
	if !ok {
		byLanguage = map[string]string{}
		target[phraseID] = byLanguage
	}
	byLanguage[languageCode] = text
}

func (service *TravelService) attachCategories(ctx context.Context, phrases []TravelPhraseView) error {
	if len(phrases) == 0 {
		return nil
	}
	categories, err := service.defaults.TravelPhraseCategories(ctx)
	if err != nil {
		return dataSourceError(DomainTravel, "phrase categories", err)
	}
	categoryByID := make(map[string]models.TravelPhraseCategory, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	for index := range phrases {
		category, ok := categoryByID[phrases[index].categoryRef]
		if !ok {
			continue
		}
		phrases[index].Category = &PhraseCategoryView{ID: category.ID, Key: category.Key, Name: category.Name}
	}
	return nil
}

// attachReferences batch-loads the allergens and contacts named by the
// phrases. IDs that no longer resolve are skipped.
func (service *TravelService) attachReferences(ctx context.Context, userID string, phrases []TravelPhraseView) error {
	var allergenIDs, contactIDs []string
	for _, phrase := range phrases {
		allergenIDs = append(allergenIDs, phrase.allergenIDs...)
		contactIDs = append(contactIDs, phrase.contactIDs...)
	}

	allergens, err := service.defaults.AllergensByIDs(ctx, allergenIDs)
	if err != nil {
		return dataSourceError(DomainTravel, "phrase allergens", err)
	}
	allergenByID := make(map[string]models.Allergen, len(allergens))
	for _, allergen := range allergens {
		allergenByID[allergen.ID] = allergen
	}

	contacts, err := service.contacts.ListContactsByIDs(ctx, userID, contactIDs)
	if err != nil {
		return dataSourceError(DomainTravel, "phrase contacts", err)
	}
	contactByID := make(map[string]models.EmergencyContact, len(contacts))
	for _, contact := range contacts {
		contactByID[contact.ID] = contact
	}

	for index := range phrases {
		phrase := &phrases[index]
		phrase.Allergens = make([]PhraseAllergen, 0, len(phrase.allergenIDs))
		for _, id := range phrase.allergenIDs {
			allergen, ok := allergenByID[id]
			if !ok {
				continue
			}
			phrase.Allergens = append(phrase.Allergens, PhraseAllergen{ID: allergen.ID, Name: allergen.Name, Icon: allergen.Icon})
		}
		phrase.EmergencyContacts = make([]PhraseContact, 0, len(phrase.contactIDs))
		for _, id := range phrase.contactIDs {
			contact, ok := contactByID[id]
			if !ok {
				continue
			}
			phrase.EmergencyContacts = append(phrase.EmergencyContacts, PhraseContact{
				ID:           contact.ID,
				Name:         contact.Name,
				Relationship: contact.Relationship,
				Phone:        contact.Phone,
			})
		}
	}
	return nil
}

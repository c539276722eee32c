package services

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/override"
	"go.uber.org/zap"
)

type SweRepository interface {
	FindCard(ctx context.Context, userID string) (models.SweCard, bool, error)
	ListCategories(ctx context.Context, userID string, cardID string) ([]models.SweCategory, error)
	ListMeasures(ctx context.Context, userID string, cardID string) ([]models.SweMeasure, error)
}

type SchoolWorkEventsService struct {
	repo     SweRepository
	defaults DefaultReader
	logger   *zap.Logger
}

type SweMeasureView struct {
	ResolvedRef
	Key         string `json:"key,omitempty"`
	Text        string `json:"text"`
	CategoryRef string `json:"-"`
}

type SweCategoryView struct {
	ResolvedRef
	Key      string           `json:"key,omitempty"`
	Name     string           `json:"name"`
	Icon     string           `json:"icon"`
	Measures []SweMeasureView `json:"measures"`
}

type SchoolWorkEventsProfile struct {
	Card       *models.SweCard  `json:"card"`
	Categories []SweCategoryView `json:"categories"`
}

func (profile SchoolWorkEventsProfile) HasCard() bool {
	return profile.Card != nil
}

func NewSchoolWorkEventsService(repo SweRepository, defaults DefaultReader, logger *zap.Logger) *SchoolWorkEventsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolWorkEventsService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

func (service *SchoolWorkEventsService) Assemble(ctx context.Context, userID string) (SchoolWorkEventsProfile, error) {
	result := SchoolWorkEventsProfile{Categories: []SweCategoryView{}}

	card, found, err := service.repo.FindCard(ctx, userID)
	if err != nil {
		return SchoolWorkEventsProfile{}, dataSourceError(DomainSchoolWorkEvents, "swe card", err)
	}
	if !found {
		return result, nil
	}
	result.Card = &card

	categories, err := service.resolveCategories(ctx, userID, card.ID)
	if err != nil {
		return SchoolWorkEventsProfile{}, err
	}
	measures, err := service.resolveMeasures(ctx, userID, card.ID)
	if err != nil {
		return SchoolWorkEventsProfile{}, err
	}

	result.Categories = GroupMeasuresByCategory(categories, measures)
	return result, nil
}

func (service *SchoolWorkEventsService) resolveCategories(ctx context.Context, userID string, cardID string) ([]SweCategoryView, error) {
	defaults, err := service.defaults.SweCategories(ctx)
	if err != nil {
		return nil, dataSourceError(DomainSchoolWorkEvents, "default categories", err)
	}
	overrides, err := service.repo.ListCategories(ctx, userID, cardID)
	if err != nil {
		return nil, dataSourceError(DomainSchoolWorkEvents, "categories", err)
	}

	resolved := override.Resolve(service.logger, "swe_categories", defaults, overrides, override.Merge[models.DefaultSweCategory, models.SweCategory, SweCategoryView]{
		DefaultKey:   func(category models.DefaultSweCategory) string { return category.Key },
		DefaultID:    func(category models.DefaultSweCategory) string { return category.ID },
		DefaultSort:  func(category models.DefaultSweCategory) *int { return category.SortOrder },
		OverrideKey:  func(category models.SweCategory) (string, bool) { return optionalKey(category.DefaultKey) },
		OverrideID:   func(category models.SweCategory) string { return category.ID },
		OverrideSort: func(category models.SweCategory) *int { return category.SortOrder },
		Deleted:      func(category models.SweCategory) bool { return category.IsDeleted },
		FromDefault: func(category models.DefaultSweCategory) SweCategoryView {
			return SweCategoryView{Key: category.Key, Name: category.Name, Icon: category.Icon}
		},
		FromOverride: func(base models.DefaultSweCategory, category models.SweCategory) SweCategoryView {
			return SweCategoryView{
				Key:  base.Key,
				Name: firstNonEmpty(category.Name, base.Name),
				Icon: firstNonEmpty(category.Icon, base.Icon),
			}
		},
		FromCustom: func(category models.SweCategory) SweCategoryView {
			return SweCategoryView{Name: category.Name, Icon: category.Icon}
		},
	})
	return finalize(resolved), nil
}

func (service *SchoolWorkEventsService) resolveMeasures(ctx context.Context, userID string, cardID string) ([]SweMeasureView, error) {
	defaults, err := service.defaults.SweMeasures(ctx)
	if err != nil {
		return nil, dataSourceError(DomainSchoolWorkEvents, "default measures", err)
	}
	overrides, err := service.repo.ListMeasures(ctx, userID, cardID)
	if err != nil {
		return nil, dataSourceError(DomainSchoolWorkEvents, "measures", err)
	}

	resolved := override.Resolve(service.logger, "swe_measures", defaults, overrides, override.Merge[models.DefaultSweMeasure, models.SweMeasure, SweMeasureView]{
		DefaultKey:   func(measure models.DefaultSweMeasure) string { return measure.Key },
		DefaultID:    func(measure models.DefaultSweMeasure) string { return measure.ID },
		DefaultSort:  func(measure models.DefaultSweMeasure) *int { return measure.SortOrder },
		OverrideKey:  func(measure models.SweMeasure) (string, bool) { return optionalKey(measure.DefaultKey) },
		OverrideID:   func(measure models.SweMeasure) string { return measure.ID },
		OverrideSort: func(measure models.SweMeasure) *int { return measure.SortOrder },
		Deleted:      func(measure models.SweMeasure) bool { return measure.IsDeleted },
		FromDefault: func(measure models.DefaultSweMeasure) SweMeasureView {
			return SweMeasureView{Key: measure.Key, Text: measure.Text, CategoryRef: measure.CategoryID}
		},
		FromOverride: func(base models.DefaultSweMeasure, measure models.SweMeasure) SweMeasureView {
			return SweMeasureView{
				Key:         base.Key,
				Text:        measure.Text,
				CategoryRef: firstNonEmpty(measure.CategoryID, base.CategoryID),
			}
		},
		FromCustom: func(measure models.SweMeasure) SweMeasureView {
			return SweMeasureView{Text: measure.Text, CategoryRef: measure.CategoryID}
		},
	})
	return finalize(resolved), nil
}

// GroupMeasuresByCategory files each measure under the category whose real ID
// or default source ID equals the measure's category reference. A synthetic
// category is therefore matched through its default's ID, never through the
// default- string. Measures without a visible category are dropped.
func GroupMeasuresByCategory(categories []SweCategoryView, measures []SweMeasureView) []SweCategoryView {
	grouped := make([]SweCategoryView, len(categories))
	indexByRef := make(map[string]int, len(categories)*2)
	for index, category := range categories {
		category.Measures = []SweMeasureView{}
		grouped[index] = category
		if category.RowID != "" {
			indexByRef[category.RowID] = index
		}
		if category.DefaultID != "" {
			indexByRef[category.DefaultID] = index
		}
	}

	for _, measure := range measures {
		ref := measure.CategoryRef
		if sourceID, ok := override.SourceIDFromSynthetic(ref); ok {
			ref = sourceID
		}
		index, ok := indexByRef[ref]
		if !ok {
			continue
		}
		grouped[index].Measures = append(grouped[index].Measures, measure)
	}
	return grouped
}

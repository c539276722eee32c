package services

import (
	"context"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/SageDevelopmentCode/dine-web/internal/override"
)

const (
	DomainAllergy          = "allergy"
	DomainEmergency        = "emergency"
	DomainEpipen           = "epipen"
	DomainSchoolWorkEvents = "school-work-events"
	DomainTravel           = "travel"
)

// Domains lists the profile domains in presentation order.
func Domains() []string {
	return []string{DomainAllergy, DomainEmergency, DomainEpipen, DomainSchoolWorkEvents, DomainTravel}
}

// DefaultReader reads the shared reference tables.
type DefaultReader interface {
	SafetyRules(ctx context.Context, safetyLevel string) ([]models.DefaultSafetyRule, error)
	EpipenInstructions(ctx context.Context) ([]models.DefaultEpipenInstruction, error)
	SweCategories(ctx context.Context) ([]models.DefaultSweCategory, error)
	SweMeasures(ctx context.Context) ([]models.DefaultSweMeasure, error)
	TravelPhrases(ctx context.Context) ([]models.DefaultTravelPhrase, error)
	TravelPhraseTranslations(ctx context.Context) ([]models.DefaultTravelPhraseTranslation, error)
	TravelPhraseCategories(ctx context.Context) ([]models.TravelPhraseCategory, error)
	Symptoms(ctx context.Context) ([]models.Symptom, error)
	AllergensByIDs(ctx context.Context, ids []string) ([]models.Allergen, error)
}

// ResolvedRef identifies a merged record. Editable is false for unedited
// defaults, whose ID is synthetic and must not be used for writes.
type ResolvedRef struct {
	ID        string          `json:"id"`
	Source    override.Source `json:"source"`
	Editable  bool            `json:"editable"`
	SortOrder int             `json:"sort_order"`
	DefaultID string          `json:"-"`
	RowID     string          `json:"-"`
}

func (ref *ResolvedRef) setRef(value ResolvedRef) {
	*ref = value
}

type resolvedView[V any] interface {
	*V
	setRef(ResolvedRef)
}

// finalize copies the resolver's identity and order onto each view.
func finalize[V any, P resolvedView[V]](resolved []override.Resolved[V]) []V {
	views := make([]V, 0, len(resolved))
	for _, record := range resolved {
		view := record.Value
		P(&view).setRef(ResolvedRef{
			ID:        record.ID(),
			Source:    record.Source,
			Editable:  record.Writable(),
			SortOrder: record.SortOrder,
			DefaultID: record.DefaultID,
			RowID:     record.RowID,
		})
		views = append(views, view)
	}
	return views
}

func optionalKey(value *string) (string, bool) {
	if value == nil || *value == "" {
		return "", false
	}
	return *value, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

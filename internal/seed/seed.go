// Package seed loads the shared reference data baked into the binary and
// writes it to the database.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// idNamespace scopes the derived reference-data IDs to this application.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://dine.app/reference-data"))

type Document struct {
	Version            int                   `yaml:"version"`
	Allergens          []AllergenEntry       `yaml:"allergens"`
	Symptoms           []SymptomEntry        `yaml:"symptoms"`
	SafetyRules        []SafetyRuleEntry     `yaml:"safety_rules"`
	EpipenInstructions []InstructionEntry    `yaml:"epipen_instructions"`
	SweCategories      []SweCategoryEntry    `yaml:"swe_categories"`
	PhraseCategories   []PhraseCategoryEntry `yaml:"phrase_categories"`
}

type AllergenEntry struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type SymptomEntry struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Icon      string `yaml:"icon"`
	SortOrder int    `yaml:"sort_order"`
}

type SafetyRuleEntry struct {
	Key         string `yaml:"key"`
	SafetyLevel string `yaml:"safety_level"`
	Text        string `yaml:"text"`
	IconType    string `yaml:"icon_type"`
	SortOrder   *int   `yaml:"sort_order"`
}

type InstructionEntry struct {
	Key       string `yaml:"key"`
	Text      string `yaml:"text"`
	SortOrder *int   `yaml:"sort_order"`
}

type SweCategoryEntry struct {
	Key       string             `yaml:"key"`
	Name      string             `yaml:"name"`
	Icon      string             `yaml:"icon"`
	SortOrder *int               `yaml:"sort_order"`
	Measures  []InstructionEntry `yaml:"measures"`
}

type PhraseCategoryEntry struct {
	Key       string        `yaml:"key"`
	Name      string        `yaml:"name"`
	SortOrder int           `yaml:"sort_order"`
	Phrases   []PhraseEntry `yaml:"phrases"`
}

type PhraseEntry struct {
	Key          string            `yaml:"key"`
	Text         string            `yaml:"text"`
	SortOrder    *int              `yaml:"sort_order"`
	Translations map[string]string `yaml:"translations"`
}

// Load parses the embedded defaults document.
func Load() (Document, error) {
	return Parse(defaultsYAML)
}

// Parse decodes and validates a defaults document. Keys must be present and
// unique per table, and safety levels must be known.
func Parse(data []byte) (Document, error) {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Document{}, fmt.Errorf("decode defaults: %w", err)
	}
	if err := document.validate(); err != nil {
		return Document{}, err
	}
	return document, nil
}

func (document Document) validate() error {
	tables := map[string][]string{}
	add := func(table string, key string) {
		tables[table] = append(tables[table], key)
	}

	for _, entry := range document.Allergens {
		add("allergens", entry.Key)
	}
	for _, entry := range document.Symptoms {
		add("symptoms", entry.Key)
	}
	for _, entry := range document.SafetyRules {
		add("default_safety_rules", entry.Key)
		switch entry.SafetyLevel {
		case models.SafetyLevelStandard, models.SafetyLevelStrict, models.SafetyLevelMaximum:
		default:
			return fmt.Errorf("safety rule %q: unknown safety level %q", entry.Key, entry.SafetyLevel)
		}
	}
	for _, entry := range document.EpipenInstructions {
		add("default_epipen_instructions", entry.Key)
	}
	for _, category := range document.SweCategories {
		add("default_swe_categories", category.Key)
		for _, measure := range category.Measures {
			add("default_swe_measures", measure.Key)
		}
	}
	for _, category := range document.PhraseCategories {
		add("travel_phrase_categories", category.Key)
		for _, phrase := range category.Phrases {
			add("default_travel_phrases", phrase.Key)
		}
	}

	for table, keys := range tables {
		seen := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("%s: entry without key", table)
			}
			if _, duplicate := seen[key]; duplicate {
				return fmt.Errorf("%s: duplicate key %q", table, key)
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

// ReferenceID derives the stable row ID of a reference entry.
func ReferenceID(table string, key string) string {
	return uuid.NewSHA1(idNamespace, []byte(table+"/"+key)).String()
}

// Rows is the document flattened into insertable models.
type Rows struct {
	Allergens          []models.Allergen
	Symptoms           []models.Symptom
	SafetyRules        []models.DefaultSafetyRule
	EpipenInstructions []models.DefaultEpipenInstruction
	SweCategories      []models.DefaultSweCategory
	SweMeasures        []models.DefaultSweMeasure
	PhraseCategories   []models.TravelPhraseCategory
	Phrases            []models.DefaultTravelPhrase
	Translations       []models.DefaultTravelPhraseTranslation
}

func (document Document) Rows() Rows {
	var rows Rows
	for _, entry := range document.Allergens {
		rows.Allergens = append(rows.Allergens, models.Allergen{
			Row:  models.Row{ID: ReferenceID("allergens", entry.Key)},
			Name: entry.Name,
			Icon: entry.Icon,
		})
	}
	for _, entry := range document.Symptoms {
		rows.Symptoms = append(rows.Symptoms, models.Symptom{
			Row:       models.Row{ID: ReferenceID("symptoms", entry.Key)},
			Name:      entry.Name,
			Icon:      entry.Icon,
			SortOrder: entry.SortOrder,
		})
	}
	for _, entry := range document.SafetyRules {
		rows.SafetyRules = append(rows.SafetyRules, models.DefaultSafetyRule{
			Row:         models.Row{ID: ReferenceID("default_safety_rules", entry.Key)},
			Key:         entry.Key,
			SafetyLevel: entry.SafetyLevel,
			Text:        entry.Text,
			IconType:    entry.IconType,
			SortOrder:   entry.SortOrder,
		})
	}
	for _, entry := range document.EpipenInstructions {
		rows.EpipenInstructions = append(rows.EpipenInstructions, models.DefaultEpipenInstruction{
			Row:       models.Row{ID: ReferenceID("default_epipen_instructions", entry.Key)},
			Key:       entry.Key,
			Text:      entry.Text,
			SortOrder: entry.SortOrder,
		})
	}
	for _, category := range document.SweCategories {
		categoryID := ReferenceID("default_swe_categories", category.Key)
		rows.SweCategories = append(rows.SweCategories, models.DefaultSweCategory{
			Row:       models.Row{ID: categoryID},
			Key:       category.Key,
			Name:      category.Name,
			Icon:      category.Icon,
			SortOrder: category.SortOrder,
		})
		for _, measure := range category.Measures {
			rows.SweMeasures = append(rows.SweMeasures, models.DefaultSweMeasure{
				Row:        models.Row{ID: ReferenceID("default_swe_measures", measure.Key)},
				Key:        measure.Key,
				CategoryID: categoryID,
				Text:       measure.Text,
				SortOrder:  measure.SortOrder,
			})
		}
	}
	for _, category := range document.PhraseCategories {
		categoryID := ReferenceID("travel_phrase_categories", category.Key)
		rows.PhraseCategories = append(rows.PhraseCategories, models.TravelPhraseCategory{
			Row:       models.Row{ID: categoryID},
			Key:       category.Key,
			Name:      category.Name,
			SortOrder: category.SortOrder,
		})
		for _, phrase := range category.Phrases {
			phraseID := ReferenceID("default_travel_phrases", phrase.Key)
			rows.Phrases = append(rows.Phrases, models.DefaultTravelPhrase{
				Row:        models.Row{ID: phraseID},
				CategoryID: categoryID,
				Text:       phrase.Text,
				SortOrder:  phrase.SortOrder,
			})

			codes := make([]string, 0, len(phrase.Translations))
			for code := range phrase.Translations {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			for _, code := range codes {
				rows.Translations = append(rows.Translations, models.DefaultTravelPhraseTranslation{
					Row:          models.Row{ID: ReferenceID("default_travel_phrase_translations", phrase.Key+"/"+code)},
					PhraseID:     phraseID,
					LanguageCode: code,
					Text:         phrase.Translations[code],
				})
			}
		}
	}
	return rows
}

// Apply inserts every reference row that is not present yet and reports how
// many rows were written. Existing rows are left untouched, so running it
// again is a no-op.
func Apply(ctx context.Context, database *gorm.DB, document Document) (int64, error) {
	if database == nil {
		return 0, errors.New("seed: database is required")
	}
	rows := document.Rows()

	var inserted int64
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			table string
			rows  any
			count int
		}{
			{"allergens", &rows.Allergens, len(rows.Allergens)},
			{"symptoms", &rows.Symptoms, len(rows.Symptoms)},
			{"default_safety_rules", &rows.SafetyRules, len(rows.SafetyRules)},
			{"default_epipen_instructions", &rows.EpipenInstructions, len(rows.EpipenInstructions)},
			{"default_swe_categories", &rows.SweCategories, len(rows.SweCategories)},
			{"default_swe_measures", &rows.SweMeasures, len(rows.SweMeasures)},
			{"travel_phrase_categories", &rows.PhraseCategories, len(rows.PhraseCategories)},
			{"default_travel_phrases", &rows.Phrases, len(rows.Phrases)},
			{"default_travel_phrase_translations", &rows.Translations, len(rows.Translations)},
		}
		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(step.rows)
			if result.Error != nil {
				return fmt.Errorf("seed %s: %w", step.table, result.Error)
			}
			inserted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

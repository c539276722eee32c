package models

const (
	PlaceholderAllergens        = "[allergens]"
	PlaceholderEmergencyContact = "[emergency contact]"
)

type TravelCard struct {
	OwnedRow
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type TravelLanguage struct {
	OwnedRow
	CardID       string `gorm:"not null;index" json:"card_id"`
	LanguageCode string `gorm:"not null" json:"language_code"`
	Name         string `gorm:"not null" json:"name"`
	SortOrder    int    `gorm:"not null;default:0" json:"sort_order"`
}

type TravelPhraseCategory struct {
	Row
	Key       string `gorm:"not null;uniqueIndex" json:"key"`
	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

type DefaultTravelPhrase struct {
	Row
	CategoryID string `gorm:"not null;index" json:"category_id"`
	Text       string `gorm:"not null" json:"text"`
	SortOrder  *int   `json:"sort_order"`
}

type DefaultTravelPhraseTranslation struct {
	Row
	PhraseID     string `gorm:"not null;index" json:"phrase_id"`
	LanguageCode string `gorm:"not null" json:"language_code"`
	Text         string `gorm:"not null" json:"text"`
}

// TravelPhrase overrides a default phrase when DefaultPhraseID is set and is a
// custom phrase otherwise. CategoryID is only read for custom phrases.
type TravelPhrase struct {
	OwnedRow
	CardID              string   `gorm:"not null;index" json:"card_id"`
	DefaultPhraseID     *string  `gorm:"index" json:"default_phrase_id"`
	CategoryID          *string  `json:"category_id"`
	Text                string   `gorm:"not null" json:"text"`
	AllergenIDs         []string `gorm:"serializer:json" json:"allergen_ids"`
	EmergencyContactIDs []string `gorm:"serializer:json" json:"emergency_contact_ids"`
	SortOrder           *int     `json:"sort_order"`
	IsDeleted           bool     `gorm:"not null;default:false" json:"is_deleted"`
}

type TravelPhraseTranslation struct {
	OwnedRow
	PhraseID     string `gorm:"not null;index" json:"phrase_id"`
	LanguageCode string `gorm:"not null" json:"language_code"`
	Text         string `gorm:"not null" json:"text"`
}

package models

import "time"

const (
	SafetyLevelStandard = "standard"
	SafetyLevelStrict   = "strict"
	SafetyLevelMaximum  = "maximum"

	DefaultSafetyLevel = SafetyLevelStandard
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Allergen is shared reference data.
type Allergen struct {
	Row
	Name string `gorm:"not null" json:"name"`
	Icon string `gorm:"not null;default:''" json:"icon"`
}

type UserAllergen struct {
	OwnedRow
	AllergenID string    `gorm:"not null;index" json:"allergen_id"`
	Severity   string    `gorm:"not null;default:mild" json:"severity"`
	CreatedAt  time.Time `json:"created_at"`
}

// Symptom is the reaction-symptom lookup table. Symptoms are joined by ID and
// never overridden per user.
type Symptom struct {
	Row
	Name      string `gorm:"not null" json:"name"`
	Icon      string `gorm:"not null;default:''" json:"icon"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

type ReactionProfile struct {
	OwnedRow
	Severity    string    `gorm:"not null;default:mild" json:"severity"`
	SafetyLevel string    `gorm:"not null;default:standard" json:"safety_level"`
	Notes       string    `json:"notes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReactionSymptom struct {
	OwnedRow
	ProfileID string `gorm:"not null;index" json:"profile_id"`
	SymptomID string `gorm:"not null" json:"symptom_id"`
}

type DefaultSafetyRule struct {
	Row
	Key         string `gorm:"not null;uniqueIndex" json:"key"`
	SafetyLevel string `gorm:"not null;index" json:"safety_level"`
	Text        string `gorm:"not null" json:"text"`
	IconType    string `gorm:"not null;default:''" json:"icon_type"`
	SortOrder   *int   `json:"sort_order"`
}

type UserSafetyRule struct {
	OwnedRow
	DefaultKey  *string `gorm:"index" json:"default_key"`
	SafetyLevel string  `gorm:"not null" json:"safety_level"`
	Text        string  `gorm:"not null" json:"text"`
	IconType    string  `gorm:"not null;default:''" json:"icon_type"`
	SortOrder   *int    `json:"sort_order"`
	IsDeleted   bool    `gorm:"not null;default:false" json:"is_deleted"`
}

package models

import "time"

type EpipenCard struct {
	OwnedRow
	BrandName    string     `json:"brand_name"`
	Dosage       string     `json:"dosage"`
	CarriedWhere string     `json:"carried_where"`
	ExpiresOn    *time.Time `gorm:"type:date" json:"expires_on"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type DefaultEpipenInstruction struct {
	Row
	Key       string `gorm:"not null;uniqueIndex" json:"key"`
	Text      string `gorm:"not null" json:"text"`
	SortOrder *int   `json:"sort_order"`
}

type EpipenInstruction struct {
	OwnedRow
	CardID     string  `gorm:"not null;index" json:"card_id"`
	DefaultKey *string `json:"default_key"`
	Text       string  `gorm:"not null" json:"text"`
	SortOrder  *int    `json:"sort_order"`
	IsDeleted  bool    `gorm:"not null;default:false" json:"is_deleted"`
}

package models

// SweCard is the school, work and events accommodation card.
type SweCard struct {
	OwnedRow
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type DefaultSweCategory struct {
	Row
	Key       string `gorm:"not null;uniqueIndex" json:"key"`
	Name      string `gorm:"not null" json:"name"`
	Icon      string `gorm:"not null;default:''" json:"icon"`
	SortOrder *int   `json:"sort_order"`
}

type SweCategory struct {
	OwnedRow
	CardID     string  `gorm:"not null;index" json:"card_id"`
	DefaultKey *string `json:"default_key"`
	Name       string  `gorm:"not null;default:''" json:"name"`
	Icon       string  `gorm:"not null;default:''" json:"icon"`
	SortOrder  *int    `json:"sort_order"`
	IsDeleted  bool    `gorm:"not null;default:false" json:"is_deleted"`
}

// DefaultSweMeasure.CategoryID references DefaultSweCategory.ID.
type DefaultSweMeasure struct {
	Row
	Key        string `gorm:"not null;uniqueIndex" json:"key"`
	CategoryID string `gorm:"not null;index" json:"category_id"`
	Text       string `gorm:"not null" json:"text"`
	SortOrder  *int   `json:"sort_order"`
}

// SweMeasure.CategoryID holds either a SweCategory.ID or, for measures filed
// under an unedited default category, the DefaultSweCategory.ID.
type SweMeasure struct {
	OwnedRow
	CardID     string  `gorm:"not null;index" json:"card_id"`
	DefaultKey *string `json:"default_key"`
	CategoryID string  `gorm:"not null;default:''" json:"category_id"`
	Text       string  `gorm:"not null" json:"text"`
	SortOrder  *int    `json:"sort_order"`
	IsDeleted  bool    `gorm:"not null;default:false" json:"is_deleted"`
}

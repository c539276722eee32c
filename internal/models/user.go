package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the owning identity of a profile. PublicSlug is the only identifier
// that leaves the service; ID stays internal.
type User struct {
	ID          string    `gorm:"primaryKey" json:"-"`
	PublicSlug  string    `gorm:"uniqueIndex;not null" json:"slug"`
	DisplayName string    `gorm:"not null;default:''" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (user *User) BeforeCreate(*gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

// Row is embedded by every table keyed by a generated string ID.
type Row struct {
	ID string `gorm:"primaryKey" json:"id"`
}

func (row *Row) BeforeCreate(*gorm.DB) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	return nil
}

// OwnedRow is a Row that belongs to one user.
type OwnedRow struct {
	Row
	UserID string `gorm:"not null;index" json:"-"`
}

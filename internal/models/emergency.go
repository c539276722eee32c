package models

import "time"

const (
	DoctorTypePrimaryCare       = "primary_care"
	DoctorTypeAllergySpecialist = "allergy_specialist"
	DoctorTypeOther             = "other"
)

type EmergencyCard struct {
	OwnedRow
	FullName          string    `json:"full_name"`
	BloodType         string    `json:"blood_type"`
	Medications       string    `json:"medications"`
	MedicalConditions string    `json:"medical_conditions"`
	Notes             string    `json:"notes"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type EmergencyContact struct {
	OwnedRow
	CardID       string `gorm:"not null;index" json:"card_id"`
	Name         string `gorm:"not null" json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `gorm:"not null" json:"phone"`
	Priority     int    `gorm:"not null;default:0" json:"priority"`
}

type Doctor struct {
	OwnedRow
	CardID     string    `gorm:"not null;index" json:"card_id"`
	Name       string    `gorm:"not null" json:"name"`
	DoctorType string    `gorm:"not null;default:other" json:"doctor_type"`
	Specialty  string    `json:"specialty"`
	Practice   string    `json:"practice"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

type Hospital struct {
	OwnedRow
	CardID   string `gorm:"not null;index" json:"card_id"`
	Name     string `gorm:"not null" json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Priority int    `gorm:"not null;default:0" json:"priority"`
}

package services

import (
	"context"
	"sort"
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
)

type EmergencyRepository interface {
	FindCard(ctx context.Context, userID string) (models.EmergencyCard, bool, error)
	ListContacts(ctx context.Context, userID string, cardID string) ([]models.EmergencyContact, error)
	ListDoctors(ctx context.Context, userID string, cardID string) ([]models.Doctor, error)
	ListHospitals(ctx context.Context, userID string, cardID string) ([]models.Hospital, error)
}

type EmergencyService struct {
	repo EmergencyRepository
}

type DoctorGroups struct {
	PrimaryCare       []models.Doctor `json:"primary_care"`
	AllergySpecialist []models.Doctor `json:"allergy_specialist"`
	Other             []models.Doctor `json:"other"`
}

type EmergencyProfile struct {
	Card      *models.EmergencyCard     `json:"card"`
	Contacts  []models.EmergencyContact `json:"contacts"`
	Doctors   DoctorGroups              `json:"doctors"`
	Hospitals []models.Hospital         `json:"hospitals"`
}

func (profile EmergencyProfile) HasCard() bool {
	return profile.Card != nil
}

func NewEmergencyService(repo EmergencyRepository) *EmergencyService {
	return &EmergencyService{repo: repo}
}

func emptyEmergencyProfile() EmergencyProfile {
	return EmergencyProfile{
		Contacts:  []models.EmergencyContact{},
		Doctors:   GroupDoctors(nil),
		Hospitals: []models.Hospital{},
	}
}

func (service *EmergencyService) Assemble(ctx context.Context, userID string) (EmergencyProfile, error) {
	result := emptyEmergencyProfile()

	card, found, err := service.repo.FindCard(ctx, userID)
	if err != nil {
		return EmergencyProfile{}, dataSourceError(DomainEmergency, "emergency card", err)
	}
	if !found {
		return result, nil
	}
	result.Card = &card

	contacts, err := service.repo.ListContacts(ctx, userID, card.ID)
	if err != nil {
		return EmergencyProfile{}, dataSourceError(DomainEmergency, "emergency contacts", err)
	}
	doctors, err := service.repo.ListDoctors(ctx, userID, card.ID)
	if err != nil {
		return EmergencyProfile{}, dataSourceError(DomainEmergency, "doctors", err)
	}
	hospitals, err := service.repo.ListHospitals(ctx, userID, card.ID)
	if err != nil {
		return EmergencyProfile{}, dataSourceError(DomainEmergency, "hospitals", err)
	}

	SortContactsByPriority(contacts)
	SortHospitalsByPriority(hospitals)
	if contacts != nil {
		result.Contacts = contacts
	}
	if hospitals != nil {
		result.Hospitals = hospitals
	}
	result.Doctors = GroupDoctors(doctors)
	return result, nil
}

func SortContactsByPriority(contacts []models.EmergencyContact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Priority < contacts[j].Priority
	})
}

func SortHospitalsByPriority(hospitals []models.Hospital) {
	sort.SliceStable(hospitals, func(i, j int) bool {
		return hospitals[i].Priority < hospitals[j].Priority
	})
}

// GroupDoctors partitions doctors by type. Unknown types land in Other; every
// group keeps input order.
func GroupDoctors(doctors []models.Doctor) DoctorGroups {
	groups := DoctorGroups{
		PrimaryCare:       []models.Doctor{},
		AllergySpecialist: []models.Doctor{},
		Other:             []models.Doctor{},
	}
	for _, doctor := range doctors {
		switch strings.ToLower(strings.TrimSpace(doctor.DoctorType)) {
		case models.DoctorTypePrimaryCare:
			groups.PrimaryCare = append(groups.PrimaryCare, doctor)
		case models.DoctorTypeAllergySpecialist:
			groups.AllergySpecialist = append(groups.AllergySpecialist, doctor)
		default:
			groups.Other = append(groups.Other, doctor)
		}
	}
	return groups
}

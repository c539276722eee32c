package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Defaults  *DefaultRepository
	Allergy   *AllergyRepository
	Emergency *EmergencyRepository
	Epipen    *EpipenRepository
	Swe       *SweRepository
	Travel    *TravelRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Defaults:  NewDefaultRepository(database),
		Allergy:   NewAllergyRepository(database),
		Emergency: NewEmergencyRepository(database),
		Epipen:    NewEpipenRepository(database),
		Swe:       NewSweRepository(database),
		Travel:    NewTravelRepository(database),
	}
}

package api

import (
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/db"
	"github.com/SageDevelopmentCode/dine-web/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewProfileService wires the repositories of database into the profile
// aggregator. A positive defaultsTTL puts the shared reference data behind an
// in-memory cache.
func NewProfileService(database *gorm.DB, defaultsTTL time.Duration, logger *zap.Logger) *services.ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	repositories := db.NewRepositories(database)

	var defaults services.DefaultReader = repositories.Defaults
	if defaultsTTL > 0 {
		defaults = db.NewCachedDefaultRepository(repositories.Defaults, defaultsTTL)
	}

	assemblers := services.ProfileAssemblers{
		Allergy:          services.NewAllergyService(repositories.Allergy, defaults, logger),
		Emergency:        services.NewEmergencyService(repositories.Emergency),
		Epipen:           services.NewEpipenService(repositories.Epipen, defaults, logger),
		SchoolWorkEvents: services.NewSchoolWorkEventsService(repositories.Swe, defaults, logger),
		Travel:           services.NewTravelService(repositories.Travel, repositories.Emergency, defaults, logger),
	}
	return services.NewProfileService(repositories.Users, assemblers, logger)
}

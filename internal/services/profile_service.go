package services

import (
	"context"
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ProfileUserLookup interface {
	FindBySlug(ctx context.Context, slug string) (models.User, bool, error)
	FindByID(ctx context.Context, userID string) (models.User, bool, error)
}

type AllergyAssembler interface {
	Assemble(ctx context.Context, userID string) (AllergyProfile, error)
}

type EmergencyAssembler interface {
	Assemble(ctx context.Context, userID string) (EmergencyProfile, error)
}

type EpipenAssembler interface {
	Assemble(ctx context.Context, userID string) (EpipenProfile, error)
}

type SchoolWorkEventsAssembler interface {
	Assemble(ctx context.Context, userID string) (SchoolWorkEventsProfile, error)
}

type TravelAssembler interface {
	Assemble(ctx context.Context, userID string) (TravelProfile, error)
}

// ProfileAssemblers groups the five domain assemblers.
type ProfileAssemblers struct {
	Allergy          AllergyAssembler
	Emergency        EmergencyAssembler
	Epipen           EpipenAssembler
	SchoolWorkEvents SchoolWorkEventsAssembler
	Travel           TravelAssembler
}

type ProfileService struct {
	users      ProfileUserLookup
	assemblers ProfileAssemblers
	logger     *zap.Logger
}

type ProfileIdentity struct {
	UserID      string `json:"-"`
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
}

type CompositeProfile struct {
	Identity         ProfileIdentity         `json:"identity"`
	Allergy          AllergyProfile          `json:"allergy"`
	Emergency        EmergencyProfile        `json:"emergency"`
	Epipen           EpipenProfile           `json:"epipen"`
	SchoolWorkEvents SchoolWorkEventsProfile `json:"school_work_events"`
	Travel           TravelProfile           `json:"travel"`
}

func NewProfileService(users ProfileUserLookup, assemblers ProfileAssemblers, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		users:      users,
		assemblers: assemblers,
		logger:     logger,
	}
}

func (service *ProfileService) CompositeBySlug(ctx context.Context, slug string) (CompositeProfile, error) {
	identity, err := service.identityBySlug(ctx, slug)
	if err != nil {
		return CompositeProfile{}, err
	}
	return service.composite(ctx, identity)
}

func (service *ProfileService) CompositeByUserID(ctx context.Context, userID string) (CompositeProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CompositeProfile{}, ErrProfileNotFound
	}
	user, found, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return CompositeProfile{}, dataSourceError("identity", "user by id", err)
	}
	if !found {
		return CompositeProfile{}, ErrProfileNotFound
	}
	return service.composite(ctx, identityFromUser(user))
}

// Domain assembles a single domain for the user behind slug.
func (service *ProfileService) Domain(ctx context.Context, slug string, domain string) (any, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if !isKnownDomain(domain) {
		return nil, ErrUnknownDomain
	}
	identity, err := service.identityBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	switch domain {
	case DomainAllergy:
		return service.assemblers.Allergy.Assemble(ctx, identity.UserID)
	case DomainEmergency:
		return service.assemblers.Emergency.Assemble(ctx, identity.UserID)
	case DomainEpipen:
		return service.assemblers.Epipen.Assemble(ctx, identity.UserID)
	case DomainSchoolWorkEvents:
		return service.assemblers.SchoolWorkEvents.Assemble(ctx, identity.UserID)
	default:
		return service.assemblers.Travel.Assemble(ctx, identity.UserID)
	}
}

func (service *ProfileService) identityBySlug(ctx context.Context, slug string) (ProfileIdentity, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProfileIdentity{}, ErrProfileNotFound
	}
	user, found, err := service.users.FindBySlug(ctx, slug)
	if err != nil {
		return ProfileIdentity{}, dataSourceError("identity", "user by slug", err)
	}
	if !found {
		return ProfileIdentity{}, ErrProfileNotFound
	}
	return identityFromUser(user), nil
}

// composite runs the assemblers concurrently. The first failure cancels the
// others and fails the whole profile.
func (service *ProfileService) composite(ctx context.Context, identity ProfileIdentity) (CompositeProfile, error) {
	result := CompositeProfile{Identity: identity}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		profile, err := service.assemblers.Allergy.Assemble(groupCtx, identity.UserID)
		result.Allergy = profile
		return err
	})
	group.Go(func() error {
		profile, err := service.assemblers.Emergency.Assemble(groupCtx, identity.UserID)
		result.Emergency = profile
		return err
	})
	group.Go(func() error {
		profile, err := service.assemblers.Epipen.Assemble(groupCtx, identity.UserID)
		result.Epipen = profile
		return err
	})
	group.Go(func() error {
		profile, err := service.assemblers.SchoolWorkEvents.Assemble(groupCtx, identity.UserID)
		result.SchoolWorkEvents = profile
		return err
	})
	group.Go(func() error {
		profile, err := service.assemblers.Travel.Assemble(groupCtx, identity.UserID)
		result.Travel = profile
		return err
	})

	if err := group.Wait(); err != nil {
		service.logger.Error("assemble profile",
			zap.String("user_id", identity.UserID),
			zap.Error(err))
		return CompositeProfile{}, err
	}
	return result, nil
}

func identityFromUser(user models.User) ProfileIdentity {
	return ProfileIdentity{
		UserID:      user.ID,
		Slug:        user.PublicSlug,
		DisplayName: user.DisplayName,
	}
}

func isKnownDomain(domain string) bool {
	for _, known := range Domains() {
		if known == domain {
			return true
		}
	}
	return false
}

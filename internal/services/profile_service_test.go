package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubUsers struct {
	users []models.User
	err   error
	slugs []string
}

func (stub *stubUsers) FindBySlug(_ context.Context, slug string) (models.User, bool, error) {
	stub.slugs = append(stub.slugs, slug)
	if stub.err != nil {
		return models.User{}, false, stub.err
	}
	for _, user := range stub.users {
		if user.PublicSlug == slug {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubUsers) FindByID(_ context.Context, userID string) (models.User, bool, error) {
	if stub.err != nil {
		return models.User{}, false, stub.err
	}
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

type blockingTravel struct{}

// Assemble waits for cancellation, so it only returns once a sibling fails.
func (blockingTravel) Assemble(ctx context.Context, _ string) (TravelProfile, error) {
	<-ctx.Done()
	return TravelProfile{}, ctx.Err()
}

func newTestProfileService(users *stubUsers) (*ProfileService, *stubEmergencyRepo) {
	defaults := allergyDefaults()
	emergency := &stubEmergencyRepo{
		card:     &models.EmergencyCard{OwnedRow: owned("ec", "u1"), FullName: "Sam"},
		contacts: []models.EmergencyContact{{OwnedRow: owned("c1", "u1"), Name: "Mom", Priority: 1}},
	}
	assemblers := ProfileAssemblers{
		Allergy:          NewAllergyService(&stubAllergyRepo{}, defaults, nil),
		Emergency:        NewEmergencyService(emergency),
		Epipen:           NewEpipenService(&stubEpipenRepo{}, defaults, nil),
		SchoolWorkEvents: NewSchoolWorkEventsService(&stubSweRepo{}, defaults, nil),
		Travel:           NewTravelService(&stubTravelRepo{}, emergency, defaults, nil),
	}
	return NewProfileService(users, assemblers, nil), emergency
}

func testUsers() *stubUsers {
	return &stubUsers{users: []models.User{{ID: "u1", PublicSlug: "sam-k2x9", DisplayName: "Sam"}}}
}

func TestCompositeBySlugAssemblesAllDomains(t *testing.T) {
	defer goleak.VerifyNone(t)

	users := testUsers()
	service, _ := newTestProfileService(users)

	profile, err := service.CompositeBySlug(context.Background(), "  sam-k2x9 ")
	require.NoError(t, err)

	assert.Equal(t, []string{"sam-k2x9"}, users.slugs, "slug is trimmed before lookup")
	assert.Equal(t, "Sam", profile.Identity.DisplayName)
	assert.Equal(t, "u1", profile.Identity.UserID)
	assert.True(t, profile.Emergency.HasCard())
	assert.Len(t, profile.Emergency.Contacts, 1)
	assert.False(t, profile.Epipen.HasCard())
	assert.False(t, profile.SchoolWorkEvents.HasCard())
	assert.False(t, profile.Travel.HasCard())
	assert.Len(t, profile.Allergy.SafetyRules, 2)
}

func TestCompositeBySlugNotFound(t *testing.T) {
	service, _ := newTestProfileService(testUsers())

	for _, slug := range []string{"", "   ", "missing"} {
		_, err := service.CompositeBySlug(context.Background(), slug)
		if !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("CompositeBySlug(%q) error = %v, want ErrProfileNotFound", slug, err)
		}
	}
}

func TestCompositeByUserID(t *testing.T) {
	service, _ := newTestProfileService(testUsers())

	profile, err := service.CompositeByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "sam-k2x9", profile.Identity.Slug)

	_, err = service.CompositeByUserID(context.Background(), "u404")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCompositeIdentityFailureIsDataSourceError(t *testing.T) {
	service, _ := newTestProfileService(&stubUsers{err: errors.New("db down")})

	_, err := service.CompositeBySlug(context.Background(), "sam-k2x9")
	require.Error(t, err)
	assert.True(t, IsDataSourceFailure(err))
	assert.False(t, errors.Is(err, ErrProfileNotFound))
}

func TestCompositeFailsWholeProfileOnDomainError(t *testing.T) {
	defer goleak.VerifyNone(t)

	service, emergency := newTestProfileService(testUsers())
	emergency.err = errors.New("query canceled")
	service.assemblers.Travel = blockingTravel{}

	profile, err := service.CompositeBySlug(context.Background(), "sam-k2x9")
	require.Error(t, err)
	assert.True(t, IsDataSourceFailure(err))

	var sourceErr *DataSourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, DomainEmergency, sourceErr.Domain)
	assert.Empty(t, profile.Identity.Slug, "no partial profile on failure")
}

func TestDomainReturnsSingleDomain(t *testing.T) {
	service, _ := newTestProfileService(testUsers())

	output, err := service.Domain(context.Background(), "sam-k2x9", " Emergency ")
	require.NoError(t, err)
	emergency, ok := output.(EmergencyProfile)
	require.True(t, ok, "unexpected output type %T", output)
	assert.Equal(t, "Sam", emergency.Card.FullName)

	for _, domain := range Domains() {
		_, err := service.Domain(context.Background(), "sam-k2x9", domain)
		assert.NoError(t, err, domain)
	}
}

func TestDomainRejectsUnknownDomain(t *testing.T) {
	service, _ := newTestProfileService(testUsers())

	_, err := service.Domain(context.Background(), "sam-k2x9", "billing")
	assert.ErrorIs(t, err, ErrUnknownDomain)

	_, err = service.Domain(context.Background(), "missing", DomainTravel)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

package db

import (
	"context"
	"sync"
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
	"golang.org/x/sync/singleflight"
)

// DefaultSource is the reference-data reader wrapped by CachedDefaultRepository.
type DefaultSource interface {
	SafetyRules(ctx context.Context, safetyLevel string) ([]models.DefaultSafetyRule, error)
	EpipenInstructions(ctx context.Context) ([]models.DefaultEpipenInstruction, error)
	SweCategories(ctx context.Context) ([]models.DefaultSweCategory, error)
	SweMeasures(ctx context.Context) ([]models.DefaultSweMeasure, error)
	TravelPhrases(ctx context.Context) ([]models.DefaultTravelPhrase, error)
	TravelPhraseTranslations(ctx context.Context) ([]models.DefaultTravelPhraseTranslation, error)
	TravelPhraseCategories(ctx context.Context) ([]models.TravelPhraseCategory, error)
	Symptoms(ctx context.Context) ([]models.Symptom, error)
	AllergensByIDs(ctx context.Context, ids []string) ([]models.Allergen, error)
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// CachedDefaultRepository keeps full reference tables in memory for ttl.
// Concurrent misses for the same table share one load. Cached slices are
// shared between callers and must be treated as read-only.
type CachedDefaultRepository struct {
	inner DefaultSource
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

func NewCachedDefaultRepository(inner DefaultSource, ttl time.Duration) *CachedDefaultRepository {
	return &CachedDefaultRepository{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Invalidate drops every cached table.
func (repo *CachedDefaultRepository) Invalidate() {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.entries = make(map[string]cacheEntry)
}

func cachedLoad[T any](ctx context.Context, repo *CachedDefaultRepository, key string, load func(context.Context) (T, error)) (T, error) {
	if repo.ttl <= 0 {
		return load(ctx)
	}

	repo.mu.Lock()
	entry, ok := repo.entries[key]
	repo.mu.Unlock()
	if ok && repo.now().Before(entry.expiresAt) {
		return entry.value.(T), nil
	}

	// The shared load must not be cancelled by whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := repo.group.Do(key, func() (any, error) {
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		repo.mu.Lock()
		repo.entries[key] = cacheEntry{value: loaded, expiresAt: repo.now().Add(repo.ttl)}
		repo.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

func (repo *CachedDefaultRepository) SafetyRules(ctx context.Context, safetyLevel string) ([]models.DefaultSafetyRule, error) {
	return cachedLoad(ctx, repo, "safety_rules:"+safetyLevel, func(ctx context.Context) ([]models.DefaultSafetyRule, error) {
		return repo.inner.SafetyRules(ctx, safetyLevel)
	})
}

func (repo *CachedDefaultRepository) EpipenInstructions(ctx context.Context) ([]models.DefaultEpipenInstruction, error) {
	return cachedLoad(ctx, repo, "epipen_instructions", repo.inner.EpipenInstructions)
}

func (repo *CachedDefaultRepository) SweCategories(ctx context.Context) ([]models.DefaultSweCategory, error) {
	return cachedLoad(ctx, repo, "swe_categories", repo.inner.SweCategories)
}

func (repo *CachedDefaultRepository) SweMeasures(ctx context.Context) ([]models.DefaultSweMeasure, error) {
	return cachedLoad(ctx, repo, "swe_measures", repo.inner.SweMeasures)
}

func (repo *CachedDefaultRepository) TravelPhrases(ctx context.Context) ([]models.DefaultTravelPhrase, error) {
	return cachedLoad(ctx, repo, "travel_phrases", repo.inner.TravelPhrases)
}

func (repo *CachedDefaultRepository) TravelPhraseTranslations(ctx context.Context) ([]models.DefaultTravelPhraseTranslation, error) {
	return cachedLoad(ctx, repo, "travel_phrase_translations", repo.inner.TravelPhraseTranslations)
}

func (repo *CachedDefaultRepository) TravelPhraseCategories(ctx context.Context) ([]models.TravelPhraseCategory, error) {
	return cachedLoad(ctx, repo, "travel_phrase_categories", repo.inner.TravelPhraseCategories)
}

func (repo *CachedDefaultRepository) Symptoms(ctx context.Context) ([]models.Symptom, error) {
	return cachedLoad(ctx, repo, "symptoms", repo.inner.Symptoms)
}

// AllergensByIDs is not cached; the ID set differs per request.
func (repo *CachedDefaultRepository) AllergensByIDs(ctx context.Context, ids []string) ([]models.Allergen, error) {
	return repo.inner.AllergensByIDs(ctx, ids)
}

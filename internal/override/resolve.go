// Package override merges system default records with a user's personal
// overrides (edits, soft deletions and custom additions) into the list that is
// actually shown for that user.
package override

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

const syntheticPrefix = "default-"

// Source tells where a resolved record came from.
type Source int

const (
	// SourceDefault is an unedited default projected for the user. It has no
	// backing row and must never be written through.
	SourceDefault Source = iota + 1
	// SourceOverride is a user row that replaces a default.
	SourceOverride
	// SourceCustom is a user row with no default behind it.
	SourceCustom
)

func (source Source) String() string {
	switch source {
	case SourceDefault:
		return "default"
	case SourceOverride:
		return "override"
	case SourceCustom:
		return "custom"
	default:
		return "unknown"
	}
}

func (source Source) MarshalText() ([]byte, error) {
	return []byte(source.String()), nil
}

// Resolved is one merged record.
type Resolved[V any] struct {
	Source Source
	// RowID is the backing user row. Empty for SourceDefault.
	RowID string
	// DefaultID is the source default's ID. Empty for SourceCustom.
	DefaultID string
	SortOrder int
	Value     V
}

// ID returns the row ID, or the synthetic default-<id> for unedited defaults.
func (record Resolved[V]) ID() string {
	if record.Source == SourceDefault {
		return SyntheticID(record.DefaultID)
	}
	return record.RowID
}

// Writable reports whether ID names a real row.
func (record Resolved[V]) Writable() bool {
	return record.Source != SourceDefault
}

// Merge holds the per-domain extractors and content builders used by Resolve.
// Every field is required.
type Merge[D, O, V any] struct {
	DefaultKey  func(D) string
	DefaultID   func(D) string
	DefaultSort func(D) *int

	// OverrideKey returns the default key an override targets, or false for a
	// custom record.
	OverrideKey  func(O) (string, bool)
	OverrideID   func(O) string
	OverrideSort func(O) *int
	Deleted      func(O) bool

	FromDefault  func(D) V
	FromOverride func(D, O) V
	FromCustom   func(O) V
}

// Resolve merges defaults with overrides. For every default key at most one
// record is emitted. Soft-deleted overrides suppress their default and are
// dropped. The result is stable-sorted by effective sort position; a missing
// position counts as 0.
//
// Resolve never fails: duplicate keys are settled deterministically (first
// default wins, last override wins) and reported as warnings on logger.
func Resolve[D, O, V any](logger *zap.Logger, domain string, defaults []D, overrides []O, merge Merge[D, O, V]) []Resolved[V] {
	if logger == nil {
		logger = zap.NewNop()
	}

	knownKeys := make(map[string]struct{}, len(defaults))
	for _, record := range defaults {
		knownKeys[merge.DefaultKey(record)] = struct{}{}
	}

	byKey := make(map[string]O, len(overrides))
	custom := make([]O, 0)
	for _, record := range overrides {
		key, ok := merge.OverrideKey(record)
		if !ok {
			custom = append(custom, record)
			continue
		}
		if _, known := knownKeys[key]; !known {
			logger.Debug("override targets unknown default, keeping as custom",
				zap.String("domain", domain),
				zap.String("key", key),
				zap.String("override_id", merge.OverrideID(record)))
			custom = append(custom, record)
			continue
		}
		if previous, seen := byKey[key]; seen {
			logger.Warn("duplicate override for default key, last one wins",
				zap.String("domain", domain),
				zap.String("key", key),
				zap.String("dropped_id", merge.OverrideID(previous)),
				zap.String("kept_id", merge.OverrideID(record)))
		}
		byKey[key] = record
	}

	result := make([]Resolved[V], 0, len(defaults)+len(custom))
	emitted := make(map[string]struct{}, len(defaults))
	for _, record := range defaults {
		key := merge.DefaultKey(record)
		if _, done := emitted[key]; done {
			logger.Warn("duplicate default key, keeping the first",
				zap.String("domain", domain),
				zap.String("key", key),
				zap.String("dropped_id", merge.DefaultID(record)))
			continue
		}
		emitted[key] = struct{}{}

		match, found := byKey[key]
		if !found {
			result = append(result, Resolved[V]{
				Source:    SourceDefault,
				DefaultID: merge.DefaultID(record),
				SortOrder: SortValue(merge.DefaultSort(record)),
				Value:     merge.FromDefault(record),
			})
			continue
		}
		if merge.Deleted(match) {
			continue
		}

		sortOrder := merge.OverrideSort(match)
		if sortOrder == nil {
			sortOrder = merge.DefaultSort(record)
		}
		result = append(result, Resolved[V]{
			Source:    SourceOverride,
			RowID:     merge.OverrideID(match),
			DefaultID: merge.DefaultID(record),
			SortOrder: SortValue(sortOrder),
			Value:     merge.FromOverride(record, match),
		})
	}

	for _, record := range custom {
		if merge.Deleted(record) {
			continue
		}
		result = append(result, Resolved[V]{
			Source:    SourceCustom,
			RowID:     merge.OverrideID(record),
			SortOrder: SortValue(merge.OverrideSort(record)),
			Value:     merge.FromCustom(record),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result
}

// SortValue reads an optional sort position, treating nil as 0.
func SortValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func SyntheticID(defaultID string) string {
	return syntheticPrefix + defaultID
}

func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, syntheticPrefix)
}

// SourceIDFromSynthetic strips the default- prefix. ok is false for real IDs.
func SourceIDFromSynthetic(id string) (string, bool) {
	if !IsSyntheticID(id) {
		return "", false
	}
	return strings.TrimPrefix(id, syntheticPrefix), true
}

package db

import (
	"context"

	"gorm.io/gorm"
)

// ownerScope narrows an owner lookup to one card and orders the rows.
type ownerScope struct {
	column string
	value  string
	order  string
}

func byCard(cardID string, order string) ownerScope {
	return ownerScope{column: "card_id", value: cardID, order: order}
}

// findOwned loads the single row of T owned by userID. found is false when the
// user has no such row.
func findOwned[T any](ctx context.Context, database *gorm.DB, userID string) (T, bool, error) {
	var record T
	result := database.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		var zero T
		return zero, false, result.Error
	}
	if result.RowsAffected == 0 {
		var zero T
		return zero, false, nil
	}
	return record, true, nil
}

func listOwned[T any](ctx context.Context, database *gorm.DB, userID string, scope ownerScope) ([]T, error) {
	query := database.WithContext(ctx).Where("user_id = ?", userID)
	if scope.column != "" {
		query = query.Where(scope.column+" = ?", scope.value)
	}
	if scope.order != "" {
		query = query.Order(scope.order)
	}

	records := make([]T, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// listByIDs loads the rows of T whose id is in ids. An empty set returns an
// empty result without touching the database.
func listByIDs[T any](ctx context.Context, database *gorm.DB, ids []string) ([]T, error) {
	records := make([]T, 0)
	unique := uniqueNonEmpty(ids)
	if len(unique) == 0 {
		return records, nil
	}
	if err := database.WithContext(ctx).Where("id IN ?", unique).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func listAll[T any](ctx context.Context, database *gorm.DB, order string) ([]T, error) {
	records := make([]T, 0)
	query := database.WithContext(ctx)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

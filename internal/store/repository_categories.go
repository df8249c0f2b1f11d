package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// NewCategoryRepository constructs the [EntityStore] for the categories table.
func NewCategoryRepository(db *DB, log *logger.Logger) EntityStore {
	return newRecordRepository(db, log, entityDescriptor{
		entity:  models.EntityCategories,
		table:   "categories",
		columns: categoryColumns,
		values:  categoryValues,
		scan:    scanCategory,
	})
}

func categoryValues(rec models.Record) ([]any, error) {
	category, ok := rec.(*models.Category)
	if !ok {
		return nil, fmt.Errorf("%w: want *models.Category, got %T", ErrWrongRecordType, rec)
	}

	return []any{
		category.ID,
		category.Name,
		category.Color,
		category.Icon,
		category.SortOrder,
		category.UpdatedAt,
		category.DeviceID,
		nullInt64(category.DeletedAt),
	}, nil
}

func scanCategory(row rowScanner) (models.Record, error) {
	var category models.Category
	var deletedAt sql.NullInt64

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Icon,
		&category.SortOrder,
		&category.UpdatedAt,
		&category.DeviceID,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	category.DeletedAt = fromNullInt64(deletedAt)

	return &category, nil
}

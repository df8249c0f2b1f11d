package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// NewCompletionRepository constructs the [EntityStore] for the completions table.
func NewCompletionRepository(db *DB, log *logger.Logger) EntityStore {
	return newRecordRepository(db, log, entityDescriptor{
		entity:  models.EntityCompletions,
		table:   "completions",
		columns: completionColumns,
		values:  completionValues,
		scan:    scanCompletion,
	})
}

func completionValues(rec models.Record) ([]any, error) {
	completion, ok := rec.(*models.Completion)
	if !ok {
		return nil, fmt.Errorf("%w: want *models.Completion, got %T", ErrWrongRecordType, rec)
	}

	return []any{
		completion.ID,
		completion.TaskID,
		completion.CompletedAt,
		completion.Note,
		completion.UpdatedAt,
		completion.DeviceID,
		nullInt64(completion.DeletedAt),
	}, nil
}

func scanCompletion(row rowScanner) (models.Record, error) {
	var completion models.Completion
	var deletedAt sql.NullInt64

	err := row.Scan(
		&completion.ID,
		&completion.TaskID,
		&completion.CompletedAt,
		&completion.Note,
		&completion.UpdatedAt,
		&completion.DeviceID,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	completion.DeletedAt = fromNullInt64(deletedAt)

	return &completion, nil
}

package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// NewSnoozeRepository constructs the [EntityStore] for the snoozes table.
// The table is device-local (excluded from sync payloads) but participates in
// backups through the same contract as the replicated tables.
func NewSnoozeRepository(db *DB, log *logger.Logger) EntityStore {
	return newRecordRepository(db, log, entityDescriptor{
		entity:  models.EntitySnoozes,
		table:   "snoozes",
		columns: snoozeColumns,
		values:  snoozeValues,
		scan:    scanSnooze,
	})
}

func snoozeValues(rec models.Record) ([]any, error) {
	snooze, ok := rec.(*models.SnoozeState)
	if !ok {
		return nil, fmt.Errorf("%w: want *models.SnoozeState, got %T", ErrWrongRecordType, rec)
	}

	entries, err := marshalJSONColumn(snooze.Entries)
	if err != nil {
		return nil, err
	}

	return []any{
		snooze.ID,
		entries,
		snooze.UpdatedAt,
		snooze.DeviceID,
		nullInt64(snooze.DeletedAt),
	}, nil
}

func scanSnooze(row rowScanner) (models.Record, error) {
	var snooze models.SnoozeState
	var entries string
	var deletedAt sql.NullInt64

	err := row.Scan(
		&snooze.ID,
		&entries,
		&snooze.UpdatedAt,
		&snooze.DeviceID,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	snooze.Entries = make(map[string]int64)
	if err = unmarshalJSONColumn(entries, &snooze.Entries); err != nil {
		return nil, err
	}
	snooze.DeletedAt = fromNullInt64(deletedAt)

	return &snooze, nil
}

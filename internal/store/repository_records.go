package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// Batch writes retry on transient driver failures (SQLITE_BUSY, deadlock
// rollbacks) before the batch is surfaced as failed.
const (
	bulkUpsertAttempts = 3
	bulkUpsertBackoff  = 50 * time.Millisecond
)

// rowScanner is the subset of *sql.Rows used by per-entity scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// entityDescriptor binds one replicated table to its column order and its
// typed marshal/unmarshal helpers. Each entity repository file supplies one.
type entityDescriptor struct {
	entity  models.EntityType
	table   string
	columns []string

	// values renders a record's column values in column order, failing with
	// ErrWrongRecordType when the concrete type does not match the table.
	values func(rec models.Record) ([]any, error)

	// scan reads one row back into the concrete record type.
	scan func(row rowScanner) (models.Record, error)
}

// recordRepository is the shared SQL implementation of [EntityStore]. All
// replicated tables share the same contract, so the table-specific pieces
// are confined to the descriptor and everything else lives here once.
type recordRepository struct {
	*DB
	logger *logger.Logger
	desc   entityDescriptor
}

func newRecordRepository(db *DB, log *logger.Logger, desc entityDescriptor) *recordRepository {
	return &recordRepository{
		DB:     db,
		logger: log,
		desc:   desc,
	}
}

// EntityType implements [EntityStore].
func (r *recordRepository) EntityType() models.EntityType {
	return r.desc.entity
}

// GetAll implements [EntityStore]. Tombstones are included: callers that
// want only live records filter on the envelope themselves.
func (r *recordRepository) GetAll(ctx context.Context) ([]models.Record, error) {
	query, args, err := selectRecords(r.desc.table, r.desc.columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, "recordRepository.GetAll", query, args)
}

// QueryUpdatedSince implements [EntityStore]. The comparison is >=, so a
// record stamped exactly at the watermark is returned again.
func (r *recordRepository) QueryUpdatedSince(ctx context.Context, since int64) ([]models.Record, error) {
	query, args, err := selectRecords(r.desc.table, r.desc.columns).
		Where("updated_at >= ?", since).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, "recordRepository.QueryUpdatedSince", query, args)
}

// BulkUpsert implements [EntityStore]. The whole batch is written inside one
// transaction: either every record lands or none do.
func (r *recordRepository) BulkUpsert(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	// Render all rows first so a type mismatch aborts before the transaction
	// is opened.
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		values, err := r.desc.values(rec)
		if err != nil {
			return err
		}
		rows = append(rows, values)
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = r.upsertBatch(ctx, rows); err == nil {
			return nil
		}
		if attempt == bulkUpsertAttempts || r.DB.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().
			Str("func", "recordRepository.BulkUpsert").
			Str("entity", string(r.desc.entity)).
			Int("attempt", attempt).
			Msg("transient database error, retrying batch")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bulkUpsertBackoff):
		}
	}
}

func (r *recordRepository) upsertBatch(ctx context.Context, rows [][]any) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.BulkUpsert").
			Str("entity", string(r.desc.entity)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for i, values := range rows {
		query, args, buildErr := insertRecord(r.desc.table, r.desc.columns, values).ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "recordRepository.BulkUpsert").
				Str("entity", string(r.desc.entity)).
				Int("record_index", i).
				Msg("failed to upsert record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.BulkUpsert").
			Str("entity", string(r.desc.entity)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Clear implements [EntityStore]. Removes all rows, tombstones included.
func (r *recordRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(r.desc.table).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Clear").
			Str("entity", string(r.desc.entity)).
			Msg("failed to clear table")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PurgeTombstonesBefore implements [EntityStore].
func (r *recordRepository) PurgeTombstonesBefore(ctx context.Context, cutoff int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(r.desc.table).
		Where("deleted_at IS NOT NULL").
		Where("deleted_at < ?", cutoff).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.PurgeTombstonesBefore").
			Str("entity", string(r.desc.entity)).
			Msg("failed to purge tombstones")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}

func (r *recordRepository) queryRecords(ctx context.Context, funcName, query string, args []any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("entity", string(r.desc.entity)).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 64)

	for rows.Next() {
		rec, scanErr := r.desc.scan(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Str("entity", string(r.desc.entity)).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Str("entity", string(r.desc.entity)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

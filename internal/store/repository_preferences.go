package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// preferencesRepository is the SQL implementation of [PreferencesStore].
// The table holds at most one row; the singleton contract (GetByID/Put) is
// separate from [EntityStore] because the merge engine treats preferences
// with a local-always-wins policy instead of last-write-wins.
type preferencesRepository struct {
	*DB
	logger *logger.Logger
}

// NewPreferencesRepository constructs a [PreferencesStore] backed by the
// provided database connection.
func NewPreferencesRepository(db *DB, log *logger.Logger) PreferencesStore {
	return &preferencesRepository{
		DB:     db,
		logger: log,
	}
}

// GetByID implements [PreferencesStore].
func (p *preferencesRepository) GetByID(ctx context.Context, id string) (*models.Preferences, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(preferencesColumns...).
		From("preferences").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var prefs models.Preferences
	var relayServers string
	var lastSync, deletedAt sql.NullInt64

	row := p.DB.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&prefs.ID,
		&prefs.DisplayName,
		&prefs.Theme,
		&prefs.WeekStartsOn,
		&relayServers,
		&lastSync,
		&prefs.UpdatedAt,
		&prefs.DeviceID,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "preferencesRepository.GetByID").
			Str("id", id).
			Msg("failed to scan preferences row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = unmarshalJSONColumn(relayServers, &prefs.RelayServers); err != nil {
		return nil, err
	}
	prefs.LastSyncTimestamp = fromNullInt64(lastSync)
	prefs.DeletedAt = fromNullInt64(deletedAt)

	return &prefs, nil
}

// Put implements [PreferencesStore]. The row is overwritten whole.
func (p *preferencesRepository) Put(ctx context.Context, prefs *models.Preferences) error {
	log := logger.FromContext(ctx)

	relayServers, err := marshalJSONColumn(prefs.RelayServers)
	if err != nil {
		return err
	}

	values := []any{
		prefs.ID,
		prefs.DisplayName,
		prefs.Theme,
		prefs.WeekStartsOn,
		relayServers,
		nullInt64(prefs.LastSyncTimestamp),
		prefs.UpdatedAt,
		prefs.DeviceID,
		nullInt64(prefs.DeletedAt),
	}

	query, args, err := insertRecord("preferences", preferencesColumns, values).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "preferencesRepository.Put").
			Str("id", prefs.ID).
			Msg("failed to upsert preferences")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		return ErrRecordNotSaved
	}

	return nil
}

// Clear implements [PreferencesStore].
func (p *preferencesRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete("preferences").ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "preferencesRepository.Clear").
			Msg("failed to clear preferences")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

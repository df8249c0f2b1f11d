package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
	"github.com/jackc/pgerrcode"
)

// deviceRepository is the SQL implementation of [DeviceStore]. The table
// holds exactly one row, created lazily on first access.
type deviceRepository struct {
	*DB
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
}

// NewDeviceRepository constructs a [DeviceStore] backed by the provided
// database connection.
func NewDeviceRepository(db *DB, log *logger.Logger) DeviceStore {
	return &deviceRepository{
		DB:     db,
		logger: log,
		uuid:   utils.NewUUIDGenerator(),
	}
}

// EnsureIdentity implements [DeviceStore]. The first call on a fresh store
// mints a uuid v7 identity and persists it; later calls return the same row.
func (d *deviceRepository) EnsureIdentity(ctx context.Context) (models.DeviceIdentity, error) {
	log := logger.FromContext(ctx)

	identity, err := d.currentIdentity(ctx)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "deviceRepository.EnsureIdentity").
			Msg("failed to read device identity")
		return models.DeviceIdentity{}, err
	}

	identity = models.DeviceIdentity{
		DeviceID:  d.uuid.Generate(),
		CreatedAt: time.Now().UnixMilli(),
	}

	query, args, err := psql.Insert("device_identity").
		Columns("id", "device_id", "created_at").
		Values(1, identity.DeviceID, identity.CreatedAt).
		ToSql()
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = d.DB.ExecContext(ctx, query, args...); err != nil {
		// Проигранная гонка первых двух вызовов: строку уже вставил другой,
		// перечитываем её вместо ошибки.
		if postgresError(err) == pgerrcode.UniqueViolation || isSQLiteConstraint(err) {
			return d.currentIdentity(ctx)
		}

		log.Err(err).
			Str("func", "deviceRepository.EnsureIdentity").
			Msg("failed to persist device identity")
		return models.DeviceIdentity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().
		Str("func", "deviceRepository.EnsureIdentity").
		Str("device_id", identity.DeviceID).
		Msg("minted new device identity")

	return identity, nil
}

func (d *deviceRepository) currentIdentity(ctx context.Context) (models.DeviceIdentity, error) {
	query, args, err := psql.Select("device_id", "created_at").
		From("device_identity").
		Where("id = ?", 1).
		ToSql()
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var identity models.DeviceIdentity
	if err = d.DB.QueryRowContext(ctx, query, args...).Scan(&identity.DeviceID, &identity.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceIdentity{}, err
		}
		return models.DeviceIdentity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return identity, nil
}

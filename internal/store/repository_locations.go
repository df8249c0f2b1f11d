package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// NewLocationRepository constructs the [EntityStore] for the locations table.
func NewLocationRepository(db *DB, log *logger.Logger) EntityStore {
	return newRecordRepository(db, log, entityDescriptor{
		entity:  models.EntityLocations,
		table:   "locations",
		columns: locationColumns,
		values:  locationValues,
		scan:    scanLocation,
	})
}

func locationValues(rec models.Record) ([]any, error) {
	location, ok := rec.(*models.Location)
	if !ok {
		return nil, fmt.Errorf("%w: want *models.Location, got %T", ErrWrongRecordType, rec)
	}

	return []any{
		location.ID,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.RadiusMeters,
		location.UpdatedAt,
		location.DeviceID,
		nullInt64(location.DeletedAt),
	}, nil
}

func scanLocation(row rowScanner) (models.Record, error) {
	var location models.Location
	var deletedAt sql.NullInt64

	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Latitude,
		&location.Longitude,
		&location.RadiusMeters,
		&location.UpdatedAt,
		&location.DeviceID,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	location.DeletedAt = fromNullInt64(deletedAt)

	return &location, nil
}

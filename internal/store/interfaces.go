package store

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock

// EntityStore is the per-table contract the sync core consumes. One
// implementation exists per replicated table; the merge engine and payload
// builder never touch SQL directly.
type EntityStore interface {
	// EntityType returns the table's tag from the closed entity set.
	EntityType() models.EntityType

	// GetAll returns every record including tombstones.
	GetAll(ctx context.Context) ([]models.Record, error)

	// QueryUpdatedSince returns records with updated_at >= since. The
	// boundary is inclusive: a record stamped exactly at the watermark is
	// returned again, which is safe because merge is idempotent.
	QueryUpdatedSince(ctx context.Context, since int64) ([]models.Record, error)

	// BulkUpsert writes the batch inside a single transaction. Existing ids
	// are overwritten whole, absent ids inserted.
	BulkUpsert(ctx context.Context, records []models.Record) error

	// Clear removes every row. Used only by the backup replace-all path.
	Clear(ctx context.Context) error

	// PurgeTombstonesBefore physically deletes tombstones whose deleted_at
	// is older than cutoff and reports how many rows went. Only the
	// retention sweeper calls this; the sync core never deletes rows.
	PurgeTombstonesBefore(ctx context.Context, cutoff int64) (int64, error)
}

// PreferencesStore is the singleton contract for the user-preferences row.
type PreferencesStore interface {
	// GetByID returns the preferences row or ErrPreferencesNotFound.
	GetByID(ctx context.Context, id string) (*models.Preferences, error)

	// Put inserts or fully replaces the preferences row.
	Put(ctx context.Context, prefs *models.Preferences) error

	// Clear removes the row. Used only by the backup replace-all path.
	Clear(ctx context.Context) error
}

// DeviceStore persists the device's own identity. The identity is minted on
// first access and is deliberately excluded from sync and backup: a restored
// device keeps its own id.
type DeviceStore interface {
	EnsureIdentity(ctx context.Context) (models.DeviceIdentity, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

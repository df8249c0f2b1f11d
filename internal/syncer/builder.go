package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

// payloadBuilder is the concrete Builder over the local repositories. It
// only reads; nothing here mutates the store.
type payloadBuilder struct {
	stores *store.Stores
}

// NewBuilder constructs a Builder reading from stores.
func NewBuilder(stores *store.Stores) Builder {
	return &payloadBuilder{stores: stores}
}

// BuildSyncPayload implements Builder.
//
// A nil since selects every record including tombstones; otherwise each
// table is filtered by updated_at >= *since. The inclusive boundary can
// resend the record stamped exactly at the watermark, which the idempotent
// merge on the receiving side absorbs. Store failures abort the build and
// propagate to the caller unchanged.
func (b *payloadBuilder) BuildSyncPayload(ctx context.Context, since *int64) (*models.SyncPayload, error) {
	identity, err := b.stores.Device.EnsureIdentity(ctx)
	if err != nil {
		return nil, err
	}

	syncable := b.stores.Syncable()
	entities := make([]models.EntityPayload, 0, len(syncable))
	total := 0

	for _, table := range syncable {
		records, err := collect(ctx, table, since)
		if err != nil {
			return nil, err
		}

		entity, err := models.NewEntityPayload(table.EntityType(), records)
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
		total += entity.Count
	}

	return &models.SyncPayload{
		Version:           models.PayloadVersion,
		ExportedAt:        time.Now().UnixMilli(),
		DeviceID:          identity.DeviceID,
		LastSyncTimestamp: since,
		Entities:          entities,
		TotalRecords:      total,
	}, nil
}

// BuildBackup implements Builder.
//
// Backups are always full dumps: the watermark filter never applies, and the
// device-local singletons (preferences, snooze state) ride along so a
// restore onto a fresh install recovers them. A device that has never
// written preferences contributes an empty section.
func (b *payloadBuilder) BuildBackup(ctx context.Context) (*models.BackupFile, error) {
	payload, err := b.BuildSyncPayload(ctx, nil)
	if err != nil {
		return nil, err
	}

	prefs, err := b.preferencesSection(ctx)
	if err != nil {
		return nil, err
	}

	snoozeRecords, err := b.stores.Snoozes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	snoozes, err := models.NewEntityPayload(models.EntitySnoozes, snoozeRecords)
	if err != nil {
		return nil, err
	}

	payload.Entities = append(payload.Entities, prefs, snoozes)
	payload.TotalRecords += prefs.Count + snoozes.Count

	return &models.BackupFile{
		Format:      models.BackupFormat,
		SyncPayload: *payload,
	}, nil
}

func (b *payloadBuilder) preferencesSection(ctx context.Context) (models.EntityPayload, error) {
	prefs, err := b.stores.Preferences.GetByID(ctx, models.PreferencesID)
	if errors.Is(err, store.ErrPreferencesNotFound) {
		return models.NewEntityPayload(models.EntityPreferences, nil)
	}
	if err != nil {
		return models.EntityPayload{}, err
	}

	return models.NewEntityPayload(models.EntityPreferences, []models.Record{prefs})
}

func collect(ctx context.Context, table store.EntityStore, since *int64) ([]models.Record, error) {
	if since == nil {
		return table.GetAll(ctx)
	}
	return table.QueryUpdatedSince(ctx, *since)
}

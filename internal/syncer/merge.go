// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

// mergeEngine is the concrete Merger. Reconciliation is deterministic: every
// outcome depends only on record timestamps, never on arrival order, so two
// devices exchanging payloads converge to identical tables.
type mergeEngine struct {
	stores *store.Stores
}

// NewMerger constructs a Merger writing through stores.
func NewMerger(stores *store.Stores) Merger {
	return &mergeEngine{stores: stores}
}

// Merge implements Merger.
func (m *mergeEngine) Merge(ctx context.Context, entities []models.EntityPayload) (models.MergeSummary, error) {
	return m.applyBatches(ctx, entities, m.mergeEntity)
}

// Replace implements Merger.
//
// Used by the backup replace-all path: each named table is cleared and the
// incoming records inserted verbatim with no per-record comparison, leaving
// an exact copy of the backup. An entity section with zero records still
// clears its table.
func (m *mergeEngine) Replace(ctx context.Context, entities []models.EntityPayload) (models.MergeSummary, error) {
	return m.applyBatches(ctx, entities, m.replaceEntity)
}

// applyBatches runs one reconciliation function per entity batch and folds
// the outcomes into a summary. Batches are isolated: a failure is recorded
// and the loop moves on, leaving writes from earlier batches committed. The
// returned error is ErrPartialMerge whenever at least one batch failed, so
// callers can tell a clean merge from a degraded one without inspecting the
// summary.
func (m *mergeEngine) applyBatches(
	ctx context.Context,
	entities []models.EntityPayload,
	apply func(context.Context, models.EntityPayload) (models.MergeCounts, error),
) (models.MergeSummary, error) {
	summary := models.NewMergeSummary()

	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		counts, err := apply(ctx, entity)
		if err != nil {
			summary.Fail(entity.EntityType, err)
			continue
		}
		summary.Record(entity.EntityType, counts)
	}

	if len(summary.Failed) > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrPartialMerge, len(summary.Failed), len(entities))
	}

	return summary, nil
}

// mergeEntity reconciles one entity batch. Preferences route through the
// singleton policy; every other tag is classified record by record against a
// lookup index of the local table:
//
//   - no local counterpart → insert, tombstone or not
//   - remote updatedAt strictly greater → overwrite the whole row
//   - remote updatedAt strictly smaller → keep the local row
//   - equal stamps → no write, which keeps the merge idempotent
//
// Tombstones get no special treatment: a deletion is just a record whose
// deletedAt is set, racing on updatedAt like any other edit.
func (m *mergeEngine) mergeEntity(ctx context.Context, entity models.EntityPayload) (models.MergeCounts, error) {
	if entity.EntityType == models.EntityPreferences {
		return m.mergePreferences(ctx, entity)
	}

	table, ok := m.stores.ByEntity(entity.EntityType)
	if !ok {
		return models.MergeCounts{}, fmt.Errorf("%w: %q", models.ErrUnknownEntityType, entity.EntityType)
	}

	incoming, err := models.DecodeRecords(entity.EntityType, entity.Records)
	if err != nil {
		return models.MergeCounts{}, err
	}

	local, err := table.GetAll(ctx)
	if err != nil {
		return models.MergeCounts{}, err
	}

	// Build an O(1) lookup index of the local table keyed by record id.
	localIndex := make(map[string]*models.SyncMeta, len(local))
	for _, rec := range local {
		localIndex[rec.Meta().ID] = rec.Meta()
	}

	var counts models.MergeCounts
	upserts := make([]models.Record, 0, len(incoming))

	for _, remote := range incoming {
		current, exists := localIndex[remote.Meta().ID]

		switch {
		case !exists:
			counts.NewRecords++
			upserts = append(upserts, remote)

		case remote.Meta().UpdatedAt > current.UpdatedAt:
			counts.RemoteWins++
			upserts = append(upserts, remote)

		case remote.Meta().UpdatedAt < current.UpdatedAt:
			counts.LocalWins++

		default:
			counts.Equal++
		}
	}

	if len(upserts) > 0 {
		if err = table.BulkUpsert(ctx, upserts); err != nil {
			return models.MergeCounts{}, err
		}
	}

	return counts, nil
}

// mergePreferences applies the singleton policy: the local preferences row
// always survives, whatever the timestamps say. Incoming preferences only
// seed a device that has none yet, so a restore onto a fresh install still
// recovers them.
func (m *mergeEngine) mergePreferences(ctx context.Context, entity models.EntityPayload) (models.MergeCounts, error) {
	incoming, err := models.DecodeRecords(models.EntityPreferences, entity.Records)
	if err != nil {
		return models.MergeCounts{}, err
	}

	var counts models.MergeCounts
	for _, rec := range incoming {
		prefs, ok := rec.(*models.Preferences)
		if !ok {
			return models.MergeCounts{}, fmt.Errorf("%w: %T", store.ErrWrongRecordType, rec)
		}

		_, err = m.stores.Preferences.GetByID(ctx, prefs.ID)
		switch {
		case err == nil:
			counts.LocalWins++
		case errors.Is(err, store.ErrPreferencesNotFound):
			if err = m.stores.Preferences.Put(ctx, prefs); err != nil {
				return models.MergeCounts{}, err
			}
			counts.NewRecords++
		default:
			return models.MergeCounts{}, err
		}
	}

	return counts, nil
}

// replaceEntity clears one table and installs the batch verbatim. Decoding
// happens before the clear so a malformed batch never empties a table. The
// preferences singleton is replaced like any other table here: replace-all
// restores the backup exactly, so the local-wins exception does not apply.
func (m *mergeEngine) replaceEntity(ctx context.Context, entity models.EntityPayload) (models.MergeCounts, error) {
	incoming, err := models.DecodeRecords(entity.EntityType, entity.Records)
	if err != nil {
		return models.MergeCounts{}, err
	}

	if entity.EntityType == models.EntityPreferences {
		return m.replacePreferences(ctx, incoming)
	}

	table, ok := m.stores.ByEntity(entity.EntityType)
	if !ok {
		return models.MergeCounts{}, fmt.Errorf("%w: %q", models.ErrUnknownEntityType, entity.EntityType)
	}

	if err = table.Clear(ctx); err != nil {
		return models.MergeCounts{}, err
	}
	if len(incoming) > 0 {
		if err = table.BulkUpsert(ctx, incoming); err != nil {
			return models.MergeCounts{}, err
		}
	}

	return models.MergeCounts{NewRecords: len(incoming)}, nil
}

func (m *mergeEngine) replacePreferences(ctx context.Context, incoming []models.Record) (models.MergeCounts, error) {
	if err := m.stores.Preferences.Clear(ctx); err != nil {
		return models.MergeCounts{}, err
	}

	var counts models.MergeCounts
	for _, rec := range incoming {
		prefs, ok := rec.(*models.Preferences)
		if !ok {
			return models.MergeCounts{}, fmt.Errorf("%w: %T", store.ErrWrongRecordType, rec)
		}
		if err := m.stores.Preferences.Put(ctx, prefs); err != nil {
			return models.MergeCounts{}, err
		}
		counts.NewRecords++
	}

	return counts, nil
}

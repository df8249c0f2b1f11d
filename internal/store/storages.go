package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// Stores groups every repository of the device agent into a single value the
// service layer can be wired with.
type Stores struct {
	Tasks       EntityStore
	Categories  EntityStore
	Completions EntityStore
	Locations   EntityStore
	Snoozes     EntityStore
	Preferences PreferencesStore
	Device      DeviceStore

	db *DB
}

// NewStores opens the database named by cfg, runs pending migrations, and
// wires one repository per table.
func NewStores(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Stores, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if !cfg.SkipMigrations {
		if err = db.Migrate(); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return NewStoresWithDB(db, log), nil
}

// NewStoresWithDB wires repositories over an already-open connection.
// Split out from NewStores so tests can inject a sqlmock-backed DB.
func NewStoresWithDB(db *DB, log *logger.Logger) *Stores {
	return &Stores{
		Tasks:       NewTaskRepository(db, log),
		Categories:  NewCategoryRepository(db, log),
		Completions: NewCompletionRepository(db, log),
		Locations:   NewLocationRepository(db, log),
		Snoozes:     NewSnoozeRepository(db, log),
		Preferences: NewPreferencesRepository(db, log),
		Device:      NewDeviceRepository(db, log),
		db:          db,
	}
}

// Syncable returns the replicated table stores in their canonical payload
// order. The device-local singletons are not part of this set.
func (s *Stores) Syncable() []EntityStore {
	return []EntityStore{s.Tasks, s.Categories, s.Completions, s.Locations}
}

// ByEntity resolves an [EntityStore] by its tag. Preferences are excluded:
// the singleton is reached through its own contract.
func (s *Stores) ByEntity(entityType models.EntityType) (EntityStore, bool) {
	switch entityType {
	case models.EntityTasks:
		return s.Tasks, true
	case models.EntityCategories:
		return s.Categories, true
	case models.EntityCompletions:
		return s.Completions, true
	case models.EntityLocations:
		return s.Locations, true
	case models.EntitySnoozes:
		return s.Snoozes, true
	}
	return nil, false
}

// Close releases the underlying database connection.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

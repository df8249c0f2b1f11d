package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/models"
)

// fakeEntityStore — in-memory стор, достаточно для сервисных тестов.
type fakeEntityStore struct {
	entity models.EntityType

	mu   sync.Mutex
	rows map[string]models.Record

	failGetAll error
	failUpsert error
}

func newFakeEntityStore(entity models.EntityType) *fakeEntityStore {
	return &fakeEntityStore{entity: entity, rows: make(map[string]models.Record)}
}

func (f *fakeEntityStore) EntityType() models.EntityType { return f.entity }

func (f *fakeEntityStore) GetAll(_ context.Context) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetAll != nil {
		return nil, f.failGetAll
	}

	out := make([]models.Record, 0, len(f.rows))
	for _, rec := range f.rows {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeEntityStore) QueryUpdatedSince(_ context.Context, since int64) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Record, 0, len(f.rows))
	for _, rec := range f.rows {
		if rec.Meta().UpdatedAt >= since {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeEntityStore) BulkUpsert(_ context.Context, records []models.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert != nil {
		return f.failUpsert
	}

	for _, rec := range records {
		f.rows[rec.Meta().ID] = rec
	}
	return nil
}

func (f *fakeEntityStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = make(map[string]models.Record)
	return nil
}

func (f *fakeEntityStore) PurgeTombstonesBefore(_ context.Context, cutoff int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var purged int64
	for id, rec := range f.rows {
		if deletedAt := rec.Meta().DeletedAt; deletedAt != nil && *deletedAt < cutoff {
			delete(f.rows, id)
			purged++
		}
	}
	return purged, nil
}

func (f *fakeEntityStore) seed(records ...models.Record) *fakeEntityStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		f.rows[rec.Meta().ID] = rec
	}
	return f
}

func (f *fakeEntityStore) get(id string) (models.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[id]
	return rec, ok
}

func (f *fakeEntityStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakePreferencesStore struct {
	mu   sync.Mutex
	rows map[string]*models.Preferences

	failGet error
	failPut error
}

func newFakePreferencesStore() *fakePreferencesStore {
	return &fakePreferencesStore{rows: make(map[string]*models.Preferences)}
}

func (f *fakePreferencesStore) GetByID(_ context.Context, id string) (*models.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}

	prefs, ok := f.rows[id]
	if !ok {
		return nil, store.ErrPreferencesNotFound
	}
	copied := *prefs
	return &copied, nil
}

func (f *fakePreferencesStore) Put(_ context.Context, prefs *models.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}

	copied := *prefs
	f.rows[prefs.ID] = &copied
	return nil
}

func (f *fakePreferencesStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = make(map[string]*models.Preferences)
	return nil
}

func (f *fakePreferencesStore) seed(prefs *models.Preferences) *fakePreferencesStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *prefs
	f.rows[prefs.ID] = &copied
	return f
}

type fakeDeviceStore struct {
	id  string
	err error
}

func (f *fakeDeviceStore) EnsureIdentity(_ context.Context) (models.DeviceIdentity, error) {
	if f.err != nil {
		return models.DeviceIdentity{}, f.err
	}
	return models.DeviceIdentity{DeviceID: f.id, CreatedAt: 1}, nil
}

// fakeOrchestrator lets sync service tests script the protocol run.
type fakeOrchestrator struct {
	runFn func(ctx context.Context, channel syncer.Channel, onProgress syncer.ProgressFunc) (*models.SyncResult, error)
}

func (f *fakeOrchestrator) Run(ctx context.Context, channel syncer.Channel, onProgress syncer.ProgressFunc) (*models.SyncResult, error) {
	if f.runFn != nil {
		return f.runFn(ctx, channel, onProgress)
	}
	return &models.SyncResult{}, nil
}

// fakeBackupManager records delegation calls.
type fakeBackupManager struct {
	exportFn         func(ctx context.Context) (*models.BackupFile, error)
	exportToFileFn   func(ctx context.Context, path string) (string, error)
	importFn         func(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error)
	importFromFileFn func(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error)
}

func (f *fakeBackupManager) Export(ctx context.Context) (*models.BackupFile, error) {
	if f.exportFn != nil {
		return f.exportFn(ctx)
	}
	return nil, nil
}

func (f *fakeBackupManager) ExportToFile(ctx context.Context, path string) (string, error) {
	if f.exportToFileFn != nil {
		return f.exportToFileFn(ctx, path)
	}
	return "", nil
}

func (f *fakeBackupManager) Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error) {
	if f.importFn != nil {
		return f.importFn(ctx, document, mode)
	}
	return nil, nil
}

func (f *fakeBackupManager) ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error) {
	if f.importFromFileFn != nil {
		return f.importFromFileFn(ctx, path, mode)
	}
	return nil, nil
}

func int64Ptr(v int64) *int64 { return &v }

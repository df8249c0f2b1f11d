package syncer

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

// fakeEntityStore — простой in-memory стор, не требует mockgen.
type fakeEntityStore struct {
	entity models.EntityType

	mu   sync.Mutex
	rows map[string]models.Record

	failGetAll error
	failQuery  error
	failUpsert error
	failClear  error
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
	if f.failQuery != nil {
		return nil, f.failQuery
	}

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
	if f.failClear != nil {
		return f.failClear
	}

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

// seed inserts records bypassing the failure switches.
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

type fakeDeviceStore struct {
	id string
}

func (f *fakeDeviceStore) EnsureIdentity(_ context.Context) (models.DeviceIdentity, error) {
	return models.DeviceIdentity{DeviceID: f.id, CreatedAt: 1}, nil
}

// newTestStores assembles a full in-memory store set for one device.
func newTestStores(deviceID string) *store.Stores {
	return &store.Stores{
		Tasks:       newFakeEntityStore(models.EntityTasks),
		Categories:  newFakeEntityStore(models.EntityCategories),
		Completions: newFakeEntityStore(models.EntityCompletions),
		Locations:   newFakeEntityStore(models.EntityLocations),
		Snoozes:     newFakeEntityStore(models.EntitySnoozes),
		Preferences: newFakePreferencesStore(),
		Device:      &fakeDeviceStore{id: deviceID},
	}
}

// task builds a live task record stamped with updatedAt.
func task(id string, updatedAt int64, title string) *models.Task {
	t := &models.Task{Title: title, Priority: 1}
	t.ID = id
	t.UpdatedAt = updatedAt
	t.DeviceID = "device-fixture"
	return t
}

// deletedTask builds a tombstoned task record.
func deletedTask(id string, updatedAt, deletedAt int64) *models.Task {
	t := task(id, updatedAt, "")
	t.DeletedAt = &deletedAt
	return t
}

func category(id string, updatedAt int64, name string) *models.Category {
	c := &models.Category{Name: name, Color: "#6750a4"}
	c.ID = id
	c.UpdatedAt = updatedAt
	c.DeviceID = "device-fixture"
	return c
}

func completion(id string, updatedAt int64, taskID string) *models.Completion {
	c := &models.Completion{TaskID: taskID, CompletedAt: updatedAt}
	c.ID = id
	c.UpdatedAt = updatedAt
	c.DeviceID = "device-fixture"
	return c
}

func location(id string, updatedAt int64, name string) *models.Location {
	l := &models.Location{Name: name, Latitude: 55.75, Longitude: 37.61, RadiusMeters: 150}
	l.ID = id
	l.UpdatedAt = updatedAt
	l.DeviceID = "device-fixture"
	return l
}

func preferences(updatedAt int64, displayName string) *models.Preferences {
	p := &models.Preferences{DisplayName: displayName, Theme: "dark", WeekStartsOn: 1}
	p.ID = models.PreferencesID
	p.UpdatedAt = updatedAt
	p.DeviceID = "device-fixture"
	return p
}

func snoozeState(updatedAt int64, entries map[string]int64) *models.SnoozeState {
	s := &models.SnoozeState{Entries: entries}
	s.ID = models.SnoozeStateID
	s.UpdatedAt = updatedAt
	s.DeviceID = "device-fixture"
	return s
}

// entityBatch marshals records into the wire envelope. Marshal errors cannot
// happen for the fixture types, so they are ignored.
func entityBatch(entity models.EntityType, records ...models.Record) models.EntityPayload {
	payload, _ := models.NewEntityPayload(entity, records)
	return payload
}

func int64Ptr(v int64) *int64 { return &v }

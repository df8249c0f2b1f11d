package http

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/service"
	"github.com/MKhiriev/go-balance-sync/models"
)

// ─────────────────────────────────────────────
// Funcfield mocks: service layer
// ─────────────────────────────────────────────

var errBoom = errors.New("boom")

type mockAppInfoService struct {
	infoFn func(ctx context.Context) (models.AppInfo, error)
}

func (m *mockAppInfoService) Info(ctx context.Context) (models.AppInfo, error) {
	if m.infoFn != nil {
		return m.infoFn(ctx)
	}
	return models.AppInfo{Version: "test", DeviceID: "device-test", DeviceName: "test-box"}, nil
}

type mockTaskService struct {
	createFn   func(ctx context.Context, task models.Task) (models.Task, error)
	listFn     func(ctx context.Context) ([]models.Task, error)
	getFn      func(ctx context.Context, id string) (models.Task, error)
	updateFn   func(ctx context.Context, task models.Task) (models.Task, error)
	completeFn func(ctx context.Context, taskID, note string) (models.Completion, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockTaskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskService) List(ctx context.Context) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockTaskService) Get(ctx context.Context, id string) (models.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Task{}, nil
}

func (m *mockTaskService) Update(ctx context.Context, task models.Task) (models.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskService) Complete(ctx context.Context, taskID, note string) (models.Completion, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, taskID, note)
	}
	return models.Completion{}, nil
}

func (m *mockTaskService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockCategoryService struct {
	createFn func(ctx context.Context, category models.Category) (models.Category, error)
	listFn   func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryService) Create(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockPreferencesService struct {
	getFn    func(ctx context.Context) (models.Preferences, error)
	updateFn func(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}

func (m *mockPreferencesService) Get(ctx context.Context) (models.Preferences, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return models.Preferences{}, nil
}

func (m *mockPreferencesService) Update(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, prefs)
	}
	return prefs, nil
}

type mockBackupService struct {
	exportFn         func(ctx context.Context) (*models.BackupFile, error)
	exportToFileFn   func(ctx context.Context, path string) (string, error)
	importFn         func(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error)
	importFromFileFn func(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error)
}

func (m *mockBackupService) Export(ctx context.Context) (*models.BackupFile, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx)
	}
	return &models.BackupFile{Format: models.BackupFormat}, nil
}

func (m *mockBackupService) ExportToFile(ctx context.Context, path string) (string, error) {
	if m.exportToFileFn != nil {
		return m.exportToFileFn(ctx, path)
	}
	return path, nil
}

func (m *mockBackupService) Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(ctx, document, mode)
	}
	return &models.ImportResult{Mode: mode}, nil
}

func (m *mockBackupService) ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error) {
	if m.importFromFileFn != nil {
		return m.importFromFileFn(ctx, path, mode)
	}
	return &models.ImportResult{Mode: mode}, nil
}

type mockSyncService struct {
	startOfferFn func(ctx context.Context) ([]string, error)
	joinFn       func(ctx context.Context, offerCodes []string) ([]string, error)
	completeFn   func(ctx context.Context, answerCodes []string) error
	statusFn     func(ctx context.Context) models.SyncStatus
	cancelFn     func(ctx context.Context) error
}

func (m *mockSyncService) StartOffer(ctx context.Context) ([]string, error) {
	if m.startOfferFn != nil {
		return m.startOfferFn(ctx)
	}
	return []string{"offer-code"}, nil
}

func (m *mockSyncService) Join(ctx context.Context, offerCodes []string) ([]string, error) {
	if m.joinFn != nil {
		return m.joinFn(ctx, offerCodes)
	}
	return []string{"answer-code"}, nil
}

func (m *mockSyncService) Complete(ctx context.Context, answerCodes []string) error {
	if m.completeFn != nil {
		return m.completeFn(ctx, answerCodes)
	}
	return nil
}

func (m *mockSyncService) Status(ctx context.Context) models.SyncStatus {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return models.SyncStatus{ConnectionState: "idle"}
}

func (m *mockSyncService) Cancel(ctx context.Context) error {
	if m.cancelFn != nil {
		return m.cancelFn(ctx)
	}
	return nil
}

// testServices assembles a Services value where every dependency is a mock
// with sane defaults; tests override the funcs they care about.
func testServices() *service.Services {
	return &service.Services{
		AppInfoService:     &mockAppInfoService{},
		TaskService:        &mockTaskService{},
		CategoryService:    &mockCategoryService{},
		PreferencesService: &mockPreferencesService{},
		BackupService:      &mockBackupService{},
		SyncService:        &mockSyncService{},
	}
}

func newHandlerWithServices(svcs *service.Services) *Handler {
	return &Handler{services: svcs, logger: logger.Nop()}
}

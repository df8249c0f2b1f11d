package service

import (
	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/crypto"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/internal/validators"
)

type Services struct {
	AppInfoService     AppInfoService
	TaskService        TaskService
	CategoryService    CategoryService
	PreferencesService PreferencesService
	BackupService      BackupService
	SyncService        SyncService
}

func NewServices(stores *store.Stores, cfg *config.AgentConfig, logger *logger.Logger) *Services {
	// Один штамповщик на все сервисы: метки времени строго возрастают.
	envelope := newEnvelopeStamper(stores.Device)

	builder := syncer.NewBuilder(stores)
	merger := syncer.NewMerger(stores)
	validator := validators.NewPayloadValidator()
	backups := syncer.NewBackupManager(builder, merger, validator, cfg.Storage.BackupDir, logger)
	orchestrator := syncer.NewOrchestrator(builder, merger, stores, logger)
	keys := crypto.NewChannelKeyService()

	return &Services{
		AppInfoService:     NewAppInfoService(stores.Device, cfg.App, logger),
		TaskService:        NewTaskService(stores.Tasks, stores.Completions, envelope, logger),
		CategoryService:    NewCategoryService(stores.Categories, envelope, logger),
		PreferencesService: NewPreferencesService(stores.Preferences, envelope, logger),
		BackupService:      NewBackupService(backups, logger),
		SyncService:        NewSyncService(orchestrator, keys, stores.Preferences, cfg.Sync, logger),
	}
}

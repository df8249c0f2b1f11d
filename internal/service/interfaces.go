package service

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service.go -package=mock

// AppInfoService reports the agent's identity and build.
type AppInfoService interface {
	Info(ctx context.Context) (models.AppInfo, error)
}

// TaskService is the write path for tasks. Every mutation re-stamps the
// record envelope (updatedAt, deviceId) so last-write-wins ordering holds.
type TaskService interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id string) (models.Task, error)
	Update(ctx context.Context, task models.Task) (models.Task, error)

	// Complete records one finished occurrence of the task.
	Complete(ctx context.Context, taskID, note string) (models.Completion, error)

	// Delete writes a tombstone; the row is retained so the deletion can
	// replicate to the paired device.
	Delete(ctx context.Context, id string) error
}

// CategoryService manages task categories.
type CategoryService interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// PreferencesService reads and writes the device-local preferences
// singleton.
type PreferencesService interface {
	Get(ctx context.Context) (models.Preferences, error)

	// Update overwrites the user-editable fields and keeps the sync
	// watermark untouched.
	Update(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}

// BackupService exports and imports backup files.
type BackupService interface {
	Export(ctx context.Context) (*models.BackupFile, error)
	ExportToFile(ctx context.Context, path string) (string, error)
	Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error)
	ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error)
}

// SyncService manages the agent's single pairing session: the peer
// connection lifecycle, the chunked pairing codes, and the background
// protocol run with its progress snapshot.
type SyncService interface {
	// StartOffer begins an initiator session and returns the offer as
	// displayable pairing codes.
	StartOffer(ctx context.Context) ([]string, error)

	// Join accepts scanned offer codes on the joining device and returns
	// the answer codes. The sync then runs in the background once the
	// initiator completes its side.
	Join(ctx context.Context, offerCodes []string) ([]string, error)

	// Complete accepts scanned answer codes on the initiating device,
	// opens the channel, and starts the sync in the background.
	Complete(ctx context.Context, answerCodes []string) error

	// Status snapshots the current session for polling UIs.
	Status(ctx context.Context) models.SyncStatus

	// Cancel tears down the current session, if any.
	Cancel(ctx context.Context) error
}

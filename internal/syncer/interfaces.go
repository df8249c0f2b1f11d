package syncer

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncer.go -package=mock

// Builder assembles outgoing transfer payloads from the local store.
type Builder interface {
	// BuildSyncPayload collects every replicated record changed at or after
	// since; a nil since selects everything. The result is ready to frame
	// onto the wire or to embed into a backup file.
	BuildSyncPayload(ctx context.Context, since *int64) (*models.SyncPayload, error)

	// BuildBackup produces the full on-disk dump: every replicated table
	// plus the device-local singletons, never filtered by a watermark.
	BuildBackup(ctx context.Context) (*models.BackupFile, error)
}

// Merger reconciles incoming entity batches with the local store.
type Merger interface {
	// Merge applies last-write-wins reconciliation record by record. Each
	// entity type is written in its own transaction; a failing batch is
	// reported in the summary and in the returned ErrPartialMerge without
	// undoing batches already committed.
	Merge(ctx context.Context, entities []models.EntityPayload) (models.MergeSummary, error)

	// Replace clears each named table and inserts the incoming records
	// verbatim, skipping per-record comparison.
	Replace(ctx context.Context, entities []models.EntityPayload) (models.MergeSummary, error)
}

// BackupManager exports and imports backup files.
type BackupManager interface {
	// Export builds the backup document without touching the filesystem.
	Export(ctx context.Context) (*models.BackupFile, error)

	// ExportToFile writes the backup as JSON and returns the final path. An
	// empty path picks a timestamped name in the configured directory.
	ExportToFile(ctx context.Context, path string) (string, error)

	// Import validates the raw document and applies it in the given mode.
	// A partial merge returns the result together with ErrPartialMerge.
	Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error)

	// ImportFromFile reads the file at path and imports its contents.
	ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error)
}

// Channel is the ordered, reliable message pipe a sync session runs over.
// The peer connection satisfies it once it reports open.
type Channel interface {
	Send(ctx context.Context, msg models.ChannelMessage) error
	Receive(ctx context.Context) (models.ChannelMessage, error)
}

// ProgressFunc receives one event per protocol phase transition. Callbacks
// run on the session goroutine, so implementations should return quickly.
type ProgressFunc func(progress models.SyncProgress)

// Orchestrator drives the sync protocol over an open channel.
type Orchestrator interface {
	// Run executes handshake, exchange, merge and finalization, reporting
	// each transition through onProgress (which may be nil). Only one
	// session runs at a time; a concurrent call returns ErrSyncInProgress.
	// A partial merge returns the result together with ErrPartialMerge and
	// leaves the watermark untouched so the next session retries.
	Run(ctx context.Context, channel Channel, onProgress ProgressFunc) (*models.SyncResult, error)
}

package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/validators"
	"github.com/MKhiriev/go-balance-sync/models"
)

// backupFileTimeLayout names exported files down to the second, so repeated
// manual exports in one day do not clobber each other.
const backupFileTimeLayout = "20060102-150405"

// backupManager wires the payload builder, the document validator and the
// merge engine into file-level export and import.
type backupManager struct {
	builder   Builder
	merger    Merger
	validator validators.Validator
	dir       string
	log       *logger.Logger
}

// NewBackupManager constructs a BackupManager. dir is the directory used for
// exports when the caller does not name a path.
func NewBackupManager(builder Builder, merger Merger, validator validators.Validator, dir string, log *logger.Logger) BackupManager {
	return &backupManager{
		builder:   builder,
		merger:    merger,
		validator: validator,
		dir:       dir,
		log:       log,
	}
}

// Export implements BackupManager.
func (b *backupManager) Export(ctx context.Context) (*models.BackupFile, error) {
	return b.builder.BuildBackup(ctx)
}

// ExportToFile implements BackupManager.
func (b *backupManager) ExportToFile(ctx context.Context, path string) (string, error) {
	backup, err := b.builder.BuildBackup(ctx)
	if err != nil {
		return "", err
	}

	if path == "" {
		name := fmt.Sprintf("balance-backup-%s.json", time.Now().Format(backupFileTimeLayout))
		path = filepath.Join(b.dir, name)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	b.log.Info().
		Str("func", "*backupManager.ExportToFile").
		Str("path", path).
		Int("records", backup.TotalRecords).
		Msg("backup exported")

	return path, nil
}

// Import implements BackupManager.
//
// The raw document is validated before any table is touched, so a malformed
// file is rejected whole. Mode defaults to merge when empty.
func (b *backupManager) Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error) {
	if err := b.validator.Validate(ctx, validators.BackupDocument(document)); err != nil {
		return nil, err
	}

	var backup models.BackupFile
	if err := json.Unmarshal(document, &backup); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}

	var (
		summary models.MergeSummary
		err     error
	)
	switch mode {
	case models.ImportModeMerge, "":
		mode = models.ImportModeMerge
		summary, err = b.merger.Merge(ctx, backup.Entities)
	case models.ImportModeReplace:
		summary, err = b.merger.Replace(ctx, backup.Entities)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImportMode, mode)
	}
	if err != nil && !errors.Is(err, ErrPartialMerge) {
		return nil, err
	}

	b.log.Info().
		Str("func", "*backupManager.Import").
		Str("mode", string(mode)).
		Int("upserted", summary.Totals.Upserted()).
		Int("failedBatches", len(summary.Failed)).
		Msg("backup imported")

	return &models.ImportResult{
		Mode:          mode,
		Merge:         summary,
		TotalImported: summary.Totals.Upserted(),
	}, err
}

// ImportFromFile implements BackupManager.
func (b *backupManager) ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return b.Import(ctx, document, mode)
}

package service

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/models"
)

type backupService struct {
	backups syncer.BackupManager

	logger *logger.Logger
}

func NewBackupService(backups syncer.BackupManager, logger *logger.Logger) BackupService {
	return &backupService{
		backups: backups,
		logger:  logger,
	}
}

func (b *backupService) Export(ctx context.Context) (*models.BackupFile, error) {
	return b.backups.Export(ctx)
}

func (b *backupService) ExportToFile(ctx context.Context, path string) (string, error) {
	return b.backups.ExportToFile(ctx, path)
}

func (b *backupService) Import(ctx context.Context, document []byte, mode models.ImportMode) (*models.ImportResult, error) {
	return b.backups.Import(ctx, document, mode)
}

func (b *backupService) ImportFromFile(ctx context.Context, path string, mode models.ImportMode) (*models.ImportResult, error) {
	return b.backups.ImportFromFile(ctx, path, mode)
}

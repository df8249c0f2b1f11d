package service

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

type appInfoService struct {
	version    string
	deviceName string
	device     store.DeviceStore

	logger *logger.Logger
}

func NewAppInfoService(device store.DeviceStore, cfg config.App, logger *logger.Logger) AppInfoService {
	version := cfg.Version
	if version == "" {
		version = "N/A"
	}

	return &appInfoService{
		version:    version,
		deviceName: cfg.DeviceName,
		device:     device,
		logger:     logger,
	}
}

func (s *appInfoService) Info(ctx context.Context) (models.AppInfo, error) {
	identity, err := s.device.EnsureIdentity(ctx)
	if err != nil {
		return models.AppInfo{}, err
	}

	return models.AppInfo{
		Version:    s.version,
		DeviceID:   identity.DeviceID,
		DeviceName: s.deviceName,
	}, nil
}

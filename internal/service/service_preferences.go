package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

type preferencesService struct {
	preferences store.PreferencesStore
	envelope    *envelopeStamper

	logger *logger.Logger
}

func NewPreferencesService(preferences store.PreferencesStore, envelope *envelopeStamper, logger *logger.Logger) PreferencesService {
	return &preferencesService{
		preferences: preferences,
		envelope:    envelope,
		logger:      logger,
	}
}

// Get returns the preferences row, or an empty singleton when the device has
// never written one. A fresh device is not an error condition.
func (p *preferencesService) Get(ctx context.Context) (models.Preferences, error) {
	prefs, err := p.preferences.GetByID(ctx, models.PreferencesID)
	if errors.Is(err, store.ErrPreferencesNotFound) {
		return models.Preferences{
			SyncMeta: models.SyncMeta{ID: models.PreferencesID},
		}, nil
	}
	if err != nil {
		return models.Preferences{}, err
	}
	return *prefs, nil
}

// Update overwrites the user-editable fields. The sync watermark is carried
// over from the stored row: a settings edit must never look like a completed
// sync or erase one.
func (p *preferencesService) Update(ctx context.Context, incoming models.Preferences) (models.Preferences, error) {
	current, err := p.Get(ctx)
	if err != nil {
		return models.Preferences{}, err
	}

	current.DisplayName = incoming.DisplayName
	current.Theme = incoming.Theme
	current.WeekStartsOn = incoming.WeekStartsOn
	current.RelayServers = incoming.RelayServers

	current.ID = models.PreferencesID
	if err := p.envelope.stamp(ctx, current.Meta()); err != nil {
		return models.Preferences{}, err
	}

	if err := p.preferences.Put(ctx, &current); err != nil {
		return models.Preferences{}, err
	}
	return current, nil
}

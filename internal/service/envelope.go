package service

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

// envelopeStamper fills the record envelope on every local write. The CRUD
// services share one instance so stamps stay strictly increasing across
// entity types within the process, which is what last-write-wins ordering
// relies on.
type envelopeStamper struct {
	device  store.DeviceStore
	stamper *utils.MonotonicStamper
	uuid    *utils.UUIDGenerator
}

func newEnvelopeStamper(device store.DeviceStore) *envelopeStamper {
	return &envelopeStamper{
		device:  device,
		stamper: utils.NewMonotonicStamper(),
		uuid:    utils.NewUUIDGenerator(),
	}
}

// stamp assigns an id when missing and re-stamps updatedAt and deviceId.
func (e *envelopeStamper) stamp(ctx context.Context, meta *models.SyncMeta) error {
	identity, err := e.device.EnsureIdentity(ctx)
	if err != nil {
		return err
	}

	if meta.ID == "" {
		meta.ID = e.uuid.Generate()
	}
	meta.UpdatedAt = e.stamper.Next()
	meta.DeviceID = identity.DeviceID
	return nil
}

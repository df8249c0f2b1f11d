// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferencesServiceFixture() (PreferencesService, *fakePreferencesStore) {
	prefs := newFakePreferencesStore()
	envelope := newEnvelopeStamper(&fakeDeviceStore{id: "device-test"})
	return NewPreferencesService(prefs, envelope, logger.Nop()), prefs
}

func storedPreferences(updatedAt int64, displayName string) *models.Preferences {
	p := &models.Preferences{DisplayName: displayName, Theme: "dark", WeekStartsOn: 1}
	p.ID = models.PreferencesID
	p.UpdatedAt = updatedAt
	p.DeviceID = "device-old"
	return p
}

func TestPreferencesService_Get_FreshDevice(t *testing.T) {
	svc, _ := newPreferencesServiceFixture()

	prefs, err := svc.Get(context.Background())

	// Отсутствие строки — не ошибка, устройство просто новое.
	require.NoError(t, err)
	assert.Equal(t, models.PreferencesID, prefs.ID)
	assert.Empty(t, prefs.DisplayName)
	assert.Nil(t, prefs.LastSyncTimestamp)
}

func TestPreferencesService_Get_ReturnsStoredRow(t *testing.T) {
	svc, store := newPreferencesServiceFixture()

	seeded := storedPreferences(10, "Rasul")
	seeded.LastSyncTimestamp = int64Ptr(12345)
	store.seed(seeded)

	prefs, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Rasul", prefs.DisplayName)
	require.NotNil(t, prefs.LastSyncTimestamp)
	assert.Equal(t, int64(12345), *prefs.LastSyncTimestamp)
}

func TestPreferencesService_Get_StoreError(t *testing.T) {
	svc, store := newPreferencesServiceFixture()
	store.failGet = errStore

	_, err := svc.Get(context.Background())

	assert.ErrorIs(t, err, errStore)
}

func TestPreferencesService_Update_FreshDevice(t *testing.T) {
	svc, store := newPreferencesServiceFixture()

	updated, err := svc.Update(context.Background(), models.Preferences{
		DisplayName:  "Rasul",
		Theme:        "light",
		WeekStartsOn: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PreferencesID, updated.ID)
	assert.Positive(t, updated.UpdatedAt)
	assert.Equal(t, "device-test", updated.DeviceID)
	assert.Nil(t, updated.LastSyncTimestamp)

	stored, err := store.GetByID(context.Background(), models.PreferencesID)
	require.NoError(t, err)
	assert.Equal(t, "light", stored.Theme)
}

func TestPreferencesService_Update_KeepsSyncWatermark(t *testing.T) {
	svc, store := newPreferencesServiceFixture()

	seeded := storedPreferences(10, "Old Name")
	seeded.LastSyncTimestamp = int64Ptr(12345)
	store.seed(seeded)

	updated, err := svc.Update(context.Background(), models.Preferences{
		DisplayName:  "New Name",
		Theme:        "light",
		WeekStartsOn: 0,
		// Клиент не знает про watermark и шлёт nil.
		LastSyncTimestamp: nil,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.DisplayName)
	require.NotNil(t, updated.LastSyncTimestamp)
	assert.Equal(t, int64(12345), *updated.LastSyncTimestamp)
	assert.Greater(t, updated.UpdatedAt, int64(10))

	stored, err := store.GetByID(context.Background(), models.PreferencesID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastSyncTimestamp)
	assert.Equal(t, int64(12345), *stored.LastSyncTimestamp)
}

func TestPreferencesService_Update_ForcesSingletonID(t *testing.T) {
	svc, store := newPreferencesServiceFixture()

	incoming := models.Preferences{DisplayName: "Rasul"}
	incoming.ID = "not-the-singleton"

	updated, err := svc.Update(context.Background(), incoming)

	require.NoError(t, err)
	assert.Equal(t, models.PreferencesID, updated.ID)

	_, err = store.GetByID(context.Background(), models.PreferencesID)
	require.NoError(t, err)
}

func TestPreferencesService_Update_PutError(t *testing.T) {
	svc, store := newPreferencesServiceFixture()
	store.failPut = errStore

	_, err := svc.Update(context.Background(), models.Preferences{DisplayName: "x"})

	assert.ErrorIs(t, err, errStore)
}

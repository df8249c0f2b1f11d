// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PayloadVersion is the wire-format version stamped into every
// [SyncPayload] and [BackupFile]. Importers reject any other value.
const PayloadVersion = 1

// BackupFormat is the discriminator stored in [BackupFile.Format].
// It distinguishes a backup file from arbitrary JSON documents.
const BackupFormat = "balance-backup"

// EntityType tags one replicated table. The set of valid tags is closed:
// payloads carrying an unknown tag are rejected by the decoding layer.
type EntityType string

const (
	EntityTasks       EntityType = "tasks"
	EntityCategories  EntityType = "categories"
	EntityCompletions EntityType = "completions"
	EntityLocations   EntityType = "locations"
	EntityPreferences EntityType = "preferences"
	EntitySnoozes     EntityType = "snoozes"
)

// SyncableEntityTypes lists the tables replicated between partner devices.
// The device-local singletons (preferences, snoozes) are deliberately absent.
func SyncableEntityTypes() []EntityType {
	return []EntityType{EntityTasks, EntityCategories, EntityCompletions, EntityLocations}
}

// BackupEntityTypes lists every table included in a backup file: the
// syncable tables plus the device-local singletons, since a backup must be
// able to fully restore a device.
func BackupEntityTypes() []EntityType {
	return append(SyncableEntityTypes(), EntityPreferences, EntitySnoozes)
}

// KnownEntityType reports whether t belongs to the closed tag set.
func KnownEntityType(t EntityType) bool {
	switch t {
	case EntityTasks, EntityCategories, EntityCompletions, EntityLocations,
		EntityPreferences, EntitySnoozes:
		return true
	}
	return false
}

// SyncMeta is the replication envelope embedded into every syncable record.
//
// Invariants: a table never holds two records with the same ID; every local
// mutation re-stamps UpdatedAt and DeviceID. A non-nil DeletedAt marks a
// tombstone — the record is logically deleted but physically retained so the
// deletion itself can be propagated and ordered against other writes.
type SyncMeta struct {
	// ID uniquely identifies the record within its table (uuid v7).
	ID string `json:"id"`

	// UpdatedAt is the epoch-millisecond timestamp of the last local write.
	// Stamps are monotonically increasing per device.
	UpdatedAt int64 `json:"updatedAt"`

	// DeviceID identifies the device that produced the current version.
	DeviceID string `json:"deviceId"`

	// DeletedAt is the epoch-millisecond tombstone timestamp, nil while the
	// record is alive.
	DeletedAt *int64 `json:"deletedAt"`
}

// Meta returns the embedded envelope. Entity structs embed SyncMeta, so this
// single method satisfies the meta half of [Record] for all of them.
func (m *SyncMeta) Meta() *SyncMeta { return m }

// Deleted reports whether the record is a tombstone.
func (m *SyncMeta) Deleted() bool { return m.DeletedAt != nil }

// Record is implemented by every concrete entity struct. The merge engine
// and payload builder operate exclusively through this interface so they stay
// agnostic of the per-table field schemas.
type Record interface {
	Meta() *SyncMeta
	EntityType() EntityType
}

// EntityPayload carries one table's slice of a transfer. Records stay as raw
// JSON on the envelope so the outer wire shape is independent of the per-tag
// field schemas; DecodeRecords resolves them against the closed tag set.
type EntityPayload struct {
	EntityType EntityType        `json:"entityType"`
	Count      int               `json:"count"`
	Records    []json.RawMessage `json:"records"`
}

// SyncPayload is the network transfer envelope exchanged between partner
// devices. LastSyncTimestamp is the watermark the payload was built against;
// nil means "first sync, everything included". The device-local singleton
// tables are never part of a SyncPayload.
type SyncPayload struct {
	Version           int             `json:"version"`
	ExportedAt        int64           `json:"exportedAt"`
	DeviceID          string          `json:"deviceId"`
	LastSyncTimestamp *int64          `json:"lastSyncTimestamp"`
	Entities          []EntityPayload `json:"entities"`
	TotalRecords      int             `json:"totalRecords"`
}

// BackupFile is the on-disk form of a full device dump: the same envelope as
// [SyncPayload] tagged with [BackupFormat], always watermark-independent, and
// additionally carrying the device-local singleton tables.
type BackupFile struct {
	Format string `json:"format"`
	SyncPayload
}

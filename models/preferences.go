package models

// PreferencesID is the fixed row id of the user-preferences singleton.
const PreferencesID = "user-preferences"

// SnoozeStateID is the fixed row id of the snooze-state singleton.
const SnoozeStateID = "snooze-state"

// Preferences is the device-local settings singleton. It never travels in a
// [SyncPayload]; it appears in backups so a restore can rebuild the device,
// but an existing local row always survives an import untouched.
type Preferences struct {
	SyncMeta

	DisplayName string `json:"displayName"`
	Theme       string `json:"theme"`
	// WeekStartsOn is the first day of the week, 0 = Sunday.
	WeekStartsOn int `json:"weekStartsOn"`

	// RelayServers lists "host:port" relay endpoints used by the "remote"
	// connection profile. Empty for LAN-only setups.
	RelayServers []string `json:"relayServers,omitempty"`

	// LastSyncTimestamp is the watermark of the last completed sync with the
	// partner device, nil before the first sync ever.
	LastSyncTimestamp *int64 `json:"lastSyncTimestamp"`
}

func (p *Preferences) EntityType() EntityType { return EntityPreferences }

// SnoozeState is the device-local reminder-snooze singleton: task id →
// epoch-millisecond "snoozed until". Excluded from sync, included in backups,
// merged by the ordinary last-write-wins rule on import.
type SnoozeState struct {
	SyncMeta

	Entries map[string]int64 `json:"entries"`
}

func (s *SnoozeState) EntityType() EntityType { return EntitySnoozes }

package models

// MergeCounts classifies per-record merge outcomes for one entity type.
type MergeCounts struct {
	// NewRecords counts incoming records with no local counterpart.
	NewRecords int `json:"newRecords"`
	// RemoteWins counts local records overwritten by a newer incoming copy.
	RemoteWins int `json:"remoteWins"`
	// LocalWins counts incoming records discarded for being older.
	LocalWins int `json:"localWins"`
	// Equal counts records whose timestamps matched exactly (no write).
	Equal int `json:"equal"`
}

// Add accumulates other into c.
func (c *MergeCounts) Add(other MergeCounts) {
	c.NewRecords += other.NewRecords
	c.RemoteWins += other.RemoteWins
	c.LocalWins += other.LocalWins
	c.Equal += other.Equal
}

// Upserted returns the number of rows the merge actually wrote.
func (c MergeCounts) Upserted() int {
	return c.NewRecords + c.RemoteWins
}

// EntityFailure records an entity batch whose bulk write failed. Batches are
// transactional per entity type, so earlier batches stay committed; the
// failure is surfaced here instead of being silently dropped.
type EntityFailure struct {
	EntityType EntityType `json:"entityType"`
	Error      string     `json:"error"`
}

// MergeSummary aggregates the outcome of merging one payload into the local
// store: totals, a per-entity-type breakdown, and any failed batches.
type MergeSummary struct {
	Totals    MergeCounts                `json:"totals"`
	PerEntity map[EntityType]MergeCounts `json:"perEntity"`
	Failed    []EntityFailure            `json:"failed,omitempty"`
}

// NewMergeSummary returns an empty summary ready for accumulation.
func NewMergeSummary() MergeSummary {
	return MergeSummary{PerEntity: make(map[EntityType]MergeCounts)}
}

// Record folds one entity's counts into the summary.
func (s *MergeSummary) Record(entityType EntityType, counts MergeCounts) {
	per := s.PerEntity[entityType]
	per.Add(counts)
	s.PerEntity[entityType] = per
	s.Totals.Add(counts)
}

// Fail registers a failed entity batch.
func (s *MergeSummary) Fail(entityType EntityType, err error) {
	s.Failed = append(s.Failed, EntityFailure{EntityType: entityType, Error: err.Error()})
}

// ImportMode selects how a backup file is applied to the local store.
type ImportMode string

const (
	// ImportModeMerge reconciles the backup with local data record by record
	// using the same last-write-wins rules as a network sync.
	ImportModeMerge ImportMode = "merge"

	// ImportModeReplace clears every target table first and bulk-inserts the
	// backup's records verbatim, discarding local history on purpose.
	ImportModeReplace ImportMode = "replace"
)

// ImportResult reports the outcome of a backup import.
type ImportResult struct {
	Mode          ImportMode   `json:"mode"`
	Merge         MergeSummary `json:"merge"`
	TotalImported int          `json:"totalImported"`
}

// SyncResult reports the outcome of one completed sync session.
type SyncResult struct {
	PeerDeviceID  string       `json:"peerDeviceId"`
	StartedAt     int64        `json:"startedAt"`
	FinishedAt    int64        `json:"finishedAt"`
	TotalSent     int          `json:"totalSent"`
	TotalReceived int          `json:"totalReceived"`
	TotalUpserted int          `json:"totalUpserted"`
	Merge         MergeSummary `json:"merge"`
}

// SyncPhase tags one step of the sync protocol for progress reporting.
type SyncPhase string

const (
	PhaseConnecting SyncPhase = "connecting"
	PhaseHandshake  SyncPhase = "handshake"
	PhaseSending    SyncPhase = "sending"
	PhaseMerging    SyncPhase = "merging"
	PhaseFinalizing SyncPhase = "finalizing"
	PhaseDone       SyncPhase = "done"
	PhaseFailed     SyncPhase = "failed"
)

// SyncProgress is the event emitted at every phase transition so a UI can
// render live status without inspecting orchestrator internals.
type SyncProgress struct {
	Phase           SyncPhase `json:"phase"`
	Message         string    `json:"message"`
	RecordsSent     int       `json:"recordsSent"`
	RecordsReceived int       `json:"recordsReceived"`
}

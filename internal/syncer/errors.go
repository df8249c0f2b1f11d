package syncer

import "errors"

var (
	// ErrSyncInProgress rejects a second sync session while one is running.
	ErrSyncInProgress = errors.New("a sync session is already running")

	// ErrPartialMerge reports that at least one entity batch failed while
	// the remaining batches were merged and committed. The accompanying
	// summary lists the failed batches.
	ErrPartialMerge = errors.New("merge finished with failed entity batches")

	// ErrProtocol reports a peer message that violates the sync protocol:
	// wrong message order, a missing body, or an unsupported payload
	// version.
	ErrProtocol = errors.New("sync protocol violation")

	// ErrUnknownImportMode rejects an import mode outside merge/replace.
	ErrUnknownImportMode = errors.New("unknown import mode")
)

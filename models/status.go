package models

// Sync session roles.
const (
	RoleInitiator = "initiator"
	RoleJoiner    = "joiner"
)

// AppInfo is the agent's self-description served on the health endpoint and
// shown by `balancectl status`.
type AppInfo struct {
	Version    string `json:"version"`
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

// SyncStatus is the poll-friendly snapshot of the agent's sync session. With
// no session it reports Active false and an idle connection state; otherwise
// it mirrors the latest progress event plus the final result once one exists.
type SyncStatus struct {
	Active          bool        `json:"active"`
	Role            string      `json:"role,omitempty"`
	ConnectionState string      `json:"connectionState"`
	Phase           SyncPhase   `json:"phase,omitempty"`
	Message         string      `json:"message,omitempty"`
	RecordsSent     int         `json:"recordsSent"`
	RecordsReceived int         `json:"recordsReceived"`
	Result          *SyncResult `json:"result,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// HealthStatus is the /api/health response body.
type HealthStatus struct {
	Status string `json:"status"`
	AppInfo
}

// PairingCodes carries a chunked pairing ticket over the agent API, both as
// the response to offer/join and as the request body for join/complete.
type PairingCodes struct {
	Codes []string `json:"codes"`
}

// TaskList is the task collection response.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Count int    `json:"count"`
}

// CategoryList is the category collection response.
type CategoryList struct {
	Categories []Category `json:"categories"`
	Count      int        `json:"count"`
}

// CompleteTaskRequest is the body of POST /api/tasks/{id}/complete.
type CompleteTaskRequest struct {
	Note string `json:"note,omitempty"`
}

// ExportedBackup reports where an on-agent backup export landed.
type ExportedBackup struct {
	Path string `json:"path"`
}

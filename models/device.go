package models

// DeviceIdentity is the device's own replication identity. It is minted on
// first run and never leaves the device: sync payloads carry the id, but the
// identity row itself is excluded from both sync and backup so a restored
// device keeps its own id.
type DeviceIdentity struct {
	DeviceID  string `json:"deviceId"`
	CreatedAt int64  `json:"createdAt"`
}

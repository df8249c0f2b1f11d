package models

// Channel message kinds exchanged by the sync orchestrators on both sides of
// an open peer connection.
const (
	MessageHandshake = "handshake"
	MessagePayload   = "payload"
	MessageDone      = "done"
)

// Handshake is the first message each side sends after the channel opens:
// its identity and the watermark it wants the partner's delta built against.
type Handshake struct {
	DeviceID          string `json:"deviceId"`
	LastSyncTimestamp *int64 `json:"lastSyncTimestamp"`
}

// DoneStats closes a session: each side reports what it transmitted so the
// partner can cross-check its received totals.
type DoneStats struct {
	RecordsSent int `json:"recordsSent"`
}

// ChannelMessage is the tagged envelope framed onto the peer channel.
// Exactly one of the optional bodies is set, matching Type.
type ChannelMessage struct {
	Type      string       `json:"type"`
	Handshake *Handshake   `json:"handshake,omitempty"`
	Payload   *SyncPayload `json:"payload,omitempty"`
	Done      *DoneStats   `json:"done,omitempty"`
}

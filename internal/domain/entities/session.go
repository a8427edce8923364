package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one subscriber's tunnel lifecycle against a server.
//
// The session manager refuses a connect while the subscriber has a session
// that is not Disconnected, by looking one up before it inserts. The schema
// carries only a plain index on subscriber_id; no unique constraint exists,
// so concurrent connect attempts for the same subscriber are not serialized
// at the database.
type Session struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID   uuid.UUID  `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	ServerID       uuid.UUID  `json:"server_id" gorm:"type:uuid;not null;index"`
	Status         string     `json:"status" gorm:"not null;index;check:status IN ('idle', 'connected', 'disconnected')"`
	TunnelAddress  string     `json:"tunnel_address" gorm:"not null"`
	BytesSent      int64      `json:"bytes_sent" gorm:"not null;default:0"`
	BytesReceived  int64      `json:"bytes_received" gorm:"not null;default:0"`
	ConnectedAt    *time.Time `json:"connected_at"`
	DisconnectedAt *time.Time `json:"disconnected_at"`
	LastSeenAt     time.Time  `json:"last_seen_at" gorm:"not null"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Session entity.
func (Session) TableName() string {
	return "sessions"
}

// IsIdle returns true if the session has been admitted but not yet connected.
func (s *Session) IsIdle() bool {
	return s.Status == "idle"
}

// IsConnected returns true if the tunnel is currently up.
func (s *Session) IsConnected() bool {
	return s.Status == "connected"
}

// IsDisconnected returns true if the session has been torn down.
func (s *Session) IsDisconnected() bool {
	return s.Status == "disconnected"
}

// Connect transitions the session into Connected and records the connect time.
func (s *Session) Connect(at time.Time) {
	s.Status = "connected"
	s.ConnectedAt = &at
	s.LastSeenAt = at
}

// Disconnect transitions the session into Disconnected and records the disconnect time.
func (s *Session) Disconnect(at time.Time) {
	s.Status = "disconnected"
	s.DisconnectedAt = &at
}

// RecordUsage accumulates client-reported byte counters and refreshes last-seen.
//
// These counters are trusted as reported by the tunnel client; the session
// manager performs no independent verification of traffic volume.
func (s *Session) RecordUsage(sent, received int64, at time.Time) {
	s.BytesSent += sent
	s.BytesReceived += received
	s.LastSeenAt = at
}

// IsStale returns true if the session hasn't reported activity within threshold.
func (s *Session) IsStale(at time.Time, threshold time.Duration) bool {
	return s.IsConnected() && at.Sub(s.LastSeenAt) > threshold
}

// IsValidSessionStatus checks if the given status string is recognized.
func IsValidSessionStatus(status string) bool {
	switch status {
	case "idle", "connected", "disconnected":
		return true
	}
	return false
}

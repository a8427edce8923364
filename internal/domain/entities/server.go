package entities

import (
	"time"

	"github.com/google/uuid"
)

// Server represents a VPN node in the registry.
type Server struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Location      string    `json:"location" gorm:"not null;index"`
	Tier          string    `json:"tier" gorm:"not null;check:tier IN ('free', 'premium')"`
	PublicKey     string    `json:"public_key" gorm:"not null"`
	EndpointHost  string    `json:"endpoint_host" gorm:"not null"`
	EndpointPort  int       `json:"endpoint_port" gorm:"not null"`
	Capacity      int       `json:"capacity" gorm:"not null"`
	Load          float64   `json:"load" gorm:"not null;default:0"`
	PingMillis    int       `json:"ping_millis" gorm:"not null;default:0"`
	Status        string    `json:"status" gorm:"not null;default:'active';index;check:status IN ('active', 'draining', 'offline')"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Server entity.
func (Server) TableName() string {
	return "servers"
}

// IsAvailable returns true if the server can accept new sessions, given its
// exact current connected-session count. Load is a derived, periodically
// reconciled metric used for ordering candidates, not for admission — a
// fractional-accumulation gate on Load drifts for capacities that don't
// divide 1.0 evenly.
func (s *Server) IsAvailable(connectedCount int64) bool {
	return s.Status == "active" && (s.Capacity <= 0 || connectedCount < int64(s.Capacity))
}

// IsPremiumTier returns true if the server requires a premium entitlement.
func (s *Server) IsPremiumTier() bool {
	return s.Tier == "premium"
}

// AdjustLoad applies a signed delta to the load, clamped to [0, 1].
func (s *Server) AdjustLoad(delta float64) {
	s.Load += delta
	if s.Load < 0 {
		s.Load = 0
	}
	if s.Load > 1 {
		s.Load = 1
	}
}

// IsValidServerTier checks if the given tier string is recognized.
func IsValidServerTier(tier string) bool {
	return tier == "free" || tier == "premium"
}

// IsValidServerStatus checks if the given status string is recognized.
func IsValidServerStatus(status string) bool {
	switch status {
	case "active", "draining", "offline":
		return true
	}
	return false
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog is a closed record of one session's traffic, written at disconnect.
type UsageLog struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID       uuid.UUID `json:"session_id" gorm:"type:uuid;not null;uniqueIndex"`
	SubscriberID    uuid.UUID `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	ServerID        uuid.UUID `json:"server_id" gorm:"type:uuid;not null;index"`
	BytesSent       int64     `json:"bytes_sent" gorm:"not null"`
	BytesReceived   int64     `json:"bytes_received" gorm:"not null"`
	DurationSeconds int64     `json:"duration_seconds" gorm:"not null"`
	RecordedAt      time.Time `json:"recorded_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the UsageLog entity.
func (UsageLog) TableName() string {
	return "usage_logs"
}

// NewUsageLog closes a session into a usage record.
func NewUsageLog(session *Session) *UsageLog {
	duration := int64(0)
	if session.ConnectedAt != nil && session.DisconnectedAt != nil {
		duration = int64(session.DisconnectedAt.Sub(*session.ConnectedAt).Seconds())
	}
	return &UsageLog{
		SessionID:       session.ID,
		SubscriberID:    session.SubscriberID,
		ServerID:        session.ServerID,
		BytesSent:       session.BytesSent,
		BytesReceived:   session.BytesReceived,
		DurationSeconds: duration,
	}
}

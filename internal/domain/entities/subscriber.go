package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber represents an account holder of the VPN service.
type Subscriber struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Handle       string     `json:"handle" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Status       string     `json:"status" gorm:"not null;default:'active';check:status IN ('active', 'disabled')"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	IsPremium    bool       `json:"is_premium" gorm:"default:false"`
	IsBanned     bool       `json:"is_banned" gorm:"default:false"`
	LastActive   *time.Time `json:"last_active"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

const (
	SubscriberStatusActive   = "active"
	SubscriberStatusDisabled = "disabled"
)

// TableName returns the table name for the Subscriber entity.
func (Subscriber) TableName() string {
	return "subscribers"
}

// IsActive returns true if the subscriber's account is usable.
func (s *Subscriber) IsActive() bool {
	return s.Status == "active" && !s.IsBanned
}

// IsDisabled returns true if the subscriber's account has been disabled.
func (s *Subscriber) IsDisabled() bool {
	return s.Status == "disabled"
}

// Disable sets the subscriber's status to disabled.
func (s *Subscriber) Disable() {
	s.Status = "disabled"
}

// Enable sets the subscriber's status to active.
func (s *Subscriber) Enable() {
	s.Status = "active"
}

// SetPremiumHint updates the cached premium flag reconciled from the entitlement engine.
func (s *Subscriber) SetPremiumHint(premium bool) {
	s.IsPremium = premium
}

// Touch updates the subscriber's last-active timestamp.
func (s *Subscriber) Touch(at time.Time) {
	s.LastActive = &at
}

// IsValidSubscriberStatus checks if the given status is a recognized subscriber status.
func IsValidSubscriberStatus(status string) bool {
	return status == SubscriberStatusActive || status == SubscriberStatusDisabled
}

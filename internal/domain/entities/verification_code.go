package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is a short-lived, purpose-bound six-digit code issued to a subscriber.
type VerificationCode struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID  `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	Purpose      string     `json:"purpose" gorm:"not null;index;check:purpose IN ('email_verify', 'password_reset')"`
	CodeHash     string     `json:"-" gorm:"not null"`
	AttemptCount int        `json:"attempt_count" gorm:"not null;default:0"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"not null"`
	ConsumedAt   *time.Time `json:"consumed_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the VerificationCode entity.
func (VerificationCode) TableName() string {
	return "verification_codes"
}

// MaxVerificationAttempts is the number of failed attempts that invalidates a code.
const MaxVerificationAttempts = 3

// IsConsumed returns true if the code has already been used.
func (v *VerificationCode) IsConsumed() bool {
	return v.ConsumedAt != nil
}

// IsExpired returns true if the code's validity window has passed.
func (v *VerificationCode) IsExpired(at time.Time) bool {
	return at.After(v.ExpiresAt)
}

// IsExhausted returns true if too many failed attempts have been made against this code.
func (v *VerificationCode) IsExhausted() bool {
	return v.AttemptCount >= MaxVerificationAttempts
}

// Usable returns true if the code can still be checked against a guess.
func (v *VerificationCode) Usable(at time.Time) bool {
	return !v.IsConsumed() && !v.IsExpired(at) && !v.IsExhausted()
}

// RecordFailedAttempt increments the failure counter.
func (v *VerificationCode) RecordFailedAttempt() {
	v.AttemptCount++
}

// Consume marks the code as used.
func (v *VerificationCode) Consume(at time.Time) {
	v.ConsumedAt = &at
}

// IsValidVerificationPurpose checks if the given purpose string is recognized.
func IsValidVerificationPurpose(purpose string) bool {
	return purpose == "email_verify" || purpose == "password_reset"
}

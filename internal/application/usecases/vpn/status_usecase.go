package vpn

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// StatusUseCase reports the subscriber's active session, if any.
type StatusUseCase struct {
	sessionManager services.SessionManager
}

// NewStatusUseCase creates a new StatusUseCase instance.
func NewStatusUseCase(sessionManager services.SessionManager) *StatusUseCase {
	return &StatusUseCase{sessionManager: sessionManager}
}

// Execute returns the current or most recent session for the subscriber.
// sessionID is optional; when nil the subscriber's active session is used.
func (uc *StatusUseCase) Execute(ctx context.Context, subscriberID uuid.UUID, sessionID *uuid.UUID) (*services.SessionSummary, error) {
	return uc.sessionManager.Status(ctx, subscriberID, sessionID)
}

package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/auth"
	"github.com/fenwicknet/vpnctl/pkg/errors"
)

// GetSessionsUseCase handles listing a subscriber's active login sessions
// (one per device), distinct from the Session Manager's VPN tunnel sessions.
type GetSessionsUseCase struct {
	sessionManager *auth.SessionManager
}

// NewGetSessionsUseCase creates a new GetSessionsUseCase instance.
func NewGetSessionsUseCase(sessionManager *auth.SessionManager) *GetSessionsUseCase {
	return &GetSessionsUseCase{sessionManager: sessionManager}
}

// GetSessionsRequest represents a get-sessions request.
type GetSessionsRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id" validate:"required"`
}

// GetSessionsResponse represents a get-sessions response.
type GetSessionsResponse struct {
	Sessions []*auth.Session `json:"sessions"`
}

// Execute handles the get-sessions use case.
func (uc *GetSessionsUseCase) Execute(ctx context.Context, req *GetSessionsRequest) (*GetSessionsResponse, error) {
	sessions, err := uc.sessionManager.GetUserSessions(ctx, req.SubscriberID.String())
	if err != nil {
		return nil, errors.WrapError(err, "failed to list login sessions")
	}

	return &GetSessionsResponse{Sessions: sessions}, nil
}

package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/utils"
)

// LogoutUseCase handles subscriber logout.
type LogoutUseCase struct {
	identityService services.IdentityService
	jwtUtils        *utils.JWTUtils
}

// NewLogoutUseCase creates a new LogoutUseCase instance.
func NewLogoutUseCase(identityService services.IdentityService, jwtUtils *utils.JWTUtils) *LogoutUseCase {
	return &LogoutUseCase{
		identityService: identityService,
		jwtUtils:        jwtUtils,
	}
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	Token        string    `json:"token"`
	LogoutAll    bool      `json:"logout_all,omitempty"`
}

// LogoutResponse represents a logout response.
type LogoutResponse struct {
	Message string `json:"message"`
}

// Execute handles the logout use case.
func (uc *LogoutUseCase) Execute(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	sessionID := ""
	if req.Token != "" {
		claims, err := uc.jwtUtils.ValidateToken(req.Token)
		if err != nil {
			return nil, errors.ErrInvalidToken
		}
		sessionID = claims.SessionID
	}

	if req.LogoutAll {
		if err := uc.identityService.LogoutFromAllDevices(ctx, req.SubscriberID); err != nil {
			return nil, err
		}
	} else if err := uc.identityService.Logout(ctx, sessionID); err != nil {
		return nil, err
	}

	if req.Token != "" {
		_ = uc.jwtUtils.BlacklistToken(ctx, req.Token)
	}

	return &LogoutResponse{Message: "Successfully logged out"}, nil
}

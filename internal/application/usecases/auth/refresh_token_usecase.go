package auth

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// RefreshTokenUseCase handles access token refresh.
type RefreshTokenUseCase struct {
	identityService services.IdentityService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(identityService services.IdentityService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{identityService: identityService}
}

// RefreshTokenRequest represents a token refresh request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse represents a token refresh response.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Execute handles the token refresh use case.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, req *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	tokenResp, err := uc.identityService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &RefreshTokenResponse{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

package auth

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/utils"
)

// LoginUseCase handles subscriber login.
type LoginUseCase struct {
	identityService services.IdentityService
	jwtUtils        *utils.JWTUtils
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(identityService services.IdentityService, jwtUtils *utils.JWTUtils) *LoginUseCase {
	return &LoginUseCase{
		identityService: identityService,
		jwtUtils:        jwtUtils,
	}
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email      string            `json:"email" validate:"required,email"`
	Password   string            `json:"password" validate:"required"`
	DeviceInfo *utils.DeviceInfo `json:"device_info,omitempty"`
	IPAddress  string            `json:"ip_address,omitempty"`
	UserAgent  string            `json:"user_agent,omitempty"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Subscriber *services.SubscriberInfo `json:"subscriber"`
	Tokens     *services.TokenPair      `json:"tokens"`
}

// Execute handles the subscriber login use case.
func (uc *LoginUseCase) Execute(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	deviceInfo := req.DeviceInfo
	if deviceInfo == nil {
		deviceInfo = uc.jwtUtils.ParseDeviceInfo(req.UserAgent, req.IPAddress)
	}

	authResp, err := uc.identityService.Authenticate(ctx, &services.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, deviceInfo, req.IPAddress)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Subscriber: authResp.Subscriber,
		Tokens:     authResp.Tokens,
	}, nil
}

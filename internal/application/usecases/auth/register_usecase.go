package auth

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// RegisterUseCase handles subscriber registration.
type RegisterUseCase struct {
	identityService services.IdentityService
}

// NewRegisterUseCase creates a new RegisterUseCase instance.
func NewRegisterUseCase(identityService services.IdentityService) *RegisterUseCase {
	return &RegisterUseCase{identityService: identityService}
}

// RegisterRequest represents the registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Handle   string `json:"handle" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,password"`
}

// RegisterResponse represents the registration response.
type RegisterResponse struct {
	Subscriber *services.SubscriberInfo `json:"subscriber"`
	Tokens     *services.TokenPair      `json:"tokens"`
}

// Execute handles the subscriber registration use case.
func (uc *RegisterUseCase) Execute(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	authResp, err := uc.identityService.Register(ctx, &services.RegisterRequest{
		Email:    req.Email,
		Handle:   req.Handle,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		Subscriber: authResp.Subscriber,
		Tokens:     authResp.Tokens,
	}, nil
}

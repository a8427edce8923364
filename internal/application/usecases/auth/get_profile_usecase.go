package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// GetProfileUseCase handles fetching a subscriber's own profile.
type GetProfileUseCase struct {
	identityService services.IdentityService
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(identityService services.IdentityService) *GetProfileUseCase {
	return &GetProfileUseCase{identityService: identityService}
}

// GetProfileRequest represents a get-profile request.
type GetProfileRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id" validate:"required"`
}

// GetProfileResponse represents a get-profile response.
type GetProfileResponse struct {
	Subscriber *services.SubscriberInfo `json:"subscriber"`
}

// Execute handles the get-profile use case.
func (uc *GetProfileUseCase) Execute(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	subscriber, err := uc.identityService.GetByID(ctx, req.SubscriberID)
	if err != nil {
		return nil, err
	}

	return &GetProfileResponse{
		Subscriber: &services.SubscriberInfo{
			ID:         subscriber.ID,
			Email:      subscriber.Email,
			Handle:     subscriber.Handle,
			Status:     subscriber.Status,
			IsVerified: subscriber.IsVerified,
			IsPremium:  subscriber.IsPremium,
			CreatedAt:  subscriber.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

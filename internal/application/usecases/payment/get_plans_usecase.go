package payment

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// GetPlansUseCase retrieves every plan available for purchase.
type GetPlansUseCase struct {
	entitlementEngine services.EntitlementEngine
}

// NewGetPlansUseCase creates a new GetPlansUseCase instance.
func NewGetPlansUseCase(entitlementEngine services.EntitlementEngine) *GetPlansUseCase {
	return &GetPlansUseCase{entitlementEngine: entitlementEngine}
}

// Execute lists active plans.
func (uc *GetPlansUseCase) Execute(ctx context.Context) ([]*entities.Plan, error) {
	return uc.entitlementEngine.ListPlans(ctx)
}

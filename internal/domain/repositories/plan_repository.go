package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// PlanRepository persists the catalog of purchasable plans.
type PlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error)
	GetByCode(ctx context.Context, code string) (*entities.Plan, error)
	ListActive(ctx context.Context) ([]*entities.Plan, error)
}

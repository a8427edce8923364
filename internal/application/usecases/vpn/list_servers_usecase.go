package vpn

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// ListServersUseCase lists fleet servers matching an optional tier/location filter.
type ListServersUseCase struct {
	serverRegistry services.ServerRegistry
}

// NewListServersUseCase creates a new ListServersUseCase instance.
func NewListServersUseCase(serverRegistry services.ServerRegistry) *ListServersUseCase {
	return &ListServersUseCase{serverRegistry: serverRegistry}
}

// Execute returns the servers matching the given filter.
func (uc *ListServersUseCase) Execute(ctx context.Context, filter repositories.ServerFilter) ([]*entities.Server, error) {
	return uc.serverRegistry.List(ctx, filter)
}

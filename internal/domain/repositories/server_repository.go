package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// ServerFilter narrows a server selection query for the Server Registry.
type ServerFilter struct {
	Tier     string
	Location string
}

// ServerRepository persists the VPN node registry.
type ServerRepository interface {
	Create(ctx context.Context, server *entities.Server) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Server, error)
	Update(ctx context.Context, server *entities.Server) error

	// ListCandidates returns available servers matching the filter, ordered
	// by load ascending, ping ascending, id ascending, matching the Server
	// Registry's selection tie-breaking rule.
	ListCandidates(ctx context.Context, filter ServerFilter) ([]*entities.Server, error)

	ListAll(ctx context.Context) ([]*entities.Server, error)

	// AdjustLoad atomically applies delta to the server's load, clamped to
	// [0, 1], and returns the resulting value.
	AdjustLoad(ctx context.Context, id uuid.UUID, delta float64) (float64, error)
}

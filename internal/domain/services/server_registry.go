package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// ServerRegistry is the Server Registry module: it tracks the tunnel node
// fleet and selects a server for the Session Manager under a tier ceiling.
type ServerRegistry interface {
	List(ctx context.Context, filter repositories.ServerFilter) ([]*entities.Server, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Server, error)
	Create(ctx context.Context, server *entities.Server) error
	Update(ctx context.Context, server *entities.Server) error

	// Select picks a server for admission given the caller's effective tier
	// and an optional location preference, per the SR selection algorithm.
	Select(ctx context.Context, callerTier, location string) (*entities.Server, error)

	// AdjustLoad applies a signed delta to a server's load, clamped to [0, 1].
	AdjustLoad(ctx context.Context, id uuid.UUID, delta float64) (float64, error)

	// Reconcile recomputes each active server's load from its counted
	// connected sessions, correcting any drift from adjust_load races.
	Reconcile(ctx context.Context) (int, error)
}

type serverRegistryImpl struct {
	serverRepo  repositories.ServerRepository
	sessionRepo repositories.SessionRepository
}

// NewServerRegistry creates a new ServerRegistry instance.
func NewServerRegistry(serverRepo repositories.ServerRepository, sessionRepo repositories.SessionRepository) ServerRegistry {
	return &serverRegistryImpl{serverRepo: serverRepo, sessionRepo: sessionRepo}
}

func (r *serverRegistryImpl) List(ctx context.Context, filter repositories.ServerFilter) ([]*entities.Server, error) {
	servers, err := r.serverRepo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, errors.WrapError(err, "failed to list servers")
	}
	return servers, nil
}

func (r *serverRegistryImpl) Get(ctx context.Context, id uuid.UUID) (*entities.Server, error) {
	server, err := r.serverRepo.GetByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, errors.ErrServerNotFound
		}
		return nil, errors.WrapError(err, "failed to get server")
	}
	return server, nil
}

func (r *serverRegistryImpl) Create(ctx context.Context, server *entities.Server) error {
	if !entities.IsValidServerTier(server.Tier) || !entities.IsValidServerStatus(server.Status) {
		return errors.ErrInvalidInput
	}
	if err := r.serverRepo.Create(ctx, server); err != nil {
		return errors.WrapError(err, "failed to create server")
	}
	return nil
}

func (r *serverRegistryImpl) Update(ctx context.Context, server *entities.Server) error {
	if err := r.serverRepo.Update(ctx, server); err != nil {
		return errors.WrapError(err, "failed to update server")
	}
	return nil
}

// Select implements the SR selection algorithm: tier-ceiling candidate set,
// location filter with fallback to the unfiltered set, ordered by load then
// ping then id, first wins.
func (r *serverRegistryImpl) Select(ctx context.Context, callerTier, location string) (*entities.Server, error) {
	candidates, err := r.candidatesForTier(ctx, callerTier, location)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && location != "" {
		candidates, err = r.candidatesForTier(ctx, callerTier, "")
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		return nil, errors.ErrNoCapacity
	}

	return candidates[0], nil
}

func (r *serverRegistryImpl) candidatesForTier(ctx context.Context, callerTier, location string) ([]*entities.Server, error) {
	servers, err := r.serverRepo.ListCandidates(ctx, repositories.ServerFilter{Location: location})
	if err != nil {
		return nil, errors.WrapError(err, "failed to list server candidates")
	}

	eligible := make([]*entities.Server, 0, len(servers))
	for _, server := range servers {
		if server.IsPremiumTier() && callerTier != "premium" {
			continue
		}
		eligible = append(eligible, server)
	}
	return eligible, nil
}

func (r *serverRegistryImpl) AdjustLoad(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	load, err := r.serverRepo.AdjustLoad(ctx, id, delta)
	if err != nil {
		if err == repositories.ErrNotFound {
			return 0, errors.ErrServerNotFound
		}
		return 0, errors.WrapError(err, "failed to adjust server load")
	}
	return load, nil
}

// Reconcile recomputes load = connected-session-count / capacity for every
// server, correcting drift that AdjustLoad's incremental updates accumulate
// over time (e.g. a disconnect that never reached the decrement step).
func (r *serverRegistryImpl) Reconcile(ctx context.Context) (int, error) {
	servers, err := r.serverRepo.ListAll(ctx)
	if err != nil {
		return 0, errors.WrapError(err, "failed to list servers for reconciliation")
	}

	corrected := 0
	for _, server := range servers {
		if server.Capacity <= 0 {
			continue
		}
		count, err := r.sessionRepo.CountConnectedByServer(ctx, server.ID)
		if err != nil {
			logger.Error("failed to count connected sessions for server", err, map[string]interface{}{"server_id": server.ID})
			continue
		}

		actual := float64(count) / float64(server.Capacity)
		if actual > 1 {
			actual = 1
		}
		if actual == server.Load {
			continue
		}

		server.Load = actual
		if err := r.serverRepo.Update(ctx, server); err != nil {
			logger.Error("failed to persist reconciled server load", err, map[string]interface{}{"server_id": server.ID})
			continue
		}
		corrected++
	}

	return corrected, nil
}

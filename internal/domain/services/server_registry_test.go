package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/pkg/errors"
)

func TestServerRegistrySelectPrefersLowerLoadThenPing(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	far := &entities.Server{ID: uuid.New(), Location: "us-east", Tier: "free", Status: "active", Capacity: 10, Load: 0.1, PingMillis: 80}
	near := &entities.Server{ID: uuid.New(), Location: "us-east", Tier: "free", Status: "active", Capacity: 10, Load: 0.1, PingMillis: 20}
	require.NoError(t, serverRepo.Create(ctx, far))
	require.NoError(t, serverRepo.Create(ctx, near))

	picked, err := registry.Select(ctx, "free", "us-east")
	require.NoError(t, err)
	assert.Equal(t, near.ID, picked.ID)
}

func TestServerRegistrySelectExcludesPremiumTierFromFreeCaller(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	premium := &entities.Server{ID: uuid.New(), Location: "eu-west", Tier: "premium", Status: "active", Capacity: 5}
	require.NoError(t, serverRepo.Create(ctx, premium))

	_, err := registry.Select(ctx, "free", "eu-west")
	assert.ErrorIs(t, err, errors.ErrNoCapacity)

	picked, err := registry.Select(ctx, "premium", "eu-west")
	require.NoError(t, err)
	assert.Equal(t, premium.ID, picked.ID)
}

func TestServerRegistrySelectFallsBackWhenLocationHasNoCapacity(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	elsewhere := &entities.Server{ID: uuid.New(), Location: "ap-south", Tier: "free", Status: "active", Capacity: 5}
	require.NoError(t, serverRepo.Create(ctx, elsewhere))

	picked, err := registry.Select(ctx, "free", "us-east")
	require.NoError(t, err)
	assert.Equal(t, elsewhere.ID, picked.ID)
}

func TestServerRegistrySelectExcludesFullServersByExactCount(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	// A capacity of 7 never lands Load back on exactly 1.0 via repeated
	// 1/7 increments, which is exactly why admission must gate on the
	// exact connected count instead of the derived Load field.
	full := &entities.Server{ID: uuid.New(), Location: "us-east", Tier: "free", Status: "active", Capacity: 7}
	require.NoError(t, serverRepo.Create(ctx, full))

	for i := 0; i < 7; i++ {
		require.NoError(t, sessionRepo.Create(ctx, &entities.Session{
			ID:           uuid.New(),
			SubscriberID: uuid.New(),
			ServerID:     full.ID,
			Status:       "connected",
		}))
		full.AdjustLoad(1.0 / 7.0)
	}
	assert.Less(t, full.Load, 1.0, "float accumulation of 1/7 seven times should not reach exactly 1.0")

	_, err := registry.Select(ctx, "free", "us-east")
	assert.ErrorIs(t, err, errors.ErrNoCapacity, "a full server must be excluded even though its derived Load hasn't reached 1.0")
}

func TestServerRegistryAdjustLoadClampsToUnitRange(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	server := &entities.Server{ID: uuid.New(), Tier: "free", Status: "active", Capacity: 2}
	require.NoError(t, serverRepo.Create(ctx, server))

	load, err := registry.AdjustLoad(ctx, server.ID, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, load)

	load, err = registry.AdjustLoad(ctx, server.ID, -5.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, load)
}

func TestServerRegistryReconcileCorrectsDriftedLoad(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)

	server := &entities.Server{ID: uuid.New(), Tier: "free", Status: "active", Capacity: 4, Load: 0.9}
	require.NoError(t, serverRepo.Create(ctx, server))

	require.NoError(t, sessionRepo.Create(ctx, &entities.Session{
		ID: uuid.New(), SubscriberID: uuid.New(), ServerID: server.ID, Status: "connected",
	}))

	corrected, err := registry.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)
	assert.Equal(t, 0.25, server.Load)
}

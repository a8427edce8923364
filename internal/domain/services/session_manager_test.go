package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/errors"
)

// fakeSessionRepo, fakeUsageLogRepo and fakeServerRepo are minimal in-memory
// stand-ins for the repository interfaces, used to drive the real
// SessionManager and ServerRegistry without a database.

type fakeSessionRepo struct {
	byID map[uuid.UUID]*entities.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: map[uuid.UUID]*entities.Session{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entities.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.byID[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entities.Session) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Session, error) {
	for _, s := range r.byID {
		if s.SubscriberID == subscriberID && !s.IsDisconnected() {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSessionRepo) ListStale(ctx context.Context, threshold time.Time) ([]*entities.Session, error) {
	var stale []*entities.Session
	for _, s := range r.byID {
		if s.IsConnected() && s.LastSeenAt.Before(threshold) {
			stale = append(stale, s)
		}
	}
	return stale, nil
}

func (r *fakeSessionRepo) CountConnected(ctx context.Context) (int64, error) {
	var count int64
	for _, s := range r.byID {
		if s.IsConnected() {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) CountConnectedByServer(ctx context.Context, serverID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range r.byID {
		if s.IsConnected() && s.ServerID == serverID {
			count++
		}
	}
	return count, nil
}

type fakeUsageLogRepo struct {
	bySessionID map[uuid.UUID]*entities.UsageLog
}

func newFakeUsageLogRepo() *fakeUsageLogRepo {
	return &fakeUsageLogRepo{bySessionID: map[uuid.UUID]*entities.UsageLog{}}
}

func (r *fakeUsageLogRepo) Create(ctx context.Context, log *entities.UsageLog) error {
	r.bySessionID[log.SessionID] = log
	return nil
}

func (r *fakeUsageLogRepo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.UsageLog, error) {
	log, ok := r.bySessionID[sessionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return log, nil
}

func (r *fakeUsageLogRepo) Update(ctx context.Context, log *entities.UsageLog) error {
	r.bySessionID[log.SessionID] = log
	return nil
}

type fakeServerRepo struct {
	byID        map[uuid.UUID]*entities.Server
	sessionRepo *fakeSessionRepo
}

func newFakeServerRepo(sessionRepo *fakeSessionRepo) *fakeServerRepo {
	return &fakeServerRepo{byID: map[uuid.UUID]*entities.Server{}, sessionRepo: sessionRepo}
}

func (r *fakeServerRepo) Create(ctx context.Context, s *entities.Server) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.byID[s.ID] = s
	return nil
}

func (r *fakeServerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Server, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *fakeServerRepo) Update(ctx context.Context, s *entities.Server) error {
	r.byID[s.ID] = s
	return nil
}

// ListCandidates mirrors the real GORM implementation's admission filter:
// active status, tier/location match, and an exact connected-count-vs-capacity
// comparison rather than the derived Load field.
func (r *fakeServerRepo) ListCandidates(ctx context.Context, filter repositories.ServerFilter) ([]*entities.Server, error) {
	var out []*entities.Server
	for _, s := range r.byID {
		if s.Status != "active" {
			continue
		}
		if filter.Tier != "" && s.Tier != filter.Tier {
			continue
		}
		if filter.Location != "" && s.Location != filter.Location {
			continue
		}
		connected, _ := r.sessionRepo.CountConnectedByServer(ctx, s.ID)
		if s.Capacity > 0 && connected >= int64(s.Capacity) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Load != out[j].Load {
			return out[i].Load < out[j].Load
		}
		if out[i].PingMillis != out[j].PingMillis {
			return out[i].PingMillis < out[j].PingMillis
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *fakeServerRepo) ListAll(ctx context.Context) ([]*entities.Server, error) {
	var out []*entities.Server
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeServerRepo) AdjustLoad(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	s, ok := r.byID[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	s.AdjustLoad(delta)
	return s.Load, nil
}

func TestSessionManagerConnectDisconnectStatus(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	usageLogRepo := newFakeUsageLogRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)
	manager := NewSessionManager(sessionRepo, usageLogRepo, serverRepo, registry)

	server := &entities.Server{
		ID:           uuid.New(),
		Location:     "us-east",
		Tier:         "free",
		EndpointHost: "203.0.113.1",
		EndpointPort: 51820,
		Capacity:     2,
		Status:       "active",
	}
	require.NoError(t, serverRepo.Create(ctx, server))

	subscriberID := uuid.New()
	result, err := manager.Connect(ctx, "free", ConnectRequest{
		SubscriberID: subscriberID,
		Location:     "us-east",
		ClientPubKey: "client-pubkey",
	})
	require.NoError(t, err)
	assert.Equal(t, server.ID, result.Server.ID)
	assert.NotEmpty(t, result.ClientAddress)

	usageLog, err := usageLogRepo.GetBySessionID(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), usageLog.BytesSent)

	// A second connect attempt for the same subscriber is rejected while one
	// session is already active.
	_, err = manager.Connect(ctx, "free", ConnectRequest{SubscriberID: subscriberID, Location: "us-east"})
	assert.ErrorIs(t, err, errors.ErrAlreadyConnected)

	status, err := manager.Status(ctx, subscriberID, nil)
	require.NoError(t, err)
	assert.True(t, status.Session.IsConnected())

	summary, err := manager.Disconnect(ctx, DisconnectRequest{
		SessionID:     result.SessionID,
		SubscriberID:  subscriberID,
		BytesSent:     1024,
		BytesReceived: 2048,
	})
	require.NoError(t, err)
	assert.True(t, summary.Session.IsDisconnected())
	assert.Equal(t, int64(1024+2048), summary.TotalBytes)

	closedLog, err := usageLogRepo.GetBySessionID(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), closedLog.BytesSent)
	assert.Equal(t, int64(2048), closedLog.BytesReceived)

	// Disconnecting an already-disconnected session is idempotent-success:
	// it returns the existing summary rather than erroring.
	again, err := manager.Disconnect(ctx, DisconnectRequest{SessionID: result.SessionID, SubscriberID: subscriberID})
	require.NoError(t, err)
	assert.True(t, again.Session.IsDisconnected())

	// Now that the session is gone, a fresh connect is admitted again.
	second, err := manager.Connect(ctx, "free", ConnectRequest{SubscriberID: subscriberID, Location: "us-east"})
	require.NoError(t, err)
	assert.NotEqual(t, result.SessionID, second.SessionID)
}

func TestSessionManagerConnectRequiresPremiumTier(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	usageLogRepo := newFakeUsageLogRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)
	manager := NewSessionManager(sessionRepo, usageLogRepo, serverRepo, registry)

	_, err := manager.Connect(ctx, "free", ConnectRequest{
		SubscriberID:   uuid.New(),
		RequirePremium: true,
	})
	assert.ErrorIs(t, err, errors.ErrPremiumRequired)
}

func TestSessionManagerDisconnectUnknownSubscriberRejected(t *testing.T) {
	ctx := context.Background()
	sessionRepo := newFakeSessionRepo()
	usageLogRepo := newFakeUsageLogRepo()
	serverRepo := newFakeServerRepo(sessionRepo)
	registry := NewServerRegistry(serverRepo, sessionRepo)
	manager := NewSessionManager(sessionRepo, usageLogRepo, serverRepo, registry)

	server := &entities.Server{ID: uuid.New(), Tier: "free", Capacity: 1, Status: "active", EndpointHost: "203.0.113.1"}
	require.NoError(t, serverRepo.Create(ctx, server))

	owner := uuid.New()
	result, err := manager.Connect(ctx, "free", ConnectRequest{SubscriberID: owner})
	require.NoError(t, err)

	_, err = manager.Disconnect(ctx, DisconnectRequest{SessionID: result.SessionID, SubscriberID: uuid.New()})
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

package services

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// ConnectRequest carries the inputs for admitting a subscriber onto the fleet.
type ConnectRequest struct {
	SubscriberID  uuid.UUID
	Location      string
	ClientPubKey  string
	RequirePremium bool
}

// ConnectResult is the tunnel configuration handed back to the client.
type ConnectResult struct {
	SessionID     uuid.UUID
	Server        *entities.Server
	ClientAddress string
	StartedAt     time.Time
}

// DisconnectRequest carries the inputs for tearing down a session.
type DisconnectRequest struct {
	SessionID     uuid.UUID
	SubscriberID  uuid.UUID
	BytesSent     int64
	BytesReceived int64
}

// SessionSummary is the outcome of a disconnect or a status query.
type SessionSummary struct {
	Session         *entities.Session
	Server          *entities.Server
	DurationSeconds float64
	TotalBytes      int64
	ThroughputMbps  float64
}

// SessionManager is the Session Manager module: the connect/disconnect state
// machine tying identity, entitlement, and server selection together.
type SessionManager interface {
	Connect(ctx context.Context, subscriberTier string, req ConnectRequest) (*ConnectResult, error)
	Disconnect(ctx context.Context, req DisconnectRequest) (*SessionSummary, error)
	Status(ctx context.Context, subscriberID uuid.UUID, sessionID *uuid.UUID) (*SessionSummary, error)

	// ReconcileStale force-disconnects sessions that have gone quiet past the
	// stale threshold, decrementing the server load they were holding.
	ReconcileStale(ctx context.Context, threshold time.Duration) (int, error)
}

type sessionManagerImpl struct {
	sessionRepo   repositories.SessionRepository
	usageLogRepo  repositories.UsageLogRepository
	serverRepo    repositories.ServerRepository
	serverRegistry ServerRegistry
}

// NewSessionManager creates a new SessionManager instance.
func NewSessionManager(
	sessionRepo repositories.SessionRepository,
	usageLogRepo repositories.UsageLogRepository,
	serverRepo repositories.ServerRepository,
	serverRegistry ServerRegistry,
) SessionManager {
	return &sessionManagerImpl{
		sessionRepo:    sessionRepo,
		usageLogRepo:   usageLogRepo,
		serverRepo:     serverRepo,
		serverRegistry: serverRegistry,
	}
}

func (m *sessionManagerImpl) Connect(ctx context.Context, subscriberTier string, req ConnectRequest) (*ConnectResult, error) {
	if req.RequirePremium && subscriberTier != "premium" {
		return nil, errors.ErrPremiumRequired
	}

	if existing, err := m.sessionRepo.GetActiveForSubscriber(ctx, req.SubscriberID); err == nil && existing != nil {
		return nil, errors.ErrAlreadyConnected
	} else if err != nil && err != repositories.ErrNotFound {
		return nil, errors.WrapError(err, "failed to check for an existing session")
	}

	server, err := m.serverRegistry.Select(ctx, subscriberTier, req.Location)
	if err != nil {
		return nil, err
	}

	leased, err := m.sessionRepo.CountConnectedByServer(ctx, server.ID)
	if err != nil {
		return nil, errors.WrapError(err, "failed to count leased addresses")
	}
	clientAddress, err := allocateClientAddress(server, int(leased))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entities.Session{
		SubscriberID:  req.SubscriberID,
		ServerID:      server.ID,
		Status:        "connected",
		TunnelAddress: clientAddress,
		ConnectedAt:   &now,
		LastSeenAt:    now,
	}
	if err := m.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.WrapError(err, "failed to create session")
	}

	if server.Capacity > 0 {
		if _, err := m.serverRegistry.AdjustLoad(ctx, server.ID, 1/float64(server.Capacity)); err != nil {
			logger.Error("failed to increment server load on connect", err, map[string]interface{}{"server_id": server.ID})
		}
	}

	usageLog := &entities.UsageLog{
		SessionID:    session.ID,
		SubscriberID: req.SubscriberID,
		ServerID:     server.ID,
	}
	if err := m.usageLogRepo.Create(ctx, usageLog); err != nil {
		logger.Error("failed to open usage log", err, map[string]interface{}{"session_id": session.ID})
	}

	return &ConnectResult{
		SessionID:     session.ID,
		Server:        server,
		ClientAddress: clientAddress,
		StartedAt:     now,
	}, nil
}

// allocateClientAddress derives a tunnel address from the server's assignable
// pool. It offsets past the already-leased count starting at host .2 of a
// fixed /24-equivalent pool (at most 252 leases, independent of the server's
// capacity). A non-IPv4 endpoint host gets an address computed from the lease
// count alone, with no exhaustion check.
func allocateClientAddress(server *entities.Server, leased int) (string, error) {
	base := net.ParseIP(server.EndpointHost).To4()
	if base == nil {
		return fmt.Sprintf("10.8.%d.%d", (leased/254)%256, (leased%254)+2), nil
	}
	if leased+2 >= 254 {
		return "", errors.ErrAddressExhausted
	}
	octets := strings.Split(base.String(), ".")
	return fmt.Sprintf("10.8.%s.%d", octets[2], leased+2), nil
}

func (m *sessionManagerImpl) Disconnect(ctx context.Context, req DisconnectRequest) (*SessionSummary, error) {
	session, err := m.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, errors.ErrSessionNotFound
		}
		return nil, errors.WrapError(err, "failed to locate session")
	}
	if session.SubscriberID != req.SubscriberID {
		return nil, errors.ErrSessionNotFound
	}
	if session.IsDisconnected() {
		server, _ := m.serverRepo.GetByID(ctx, session.ServerID)
		return m.summarize(session, server), nil
	}

	now := time.Now()
	session.RecordUsage(req.BytesSent, req.BytesReceived, now)
	session.Disconnect(now)
	if err := m.sessionRepo.Update(ctx, session); err != nil {
		return nil, errors.WrapError(err, "failed to update session")
	}

	server, err := m.serverRepo.GetByID(ctx, session.ServerID)
	if err == nil && server.Capacity > 0 {
		if _, err := m.serverRegistry.AdjustLoad(ctx, server.ID, -1/float64(server.Capacity)); err != nil {
			logger.Error("failed to decrement server load on disconnect", err, map[string]interface{}{"server_id": server.ID})
		}
	}

	if usageLog, err := m.usageLogRepo.GetBySessionID(ctx, session.ID); err == nil {
		closed := entities.NewUsageLog(session)
		usageLog.BytesSent = closed.BytesSent
		usageLog.BytesReceived = closed.BytesReceived
		usageLog.DurationSeconds = closed.DurationSeconds
		if err := m.usageLogRepo.Update(ctx, usageLog); err != nil {
			logger.Error("failed to close usage log", err, map[string]interface{}{"session_id": session.ID})
		}
	}

	return m.summarize(session, server), nil
}

func (m *sessionManagerImpl) Status(ctx context.Context, subscriberID uuid.UUID, sessionID *uuid.UUID) (*SessionSummary, error) {
	var session *entities.Session
	var err error
	if sessionID != nil {
		session, err = m.sessionRepo.GetByID(ctx, *sessionID)
		if err == nil && session.SubscriberID != subscriberID {
			return nil, errors.ErrSessionNotFound
		}
	} else {
		session, err = m.sessionRepo.GetActiveForSubscriber(ctx, subscriberID)
	}
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, errors.ErrSessionNotFound
		}
		return nil, errors.WrapError(err, "failed to locate session")
	}

	server, _ := m.serverRepo.GetByID(ctx, session.ServerID)
	return m.summarize(session, server), nil
}

func (m *sessionManagerImpl) summarize(session *entities.Session, server *entities.Server) *SessionSummary {
	var duration float64
	if session.ConnectedAt != nil {
		end := time.Now()
		if session.DisconnectedAt != nil {
			end = *session.DisconnectedAt
		}
		duration = end.Sub(*session.ConnectedAt).Seconds()
	}

	totalBytes := session.BytesSent + session.BytesReceived
	var throughput float64
	if duration > 0 {
		throughput = float64(totalBytes) * 8 / duration / 1e6
	}

	return &SessionSummary{
		Session:         session,
		Server:          server,
		DurationSeconds: duration,
		TotalBytes:      totalBytes,
		ThroughputMbps:  throughput,
	}
}

func (m *sessionManagerImpl) ReconcileStale(ctx context.Context, threshold time.Duration) (int, error) {
	cutoff := time.Now().Add(-threshold)
	stale, err := m.sessionRepo.ListStale(ctx, cutoff)
	if err != nil {
		return 0, errors.WrapError(err, "failed to list stale sessions")
	}

	closed := 0
	for _, session := range stale {
		now := time.Now()
		session.Disconnect(now)
		if err := m.sessionRepo.Update(ctx, session); err != nil {
			logger.Error("failed to force-disconnect stale session", err, map[string]interface{}{"session_id": session.ID})
			continue
		}

		server, err := m.serverRepo.GetByID(ctx, session.ServerID)
		if err == nil && server.Capacity > 0 {
			if _, err := m.serverRegistry.AdjustLoad(ctx, server.ID, -1/float64(server.Capacity)); err != nil {
				logger.Error("failed to decrement server load during stale reconciliation", err, map[string]interface{}{"server_id": server.ID})
			}
		}
		closed++
	}

	return closed, nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	domainservices "github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// defaultPushInterval is the metrics push cadence when the caller doesn't
// override it: one snapshot per second.
const defaultPushInterval = time.Second

// MetricsPushService produces the per-subscriber session snapshot feed and
// the operator aggregate feed consumed by the WebSocket connection manager,
// publishing both through PubSubService so the transport layer stays a
// pure fan-out.
type MetricsPushService struct {
	sessionManager domainservices.SessionManager
	serverRegistry domainservices.ServerRegistry
	subscriberRepo repositories.SubscriberRepository
	sessionRepo    repositories.SessionRepository
	pubSub         *cache.PubSubService
	pushInterval   time.Duration
}

// NewMetricsPushService creates a new metrics push service.
func NewMetricsPushService(
	sessionManager domainservices.SessionManager,
	serverRegistry domainservices.ServerRegistry,
	subscriberRepo repositories.SubscriberRepository,
	sessionRepo repositories.SessionRepository,
	pubSub *cache.PubSubService,
	pushInterval time.Duration,
) *MetricsPushService {
	if pushInterval <= 0 {
		pushInterval = defaultPushInterval
	}
	return &MetricsPushService{
		sessionManager: sessionManager,
		serverRegistry: serverRegistry,
		subscriberRepo: subscriberRepo,
		sessionRepo:    sessionRepo,
		pubSub:         pubSub,
		pushInterval:   pushInterval,
	}
}

// RunSubscriberFeed ticks at the push interval, publishing a session
// snapshot for subscriberID each tick, until ctx is cancelled. A final
// snapshot with status "disconnected" is published before returning, per
// the metrics push close contract.
func (m *MetricsPushService) RunSubscriberFeed(ctx context.Context, subscriberID uuid.UUID) {
	ticker := time.NewTicker(m.pushInterval)
	defer ticker.Stop()

	var prevTotal int64
	var prevTick time.Time

	for {
		select {
		case <-ctx.Done():
			m.publishDisconnected(subscriberID)
			return
		case <-ticker.C:
			summary, err := m.sessionManager.Status(context.Background(), subscriberID, nil)
			if err != nil {
				continue
			}

			now := time.Now()
			var throughput float64
			if !prevTick.IsZero() {
				elapsed := now.Sub(prevTick).Seconds()
				if elapsed > 0 {
					throughput = float64(summary.TotalBytes-prevTotal) / elapsed
				}
			}
			prevTotal = summary.TotalBytes
			prevTick = now

			var latencyMs float64
			var serverLoad float64
			if summary.Server != nil {
				latencyMs = float64(summary.Server.PingMillis)
				serverLoad = summary.Server.Load
			}

			snapshot := cache.SessionSnapshot{
				SessionID:     summary.Session.ID.String(),
				Timestamp:     now,
				BytesSent:     summary.Session.BytesSent,
				BytesReceived: summary.Session.BytesReceived,
				ThroughputBps: throughput,
				LatencyMs:     latencyMs,
				ServerLoad:    serverLoad,
				Status:        summary.Session.Status,
			}

			if err := m.pubSub.PublishSessionSnapshot(context.Background(), subscriberID.String(), snapshot); err != nil {
				logger.Error("failed to publish session snapshot", err, "subscriber_id", subscriberID.String())
			}
		}
	}
}

func (m *MetricsPushService) publishDisconnected(subscriberID uuid.UUID) {
	snapshot := cache.SessionSnapshot{
		Timestamp: time.Now(),
		Status:    "disconnected",
	}
	if err := m.pubSub.PublishSessionSnapshot(context.Background(), subscriberID.String(), snapshot); err != nil {
		logger.Error("failed to publish final disconnected snapshot", err, "subscriber_id", subscriberID.String())
	}
}

// RunOperatorFeed ticks at the push interval, publishing the operator
// aggregate stats tick, until ctx is cancelled.
func (m *MetricsPushService) RunOperatorFeed(ctx context.Context) {
	ticker := time.NewTicker(m.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := m.collectOperatorStats(context.Background())
			if err != nil {
				logger.Error("failed to collect operator stats", err)
				continue
			}
			if err := m.pubSub.PublishOperatorStats(context.Background(), *stats); err != nil {
				logger.Error("failed to publish operator stats", err)
			}
		}
	}
}

func (m *MetricsPushService) collectOperatorStats(ctx context.Context) (*cache.OperatorStats, error) {
	totalSubscribers, err := m.subscriberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeSessions, err := m.sessionRepo.CountConnected(ctx)
	if err != nil {
		return nil, err
	}

	servers, err := m.serverRegistry.List(ctx, repositories.ServerFilter{})
	if err != nil {
		return nil, err
	}

	activeServers := 0
	var alerts []string
	for _, server := range servers {
		if server.Status == "active" {
			activeServers++
		}
		if server.Load >= 0.9 {
			alerts = append(alerts, "server "+server.ID.String()+" load above 90%")
		}
	}

	return &cache.OperatorStats{
		Timestamp:        time.Now(),
		TotalSubscribers: int(totalSubscribers),
		ActiveSessions:   int(activeSessions),
		ActiveServers:    activeServers,
		Alerts:           alerts,
	}, nil
}

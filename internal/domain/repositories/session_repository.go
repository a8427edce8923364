package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// SessionRepository persists VPN session state-machine rows.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error

	// GetActiveForSubscriber returns a non-disconnected session of the
	// subscriber, if any. No unique constraint backs this; if several rows
	// match, one of them is returned.
	GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Session, error)

	// ListStale returns connected sessions whose last-seen timestamp is older
	// than the threshold, for the stale-session reconciliation sweep.
	ListStale(ctx context.Context, threshold time.Time) ([]*entities.Session, error)

	CountConnected(ctx context.Context) (int64, error)
	CountConnectedByServer(ctx context.Context, serverID uuid.UUID) (int64, error)
}

// UsageLogRepository persists closed-session usage records.
type UsageLogRepository interface {
	Create(ctx context.Context, log *entities.UsageLog) error
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.UsageLog, error)
	Update(ctx context.Context, log *entities.UsageLog) error
}

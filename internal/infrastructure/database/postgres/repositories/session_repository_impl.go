package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a GORM-backed SessionRepository.
func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session *entities.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepositoryImpl) Update(ctx context.Context, session *entities.Session) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// GetActiveForSubscriber returns the first row with status <> 'disconnected'
// for the subscriber. Nothing in the schema limits such rows to one.
func (r *sessionRepositoryImpl) GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND status <> ?", subscriberID, "disconnected").
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepositoryImpl) ListStale(ctx context.Context, threshold time.Time) ([]*entities.Session, error) {
	var sessions []*entities.Session
	if err := r.db.WithContext(ctx).
		Where("status = ? AND last_seen_at < ?", "connected", threshold).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list stale sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepositoryImpl) CountConnected(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Session{}).Where("status = ?", "connected").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count connected sessions: %w", err)
	}
	return count, nil
}

func (r *sessionRepositoryImpl) CountConnectedByServer(ctx context.Context, serverID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Session{}).
		Where("status = ? AND server_id = ?", "connected", serverID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count connected sessions by server: %w", err)
	}
	return count, nil
}

type usageLogRepositoryImpl struct {
	db *gorm.DB
}

// NewUsageLogRepository creates a GORM-backed UsageLogRepository.
func NewUsageLogRepository(db *gorm.DB) repositories.UsageLogRepository {
	return &usageLogRepositoryImpl{db: db}
}

func (r *usageLogRepositoryImpl) Create(ctx context.Context, log *entities.UsageLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create usage log: %w", err)
	}
	return nil
}

func (r *usageLogRepositoryImpl) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.UsageLog, error) {
	var log entities.UsageLog
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get usage log: %w", err)
	}
	return &log, nil
}

func (r *usageLogRepositoryImpl) Update(ctx context.Context, log *entities.UsageLog) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return fmt.Errorf("update usage log: %w", err)
	}
	return nil
}

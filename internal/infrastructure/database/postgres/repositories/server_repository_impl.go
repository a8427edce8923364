package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type serverRepositoryImpl struct {
	db *gorm.DB
}

// NewServerRepository creates a GORM-backed ServerRepository.
func NewServerRepository(db *gorm.DB) repositories.ServerRepository {
	return &serverRepositoryImpl{db: db}
}

func (r *serverRepositoryImpl) Create(ctx context.Context, server *entities.Server) error {
	if err := r.db.WithContext(ctx).Create(server).Error; err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return nil
}

func (r *serverRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Server, error) {
	var server entities.Server
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&server).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get server: %w", err)
	}
	return &server, nil
}

func (r *serverRepositoryImpl) Update(ctx context.Context, server *entities.Server) error {
	if err := r.db.WithContext(ctx).Save(server).Error; err != nil {
		return fmt.Errorf("update server: %w", err)
	}
	return nil
}

func (r *serverRepositoryImpl) ListCandidates(ctx context.Context, filter repositories.ServerFilter) ([]*entities.Server, error) {
	query := r.db.WithContext(ctx).Where("status = ?", "active")
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	var servers []*entities.Server
	if err := query.
		Where("(SELECT COUNT(*) FROM sessions WHERE sessions.server_id = servers.id AND sessions.status = 'connected') < servers.capacity").
		Order("load ASC, ping_millis ASC, id ASC").
		Find(&servers).Error; err != nil {
		return nil, fmt.Errorf("list server candidates: %w", err)
	}
	return servers, nil
}

func (r *serverRepositoryImpl) ListAll(ctx context.Context) ([]*entities.Server, error) {
	var servers []*entities.Server
	if err := r.db.WithContext(ctx).Order("location ASC, id ASC").Find(&servers).Error; err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	return servers, nil
}

// AdjustLoad applies delta inside a row-level lock so concurrent connects and
// disconnects against the same server serialize at the database rather than
// racing on a read-modify-write in application code.
func (r *serverRepositoryImpl) AdjustLoad(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	var result float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var server entities.Server
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&server).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repositories.ErrNotFound
			}
			return fmt.Errorf("lock server: %w", err)
		}
		server.AdjustLoad(delta)
		if err := tx.Save(&server).Error; err != nil {
			return fmt.Errorf("save server load: %w", err)
		}
		result = server.Load
		return nil
	})
	return result, err
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type planRepositoryImpl struct {
	db *gorm.DB
}

// NewPlanRepository creates a GORM-backed PlanRepository.
func NewPlanRepository(db *gorm.DB) repositories.PlanRepository {
	return &planRepositoryImpl{db: db}
}

func (r *planRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	var plan entities.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get plan by id: %w", err)
	}
	return &plan, nil
}

func (r *planRepositoryImpl) GetByCode(ctx context.Context, code string) (*entities.Plan, error) {
	var plan entities.Plan
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get plan by code: %w", err)
	}
	return &plan, nil
}

func (r *planRepositoryImpl) ListActive(ctx context.Context) ([]*entities.Plan, error) {
	var plans []*entities.Plan
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("price_cents ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	return plans, nil
}

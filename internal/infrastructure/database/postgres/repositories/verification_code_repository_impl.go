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

type verificationCodeRepositoryImpl struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a GORM-backed VerificationCodeRepository.
func NewVerificationCodeRepository(db *gorm.DB) repositories.VerificationCodeRepository {
	return &verificationCodeRepositoryImpl{db: db}
}

func (r *verificationCodeRepositoryImpl) Create(ctx context.Context, code *entities.VerificationCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}
	return nil
}

func (r *verificationCodeRepositoryImpl) Update(ctx context.Context, code *entities.VerificationCode) error {
	if err := r.db.WithContext(ctx).Save(code).Error; err != nil {
		return fmt.Errorf("update verification code: %w", err)
	}
	return nil
}

// GetActiveForSubscriber returns the most recently issued, unconsumed code for
// the given subscriber and purpose, so a fresh request can supersede it.
func (r *verificationCodeRepositoryImpl) GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID, purpose string) (*entities.VerificationCode, error) {
	var code entities.VerificationCode
	if err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND purpose = ? AND consumed_at IS NULL", subscriberID, purpose).
		Order("created_at DESC").
		First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get active verification code: %w", err)
	}
	return &code, nil
}

func (r *verificationCodeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationCode, error) {
	var code entities.VerificationCode
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get verification code: %w", err)
	}
	return &code, nil
}

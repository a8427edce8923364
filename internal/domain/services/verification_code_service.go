package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/utils"
)

// codeTTL is how long an issued verification code remains usable.
const codeTTL = 15 * time.Minute

// VerificationCodeService is the Verification/Reset Codes module: issuing
// and redeeming short-lived, purpose-bound six-digit codes.
type VerificationCodeService interface {
	// Issue invalidates any outstanding code for (subscriberID, purpose) and
	// returns a freshly generated plaintext code for delivery out of band.
	Issue(ctx context.Context, subscriberID uuid.UUID, purpose string) (string, error)

	// Verify checks a guess against the subscriber's active code for the
	// purpose, consuming it atomically on success.
	Verify(ctx context.Context, subscriberID uuid.UUID, purpose, guess string) error
}

type verificationCodeServiceImpl struct {
	codeRepo repositories.VerificationCodeRepository
}

// NewVerificationCodeService creates a new VerificationCodeService instance.
func NewVerificationCodeService(codeRepo repositories.VerificationCodeRepository) VerificationCodeService {
	return &verificationCodeServiceImpl{codeRepo: codeRepo}
}

func (s *verificationCodeServiceImpl) Issue(ctx context.Context, subscriberID uuid.UUID, purpose string) (string, error) {
	if !entities.IsValidVerificationPurpose(purpose) {
		return "", errors.ErrInvalidInput
	}

	if existing, err := s.codeRepo.GetActiveForSubscriber(ctx, subscriberID, purpose); err == nil && existing != nil {
		existing.Consume(time.Now())
		if err := s.codeRepo.Update(ctx, existing); err != nil {
			return "", errors.WrapError(err, "failed to invalidate prior verification code")
		}
	} else if err != nil && err != repositories.ErrNotFound {
		return "", errors.WrapError(err, "failed to look up prior verification code")
	}

	plainCode, err := generateSixDigitCode()
	if err != nil {
		return "", errors.WrapError(err, "failed to generate verification code")
	}

	hash, err := utils.HashPassword(plainCode)
	if err != nil {
		return "", errors.WrapError(err, "failed to hash verification code")
	}

	code := &entities.VerificationCode{
		SubscriberID: subscriberID,
		Purpose:      purpose,
		CodeHash:     hash,
		ExpiresAt:    time.Now().Add(codeTTL),
	}
	if err := s.codeRepo.Create(ctx, code); err != nil {
		return "", errors.WrapError(err, "failed to persist verification code")
	}

	return plainCode, nil
}

func (s *verificationCodeServiceImpl) Verify(ctx context.Context, subscriberID uuid.UUID, purpose, guess string) error {
	if !entities.IsValidVerificationPurpose(purpose) {
		return errors.ErrInvalidInput
	}

	code, err := s.codeRepo.GetActiveForSubscriber(ctx, subscriberID, purpose)
	if err != nil {
		if err == repositories.ErrNotFound {
			return errors.ErrVerificationCodeInvalid
		}
		return errors.WrapError(err, "failed to look up verification code")
	}

	now := time.Now()
	if code.IsExpired(now) {
		return errors.ErrVerificationCodeExpired
	}
	if code.IsExhausted() {
		return errors.ErrVerificationExhausted
	}

	if err := utils.CheckPassword(guess, code.CodeHash); err != nil {
		code.RecordFailedAttempt()
		if updateErr := s.codeRepo.Update(ctx, code); updateErr != nil {
			return errors.WrapError(updateErr, "failed to record failed verification attempt")
		}
		return errors.ErrVerificationCodeInvalid
	}

	code.Consume(now)
	if err := s.codeRepo.Update(ctx, code); err != nil {
		return errors.WrapError(err, "failed to consume verification code")
	}
	return nil
}

func generateSixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/email"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

const purposeEmailVerify = "email_verify"

// EmailVerificationUseCase handles issuing and redeeming email verification codes.
type EmailVerificationUseCase struct {
	identityService services.IdentityService
	codeService     services.VerificationCodeService
	emailService    email.EmailService
}

// NewEmailVerificationUseCase creates a new EmailVerificationUseCase instance.
func NewEmailVerificationUseCase(identityService services.IdentityService, codeService services.VerificationCodeService, emailService email.EmailService) *EmailVerificationUseCase {
	return &EmailVerificationUseCase{identityService: identityService, codeService: codeService, emailService: emailService}
}

// SendVerificationRequest represents a send-verification-code request.
type SendVerificationRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id" validate:"required"`
}

// SendVerificationResponse represents a send-verification-code response.
type SendVerificationResponse struct {
	Message string `json:"message"`
}

// ExecuteSendVerification issues a fresh email verification code.
func (uc *EmailVerificationUseCase) ExecuteSendVerification(ctx context.Context, req *SendVerificationRequest) (*SendVerificationResponse, error) {
	subscriber, err := uc.identityService.GetByID(ctx, req.SubscriberID)
	if err != nil {
		return nil, err
	}

	if subscriber.IsVerified {
		return &SendVerificationResponse{Message: "Email is already verified"}, nil
	}

	code, err := uc.codeService.Issue(ctx, subscriber.ID, purposeEmailVerify)
	if err != nil {
		return nil, errors.WrapError(err, "failed to issue verification code")
	}

	if uc.emailService != nil {
		if err := uc.emailService.SendVerificationEmail(ctx, subscriber.Email, code); err != nil {
			logger.Error("failed to send verification email", err, "subscriber_id", subscriber.ID.String())
		}
	}

	return &SendVerificationResponse{Message: "Verification code sent successfully"}, nil
}

// VerifyEmailRequest represents an email verification confirmation request.
type VerifyEmailRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id" validate:"required"`
	Code         string    `json:"code" validate:"required,len=6"`
}

// VerifyEmailResponse represents an email verification confirmation response.
type VerifyEmailResponse struct {
	Message string `json:"message"`
}

// ExecuteVerifyEmail redeems a verification code and marks the subscriber verified.
func (uc *EmailVerificationUseCase) ExecuteVerifyEmail(ctx context.Context, req *VerifyEmailRequest) (*VerifyEmailResponse, error) {
	if err := uc.codeService.Verify(ctx, req.SubscriberID, purposeEmailVerify, req.Code); err != nil {
		return nil, err
	}

	if err := uc.identityService.MarkVerified(ctx, req.SubscriberID); err != nil {
		return nil, errors.WrapError(err, "failed to persist verification status")
	}

	return &VerifyEmailResponse{Message: "Email verified successfully"}, nil
}

package auth

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/email"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

const purposePasswordReset = "password_reset"

// PasswordResetUseCase handles issuing a password reset code.
type PasswordResetUseCase struct {
	identityService services.IdentityService
	codeService     services.VerificationCodeService
	emailService    email.EmailService
}

// NewPasswordResetUseCase creates a new PasswordResetUseCase instance.
func NewPasswordResetUseCase(identityService services.IdentityService, codeService services.VerificationCodeService, emailService email.EmailService) *PasswordResetUseCase {
	return &PasswordResetUseCase{identityService: identityService, codeService: codeService, emailService: emailService}
}

// PasswordResetRequest represents a password reset request.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetResponse represents a password reset response.
type PasswordResetResponse struct {
	Message string `json:"message"`
}

// Execute issues a reset code if the email matches a subscriber. The
// response message is identical either way, to avoid email enumeration.
func (uc *PasswordResetUseCase) Execute(ctx context.Context, req *PasswordResetRequest) (*PasswordResetResponse, error) {
	const message = "If an account with that email exists, a password reset code has been sent"

	subscriber, err := uc.identityService.GetByEmail(ctx, req.Email)
	if err != nil {
		return &PasswordResetResponse{Message: message}, nil
	}

	code, err := uc.codeService.Issue(ctx, subscriber.ID, purposePasswordReset)
	if err != nil {
		logger.Error("failed to issue password reset code", err, "subscriber_id", subscriber.ID.String())
		return &PasswordResetResponse{Message: message}, nil
	}

	if uc.emailService != nil {
		if err := uc.emailService.SendPasswordResetEmail(ctx, subscriber.Email, code); err != nil {
			logger.Error("failed to send password reset email", err, "subscriber_id", subscriber.ID.String())
		}
	}

	return &PasswordResetResponse{Message: message}, nil
}

// ConfirmPasswordResetUseCase handles redeeming a password reset code.
type ConfirmPasswordResetUseCase struct {
	identityService services.IdentityService
	codeService     services.VerificationCodeService
}

// NewConfirmPasswordResetUseCase creates a new ConfirmPasswordResetUseCase instance.
func NewConfirmPasswordResetUseCase(identityService services.IdentityService, codeService services.VerificationCodeService) *ConfirmPasswordResetUseCase {
	return &ConfirmPasswordResetUseCase{identityService: identityService, codeService: codeService}
}

// ConfirmPasswordResetRequest represents a password reset confirmation request.
type ConfirmPasswordResetRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6"`
	Password string `json:"password" validate:"required,password"`
}

// ConfirmPasswordResetResponse represents a password reset confirmation response.
type ConfirmPasswordResetResponse struct {
	Message string `json:"message"`
}

// Execute verifies the reset code and, on success, sets the new password.
func (uc *ConfirmPasswordResetUseCase) Execute(ctx context.Context, req *ConfirmPasswordResetRequest) (*ConfirmPasswordResetResponse, error) {
	subscriber, err := uc.identityService.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.ErrVerificationCodeInvalid
	}

	if err := uc.codeService.Verify(ctx, subscriber.ID, purposePasswordReset, req.Code); err != nil {
		return nil, err
	}

	if err := uc.identityService.SetPassword(ctx, subscriber.ID, req.Password); err != nil {
		return nil, errors.WrapError(err, "failed to update password")
	}

	return &ConfirmPasswordResetResponse{Message: "Password has been reset successfully"}, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/auth"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/utils"
)

// IdentityService is the Identity Store module: it owns subscriber
// credentials, profile fields and lifecycle status, and issues the JWTs
// that authenticate every other module's requests.
type IdentityService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, req *LoginRequest, deviceInfo *utils.DeviceInfo, ipAddress string) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutFromAllDevices(ctx context.Context, subscriberID uuid.UUID) error

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error)
	GetByHandle(ctx context.Context, handle string) (*entities.Subscriber, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entities.Subscriber, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPassword(ctx context.Context, id uuid.UUID, newPassword string) error

	SetPremiumHint(ctx context.Context, id uuid.UUID, isPremium bool) error
	MarkVerified(ctx context.Context, id uuid.UUID) error

	IncrementFailedAttempts(ctx context.Context, email string) error
	ResetFailedAttempts(ctx context.Context, email string) error
	IsAccountLocked(ctx context.Context, email string) (bool, error)
}

type identityServiceImpl struct {
	subscriberRepo repositories.SubscriberRepository
	jwtUtils       *utils.JWTUtils
	tokenManager   *auth.TokenManager
	sessionManager *auth.SessionManager
	redisClient    *redis.RedisClient
	passwordHash   func(string) (string, error)
}

// NewIdentityService creates a new IdentityService instance.
func NewIdentityService(
	subscriberRepo repositories.SubscriberRepository,
	jwtUtils *utils.JWTUtils,
	tokenManager *auth.TokenManager,
	sessionManager *auth.SessionManager,
	redisClient *redis.RedisClient,
) IdentityService {
	return &identityServiceImpl{
		subscriberRepo: subscriberRepo,
		jwtUtils:       jwtUtils,
		tokenManager:   tokenManager,
		sessionManager: sessionManager,
		redisClient:    redisClient,
		passwordHash:   utils.HashPassword,
	}
}

// RegisterRequest represents a new subscriber signup.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Handle   string `json:"handle" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest represents subscriber credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents mutable subscriber profile fields.
type UpdateProfileRequest struct {
	Handle *string `json:"handle,omitempty" validate:"omitempty,min=3,max=32"`
}

// AuthResponse represents the result of registration or login.
type AuthResponse struct {
	Subscriber *SubscriberInfo `json:"subscriber"`
	Tokens     *TokenPair      `json:"tokens"`
}

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenResponse represents a refreshed access token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenClaims represents the decoded identity of an authenticated request.
type TokenClaims struct {
	SubscriberID string `json:"subscriber_id"`
	Email        string `json:"email"`
	TokenType    string `json:"token_type"`
}

// SubscriberInfo is the public-facing subscriber shape returned from auth flows.
type SubscriberInfo struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Handle     string    `json:"handle"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	IsPremium  bool      `json:"is_premium"`
	CreatedAt  string    `json:"created_at"`
}

const accessTokenTTL = 15 * time.Minute

func toSubscriberInfo(s *entities.Subscriber) *SubscriberInfo {
	return &SubscriberInfo{
		ID:         s.ID,
		Email:      s.Email,
		Handle:     s.Handle,
		Status:     s.Status,
		IsVerified: s.IsVerified,
		IsPremium:  s.IsPremium,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}

func (s *identityServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	exists, err := s.subscriberRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.WrapError(err, "failed to check subscriber existence")
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	handleTaken, err := s.subscriberRepo.ExistsByHandle(ctx, req.Handle)
	if err != nil {
		return nil, errors.WrapError(err, "failed to check handle existence")
	}
	if handleTaken {
		return nil, errors.ErrHandleExists
	}

	hashedPassword, err := s.passwordHash(req.Password)
	if err != nil {
		return nil, errors.WrapError(err, "failed to hash password")
	}

	subscriber := &entities.Subscriber{
		Email:        req.Email,
		Handle:       req.Handle,
		PasswordHash: hashedPassword,
		Status:       entities.SubscriberStatusActive,
		IsVerified:   false,
		IsPremium:    false,
	}

	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		return nil, errors.WrapError(err, "failed to create subscriber")
	}

	accessToken, refreshToken, err := s.jwtUtils.GenerateTokenPair(subscriber.ID.String(), subscriber.Email, false)
	if err != nil {
		return nil, errors.WrapError(err, "failed to generate tokens")
	}

	return &AuthResponse{
		Subscriber: toSubscriberInfo(subscriber),
		Tokens: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(accessTokenTTL.Seconds()),
		},
	}, nil
}

func (s *identityServiceImpl) Authenticate(ctx context.Context, req *LoginRequest, deviceInfo *utils.DeviceInfo, ipAddress string) (*AuthResponse, error) {
	locked, err := s.IsAccountLocked(ctx, req.Email)
	if err != nil {
		return nil, errors.WrapError(err, "failed to check account lock status")
	}
	if locked {
		return nil, errors.ErrAccountLocked
	}

	// Unknown email and a bad password hash are deliberately indistinguishable
	// to the caller, to avoid leaking which emails have registered accounts.
	subscriber, err := s.subscriberRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.IncrementFailedAttempts(ctx, req.Email)
		return nil, errors.ErrInvalidCredentials
	}

	if err := utils.CheckPassword(req.Password, subscriber.PasswordHash); err != nil {
		s.IncrementFailedAttempts(ctx, req.Email)
		return nil, errors.ErrInvalidCredentials
	}

	s.ResetFailedAttempts(ctx, req.Email)

	if subscriber.IsBanned {
		return nil, errors.ErrAccountBanned
	}
	if !subscriber.IsVerified {
		return nil, errors.ErrSubscriberNotVerified
	}
	if subscriber.IsDisabled() {
		return nil, errors.ErrAccountInactive
	}

	subscriber.Touch(time.Now())
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return nil, errors.WrapError(err, "failed to record subscriber activity")
	}

	session, err := s.sessionManager.CreateSession(ctx, subscriber.ID.String(), deviceInfo.Fingerprint, deviceInfo, ipAddress, "")
	if err != nil {
		return nil, errors.WrapError(err, "failed to create session")
	}

	accessToken, refreshToken, err := s.jwtUtils.GenerateTokenPairWithDevice(
		subscriber.ID.String(), subscriber.Email, false, deviceInfo.Fingerprint, session.ID,
	)
	if err != nil {
		return nil, errors.WrapError(err, "failed to generate tokens")
	}

	return &AuthResponse{
		Subscriber: toSubscriberInfo(subscriber),
		Tokens: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(accessTokenTTL.Seconds()),
		},
	}, nil
}

func (s *identityServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.tokenManager.ValidateTokenWithSession(ctx, refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	subscriber, err := s.subscriberRepo.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	if subscriber.IsDisabled() {
		return nil, errors.ErrAccountInactive
	}

	newRefreshToken, err := s.tokenManager.RotateRefreshToken(ctx, refreshToken, claims.DeviceID, claims.SessionID)
	if err != nil {
		return nil, errors.WrapError(err, "failed to rotate refresh token")
	}

	accessToken, err := s.jwtUtils.GenerateAccessTokenWithDevice(claims.UserID, claims.Email, claims.IsAdmin, claims.DeviceID, claims.SessionID)
	if err != nil {
		return nil, errors.WrapError(err, "failed to generate access token")
	}

	if claims.SessionID != "" {
		s.sessionManager.UpdateSessionActivity(ctx, claims.SessionID)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *identityServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessionManager.InvalidateSession(ctx, sessionID); err != nil {
		return errors.WrapError(err, "failed to invalidate session")
	}
	return nil
}

func (s *identityServiceImpl) LogoutFromAllDevices(ctx context.Context, subscriberID uuid.UUID) error {
	if err := s.sessionManager.InvalidateAllUserSessions(ctx, subscriberID.String()); err != nil {
		return errors.WrapError(err, "failed to invalidate all sessions")
	}
	if err := s.tokenManager.InvalidateUserTokens(ctx, subscriberID.String()); err != nil {
		return errors.WrapError(err, "failed to invalidate tokens")
	}
	return nil
}

func (s *identityServiceImpl) ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.jwtUtils.ValidateAccessToken(token)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	return &TokenClaims{SubscriberID: claims.UserID, Email: claims.Email, TokenType: claims.TokenType}, nil
}

func (s *identityServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscriber, error) {
	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrSubscriberNotFound
	}
	return subscriber, nil
}

func (s *identityServiceImpl) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	subscriber, err := s.subscriberRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrSubscriberNotFound
	}
	return subscriber, nil
}

func (s *identityServiceImpl) GetByHandle(ctx context.Context, handle string) (*entities.Subscriber, error) {
	subscriber, err := s.subscriberRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, errors.ErrSubscriberNotFound
	}
	return subscriber, nil
}

func (s *identityServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entities.Subscriber, error) {
	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrSubscriberNotFound
	}

	if req.Handle != nil && *req.Handle != subscriber.Handle {
		taken, err := s.subscriberRepo.ExistsByHandle(ctx, *req.Handle)
		if err != nil {
			return nil, errors.WrapError(err, "failed to check handle existence")
		}
		if taken {
			return nil, errors.ErrHandleExists
		}
		subscriber.Handle = *req.Handle
	}

	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return nil, errors.WrapError(err, "failed to update subscriber profile")
	}
	return subscriber, nil
}

func (s *identityServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !entities.IsValidSubscriberStatus(status) {
		return errors.NewValidationError("status", "invalid subscriber status")
	}

	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return errors.ErrSubscriberNotFound
	}
	subscriber.Status = status
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return errors.WrapError(err, "failed to update subscriber status")
	}
	return nil
}

func (s *identityServiceImpl) SetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return errors.ErrSubscriberNotFound
	}

	hashedPassword, err := s.passwordHash(newPassword)
	if err != nil {
		return errors.WrapError(err, "failed to hash password")
	}
	subscriber.PasswordHash = hashedPassword
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return errors.WrapError(err, "failed to update password")
	}
	return nil
}

func (s *identityServiceImpl) MarkVerified(ctx context.Context, id uuid.UUID) error {
	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return errors.ErrSubscriberNotFound
	}
	subscriber.IsVerified = true
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return errors.WrapError(err, "failed to mark subscriber verified")
	}
	return nil
}

func (s *identityServiceImpl) SetPremiumHint(ctx context.Context, id uuid.UUID, isPremium bool) error {
	subscriber, err := s.subscriberRepo.GetByID(ctx, id)
	if err != nil {
		return errors.ErrSubscriberNotFound
	}
	subscriber.SetPremiumHint(isPremium)
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return errors.WrapError(err, "failed to update premium hint")
	}
	return nil
}

// IncrementFailedAttempts tracks failed login attempts per email in Redis and
// locks the account for 30 minutes after 5 consecutive failures.
func (s *identityServiceImpl) IncrementFailedAttempts(ctx context.Context, email string) error {
	key := fmt.Sprintf("failed_attempts:%s", email)

	attempts, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to increment failed attempts: %w", err)
	}
	if attempts == 1 {
		s.redisClient.Expire(ctx, key, 15*time.Minute)
	}

	if attempts >= 5 {
		lockKey := fmt.Sprintf("account_locked:%s", email)
		if err := s.redisClient.Set(ctx, lockKey, "1", 30*time.Minute); err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
	}
	return nil
}

func (s *identityServiceImpl) ResetFailedAttempts(ctx context.Context, email string) error {
	key := fmt.Sprintf("failed_attempts:%s", email)
	if err := s.redisClient.Del(ctx, key); err != nil {
		return fmt.Errorf("failed to reset failed attempts: %w", err)
	}
	lockKey := fmt.Sprintf("account_locked:%s", email)
	if err := s.redisClient.Del(ctx, lockKey); err != nil {
		return fmt.Errorf("failed to remove account lock: %w", err)
	}
	return nil
}

func (s *identityServiceImpl) IsAccountLocked(ctx context.Context, email string) (bool, error) {
	lockKey := fmt.Sprintf("account_locked:%s", email)
	exists, err := s.redisClient.Exists(ctx, lockKey)
	if err != nil {
		return false, fmt.Errorf("failed to check account lock status: %w", err)
	}
	return exists, nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/application/dto"
	"github.com/fenwicknet/vpnctl/internal/application/usecases/auth"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/middleware"
	"github.com/fenwicknet/vpnctl/pkg/utils"
	"github.com/fenwicknet/vpnctl/pkg/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	registerUseCase             *auth.RegisterUseCase
	loginUseCase                *auth.LoginUseCase
	refreshUseCase              *auth.RefreshTokenUseCase
	logoutUseCase               *auth.LogoutUseCase
	passwordResetUseCase        *auth.PasswordResetUseCase
	confirmPasswordResetUseCase *auth.ConfirmPasswordResetUseCase
	emailVerificationUseCase    *auth.EmailVerificationUseCase
	getProfileUseCase           *auth.GetProfileUseCase
	getSessionsUseCase          *auth.GetSessionsUseCase
	jwtUtils                    *utils.JWTUtils
	authValidator               *validator.AuthValidator
	rateLimiter                 *middleware.AuthRateLimiter
	suspiciousDetector          *middleware.SuspiciousActivityDetector
	protectionConfig            *middleware.ProtectionConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(
	registerUseCase *auth.RegisterUseCase,
	loginUseCase *auth.LoginUseCase,
	refreshUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUseCase,
	passwordResetUseCase *auth.PasswordResetUseCase,
	confirmPasswordResetUseCase *auth.ConfirmPasswordResetUseCase,
	emailVerificationUseCase *auth.EmailVerificationUseCase,
	getProfileUseCase *auth.GetProfileUseCase,
	getSessionsUseCase *auth.GetSessionsUseCase,
	jwtUtils *utils.JWTUtils,
	authValidator *validator.AuthValidator,
	rateLimiter *middleware.AuthRateLimiter,
	suspiciousDetector *middleware.SuspiciousActivityDetector,
	protectionConfig *middleware.ProtectionConfig,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:             registerUseCase,
		loginUseCase:                loginUseCase,
		refreshUseCase:              refreshUseCase,
		logoutUseCase:               logoutUseCase,
		passwordResetUseCase:        passwordResetUseCase,
		confirmPasswordResetUseCase: confirmPasswordResetUseCase,
		emailVerificationUseCase:    emailVerificationUseCase,
		getProfileUseCase:           getProfileUseCase,
		getSessionsUseCase:          getSessionsUseCase,
		jwtUtils:                    jwtUtils,
		authValidator:               authValidator,
		rateLimiter:                 rateLimiter,
		suspiciousDetector:          suspiciousDetector,
		protectionConfig:            protectionConfig,
	}
}

func subscriberDTO(s *services.SubscriberInfo) *dto.SubscriberDTO {
	return &dto.SubscriberDTO{
		ID:         s.ID.String(),
		Email:      s.Email,
		Handle:     s.Handle,
		IsVerified: s.IsVerified,
		IsPremium:  s.IsPremium,
		CreatedAt:  s.CreatedAt,
	}
}

// Register handles subscriber registration
// @Summary Register a new subscriber
// @Description Register a new subscriber with email, handle, and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequestDTO true "Registration request"
// @Success 201 {object} dto.AuthResponseDTO
// @Failure 400 {object} dto.AuthResponseDTO
// @Failure 409 {object} dto.AuthResponseDTO
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.rateLimiter.RateLimit("register")(c)
	if c.IsAborted() {
		return
	}

	if err := h.suspiciousDetector.CheckSuspiciousActivity(c); err != nil {
		utils.Error(c, err)
		return
	}

	var req dto.RegisterRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	validationReq := &validator.RegistrationRequest{
		Email:    req.Email,
		Handle:   req.Handle,
		Password: req.Password,
	}

	if err := h.authValidator.ValidateRegistrationRequest(validationReq); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	response, err := h.registerUseCase.Execute(c.Request.Context(), &auth.RegisterRequest{
		Email:    req.Email,
		Handle:   req.Handle,
		Password: req.Password,
	})
	if err != nil {
		middleware.RecordSuspiciousEvent(c.Request.Context(), h.protectionConfig, c.ClientIP())
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, dto.NewAuthResponseDTO(
		subscriberDTO(response.Subscriber),
		&dto.TokensDTO{
			AccessToken:  response.Tokens.AccessToken,
			RefreshToken: response.Tokens.RefreshToken,
			ExpiresIn:    response.Tokens.ExpiresIn,
		},
	))
}

// Login handles subscriber login
// @Summary Authenticate subscriber
// @Description Authenticate subscriber with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequestDTO true "Login request"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 401 {object} dto.AuthResponseDTO
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.rateLimiter.RateLimit("login")(c)
	if c.IsAborted() {
		return
	}

	if err := h.suspiciousDetector.CheckSuspiciousActivity(c); err != nil {
		utils.Error(c, err)
		return
	}

	var req dto.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	if err := h.authValidator.ValidateLoginRequest(&validator.LoginRequest{Email: req.Email, Password: req.Password}); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	clientIP := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")

	response, err := h.loginUseCase.Execute(c.Request.Context(), &auth.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: clientIP,
		UserAgent: userAgent,
	})
	if err != nil {
		middleware.RecordSuspiciousEvent(c.Request.Context(), h.protectionConfig, clientIP)
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.NewAuthResponseDTO(
		subscriberDTO(response.Subscriber),
		&dto.TokensDTO{
			AccessToken:  response.Tokens.AccessToken,
			RefreshToken: response.Tokens.RefreshToken,
			ExpiresIn:    response.Tokens.ExpiresIn,
		},
	))
}

// RefreshToken handles access token refresh
// @Summary Refresh access token
// @Description Refresh access token using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequestDTO true "Refresh token request"
// @Success 200 {object} dto.TokenResponseDTO
// @Failure 401 {object} dto.TokenResponseDTO
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	h.rateLimiter.RateLimit("refresh")(c)
	if c.IsAborted() {
		return
	}

	var req dto.RefreshTokenRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	if err := h.authValidator.ValidateRefreshTokenRequest(&validator.RefreshTokenRequest{RefreshToken: req.RefreshToken}); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	response, err := h.refreshUseCase.Execute(c.Request.Context(), &auth.RefreshTokenRequest{RefreshToken: req.RefreshToken})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.NewTokenResponseDTO(response.AccessToken, response.RefreshToken, response.ExpiresIn))
}

// Logout handles subscriber logout
// @Summary Logout subscriber
// @Description Logout subscriber and invalidate the current (or all) sessions
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body dto.LogoutRequestDTO false "Logout request"
// @Success 200 {object} dto.LogoutResponseDTO
// @Failure 401 {object} dto.LogoutResponseDTO
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.rateLimiter.RateLimit("logout")(c)
	if c.IsAborted() {
		return
	}

	token, claims, ok := h.requireToken(c)
	if !ok {
		return
	}

	var logoutReq dto.LogoutRequestDTO
	_ = c.ShouldBindJSON(&logoutReq)

	if err := h.authValidator.ValidateLogoutRequest(&validator.LogoutRequest{Token: token, LogoutAll: logoutReq.LogoutAll}); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID in token")
		return
	}

	response, err := h.logoutUseCase.Execute(c.Request.Context(), &auth.LogoutRequest{
		SubscriberID: subscriberID,
		Token:        token,
		LogoutAll:    logoutReq.LogoutAll,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, response.Message)
}

// GetProfile handles getting a subscriber's profile
// @Summary Get subscriber profile
// @Description Get the current subscriber's profile information
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UserProfileResponseDTO
// @Failure 401 {object} dto.ErrorDTO
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	h.rateLimiter.RateLimit("get-profile")(c)
	if c.IsAborted() {
		return
	}

	_, claims, ok := h.requireToken(c)
	if !ok {
		return
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID in token")
		return
	}

	response, err := h.getProfileUseCase.Execute(c.Request.Context(), &auth.GetProfileRequest{SubscriberID: subscriberID})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.NewUserProfileResponseDTO(response.Subscriber))
}

// PasswordReset handles a password reset request
// @Summary Request password reset
// @Description Send a password reset code to the subscriber's email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequestDTO true "Password reset request"
// @Success 200 {object} dto.MessageResponseDTO
// @Router /api/v1/auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	h.rateLimiter.RateLimit("password-reset")(c)
	if c.IsAborted() {
		return
	}

	if err := h.suspiciousDetector.CheckSuspiciousActivity(c); err != nil {
		utils.Error(c, err)
		return
	}

	var req dto.ResetPasswordRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	if err := h.authValidator.ValidatePasswordResetRequest(&validator.PasswordResetRequest{Email: req.Email}); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	response, err := h.passwordResetUseCase.Execute(c.Request.Context(), &auth.PasswordResetRequest{Email: req.Email})
	if err != nil {
		middleware.RecordSuspiciousEvent(c.Request.Context(), h.protectionConfig, c.ClientIP())
		utils.Error(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, response.Message)
}

// ConfirmPasswordReset handles password reset confirmation
// @Summary Confirm password reset
// @Description Reset the subscriber's password using the emailed reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPasswordResetRequestDTO true "Password reset confirmation"
// @Success 200 {object} dto.MessageResponseDTO
// @Failure 400 {object} dto.ErrorDTO
// @Router /api/v1/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	h.rateLimiter.RateLimit("password-reset-confirm")(c)
	if c.IsAborted() {
		return
	}

	if err := h.suspiciousDetector.CheckSuspiciousActivity(c); err != nil {
		utils.Error(c, err)
		return
	}

	var req dto.ConfirmPasswordResetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	validationReq := &validator.ConfirmPasswordResetRequest{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
	}

	if err := h.authValidator.ValidateConfirmPasswordResetRequest(validationReq); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	response, err := h.confirmPasswordResetUseCase.Execute(c.Request.Context(), &auth.ConfirmPasswordResetRequest{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, response.Message)
}

// SendEmailVerification handles sending an email verification code
// @Summary Send email verification code
// @Description Send an email verification code to the current subscriber
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.MessageResponseDTO
// @Failure 401 {object} dto.ErrorDTO
// @Router /api/v1/auth/verify/send [post]
func (h *AuthHandler) SendEmailVerification(c *gin.Context) {
	h.rateLimiter.RateLimit("send-verification")(c)
	if c.IsAborted() {
		return
	}

	_, claims, ok := h.requireToken(c)
	if !ok {
		return
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID in token")
		return
	}

	response, err := h.emailVerificationUseCase.ExecuteSendVerification(c.Request.Context(), &auth.SendVerificationRequest{SubscriberID: subscriberID})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, response.Message)
}

// VerifyEmail handles email verification
// @Summary Verify email
// @Description Verify the subscriber's email using the emailed verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body dto.VerifyEmailRequestDTO true "Email verification request"
// @Success 200 {object} dto.VerifyEmailResponseDTO
// @Failure 400 {object} dto.ErrorDTO
// @Router /api/v1/auth/verify [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	h.rateLimiter.RateLimit("verify-email")(c)
	if c.IsAborted() {
		return
	}

	if err := h.suspiciousDetector.CheckSuspiciousActivity(c); err != nil {
		utils.Error(c, err)
		return
	}

	_, claims, ok := h.requireToken(c)
	if !ok {
		return
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID in token")
		return
	}

	var req dto.VerifyEmailRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	if err := h.authValidator.ValidateVerifyEmailRequest(&validator.VerifyEmailRequest{Code: req.Code}); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	response, err := h.emailVerificationUseCase.ExecuteVerifyEmail(c.Request.Context(), &auth.VerifyEmailRequest{
		SubscriberID: subscriberID,
		Code:         req.Code,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.NewVerifyEmailResponseDTO(response.Message, true))
}

// GetSessions handles listing a subscriber's active login sessions
// @Summary Get subscriber sessions
// @Description Get all active login sessions for the current subscriber
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SessionsResponseDTO
// @Failure 401 {object} dto.ErrorDTO
// @Router /api/v1/auth/sessions [get]
func (h *AuthHandler) GetSessions(c *gin.Context) {
	h.rateLimiter.RateLimit("get-sessions")(c)
	if c.IsAborted() {
		return
	}

	_, claims, ok := h.requireToken(c)
	if !ok {
		return
	}

	subscriberID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID in token")
		return
	}

	response, err := h.getSessionsUseCase.Execute(c.Request.Context(), &auth.GetSessionsRequest{SubscriberID: subscriberID})
	if err != nil {
		utils.Error(c, err)
		return
	}

	sessions := make([]*dto.SessionDTO, 0, len(response.Sessions))
	for _, s := range response.Sessions {
		sessionDTO := &dto.SessionDTO{
			ID:           s.ID,
			IPAddress:    s.IPAddress,
			LastActivity: s.LastActivity.Format(time.RFC3339),
			CreatedAt:    s.CreatedAt.Format(time.RFC3339),
			ExpiresAt:    s.ExpiresAt.Format(time.RFC3339),
			IsActive:     s.IsActive,
		}
		if s.DeviceInfo != nil {
			sessionDTO.DeviceInfo = &dto.DeviceInfoDTO{
				Fingerprint: s.DeviceInfo.Fingerprint,
				Platform:    s.DeviceInfo.Platform,
				Device:      s.DeviceInfo.Device,
				Browser:     s.DeviceInfo.Browser,
			}
		}
		sessions = append(sessions, sessionDTO)
	}

	utils.Success(c, http.StatusOK, dto.NewSessionsResponseDTO(sessions))
}

// requireToken extracts and validates the bearer token from the Authorization header.
func (h *AuthHandler) requireToken(c *gin.Context) (string, *utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.Unauthorized(c, "Authorization header is required")
		return "", nil, false
	}

	token, err := utils.ExtractTokenFromHeader(authHeader)
	if err != nil {
		utils.Unauthorized(c, "Invalid authorization header format")
		return "", nil, false
	}

	claims, err := h.jwtUtils.ValidateToken(token)
	if err != nil {
		utils.Unauthorized(c, "Invalid token")
		return "", nil, false
	}

	return token, claims, true
}

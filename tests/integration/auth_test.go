package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fenwicknet/vpnctl/internal/application/usecases/auth"
	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	domainservices "github.com/fenwicknet/vpnctl/internal/domain/services"
	infraauth "github.com/fenwicknet/vpnctl/internal/infrastructure/auth"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/email"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/middleware"
	"github.com/fenwicknet/vpnctl/pkg/utils"
	"github.com/fenwicknet/vpnctl/pkg/validator"
)

// fakeVerificationCodeRepository is a minimal in-memory stand-in for
// repositories.VerificationCodeRepository, mirroring fakeSubscriberRepo's style.
type fakeVerificationCodeRepository struct {
	byID map[uuid.UUID]*entities.VerificationCode
}

func (r *fakeVerificationCodeRepository) Create(ctx context.Context, code *entities.VerificationCode) error {
	r.byID[code.ID] = code
	return nil
}

func (r *fakeVerificationCodeRepository) Update(ctx context.Context, code *entities.VerificationCode) error {
	r.byID[code.ID] = code
	return nil
}

func (r *fakeVerificationCodeRepository) GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID, purpose string) (*entities.VerificationCode, error) {
	var active *entities.VerificationCode
	for _, c := range r.byID {
		if c.SubscriberID != subscriberID || c.Purpose != purpose || c.IsConsumed() {
			continue
		}
		if active == nil || c.CreatedAt.After(active.CreatedAt) {
			active = c
		}
	}
	if active == nil {
		return nil, repositories.ErrNotFound
	}
	return active, nil
}

func (r *fakeVerificationCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationCode, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

// AuthIntegrationTestSuite exercises the registration, login, password
// reset and email verification flows end to end through AuthHandler,
// backed by real domain services and a real (miniredis) Redis client.
type AuthIntegrationTestSuite struct {
	suite.Suite
	mr           *miniredis.Miniredis
	router       *gin.Engine
	subscriberRe *fakeSubscriberRepo
	codeRepo     *fakeVerificationCodeRepository
	emailService *email.MockEmailService
}

func (suite *AuthIntegrationTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.mr = mr

	redisClient := &redis.RedisClient{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}

	suite.subscriberRe = &fakeSubscriberRepo{byID: map[uuid.UUID]*entities.Subscriber{}}
	suite.codeRepo = &fakeVerificationCodeRepository{byID: map[uuid.UUID]*entities.VerificationCode{}}
	suite.emailService = email.NewMockEmailService()

	jwtUtils := utils.NewJWTUtilsWithoutBlacklist("test-secret", time.Hour, time.Hour*24*7)
	sessionManager := infraauth.NewSessionManager(redisClient, "test-session", jwtUtils)
	blacklist := infraauth.NewRedisTokenBlacklist(redisClient, "test-blacklist")
	tokenManager := infraauth.NewTokenManager(jwtUtils, blacklist, sessionManager)

	identityService := domainservices.NewIdentityService(suite.subscriberRe, jwtUtils, tokenManager, sessionManager, redisClient)
	codeService := domainservices.NewVerificationCodeService(suite.codeRepo)

	registerUseCase := auth.NewRegisterUseCase(identityService)
	loginUseCase := auth.NewLoginUseCase(identityService, jwtUtils)
	refreshUseCase := auth.NewRefreshTokenUseCase(identityService)
	logoutUseCase := auth.NewLogoutUseCase(identityService, jwtUtils)
	passwordResetUseCase := auth.NewPasswordResetUseCase(identityService, codeService, suite.emailService)
	confirmPasswordResetUseCase := auth.NewConfirmPasswordResetUseCase(identityService, codeService)
	emailVerificationUseCase := auth.NewEmailVerificationUseCase(identityService, codeService, suite.emailService)
	getProfileUseCase := auth.NewGetProfileUseCase(identityService)
	getSessionsUseCase := auth.NewGetSessionsUseCase(sessionManager)

	authValidator := validator.NewAuthValidator()
	rateLimiter := middleware.NewAuthRateLimiter(redisClient)
	suspiciousDetector := middleware.NewSuspiciousActivityDetector(redisClient)

	authHandler := handlers.NewAuthHandler(
		registerUseCase, loginUseCase, refreshUseCase, logoutUseCase,
		passwordResetUseCase, confirmPasswordResetUseCase, emailVerificationUseCase,
		getProfileUseCase, getSessionsUseCase,
		jwtUtils, authValidator, rateLimiter, suspiciousDetector, nil,
	)

	suite.router = gin.New()
	authGroup := suite.router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/profile", authHandler.GetProfile)
		authGroup.POST("/password-reset", authHandler.PasswordReset)
		authGroup.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		authGroup.POST("/verify/send", authHandler.SendEmailVerification)
		authGroup.POST("/verify", authHandler.VerifyEmail)
		authGroup.GET("/sessions", authHandler.GetSessions)
	}
}

func (suite *AuthIntegrationTestSuite) TearDownTest() {
	suite.mr.Close()
}

func (suite *AuthIntegrationTestSuite) doJSON(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "vpnctl-integration-test/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthIntegrationTestSuite) TestRegistrationFlow() {
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "pat@example.com",
		"handle":   "patvpn",
		"password": "Sup3rSecret!",
	}, "")

	suite.Equal(http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	inner := data["data"].(map[string]interface{})
	suite.Equal("pat@example.com", inner["subscriber"].(map[string]interface{})["email"])
	suite.NotEmpty(inner["tokens"].(map[string]interface{})["access_token"])
}

func (suite *AuthIntegrationTestSuite) registerSubscriber(emailAddr, handle, password string) {
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    emailAddr,
		"handle":   handle,
		"password": password,
	}, "")
	require.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *AuthIntegrationTestSuite) TestLoginFlow() {
	suite.registerSubscriber("login@example.com", "loginvpn", "Sup3rSecret!")

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "Sup3rSecret!",
	}, "")

	suite.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	inner := data["data"].(map[string]interface{})
	suite.NotEmpty(inner["tokens"].(map[string]interface{})["access_token"])
}

func (suite *AuthIntegrationTestSuite) TestLoginFlowInvalidPassword() {
	suite.registerSubscriber("badpass@example.com", "badpassvpn", "Sup3rSecret!")

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "badpass@example.com",
		"password": "wrong-password",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthIntegrationTestSuite) TestTokenRefreshFlow() {
	suite.registerSubscriber("refresh@example.com", "refreshvpn", "Sup3rSecret!")

	loginResp := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "refresh@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(suite.T(), http.StatusOK, loginResp.Code)

	var loginBody map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(loginResp.Body.Bytes(), &loginBody))
	tokens := loginBody["data"].(map[string]interface{})["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	refreshToken := tokens["refresh_token"].(string)

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, "")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthIntegrationTestSuite) TestPasswordResetFlow() {
	suite.registerSubscriber("reset@example.com", "resetvpn", "OldSecret1!")

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/password-reset", map[string]string{
		"email": "reset@example.com",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	emails := suite.emailService.FindEmailByRecipient("reset@example.com")
	require.Len(suite.T(), emails, 1)
	code := emails[0].Body[len("Reset token: "):]

	confirmResp := suite.doJSON(http.MethodPost, "/api/v1/auth/password-reset/confirm", map[string]string{
		"email":    "reset@example.com",
		"code":     code,
		"password": "NewSecret1!",
	}, "")
	suite.Equal(http.StatusOK, confirmResp.Code)

	loginResp := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "reset@example.com",
		"password": "NewSecret1!",
	}, "")
	suite.Equal(http.StatusOK, loginResp.Code)
}

func (suite *AuthIntegrationTestSuite) TestEmailVerificationFlow() {
	regResp := suite.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "verify@example.com",
		"handle":   "verifyvpn",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(suite.T(), http.StatusCreated, regResp.Code)

	var regBody map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(regResp.Body.Bytes(), &regBody))
	tokens := regBody["data"].(map[string]interface{})["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)

	sendResp := suite.doJSON(http.MethodPost, "/api/v1/auth/verify/send", nil, accessToken)
	suite.Equal(http.StatusOK, sendResp.Code)

	emails := suite.emailService.FindEmailByRecipient("verify@example.com")
	require.Len(suite.T(), emails, 1)
	code := emails[0].Body[len("Verification code: "):]

	verifyResp := suite.doJSON(http.MethodPost, "/api/v1/auth/verify", map[string]string{
		"code": code,
	}, accessToken)
	suite.Equal(http.StatusOK, verifyResp.Code)

	profileResp := suite.doJSON(http.MethodGet, "/api/v1/auth/profile", nil, accessToken)
	suite.Equal(http.StatusOK, profileResp.Code)

	var profileBody map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(profileResp.Body.Bytes(), &profileBody))
	profile := profileBody["data"].(map[string]interface{})["data"].(map[string]interface{})
	suite.Equal(true, profile["is_verified"])
}

func (suite *AuthIntegrationTestSuite) TestGetSessionsFlow() {
	suite.registerSubscriber("sessions@example.com", "sessionsvpn", "Sup3rSecret!")

	loginResp := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "sessions@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(suite.T(), http.StatusOK, loginResp.Code)

	var loginBody map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(loginResp.Body.Bytes(), &loginBody))
	tokens := loginBody["data"].(map[string]interface{})["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)

	w := suite.doJSON(http.MethodGet, "/api/v1/auth/sessions", nil, accessToken)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthIntegrationTestSuite) TestLogoutFlow() {
	suite.registerSubscriber("logout@example.com", "logoutvpn", "Sup3rSecret!")

	loginResp := suite.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "logout@example.com",
		"password": "Sup3rSecret!",
	}, "")
	require.Equal(suite.T(), http.StatusOK, loginResp.Code)

	var loginBody map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(loginResp.Body.Bytes(), &loginBody))
	tokens := loginBody["data"].(map[string]interface{})["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/logout", map[string]bool{}, accessToken)
	suite.Equal(http.StatusOK, w.Code)
}

func TestAuthIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthIntegrationTestSuite))
}

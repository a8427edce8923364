package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/application/services"
	"github.com/fenwicknet/vpnctl/internal/application/usecases/auth"
	"github.com/fenwicknet/vpnctl/internal/application/usecases/payment"
	"github.com/fenwicknet/vpnctl/internal/application/usecases/vpn"
	domainservices "github.com/fenwicknet/vpnctl/internal/domain/services"
	vpnauth "github.com/fenwicknet/vpnctl/internal/infrastructure/auth"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/postgres"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/postgres/repositories"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/email"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/stripe"
	infrawebsocket "github.com/fenwicknet/vpnctl/internal/infrastructure/websocket"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/middleware"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/routes"
	"github.com/fenwicknet/vpnctl/pkg/config"
	"github.com/fenwicknet/vpnctl/pkg/logger"
	"github.com/fenwicknet/vpnctl/pkg/utils"
	"github.com/fenwicknet/vpnctl/pkg/validator"
)

// Server represents the HTTP server
type Server struct {
	config           *config.Config
	engine           *gin.Engine
	server           *http.Server
	db               *gorm.DB
	redisClient      *redis.RedisClient
	jwtUtils         *utils.JWTUtils
	middlewareConfig *middleware.MiddlewareConfig
	protectionConfig *middleware.ProtectionConfig
	jobsService      *services.MonitoringJobsService
	metricsCancel    context.CancelFunc
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.RedisClient) *Server {
	jwtUtils := utils.NewJWTUtilsWithoutBlacklist(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	middlewareConfig := middleware.LoadMiddlewareConfig(cfg, redisClient.GetClient(), jwtUtils)

	protectionRateLimiter := cache.NewRateLimiter(redisClient)
	protectionBanStore := cache.NewBanStore(redisClient)
	protectionConfig := middleware.LoadProtectionConfig(cfg, protectionRateLimiter, protectionBanStore)

	engine := gin.New()

	// 1. Security middleware (first line of defense)
	engine.Use(middleware.Security(middlewareConfig.Security))

	// 2. CORS middleware
	engine.Use(middleware.CORS(middlewareConfig.CORS))

	// 3. Error handling middleware (for panic recovery)
	engine.Use(middleware.ErrorHandler(middlewareConfig.ErrorHandler))

	// 4. Request ID middleware
	engine.Use(middleware.RequestID(middlewareConfig.Logging.RequestIDHeader))

	// 5. Logging middleware
	engine.Use(middleware.Logging(middlewareConfig.Logging))

	// 6. Protection layer: ban check, DDoS count, endpoint rate limit, global caps
	engine.Use(middleware.Protection(protectionConfig))

	// 6b. Per-path / per-subscriber-tier rate limiting
	engine.Use(middleware.RateLimiter(middlewareConfig.RateLimit))

	// 7. Validation middleware
	engine.Use(middleware.Validation(middlewareConfig.Validation))

	// 8. Authentication middleware
	engine.Use(middleware.Auth(middlewareConfig.Auth))

	server := &Server{
		config:           cfg,
		engine:           engine,
		db:               db,
		redisClient:      redisClient,
		jwtUtils:         jwtUtils,
		middlewareConfig: middlewareConfig,
		protectionConfig: protectionConfig,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.App.Port),
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Infof("Starting HTTP server on port %d", s.config.App.Port)

	s.SetupRoutes()

	if s.jobsService != nil {
		if err := s.jobsService.Start(context.Background()); err != nil {
			logger.Error("failed to start monitoring background jobs", err)
		}
	}

	// Legacy bare health check, kept for load balancers probing the root path
	s.engine.GET("/health", s.healthCheck)
	s.engine.GET("/health/db", s.databaseHealthCheck)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server...")

	if s.metricsCancel != nil {
		s.metricsCancel()
	}

	if s.jobsService != nil {
		if err := s.jobsService.Stop(); err != nil {
			logger.Error("failed to stop monitoring background jobs", err)
		}
	}

	return s.server.Shutdown(ctx)
}

// GetEngine returns the Gin engine
func (s *Server) GetEngine() *gin.Engine {
	return s.engine
}

// GetJWTUtils returns the JWT utilities instance
func (s *Server) GetJWTUtils() *utils.JWTUtils {
	return s.jwtUtils
}

// GetRedis returns the Redis client wrapper
func (s *Server) GetRedis() *redis.RedisClient {
	return s.redisClient
}

// GetMiddlewareConfig returns the middleware configuration
func (s *Server) GetMiddlewareConfig() *middleware.MiddlewareConfig {
	return s.middlewareConfig
}

// SetupRoutes wires up every repository, domain service, use case, handler
// and route group and mounts them on the engine.
func (s *Server) SetupRoutes() {
	// Repositories
	subscriberRepo := repositories.NewSubscriberRepository(s.db)
	planRepo := repositories.NewPlanRepository(s.db)
	subscriptionRepo := repositories.NewSubscriptionRepository(s.db)
	paymentRepo := repositories.NewPaymentRepository(s.db)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(s.db)
	webhookEventRepo := repositories.NewWebhookEventRepository(s.db)
	serverRepo := repositories.NewServerRepository(s.db)
	sessionRepo := repositories.NewSessionRepository(s.db)
	usageLogRepo := repositories.NewUsageLogRepository(s.db)
	codeRepo := repositories.NewVerificationCodeRepository(s.db)

	// Infrastructure clients
	cacheService := cache.NewCacheService(s.redisClient)
	sessionMgr := cache.NewSessionManager(s.redisClient)
	rateLimiter := cache.NewRateLimiter(s.redisClient)
	pubSubService := cache.NewPubSubService(s.redisClient)

	stripeService := stripe.NewStripeService(
		s.config.Stripe.SecretKey,
		s.config.Stripe.PublishableKey,
		s.config.Stripe.WebhookSecret,
	)

	tokenBlacklist := vpnauth.NewRedisTokenBlacklist(s.redisClient, "vpnctl:blacklist")
	authSessionMgr := vpnauth.NewSessionManager(s.redisClient, "vpnctl:session", s.jwtUtils)
	tokenManager := vpnauth.NewTokenManager(s.jwtUtils, tokenBlacklist, authSessionMgr)

	// Domain services
	identityService := domainservices.NewIdentityService(subscriberRepo, s.jwtUtils, tokenManager, authSessionMgr, s.redisClient)
	entitlementEngine := domainservices.NewEntitlementEngine(subscriberRepo, planRepo, subscriptionRepo, paymentRepo, webhookEventRepo, stripeService)
	serverRegistry := domainservices.NewServerRegistry(serverRepo, sessionRepo)
	sessionManager := domainservices.NewSessionManager(sessionRepo, usageLogRepo, serverRepo, serverRegistry)
	codeService := domainservices.NewVerificationCodeService(codeRepo)
	emailService := email.NewSMTPEmailService(&s.config.Email)

	// Monitoring/application services
	db := postgres.NewDatabase(s.db, &s.config.Database)
	healthCheckService := services.NewHealthCheckService(s.config, db, cacheService, serverRepo, sessionRepo, stripeService)
	metricsService := services.NewMetricsService(s.config, db, cacheService)
	alertingService := services.NewAlertingService(s.config, cacheService)
	s.jobsService = services.NewMonitoringJobsService(s.config, cacheService, healthCheckService, metricsService, alertingService)

	// Auth use cases
	registerUseCase := auth.NewRegisterUseCase(identityService)
	loginUseCase := auth.NewLoginUseCase(identityService, s.jwtUtils)
	refreshUseCase := auth.NewRefreshTokenUseCase(identityService)
	logoutUseCase := auth.NewLogoutUseCase(identityService, s.jwtUtils)
	passwordResetUseCase := auth.NewPasswordResetUseCase(identityService, codeService, emailService)
	confirmPasswordResetUseCase := auth.NewConfirmPasswordResetUseCase(identityService, codeService)
	emailVerificationUseCase := auth.NewEmailVerificationUseCase(identityService, codeService, emailService)
	getProfileUseCase := auth.NewGetProfileUseCase(identityService)
	getSessionsUseCase := auth.NewGetSessionsUseCase(authSessionMgr)

	// Payment use cases
	getPlansUseCase := payment.NewGetPlansUseCase(entitlementEngine)
	subscribeUseCase := payment.NewSubscribeUseCase(entitlementEngine)
	getSubscriptionUseCase := payment.NewGetSubscriptionUseCase(entitlementEngine)
	cancelSubscriptionUseCase := payment.NewCancelSubscriptionUseCase(entitlementEngine)
	addPaymentMethodUseCase := payment.NewAddPaymentMethodUseCase(identityService, paymentMethodRepo, stripeService)
	getPaymentMethodsUseCase := payment.NewGetPaymentMethodsUseCase(paymentMethodRepo)
	processWebhookUseCase := payment.NewProcessWebhookUseCase(entitlementEngine, stripeService)

	// VPN use cases
	connectUseCase := vpn.NewConnectUseCase(entitlementEngine, sessionManager)
	disconnectUseCase := vpn.NewDisconnectUseCase(sessionManager)
	statusUseCase := vpn.NewStatusUseCase(sessionManager)
	listServersUseCase := vpn.NewListServersUseCase(serverRegistry)

	// Validators
	authValidator := validator.NewAuthValidator()

	// Rate limiting / abuse detection middleware
	authRateLimiter := middleware.NewAuthRateLimiter(s.redisClient)
	suspiciousDetector := middleware.NewSuspiciousActivityDetector(s.redisClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(
		registerUseCase,
		loginUseCase,
		refreshUseCase,
		logoutUseCase,
		passwordResetUseCase,
		confirmPasswordResetUseCase,
		emailVerificationUseCase,
		getProfileUseCase,
		getSessionsUseCase,
		s.jwtUtils,
		authValidator,
		authRateLimiter,
		suspiciousDetector,
		s.protectionConfig,
	)

	paymentHandler := handlers.NewPaymentHandler(
		getPlansUseCase,
		subscribeUseCase,
		getSubscriptionUseCase,
		cancelSubscriptionUseCase,
		addPaymentMethodUseCase,
		getPaymentMethodsUseCase,
		processWebhookUseCase,
	)

	vpnHandler := handlers.NewVPNHandler(
		connectUseCase,
		disconnectUseCase,
		statusUseCase,
		listServersUseCase,
	)

	healthHandler := handlers.NewHealthHandler(s.redisClient, sessionMgr, cacheService, rateLimiter, pubSubService)
	monitoringHandler := handlers.NewMonitoringHandler(healthCheckService, metricsService)

	// Metrics push: per-subscriber session snapshot feed and operator
	// aggregate feed, fanned out over WebSocket.
	connManager := infrawebsocket.NewConnectionManager(pubSubService, s.config.Chat.WebSocket)
	metricsPushService := services.NewMetricsPushService(
		sessionManager,
		serverRegistry,
		subscriberRepo,
		sessionRepo,
		pubSubService,
		time.Second,
	)
	metricsHandler := handlers.NewMetricsHandler(connManager, metricsPushService)

	metricsCtx, metricsCancel := context.WithCancel(context.Background())
	s.metricsCancel = metricsCancel
	go metricsPushService.RunOperatorFeed(metricsCtx)

	// Routes
	generalPolicy := s.config.RateLimit.Policies["general"]
	loginPolicy := s.config.RateLimit.Policies["auth_login"]
	registerPolicy := s.config.RateLimit.Policies["auth_register"]
	passwordResetPolicy := s.config.RateLimit.Policies["auth_password_reset"]

	authRateLimiterConfig := middleware.RateLimiterConfig{
		RequestsPerMinute:     generalPolicy.Limit,
		RequestsPerHour:       generalPolicy.Limit * 60,
		RequestsPerDay:        generalPolicy.Limit * 60 * 24,
		AuthRequestsPerMinute: loginPolicy.Limit + loginPolicy.BurstAllowance,
		AuthRequestsPerHour:   registerPolicy.Limit + registerPolicy.BurstAllowance,
		PasswordResetPerHour:  passwordResetPolicy.Limit + passwordResetPolicy.BurstAllowance,
		EmailVerifyPerHour:    5,
		MaxFailedAttempts:     5,
		LockoutDuration:       15 * time.Minute,
	}

	authRoutes := routes.NewAuthRoutes(
		authHandler,
		middleware.DefaultSecurityConfig(),
		authRateLimiterConfig,
		middleware.DefaultCSRFConfig(),
	)

	paymentRoutes := routes.NewPaymentRoutes(paymentHandler)
	vpnRoutes := routes.NewVPNRoutes(vpnHandler)
	healthRoutes := routes.NewHealthRoutes(healthHandler)
	monitoringRoutes := routes.NewMonitoringRoutes(monitoringHandler)
	metricsRoutes := routes.NewMetricsRoutes(metricsHandler)

	v1 := s.engine.Group("/api/v1")

	authRoutes.RegisterRoutes(v1, s.redisClient)
	paymentRoutes.RegisterRoutes(v1)
	vpnRoutes.RegisterRoutes(v1)
	healthRoutes.RegisterRoutes(v1)
	monitoringRoutes.RegisterRoutes(v1)
	metricsRoutes.RegisterRoutes(v1)

	logger.Info("Routes registered successfully")
}

// GetServerInfo returns server information
func (s *Server) GetServerInfo() map[string]interface{} {
	return map[string]interface{}{
		"port":    s.config.App.Port,
		"host":    s.config.App.Host,
		"env":     s.config.App.Env,
		"version": "1.0.0",
	}
}

// healthCheck handles the legacy bare health check
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// databaseHealthCheck handles the legacy bare database health check
func (s *Server) databaseHealthCheck(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil {
		logger.Error("Failed to get database instance", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"timestamp": time.Now().UTC(),
			"database":  "unavailable",
			"error":     "Failed to get database instance",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"timestamp": time.Now().UTC(),
			"database":  "unavailable",
			"error":     err.Error(),
		})
		return
	}

	stats := sqlDB.Stats()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"database":  "available",
		"stats": gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration":    stats.WaitDuration.String(),
		},
	})
}

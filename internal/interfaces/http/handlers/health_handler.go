package handlers

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
)

// HealthHandler probes the Redis-backed infrastructure directly, independent
// of the aggregate MonitoringHandler checks.
type HealthHandler struct {
	redisClient   *redis.RedisClient
	sessionMgr    *cache.SessionManager
	cacheService  *cache.CacheService
	rateLimiter   *cache.RateLimiter
	pubSubService *cache.PubSubService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	redisClient *redis.RedisClient,
	sessionMgr *cache.SessionManager,
	cacheService *cache.CacheService,
	rateLimiter *cache.RateLimiter,
	pubSubService *cache.PubSubService,
) *HealthHandler {
	return &HealthHandler{
		redisClient:   redisClient,
		sessionMgr:    sessionMgr,
		cacheService:  cacheService,
		rateLimiter:   rateLimiter,
		pubSubService: pubSubService,
	}
}

// CheckRedisHealth checks Redis health
func (h *HealthHandler) CheckRedisHealth() map[string]interface{} {
	if err := h.redisClient.Ping(); err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now(),
		}
	}

	stats := h.redisClient.GetStats()
	poolStats := map[string]interface{}{}
	if poolData, ok := stats["pool_stats"]; ok {
		if asMap, ok := poolData.(map[string]interface{}); ok {
			poolStats = asMap
		}
	}

	metrics := h.redisClient.GetMetrics()

	return map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"redis": map[string]interface{}{
			"ping":       "ok",
			"stats":      stats,
			"pool_stats": poolStats,
			"metrics": map[string]interface{}{
				"connections_created": metrics.ConnectionsCreated,
				"connections_closed":  metrics.ConnectionsClosed,
				"connection_errors":   metrics.ConnectionErrors,
				"commands_executed":   metrics.CommandsExecuted,
				"command_errors":      metrics.CommandErrors,
				"last_connection":     metrics.LastConnectionTime,
				"last_error":          metrics.LastErrorTime,
			},
		},
	}
}

// CheckCacheHealth checks cache service health
func (h *HealthHandler) CheckCacheHealth() map[string]interface{} {
	ctx := context.Background()
	testKey := "health_check_test"
	testValue := "test_value"

	if err := h.cacheService.CacheAPIResponse(ctx, testKey, testValue); err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "cache set operation failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	found, err := h.cacheService.GetAPIResponse(ctx, testKey, &struct{}{})
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "cache get operation failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}
	if !found {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "cache get operation returned not found",
			"timestamp": time.Now(),
		}
	}

	cacheStats, err := h.cacheService.GetCacheStats(ctx)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "failed to get cache stats: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	return map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"cache": map[string]interface{}{
			"set_test": "ok",
			"get_test": "ok",
			"stats":    cacheStats,
		},
	}
}

// CheckSessionHealth checks session manager health
func (h *HealthHandler) CheckSessionHealth() map[string]interface{} {
	ctx := context.Background()
	testSubscriberID := "health_test_subscriber"
	testToken := "health_check_token_placeholder"
	testIP := "127.0.0.1"
	testUserAgent := "Health-Check-Agent/1.0"

	deviceInfo := cache.DeviceInfo{
		DeviceID:   "health_check_device",
		DeviceType: "server",
		OS:         "linux",
		Browser:    "health_check",
		Location:   "server",
	}

	session, err := h.sessionMgr.CreateSession(ctx, testSubscriberID, testToken, "refresh_token_placeholder", testIP, testUserAgent, deviceInfo)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "session creation failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}
	defer h.sessionMgr.DeleteSession(ctx, session.ID)

	retrieved, err := h.sessionMgr.GetSession(ctx, session.ID)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "session retrieval failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}
	if retrieved.UserID != testSubscriberID {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "session data mismatch",
			"timestamp": time.Now(),
		}
	}

	onlineUsers, err := h.sessionMgr.GetOnlineUsers(ctx)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "get online subscribers failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	return map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"sessions": map[string]interface{}{
			"create_test":   "ok",
			"retrieve_test": "ok",
			"online_count":  len(onlineUsers),
		},
	}
}

// CheckRateLimitHealth checks rate limiter health
func (h *HealthHandler) CheckRateLimitHealth() map[string]interface{} {
	ctx := context.Background()
	testIP := "127.0.0.1"

	config := cache.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		Endpoint: "health_check",
		KeyType:  "ip",
	}

	result, err := h.rateLimiter.CheckRateLimit(ctx, config, testIP)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "rate limit check failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	return map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"rate_limiting": map[string]interface{}{
			"allowed":   result.Allowed,
			"remaining": result.Remaining,
			"limit":     result.Limit,
			"window":    result.Window.String(),
		},
	}
}

// CheckPubSubHealth checks Pub/Sub service health
func (h *HealthHandler) CheckPubSubHealth() map[string]interface{} {
	ctx := context.Background()

	msgChan, err := h.pubSubService.SubscribeToSessionSnapshots(ctx, "health_test_subscriber")
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "Pub/Sub subscription failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	err = h.pubSubService.PublishSessionSnapshot(ctx, "health_test_subscriber", cache.SessionSnapshot{
		SessionID: "health_test_subscriber",
		Timestamp: time.Now(),
		Status:    "probe",
	})
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "Pub/Sub publish failed: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	stats, err := h.pubSubService.GetActiveSubscriptions(ctx)
	if err != nil {
		return map[string]interface{}{
			"status":    "unhealthy",
			"error":     "failed to get Pub/Sub stats: " + err.Error(),
			"timestamp": time.Now(),
		}
	}

	return map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"pubsub": map[string]interface{}{
			"subscribe_test": "ok",
			"publish_test":   "ok",
			"stats":          stats,
			"channel_buffer": cap(msgChan),
		},
	}
}

// GetOverallHealth returns overall system health
func (h *HealthHandler) GetOverallHealth() map[string]interface{} {
	redisHealth := h.CheckRedisHealth()
	cacheHealth := h.CheckCacheHealth()
	sessionHealth := h.CheckSessionHealth()
	rateLimitHealth := h.CheckRateLimitHealth()
	pubSubHealth := h.CheckPubSubHealth()

	overallStatus := "healthy"
	if redisHealth["status"] != "healthy" ||
		cacheHealth["status"] != "healthy" ||
		sessionHealth["status"] != "healthy" ||
		rateLimitHealth["status"] != "healthy" ||
		pubSubHealth["status"] != "healthy" {
		overallStatus = "degraded"
	}

	return map[string]interface{}{
		"status":    overallStatus,
		"timestamp": time.Now(),
		"version":   "1.0.0",
		"components": map[string]interface{}{
			"redis":      redisHealth,
			"cache":      cacheHealth,
			"sessions":   sessionHealth,
			"rate_limit": rateLimitHealth,
			"pubsub":     pubSubHealth,
		},
	}
}

// HandleHealthRequest handles the dependency-probing health check endpoint
func (h *HealthHandler) HandleHealthRequest(c *gin.Context) {
	checkType := c.DefaultQuery("check", "overall")

	var health map[string]interface{}
	var statusCode int

	switch checkType {
	case "redis":
		health = h.CheckRedisHealth()
		statusCode = http.StatusOK
	case "cache":
		health = h.CheckCacheHealth()
		statusCode = http.StatusOK
	case "sessions":
		health = h.CheckSessionHealth()
		statusCode = http.StatusOK
	case "rate_limit":
		health = h.CheckRateLimitHealth()
		statusCode = http.StatusOK
	case "pubsub":
		health = h.CheckPubSubHealth()
		statusCode = http.StatusOK
	case "overall":
		health = h.GetOverallHealth()
		switch health["status"] {
		case "healthy":
			statusCode = http.StatusOK
		case "degraded":
			statusCode = http.StatusServiceUnavailable
		default:
			statusCode = http.StatusInternalServerError
		}
	default:
		health = map[string]interface{}{
			"status":    "error",
			"error":     "invalid check type: " + checkType,
			"timestamp": time.Now(),
		}
		statusCode = http.StatusBadRequest
	}

	c.Header("Cache-Control", "no-cache")
	c.JSON(statusCode, health)
}

// HandleLivenessProbe handles Kubernetes liveness probe
func (h *HealthHandler) HandleLivenessProbe(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// HandleReadinessProbe handles Kubernetes readiness probe
func (h *HealthHandler) HandleReadinessProbe(c *gin.Context) {
	health := h.GetOverallHealth()
	if health["status"] == "healthy" {
		c.String(http.StatusOK, "OK")
	} else {
		c.String(http.StatusServiceUnavailable, "Not Ready")
	}
}

// HandleMetrics returns low-level Redis/runtime metrics, distinct from the
// application metrics served by MonitoringHandler.
func (h *HealthHandler) HandleMetrics(c *gin.Context) {
	ctx := context.Background()

	redisStats := h.redisClient.GetStats()
	cacheStats, _ := h.cacheService.GetCacheStats(ctx)
	redisMetrics := h.redisClient.GetMetrics()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	metrics := map[string]interface{}{
		"timestamp": time.Now(),
		"redis": map[string]interface{}{
			"stats":   redisStats,
			"metrics": redisMetrics,
		},
		"cache": cacheStats,
		"system": map[string]interface{}{
			"goroutines": strconv.Itoa(runtime.NumGoroutine()),
			"memory": map[string]interface{}{
				"alloc":       memStats.Alloc,
				"total_alloc": memStats.TotalAlloc,
				"sys":         memStats.Sys,
				"heap_alloc":  memStats.HeapAlloc,
			},
			"num_gc": memStats.NumGC,
		},
	}

	c.JSON(http.StatusOK, metrics)
}

package middleware

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/pkg/config"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
)

func TestClassifyEndpoint(t *testing.T) {
	cases := map[string]string{
		"/api/v1/auth/login":          "auth_login",
		"/api/v1/auth/refresh":        "auth_login",
		"/api/v1/auth/register":       "auth_register",
		"/api/v1/auth/password-reset": "auth_password_reset",
		"/api/v1/vpn/connect":         "vpn_connect",
		"/api/v1/vpn/disconnect":      "vpn_disconnect",
		"/api/v1/payments/subscribe":  "payments",
		"/api/v1/metrics/ws":          "websocket",
		"/api/v1/servers":             "general",
	}
	for path, want := range cases {
		assert.Equal(t, want, classifyEndpoint(path), "path %s", path)
	}
}

func TestIsWhitelisted(t *testing.T) {
	_, cidr, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	pc := &ProtectionConfig{WhitelistCIDRs: []*net.IPNet{cidr}}

	assert.True(t, pc.isWhitelisted("10.1.2.3"))
	assert.False(t, pc.isWhitelisted("192.168.1.1"))
	assert.False(t, pc.isWhitelisted("not-an-ip"))
}

func newTestProtectionConfig(t *testing.T) (*ProtectionConfig, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	redisClient := &redis.RedisClient{Client: client}

	pc := &ProtectionConfig{
		RateLimiter: cache.NewRateLimiter(redisClient),
		BanStore:    cache.NewBanStore(redisClient),
		Policies: map[string]config.EndpointPolicy{
			"general":     {Limit: 2, WindowSeconds: 60, BurstAllowance: 0},
			"auth_login":  {Limit: 1, WindowSeconds: 60, BurstAllowance: 0},
		},
		GlobalIPLimit:         100,
		GlobalIPWindowSeconds: 60,
		GlobalLimit:           1000,
		GlobalWindowSeconds:   60,
		DDoSThreshold:         500,
		DDoSWindow:            60 * time.Second,
		DDoSBanDuration:       time.Hour,
		SuspiciousThreshold:   50,
		SuspiciousWindow:      5 * time.Minute,
		SuspiciousBanDuration: 30 * time.Minute,
	}
	return pc, mr.Close
}

func TestProtectionAllowsWithinLimit(t *testing.T) {
	pc, cleanup := newTestProtectionConfig(t)
	defer cleanup()

	router := gin.New()
	router.Use(Protection(pc))
	router.GET("/api/v1/servers", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req, _ := http.NewRequest("GET", "/api/v1/servers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectionRejectsOverEndpointLimit(t *testing.T) {
	pc, cleanup := newTestProtectionConfig(t)
	defer cleanup()

	router := gin.New()
	router.Use(Protection(pc))
	router.POST("/api/v1/auth/login", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	for i := 0; i < 1; i++ {
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req, _ := http.NewRequest("POST", "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestProtectionRejectsBannedIP(t *testing.T) {
	pc, cleanup := newTestProtectionConfig(t)
	defer cleanup()

	require.NoError(t, pc.BanStore.Ban(context.Background(), "192.0.2.1", cache.BanReasonDDoS, time.Hour))

	router := gin.New()
	router.Use(Protection(pc))
	router.GET("/api/v1/servers", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req, _ := http.NewRequest("GET", "/api/v1/servers", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestProtectionBypassesWhitelistedIP(t *testing.T) {
	pc, cleanup := newTestProtectionConfig(t)
	defer cleanup()

	_, cidr, err := net.ParseCIDR("192.0.2.0/24")
	require.NoError(t, err)
	pc.WhitelistCIDRs = []*net.IPNet{cidr}

	require.NoError(t, pc.BanStore.Ban(context.Background(), "192.0.2.5", cache.BanReasonDDoS, time.Hour))

	router := gin.New()
	router.Use(Protection(pc))
	router.GET("/api/v1/servers", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req, _ := http.NewRequest("GET", "/api/v1/servers", nil)
	req.RemoteAddr = "192.0.2.5:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
)

// RateLimiterTestSuite exercises RateLimiter's sliding-window admission logic
// against an embedded miniredis instance, since the real ZSET commands (and
// their eviction-on-read behavior) are the part worth testing here.
type RateLimiterTestSuite struct {
	suite.Suite
	mr          *miniredis.Miniredis
	rateLimiter *RateLimiter
}

func (suite *RateLimiterTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.mr = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	suite.rateLimiter = NewRateLimiter(&redis.RedisClient{Client: client})
}

func (suite *RateLimiterTestSuite) TearDownTest() {
	suite.mr.Close()
}

func (suite *RateLimiterTestSuite) TestCheckRateLimitAllowedWithinLimit() {
	ctx := context.Background()
	config := RateLimitConfig{
		Requests:       3,
		BurstAllowance: 0,
		Window:         time.Minute,
		KeyType:        "ip",
		Endpoint:       "vpn_connect",
	}

	result, err := suite.rateLimiter.CheckRateLimit(ctx, config, "203.0.113.1")

	suite.NoError(err)
	suite.True(result.Allowed)
	suite.Equal(2, result.Remaining)
	suite.Equal(3, result.Limit)
}

func (suite *RateLimiterTestSuite) TestCheckRateLimitAdmitsBurstThenDeniesBeyondIt() {
	ctx := context.Background()
	config := RateLimitConfig{
		Requests:       2,
		BurstAllowance: 1,
		Window:         time.Minute,
		KeyType:        "ip",
		Endpoint:       "auth_login",
	}
	identifier := "203.0.113.2"

	for i := 0; i < 3; i++ {
		result, err := suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
		suite.NoError(err)
		suite.True(result.Allowed, "request %d should be admitted within limit+burst", i+1)
	}

	result, err := suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.False(result.Allowed)
	suite.Equal(0, result.Remaining)
}

func (suite *RateLimiterTestSuite) TestCheckRateLimitEvictsExpiredEntries() {
	// Eviction is computed from wall-clock time (time.Now()), not Redis TTL,
	// so this exercises real elapsed time with a short window rather than
	// miniredis's fast-forward (which only advances key TTLs).
	ctx := context.Background()
	config := RateLimitConfig{
		Requests: 1,
		Window:   50 * time.Millisecond,
		KeyType:  "ip",
		Endpoint: "general",
	}
	identifier := "203.0.113.3"

	result, err := suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.True(result.Allowed)

	result, err = suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.False(result.Allowed)

	time.Sleep(75 * time.Millisecond)

	result, err = suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.True(result.Allowed, "entries outside the window should be evicted on the next check")
}

func (suite *RateLimiterTestSuite) TestCheckIPRateLimitUsesEndpointPolicy() {
	ctx := context.Background()

	result, err := suite.rateLimiter.CheckIPRateLimit(ctx, "websocket", "203.0.113.4")

	suite.NoError(err)
	suite.True(result.Allowed)
	suite.Equal(7, result.Limit) // websocket: limit 5 + burst 2
}

func (suite *RateLimiterTestSuite) TestCheckIPRateLimitUnknownEndpointFallsBackToGeneral() {
	ctx := context.Background()

	result, err := suite.rateLimiter.CheckIPRateLimit(ctx, "nonexistent_endpoint", "203.0.113.5")

	suite.NoError(err)
	suite.Equal(80, result.Limit) // general: limit 60 + burst 20
}

func (suite *RateLimiterTestSuite) TestResetRateLimit() {
	ctx := context.Background()
	config := RateLimitConfig{Requests: 1, Window: time.Minute, KeyType: "ip", Endpoint: "vpn_connect"}
	identifier := "203.0.113.6"

	_, err := suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)

	result, err := suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.False(result.Allowed)

	suite.NoError(suite.rateLimiter.ResetRateLimit(ctx, "ip", "vpn_connect", identifier))

	result, err = suite.rateLimiter.CheckRateLimit(ctx, config, identifier)
	suite.NoError(err)
	suite.True(result.Allowed)
}

func (suite *RateLimiterTestSuite) TestGetRateLimitStatusReflectsRecordedRequests() {
	ctx := context.Background()
	identifier := "203.0.113.7"

	_, err := suite.rateLimiter.CheckIPRateLimit(ctx, "payments", identifier)
	suite.NoError(err)

	status, err := suite.rateLimiter.GetRateLimitStatus(ctx, "ip", "payments", identifier)
	suite.NoError(err)
	suite.Equal(13, status.Limit)     // payments: limit 10 + burst 3
	suite.Equal(12, status.Remaining) // one request already recorded
}

func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func TestGetEndpointConfigFallsBackToGeneral(t *testing.T) {
	rl := &RateLimiter{prefix: "rate_limit:"}
	config := rl.getEndpointConfig("made_up_class")
	if config.Requests != endpointPolicies["general"].Requests {
		t.Fatalf("expected fallback to general policy, got %+v", config)
	}
}

func TestGetEndpointConfigKnownClass(t *testing.T) {
	rl := &RateLimiter{prefix: "rate_limit:"}
	config := rl.getEndpointConfig("auth_register")
	if config.Requests != 3 || config.BurstAllowance != 1 || config.Window != 3600*time.Second {
		t.Fatalf("unexpected auth_register policy: %+v", config)
	}
}

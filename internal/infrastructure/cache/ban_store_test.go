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

type BanStoreTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	banStore *BanStore
}

func (suite *BanStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.mr = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	suite.banStore = NewBanStore(&redis.RedisClient{Client: client})
}

func (suite *BanStoreTestSuite) TearDownTest() {
	suite.mr.Close()
}

func (suite *BanStoreTestSuite) TestCheckUnbannedIP() {
	result, err := suite.banStore.Check(context.Background(), "203.0.113.10")
	suite.NoError(err)
	suite.False(result.Banned)
}

func (suite *BanStoreTestSuite) TestBanThenCheck() {
	ctx := context.Background()
	ip := "203.0.113.11"

	suite.NoError(suite.banStore.Ban(ctx, ip, BanReasonDDoS, time.Minute))

	result, err := suite.banStore.Check(ctx, ip)
	suite.NoError(err)
	suite.True(result.Banned)
	suite.Equal(string(BanReasonDDoS), result.Reason)
	suite.Greater(result.RetryAfter, time.Duration(0))
}

func (suite *BanStoreTestSuite) TestUnban() {
	ctx := context.Background()
	ip := "203.0.113.12"

	suite.NoError(suite.banStore.Ban(ctx, ip, BanReasonSuspicious, time.Minute))
	suite.NoError(suite.banStore.Unban(ctx, ip))

	result, err := suite.banStore.Check(ctx, ip)
	suite.NoError(err)
	suite.False(result.Banned)
}

func (suite *BanStoreTestSuite) TestCountDDoSRequestAccumulatesWithinWindow() {
	ctx := context.Background()
	ip := "203.0.113.13"

	for i := int64(1); i <= 3; i++ {
		count, err := suite.banStore.CountDDoSRequest(ctx, ip, time.Minute)
		suite.NoError(err)
		suite.Equal(i, count)
	}
}

func (suite *BanStoreTestSuite) TestCountSuspiciousEventAccumulatesWithinWindow() {
	ctx := context.Background()
	ip := "203.0.113.14"

	for i := int64(1); i <= 2; i++ {
		count, err := suite.banStore.CountSuspiciousEvent(ctx, ip, time.Minute)
		suite.NoError(err)
		suite.Equal(i, count)
	}
}

func TestBanStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BanStoreTestSuite))
}

func TestSanitizeForLogStripsControlCharsAndCaps(t *testing.T) {
	dirty := "1.2.3.4\r\nX-Injected: evil"
	clean := sanitizeForLog(dirty)
	if clean != "1.2.3.4X-Injected: evil" {
		t.Fatalf("expected control characters stripped, got %q", clean)
	}

	long := ""
	for i := 0; i < 100; i++ {
		long += "a"
	}
	if got := sanitizeForLog(long); len(got) != 64 {
		t.Fatalf("expected length capped at 64, got %d", len(got))
	}
}

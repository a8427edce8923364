package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
)

type PubSubServiceTestSuite struct {
	suite.Suite
	mr  *miniredis.Miniredis
	svc *PubSubService
}

func (suite *PubSubServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.mr = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	suite.svc = NewPubSubService(&redis.RedisClient{Client: client})
}

func (suite *PubSubServiceTestSuite) TearDownTest() {
	suite.mr.Close()
}

func (suite *PubSubServiceTestSuite) TestPublishAndSubscribeSessionSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msgChan, err := suite.svc.SubscribeToSessionSnapshots(ctx, "sub-1")
	suite.Require().NoError(err)

	time.Sleep(50 * time.Millisecond) // let the subscription establish

	snapshot := SessionSnapshot{
		SessionID:     "session-1",
		Timestamp:     time.Now(),
		BytesSent:     100,
		BytesReceived: 200,
		ThroughputBps: 1500,
		LatencyMs:     12.5,
		ServerLoad:    0.4,
		Status:        "connected",
	}
	suite.Require().NoError(suite.svc.PublishSessionSnapshot(ctx, "sub-1", snapshot))

	select {
	case msg := <-msgChan:
		suite.Equal(MessageTypeSessionSnapshot, msg.Type)

		var got SessionSnapshot
		raw, err := json.Marshal(msg.Data)
		suite.Require().NoError(err)
		suite.Require().NoError(json.Unmarshal(raw, &got))
		suite.Equal(snapshot.SessionID, got.SessionID)
		suite.Equal(snapshot.Status, got.Status)
	case <-ctx.Done():
		suite.Fail("timed out waiting for session snapshot")
	}
}

func (suite *PubSubServiceTestSuite) TestPublishAndSubscribeOperatorStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msgChan, err := suite.svc.SubscribeToOperatorStats(ctx)
	suite.Require().NoError(err)

	time.Sleep(50 * time.Millisecond)

	stats := OperatorStats{
		Timestamp:        time.Now(),
		TotalSubscribers: 10,
		ActiveSessions:   4,
		ActiveServers:    2,
		Alerts:           []string{"server X load above 90%"},
	}
	suite.Require().NoError(suite.svc.PublishOperatorStats(ctx, stats))

	select {
	case msg := <-msgChan:
		suite.Equal(MessageTypeOperatorStats, msg.Type)

		var got OperatorStats
		raw, err := json.Marshal(msg.Data)
		suite.Require().NoError(err)
		suite.Require().NoError(json.Unmarshal(raw, &got))
		suite.Equal(stats.TotalSubscribers, got.TotalSubscribers)
		suite.Equal(stats.Alerts, got.Alerts)
	case <-ctx.Done():
		suite.Fail("timed out waiting for operator stats")
	}
}

func (suite *PubSubServiceTestSuite) TestGetActiveSubscriptions() {
	info, err := suite.svc.GetActiveSubscriptions(context.Background())
	suite.Require().NoError(err)
	channels, ok := info["channels"].(map[string]string)
	suite.Require().True(ok)
	suite.Equal("pubsub:operator:stats", channels["operator"])
}

func TestPubSubServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PubSubServiceTestSuite))
}

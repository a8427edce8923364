package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/websocket"
	"github.com/fenwicknet/vpnctl/pkg/config"
)

// MetricsPushIntegrationTestSuite exercises the metrics push WebSocket
// fan-out end to end: a real gorilla/websocket client against a real
// gin router, backed by a real (miniredis) Redis pub/sub.
type MetricsPushIntegrationTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	pubSub  *cache.PubSubService
	connMgr *websocket.ConnectionManager
	server  *httptest.Server
}

func (suite *MetricsPushIntegrationTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.mr = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	suite.pubSub = cache.NewPubSubService(&redis.RedisClient{Client: client})
	suite.connMgr = websocket.NewConnectionManager(suite.pubSub, config.WebSocketConfig{
		PingInterval: 200 * time.Millisecond,
		PongWait:     time.Second,
		WriteWait:    time.Second,
	})

	router := gin.New()
	router.GET("/metrics/ws", func(c *gin.Context) {
		_ = suite.connMgr.HandleSubscriberConnection(c, "sub-1")
	})
	suite.server = httptest.NewServer(router)
}

func (suite *MetricsPushIntegrationTestSuite) TearDownTest() {
	suite.server.Close()
	suite.mr.Close()
}

func (suite *MetricsPushIntegrationTestSuite) dial() *gorillaws.Conn {
	wsURL := "ws" + suite.server.URL[len("http"):] + "/metrics/ws"
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(suite.T(), err)
	return conn
}

func (suite *MetricsPushIntegrationTestSuite) TestSessionSnapshotDelivered() {
	conn := suite.dial()
	defer conn.Close()

	time.Sleep(50 * time.Millisecond) // let the subscription register

	snapshot := cache.SessionSnapshot{
		SessionID: "session-1",
		Timestamp: time.Now(),
		BytesSent: 42,
		Status:    "connected",
	}
	require.NoError(suite.T(), suite.pubSub.PublishSessionSnapshot(context.Background(), "sub-1", snapshot))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(suite.T(), err)

	var got cache.SessionSnapshot
	require.NoError(suite.T(), json.Unmarshal(data, &got))
	suite.Equal("session-1", got.SessionID)
	suite.Equal("connected", got.Status)
}

func (suite *MetricsPushIntegrationTestSuite) TestSecondConnectionForceClosesFirst() {
	first := suite.dial()
	defer first.Close()

	time.Sleep(50 * time.Millisecond)

	second := suite.dial()
	defer second.Close()

	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := first.ReadMessage()
	suite.Error(err) // the first connection must be force closed
}

func TestMetricsPushIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsPushIntegrationTestSuite))
}

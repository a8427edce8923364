package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/cache"
	"github.com/fenwicknet/vpnctl/pkg/config"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// sendBufferSize bounds how many undelivered snapshots a slow consumer can
// queue before the oldest one is dropped to make room for the newest.
const sendBufferSize = 8

// ConnectionManager fans metrics push snapshots out to WebSocket clients.
// Each subscriber holds at most one open channel; opening a second force
// closes the first. Operators share a single aggregate broadcast and may
// have any number of connections open concurrently.
type ConnectionManager struct {
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
	pubSub   *cache.PubSubService

	mu          sync.Mutex
	subscribers map[string]*ClientConnection
	operators   map[string]*ClientConnection
}

// ClientConnection wraps one upgraded socket with a bounded, drop-oldest
// outbound queue and the machinery to cancel its feed goroutine.
type ClientConnection struct {
	conn   *websocket.Conn
	send   chan []byte
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewConnectionManager creates a metrics push connection manager.
func NewConnectionManager(pubSub *cache.PubSubService, cfg config.WebSocketConfig) *ConnectionManager {
	return &ConnectionManager{
		cfg:         cfg,
		pubSub:      pubSub,
		subscribers: make(map[string]*ClientConnection),
		operators:   make(map[string]*ClientConnection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return isOriginAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins)
			},
		},
	}
}

func isOriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// HandleSubscriberConnection upgrades the request and streams that
// subscriber's session snapshots until the socket closes or the request
// context ends. A prior connection for the same subscriber is force
// closed first, enforcing one channel per subscriber.
func (cm *ConnectionManager) HandleSubscriberConnection(c *gin.Context, subscriberID string) error {
	conn, err := cm.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	client := &ClientConnection{conn: conn, send: make(chan []byte, sendBufferSize), cancel: cancel}

	cm.registerSubscriber(subscriberID, client)
	logger.Info("metrics push subscriber connected", "subscriber_id", subscriberID)

	msgChan, err := cm.pubSub.SubscribeToSessionSnapshots(ctx, subscriberID)
	if err != nil {
		cancel()
		cm.unregisterSubscriber(subscriberID, client)
		conn.Close()
		return err
	}

	go cm.forwardLoop(ctx, client, msgChan)
	go cm.readLoop(client, cancel)
	cm.writeLoop(client)

	cm.unregisterSubscriber(subscriberID, client)
	logger.Info("metrics push subscriber disconnected", "subscriber_id", subscriberID)
	return nil
}

// HandleOperatorConnection upgrades the request and streams the operator
// aggregate feed until the socket closes or the request context ends.
func (cm *ConnectionManager) HandleOperatorConnection(c *gin.Context, operatorConnID string) error {
	conn, err := cm.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	client := &ClientConnection{conn: conn, send: make(chan []byte, sendBufferSize), cancel: cancel}

	cm.mu.Lock()
	cm.operators[operatorConnID] = client
	cm.mu.Unlock()
	logger.Info("metrics push operator connected", "conn_id", operatorConnID)

	msgChan, err := cm.pubSub.SubscribeToOperatorStats(ctx)
	if err != nil {
		cancel()
		cm.removeOperator(operatorConnID)
		conn.Close()
		return err
	}

	go cm.forwardLoop(ctx, client, msgChan)
	go cm.readLoop(client, cancel)
	cm.writeLoop(client)

	cm.removeOperator(operatorConnID)
	return nil
}

func (cm *ConnectionManager) registerSubscriber(subscriberID string, client *ClientConnection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if prior, ok := cm.subscribers[subscriberID]; ok {
		logger.Info("metrics push second connection, closing prior", "subscriber_id", subscriberID)
		prior.cancel()
		prior.closeConn()
	}
	cm.subscribers[subscriberID] = client
}

func (cm *ConnectionManager) unregisterSubscriber(subscriberID string, client *ClientConnection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, ok := cm.subscribers[subscriberID]; ok && current == client {
		delete(cm.subscribers, subscriberID)
	}
}

func (cm *ConnectionManager) removeOperator(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.operators, connID)
}

// forwardLoop relays published messages into the client's send queue,
// dropping the oldest queued snapshot when the consumer falls behind.
func (cm *ConnectionManager) forwardLoop(ctx context.Context, client *ClientConnection, msgChan <-chan cache.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg.Data)
			if err != nil {
				logger.Error("failed to marshal metrics push message", err)
				continue
			}
			client.enqueue(data)
		}
	}
}

// enqueue is a non-blocking send that drops the oldest queued frame when
// the buffer is full, favoring feed freshness over completeness.
func (c *ClientConnection) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
		return
	default:
	}

	select {
	case <-c.send:
	default:
	}
	select {
	case c.send <- data:
	default:
	}
}

// writeLoop owns the socket's write side: forwarded snapshots and periodic
// pings. It returns once send is closed (by closeConn, from readLoop
// detecting disconnect, forceclose, or ping failure) unblocking the caller
// to clean up the subscriber registration.
func (cm *ConnectionManager) writeLoop(client *ClientConnection) {
	pingInterval := cm.cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer client.closeConn()

	writeWait := cm.cfg.WriteWait
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}

	for {
		select {
		case data, ok := <-client.send:
			if !ok {
				return
			}
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains control frames (pong, close) so gorilla/websocket
// processes them, and cancels the feed once the client goes away.
func (cm *ConnectionManager) readLoop(client *ClientConnection, cancel context.CancelFunc) {
	defer cancel()
	defer client.closeConn()

	pongWait := cm.cfg.PongWait
	if pongWait <= 0 {
		pongWait = 60 * time.Second
	}
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// closeConn releases the socket and outbound queue, idempotently. The
// final disconnected snapshot is published by the feed producer before
// the subscribe context is cancelled, not here.
func (c *ClientConnection) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.conn.Close()
}

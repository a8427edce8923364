package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// PubSubService handles Redis Pub/Sub operations for the metrics push feed.
type PubSubService struct {
	redisClient *redis.RedisClient
	prefix      string
}

// NewPubSubService creates a new Pub/Sub service
func NewPubSubService(redisClient *redis.RedisClient) *PubSubService {
	return &PubSubService{
		redisClient: redisClient,
		prefix:      "pubsub:",
	}
}

// MessageType represents different types of real-time messages
type MessageType string

const (
	MessageTypeSessionSnapshot MessageType = "session_snapshot"
	MessageTypeOperatorStats   MessageType = "operator_stats"
)

// Message represents a real-time message
type Message struct {
	Type      MessageType `json:"type"`
	Channel   string      `json:"channel"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// SessionSnapshot is one tick of a subscriber's metrics push feed.
type SessionSnapshot struct {
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	BytesSent    int64     `json:"bytes_sent"`
	BytesReceived int64    `json:"bytes_received"`
	ThroughputBps float64  `json:"throughput_bps"`
	LatencyMs    float64   `json:"latency_ms"`
	ServerLoad   float64   `json:"server_load"`
	Status       string    `json:"status"`
}

// OperatorStats is one tick of the super-user aggregate feed.
type OperatorStats struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalSubscribers int      `json:"total_subscribers"`
	ActiveSessions  int       `json:"active_sessions"`
	ActiveServers   int       `json:"active_servers"`
	Alerts          []string  `json:"alerts,omitempty"`
}

// PublishSessionSnapshot publishes a snapshot to a single subscriber's channel
func (ps *PubSubService) PublishSessionSnapshot(ctx context.Context, subscriberID string, snapshot SessionSnapshot) error {
	channel := ps.getSessionChannel(subscriberID)
	return ps.publishMessage(ctx, MessageTypeSessionSnapshot, channel, snapshot)
}

// PublishOperatorStats publishes an aggregate tick to the operator channel
func (ps *PubSubService) PublishOperatorStats(ctx context.Context, stats OperatorStats) error {
	return ps.publishMessage(ctx, MessageTypeOperatorStats, ps.getOperatorChannel(), stats)
}

// SubscribeToSessionSnapshots subscribes to one subscriber's metrics push channel
func (ps *PubSubService) SubscribeToSessionSnapshots(ctx context.Context, subscriberID string) (<-chan Message, error) {
	channel := ps.getSessionChannel(subscriberID)
	return ps.subscribeToChannel(ctx, channel)
}

// SubscribeToOperatorStats subscribes to the operator aggregate channel
func (ps *PubSubService) SubscribeToOperatorStats(ctx context.Context) (<-chan Message, error) {
	return ps.subscribeToChannel(ctx, ps.getOperatorChannel())
}

// GetActiveSubscriptions returns information about the channel layout
func (ps *PubSubService) GetActiveSubscriptions(ctx context.Context) (map[string]interface{}, error) {
	info := map[string]interface{}{
		"prefix": ps.prefix,
		"channels": map[string]string{
			"session_pattern": ps.getSessionChannelPattern(),
			"operator":        ps.getOperatorChannel(),
		},
	}

	return info, nil
}

// publishMessage publishes a message to a specific channel
func (ps *PubSubService) publishMessage(ctx context.Context, msgType MessageType, channel string, data interface{}) error {
	message := Message{
		Type:      msgType,
		Channel:   channel,
		Data:      data,
		Timestamp: time.Now(),
	}

	messageData, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message for publishing", err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ps.redisClient.Publish(ctx, channel, string(messageData))
	if err != nil {
		logger.Error("Failed to publish message", err, "channel", channel, "type", msgType)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("Message published", "channel", channel, "type", msgType)
	return nil
}

// publishMessageToChannel publishes a pre-built message to a specific channel
func (ps *PubSubService) publishMessageToChannel(ctx context.Context, channel string, message Message) error {
	messageData, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message for channel publishing", err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ps.redisClient.Publish(ctx, channel, string(messageData))
	if err != nil {
		logger.Error("Failed to publish message to channel", err, "channel", channel)
		return fmt.Errorf("failed to publish message to channel: %w", err)
	}

	return nil
}

// subscribeToChannel subscribes to a channel and returns a message channel
func (ps *PubSubService) subscribeToChannel(ctx context.Context, channel string) (<-chan Message, error) {
	pubsub := ps.redisClient.Subscribe(ctx, channel)
	if pubsub == nil {
		return nil, fmt.Errorf("failed to subscribe to channel: %s", channel)
	}

	msgChan := make(chan Message, 100)

	go func() {
		defer close(msgChan)
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("Subscription context cancelled", "channel", channel)
				return
			case msg := <-pubsub.Channel():
				if msg.Payload == "" {
					continue
				}

				var message Message
				err := json.Unmarshal([]byte(msg.Payload), &message)
				if err != nil {
					logger.Error("Failed to unmarshal received message", err)
					continue
				}

				msgChan <- message
			}
		}
	}()

	return msgChan, nil
}

// Helper methods for channel generation

func (ps *PubSubService) getSessionChannel(subscriberID string) string {
	return fmt.Sprintf("%ssessions:%s", ps.prefix, subscriberID)
}

func (ps *PubSubService) getSessionChannelPattern() string {
	return fmt.Sprintf("%ssessions:*", ps.prefix)
}

func (ps *PubSubService) getOperatorChannel() string {
	return fmt.Sprintf("%soperator:stats", ps.prefix)
}

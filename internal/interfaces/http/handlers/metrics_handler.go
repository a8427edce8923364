package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/application/services"
	infrawebsocket "github.com/fenwicknet/vpnctl/internal/infrastructure/websocket"
	"github.com/fenwicknet/vpnctl/pkg/logger"
	"github.com/fenwicknet/vpnctl/pkg/utils"
)

// MetricsHandler upgrades metrics push connections and drives their
// per-connection snapshot feed.
type MetricsHandler struct {
	connManager  *infrawebsocket.ConnectionManager
	pushService  *services.MetricsPushService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(connManager *infrawebsocket.ConnectionManager, pushService *services.MetricsPushService) *MetricsHandler {
	return &MetricsHandler{connManager: connManager, pushService: pushService}
}

// StreamSession handles GET /metrics/ws, the bearer-gated per-subscriber
// metrics push channel.
func (h *MetricsHandler) StreamSession(c *gin.Context) {
	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}

	feedCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.pushService.RunSubscriberFeed(feedCtx, subscriberID)

	if err := h.connManager.HandleSubscriberConnection(c, subscriberID.String()); err != nil {
		logger.Error("metrics push subscriber connection failed", err, "subscriber_id", subscriberID.String())
	}
}

// StreamOperator handles GET /metrics/ws/operator, the admin-only aggregate
// channel. The Protection Layer runs before Auth and classifies this path
// under the same "websocket" rate-limit policy as the subscriber channel; it
// is not exempt.
func (h *MetricsHandler) StreamOperator(c *gin.Context) {
	if !c.GetBool("is_admin") {
		utils.Forbidden(c, "Operator access required")
		return
	}

	connID := uuid.New().String()
	if err := h.connManager.HandleOperatorConnection(c, connID); err != nil {
		logger.Error("metrics push operator connection failed", err, "conn_id", connID)
	}
}

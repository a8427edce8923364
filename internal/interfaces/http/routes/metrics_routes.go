package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
)

// MetricsRoutes defines the metrics push WebSocket routes.
type MetricsRoutes struct {
	handler *handlers.MetricsHandler
}

// NewMetricsRoutes creates a new MetricsRoutes instance.
func NewMetricsRoutes(handler *handlers.MetricsHandler) *MetricsRoutes {
	return &MetricsRoutes{handler: handler}
}

// RegisterRoutes registers the metrics push routes.
func (r *MetricsRoutes) RegisterRoutes(router *gin.RouterGroup) {
	metrics := router.Group("/metrics")
	{
		metrics.GET("/ws", r.handler.StreamSession)
		metrics.GET("/ws/operator", r.handler.StreamOperator)
	}
}

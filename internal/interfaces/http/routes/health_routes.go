package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
)

// HealthRoutes defines the infrastructure-probe health check routes
type HealthRoutes struct {
	handler *handlers.HealthHandler
}

// NewHealthRoutes creates a new HealthRoutes instance
func NewHealthRoutes(handler *handlers.HealthHandler) *HealthRoutes {
	return &HealthRoutes{handler: handler}
}

// RegisterRoutes registers health check routes
func (r *HealthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	health := router.Group("/health")
	{
		health.GET("/", r.handler.HandleHealthRequest)
		health.GET("/overall", r.handler.HandleHealthRequest)
		health.GET("/redis", r.handler.HandleHealthRequest)
		health.GET("/cache", r.handler.HandleHealthRequest)
		health.GET("/sessions", r.handler.HandleHealthRequest)
		health.GET("/rate_limit", r.handler.HandleHealthRequest)
		health.GET("/pubsub", r.handler.HandleHealthRequest)

		health.GET("/liveness", r.handler.HandleLivenessProbe)
		health.GET("/readiness", r.handler.HandleReadinessProbe)

		health.GET("/metrics", r.handler.HandleMetrics)
	}
}

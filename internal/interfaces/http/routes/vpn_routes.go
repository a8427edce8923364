package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// VPNRoutes defines tunnel connect/disconnect/status and fleet routes.
type VPNRoutes struct {
	handler *handlers.VPNHandler
}

// NewVPNRoutes creates a new VPNRoutes instance.
func NewVPNRoutes(handler *handlers.VPNHandler) *VPNRoutes {
	return &VPNRoutes{handler: handler}
}

// RegisterRoutes registers VPN routes under the given group. All routes here
// require a subscriber session through the global Auth middleware.
func (r *VPNRoutes) RegisterRoutes(router *gin.RouterGroup) {
	vpn := router.Group("/vpn")
	{
		vpn.POST("/connect", r.handler.Connect)
		vpn.POST("/disconnect", r.handler.Disconnect)
		vpn.GET("/status", r.handler.Status)
		vpn.GET("/servers", r.handler.ListServers)
	}

	logger.Info("VPN routes registered successfully")
}

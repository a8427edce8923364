package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// PaymentRoutes defines payment and subscription routes
type PaymentRoutes struct {
	handler *handlers.PaymentHandler
}

// NewPaymentRoutes creates a new PaymentRoutes instance
func NewPaymentRoutes(handler *handlers.PaymentHandler) *PaymentRoutes {
	return &PaymentRoutes{handler: handler}
}

// RegisterRoutes registers payment routes under the given group. Webhook
// delivery and the plan catalog stay public through the global Auth
// middleware's skip list (see middleware.DefaultAuthConfig); everything else
// on the group requires the caller's subscriber session.
func (r *PaymentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		payments.GET("/plans", r.handler.GetPlans)
		payments.POST("/webhook", r.handler.ProcessWebhook)

		payments.POST("/subscribe", r.handler.Subscribe)
		payments.GET("/subscription", r.handler.GetSubscription)
		payments.POST("/subscription/cancel", r.handler.CancelSubscription)

		payments.GET("/payment-methods", r.handler.GetPaymentMethods)
		payments.POST("/payment-methods", r.handler.AddPaymentMethod)
	}

	logger.Info("Payment routes registered successfully")
}

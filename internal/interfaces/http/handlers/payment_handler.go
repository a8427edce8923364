package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/application/usecases/payment"
	"github.com/fenwicknet/vpnctl/pkg/logger"
	"github.com/fenwicknet/vpnctl/pkg/utils"
	"github.com/fenwicknet/vpnctl/pkg/validator"
)

// PaymentHandler handles payment and subscription HTTP requests
type PaymentHandler struct {
	getPlansUseCase           *payment.GetPlansUseCase
	subscribeUseCase          *payment.SubscribeUseCase
	getSubscriptionUseCase    *payment.GetSubscriptionUseCase
	cancelSubscriptionUseCase *payment.CancelSubscriptionUseCase
	addPaymentMethodUseCase   *payment.AddPaymentMethodUseCase
	getPaymentMethodsUseCase  *payment.GetPaymentMethodsUseCase
	processWebhookUseCase     *payment.ProcessWebhookUseCase
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	getPlansUseCase *payment.GetPlansUseCase,
	subscribeUseCase *payment.SubscribeUseCase,
	getSubscriptionUseCase *payment.GetSubscriptionUseCase,
	cancelSubscriptionUseCase *payment.CancelSubscriptionUseCase,
	addPaymentMethodUseCase *payment.AddPaymentMethodUseCase,
	getPaymentMethodsUseCase *payment.GetPaymentMethodsUseCase,
	processWebhookUseCase *payment.ProcessWebhookUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		getPlansUseCase:           getPlansUseCase,
		subscribeUseCase:          subscribeUseCase,
		getSubscriptionUseCase:    getSubscriptionUseCase,
		cancelSubscriptionUseCase: cancelSubscriptionUseCase,
		addPaymentMethodUseCase:   addPaymentMethodUseCase,
		getPaymentMethodsUseCase:  getPaymentMethodsUseCase,
		processWebhookUseCase:     processWebhookUseCase,
	}
}

func subscriberIDFromContext(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString("user_id"))
}

// GetPlans handles GET /plans
func (h *PaymentHandler) GetPlans(c *gin.Context) {
	plans, err := h.getPlansUseCase.Execute(c.Request.Context())
	if err != nil {
		logger.Error("failed to list subscription plans", err, nil)
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"plans": plans})
}

// Subscribe handles POST /subscribe
func (h *PaymentHandler) Subscribe(c *gin.Context) {
	var req payment.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}
	req.SubscriberID = subscriberID

	if err := validator.Validate(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	subscription, err := h.subscribeUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to create subscription", err, map[string]interface{}{"subscriber_id": subscriberID})
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"subscription": subscription})
}

// GetSubscription handles GET /subscription
func (h *PaymentHandler) GetSubscription(c *gin.Context) {
	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}

	response, err := h.getSubscriptionUseCase.Execute(c.Request.Context(), subscriberID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, response)
}

// CancelSubscription handles POST /subscription/cancel
func (h *PaymentHandler) CancelSubscription(c *gin.Context) {
	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}

	if err := h.cancelSubscriptionUseCase.Execute(c.Request.Context(), subscriberID); err != nil {
		logger.Error("failed to cancel subscription", err, map[string]interface{}{"subscriber_id": subscriberID})
		utils.Error(c, err)
		return
	}

	utils.SuccessMessage(c, http.StatusOK, "Subscription canceled successfully")
}

// GetPaymentMethods handles GET /payment-methods
func (h *PaymentHandler) GetPaymentMethods(c *gin.Context) {
	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}

	methods, err := h.getPaymentMethodsUseCase.Execute(c.Request.Context(), subscriberID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"payment_methods": methods})
}

// AddPaymentMethod handles POST /payment-methods
func (h *PaymentHandler) AddPaymentMethod(c *gin.Context) {
	var req payment.AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}

	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}
	req.SubscriberID = subscriberID

	if err := validator.Validate(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	method, err := h.addPaymentMethodUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to add payment method", err, map[string]interface{}{"subscriber_id": subscriberID})
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"payment_method": method})
}

// ProcessWebhook handles POST /webhook
func (h *PaymentHandler) ProcessWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	if signatureHeader == "" {
		utils.BadRequest(c, "Missing Stripe signature header")
		return
	}

	if err := h.processWebhookUseCase.Execute(c.Request.Context(), body, signatureHeader); err != nil {
		switch err {
		case payment.ErrWebhookSignatureInvalid:
			utils.Unauthorized(c, "Invalid webhook signature")
		default:
			logger.Error("failed to process webhook", err, nil)
			utils.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/application/usecases/vpn"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/logger"
	"github.com/fenwicknet/vpnctl/pkg/utils"
	"github.com/fenwicknet/vpnctl/pkg/validator"
)

// VPNHandler handles tunnel connect/disconnect/status HTTP requests.
type VPNHandler struct {
	connectUseCase     *vpn.ConnectUseCase
	disconnectUseCase  *vpn.DisconnectUseCase
	statusUseCase      *vpn.StatusUseCase
	listServersUseCase *vpn.ListServersUseCase
}

// NewVPNHandler creates a new VPNHandler.
func NewVPNHandler(
	connectUseCase *vpn.ConnectUseCase,
	disconnectUseCase *vpn.DisconnectUseCase,
	statusUseCase *vpn.StatusUseCase,
	listServersUseCase *vpn.ListServersUseCase,
) *VPNHandler {
	return &VPNHandler{
		connectUseCase:     connectUseCase,
		disconnectUseCase:  disconnectUseCase,
		statusUseCase:      statusUseCase,
		listServersUseCase: listServersUseCase,
	}
}

// Connect handles POST /vpn/connect
func (h *VPNHandler) Connect(c *gin.Context) {
	var req vpn.ConnectRequest
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

	result, err := h.connectUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to connect subscriber", err, map[string]interface{}{"subscriber_id": subscriberID})
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"session": result})
}

// Disconnect handles POST /vpn/disconnect
func (h *VPNHandler) Disconnect(c *gin.Context) {
	var req vpn.DisconnectRequest
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

	summary, err := h.disconnectUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to disconnect session", err, map[string]interface{}{"subscriber_id": subscriberID})
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Status handles GET /vpn/status
func (h *VPNHandler) Status(c *gin.Context) {
	subscriberID, err := subscriberIDFromContext(c)
	if err != nil {
		utils.Unauthorized(c, "Invalid subscriber ID")
		return
	}

	var sessionID *uuid.UUID
	if raw := c.Query("session_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.ValidationError(c, "Invalid session_id")
			return
		}
		sessionID = &parsed
	}

	summary, err := h.statusUseCase.Execute(c.Request.Context(), subscriberID, sessionID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ListServers handles GET /vpn/servers
func (h *VPNHandler) ListServers(c *gin.Context) {
	filter := repositories.ServerFilter{
		Tier:     c.Query("tier"),
		Location: c.Query("location"),
	}

	servers, err := h.listServersUseCase.Execute(c.Request.Context(), filter)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"servers": servers})
}

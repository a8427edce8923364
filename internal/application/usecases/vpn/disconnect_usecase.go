package vpn

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// DisconnectRequest is the inbound request to tear down an open session.
type DisconnectRequest struct {
	SessionID     uuid.UUID `json:"session_id" validate:"required"`
	SubscriberID  uuid.UUID `json:"subscriber_id" validate:"required"`
	BytesSent     int64     `json:"bytes_sent"`
	BytesReceived int64     `json:"bytes_received"`
}

// DisconnectUseCase closes a session and returns its usage summary.
type DisconnectUseCase struct {
	sessionManager services.SessionManager
}

// NewDisconnectUseCase creates a new DisconnectUseCase instance.
func NewDisconnectUseCase(sessionManager services.SessionManager) *DisconnectUseCase {
	return &DisconnectUseCase{sessionManager: sessionManager}
}

// Execute closes the subscriber's session and logs the usage totals.
func (uc *DisconnectUseCase) Execute(ctx context.Context, req *DisconnectRequest) (*services.SessionSummary, error) {
	logger.Info("disconnecting session", map[string]interface{}{
		"subscriber_id": req.SubscriberID,
		"session_id":    req.SessionID,
	})

	summary, err := uc.sessionManager.Disconnect(ctx, services.DisconnectRequest{
		SessionID:     req.SessionID,
		SubscriberID:  req.SubscriberID,
		BytesSent:     req.BytesSent,
		BytesReceived: req.BytesReceived,
	})
	if err != nil {
		logger.Error("failed to disconnect session", err, map[string]interface{}{
			"subscriber_id": req.SubscriberID,
			"session_id":    req.SessionID,
		})
		return nil, err
	}

	return summary, nil
}

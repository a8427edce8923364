package vpn

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// ConnectRequest is the inbound request to admit a subscriber onto the fleet.
type ConnectRequest struct {
	SubscriberID   uuid.UUID `json:"subscriber_id" validate:"required"`
	Location       string    `json:"location"`
	ClientPubKey   string    `json:"client_public_key" validate:"required"`
	RequirePremium bool      `json:"require_premium"`
}

// ConnectUseCase resolves the subscriber's current plan tier and hands the
// request to the session manager to pick a server and open a session.
type ConnectUseCase struct {
	entitlementEngine services.EntitlementEngine
	sessionManager    services.SessionManager
}

// NewConnectUseCase creates a new ConnectUseCase instance.
func NewConnectUseCase(entitlementEngine services.EntitlementEngine, sessionManager services.SessionManager) *ConnectUseCase {
	return &ConnectUseCase{entitlementEngine: entitlementEngine, sessionManager: sessionManager}
}

// Execute admits the subscriber onto a server and opens a new session.
func (uc *ConnectUseCase) Execute(ctx context.Context, req *ConnectRequest) (*services.ConnectResult, error) {
	plan, _, err := uc.entitlementEngine.Resolve(ctx, req.SubscriberID)
	if err != nil {
		logger.Error("failed to resolve subscriber plan", err, map[string]interface{}{
			"subscriber_id": req.SubscriberID,
		})
		return nil, err
	}

	logger.Info("admitting subscriber", map[string]interface{}{
		"subscriber_id": req.SubscriberID,
		"location":      req.Location,
		"tier":          plan.Tier,
	})

	result, err := uc.sessionManager.Connect(ctx, plan.Tier, services.ConnectRequest{
		SubscriberID:   req.SubscriberID,
		Location:       req.Location,
		ClientPubKey:   req.ClientPubKey,
		RequirePremium: req.RequirePremium,
	})
	if err != nil {
		logger.Error("failed to connect subscriber", err, map[string]interface{}{
			"subscriber_id": req.SubscriberID,
		})
		return nil, err
	}

	return result, nil
}

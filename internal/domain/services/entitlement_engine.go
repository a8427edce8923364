package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/stripe"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// EntitlementEngine is the Entitlement Engine module: it resolves what tier
// of service a subscriber is entitled to, drives plan changes through Stripe,
// and reconciles subscription state from webhook-delivered payment events.
type EntitlementEngine interface {
	// Resolve returns the subscriber's current effective plan, or the
	// implicit free plan if they hold no subscription at all.
	Resolve(ctx context.Context, subscriberID uuid.UUID) (*entities.Plan, *entities.Subscription, error)

	// ListPlans returns every plan available for purchase.
	ListPlans(ctx context.Context) ([]*entities.Plan, error)

	// Subscribe starts (or switches) a subscriber's paid plan, creating the
	// Stripe subscription and a pending local record awaiting webhook
	// confirmation.
	Subscribe(ctx context.Context, subscriberID uuid.UUID, planCode, stripePaymentMethodID string) (*entities.Subscription, error)

	// ConfirmPayment reconciles local subscription/payment state from a
	// verified Stripe webhook event. Idempotent against event redelivery.
	ConfirmPayment(ctx context.Context, event *stripe.WebhookEvent) error

	// Cancel stops auto-renewal; the subscription remains active through
	// the current billing period.
	Cancel(ctx context.Context, subscriberID uuid.UUID) error

	// ReconcileExpired expires subscriptions whose current period has
	// elapsed without renewal, called periodically by a background task.
	ReconcileExpired(ctx context.Context, now time.Time) (int, error)
}

type entitlementEngineImpl struct {
	subscriberRepo   repositories.SubscriberRepository
	planRepo         repositories.PlanRepository
	subscriptionRepo repositories.SubscriptionRepository
	paymentRepo      repositories.PaymentRepository
	webhookRepo      repositories.WebhookEventRepository
	stripeService    *stripe.StripeService
}

// NewEntitlementEngine creates a new EntitlementEngine instance.
func NewEntitlementEngine(
	subscriberRepo repositories.SubscriberRepository,
	planRepo repositories.PlanRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	paymentRepo repositories.PaymentRepository,
	webhookRepo repositories.WebhookEventRepository,
	stripeService *stripe.StripeService,
) EntitlementEngine {
	return &entitlementEngineImpl{
		subscriberRepo:   subscriberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		webhookRepo:      webhookRepo,
		stripeService:    stripeService,
	}
}

func (e *entitlementEngineImpl) Resolve(ctx context.Context, subscriberID uuid.UUID) (*entities.Plan, *entities.Subscription, error) {
	subscription, err := e.subscriptionRepo.GetMostRecentForSubscriber(ctx, subscriberID)
	if err != nil {
		if err == repositories.ErrNotFound {
			freePlan, ferr := e.planRepo.GetByCode(ctx, "free")
			if ferr != nil {
				return nil, nil, errors.WrapError(ferr, "failed to resolve free plan")
			}
			e.reconcilePremiumHint(ctx, subscriberID, freePlan.IsPaid())
			return freePlan, nil, nil
		}
		return nil, nil, errors.WrapError(err, "failed to resolve subscription")
	}

	if !subscription.IsActive() {
		freePlan, ferr := e.planRepo.GetByCode(ctx, "free")
		if ferr != nil {
			return nil, nil, errors.WrapError(ferr, "failed to resolve free plan")
		}
		e.reconcilePremiumHint(ctx, subscriberID, freePlan.IsPaid())
		return freePlan, subscription, nil
	}

	e.reconcilePremiumHint(ctx, subscriberID, subscription.Plan.IsPaid())
	return subscription.Plan, subscription, nil
}

// reconcilePremiumHint lazily syncs the subscriber's cached premium flag to
// match the plan Resolve just computed, so admission checks elsewhere that
// read the cached flag directly don't drift from the subscription's actual
// state between explicit subscribe/webhook/expiry updates.
func (e *entitlementEngineImpl) reconcilePremiumHint(ctx context.Context, subscriberID uuid.UUID, isPremium bool) {
	subscriber, err := e.subscriberRepo.GetByID(ctx, subscriberID)
	if err != nil {
		return
	}
	if subscriber.IsPremium == isPremium {
		return
	}
	subscriber.SetPremiumHint(isPremium)
	if err := e.subscriberRepo.Update(ctx, subscriber); err != nil {
		logger.Error("failed to reconcile subscriber premium hint", err, map[string]interface{}{"subscriber_id": subscriberID})
	}
}

func (e *entitlementEngineImpl) ListPlans(ctx context.Context) ([]*entities.Plan, error) {
	plans, err := e.planRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to list plans")
	}
	return plans, nil
}

func (e *entitlementEngineImpl) Subscribe(ctx context.Context, subscriberID uuid.UUID, planCode, stripePaymentMethodID string) (*entities.Subscription, error) {
	subscriber, err := e.subscriberRepo.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, errors.ErrSubscriberNotFound
	}

	plan, err := e.planRepo.GetByCode(ctx, planCode)
	if err != nil {
		return nil, errors.ErrInvalidPlan
	}

	if plan.IsFree() {
		return e.createLocalSubscription(ctx, subscriber, plan, "", "active", time.Now(), time.Now().AddDate(100, 0, 0))
	}

	stripeSub, err := e.stripeService.CreateSubscription(ctx, subscriber.ID.String(), plan.StripePriceID, stripePaymentMethodID, 0, map[string]string{
		"subscriber_id": subscriber.ID.String(),
	})
	if err != nil {
		logger.Error("failed to create stripe subscription", err, map[string]interface{}{
			"subscriber_id": subscriber.ID,
			"plan":          planCode,
		})
		return nil, errors.WrapError(err, "failed to create subscription with payment provider")
	}

	return e.createLocalSubscription(ctx, subscriber, plan, stripeSub.ID, "pending", stripeSub.CurrentPeriodStart, stripeSub.CurrentPeriodEnd)
}

func (e *entitlementEngineImpl) createLocalSubscription(ctx context.Context, subscriber *entities.Subscriber, plan *entities.Plan, stripeSubID, status string, start, end time.Time) (*entities.Subscription, error) {
	subscription := &entities.Subscription{
		SubscriberID:         subscriber.ID,
		PlanID:               plan.ID,
		Status:               status,
		AutoRenew:            true,
		StripeSubscriptionID: stripeSubID,
		CurrentPeriodStart:   start,
		CurrentPeriodEnd:     end,
	}

	if err := e.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, errors.WrapError(err, "failed to persist subscription")
	}

	if status == "active" {
		subscriber.SetPremiumHint(plan.IsPaid())
		if err := e.subscriberRepo.Update(ctx, subscriber); err != nil {
			logger.Error("failed to update subscriber premium hint", err, map[string]interface{}{"subscriber_id": subscriber.ID})
		}
	}

	return subscription, nil
}

// ConfirmPayment handles Stripe's invoice.payment_succeeded / customer.subscription.updated
// events: it is the only path that flips a subscription from pending to
// active, since Stripe is the source of truth for whether money moved.
func (e *entitlementEngineImpl) ConfirmPayment(ctx context.Context, event *stripe.WebhookEvent) error {
	if existing, err := e.webhookRepo.GetByStripeEventID(ctx, event.ID); err == nil && existing.Processed {
		return nil
	}

	webhookRecord := &entities.WebhookEvent{
		StripeEventID: event.ID,
		Type:          event.Type,
		RawData:       string(event.Data),
	}
	if err := e.webhookRepo.Create(ctx, webhookRecord); err != nil {
		return errors.WrapError(err, "failed to record webhook event")
	}

	var payload struct {
		Object struct {
			Subscription string `json:"subscription"`
			ID           string `json:"id"`
		} `json:"object"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return errors.WrapError(err, "failed to parse webhook payload")
	}

	stripeSubscriptionID := payload.Object.Subscription
	if stripeSubscriptionID == "" && event.Type == "customer.subscription.updated" {
		stripeSubscriptionID = payload.Object.ID
	}
	if stripeSubscriptionID == "" {
		return e.webhookRepo.MarkProcessed(ctx, event.ID)
	}

	subscription, err := e.subscriptionRepo.GetByStripeSubscriptionID(ctx, stripeSubscriptionID)
	if err != nil {
		return errors.WrapError(err, "failed to locate subscription for webhook event")
	}

	switch event.Type {
	case "invoice.payment_succeeded", "customer.subscription.updated":
		subscription.Activate(subscription.CurrentPeriodStart, subscription.CurrentPeriodEnd)
	case "invoice.payment_failed":
		subscription.Status = "past_due"
	case "customer.subscription.deleted":
		subscription.MarkCanceled()
	}

	if err := e.subscriptionRepo.Update(ctx, subscription); err != nil {
		return errors.WrapError(err, "failed to update subscription from webhook")
	}

	subscriber, err := e.subscriberRepo.GetByID(ctx, subscription.SubscriberID)
	if err == nil {
		subscriber.SetPremiumHint(subscription.IsActive())
		e.subscriberRepo.Update(ctx, subscriber)
	}

	return e.webhookRepo.MarkProcessed(ctx, event.ID)
}

func (e *entitlementEngineImpl) Cancel(ctx context.Context, subscriberID uuid.UUID) error {
	subscription, err := e.subscriptionRepo.GetMostRecentForSubscriber(ctx, subscriberID)
	if err != nil {
		return errors.NewNotFoundError("subscription")
	}
	if !subscription.IsActive() {
		return errors.NewConflictError("subscription is not active")
	}

	if subscription.StripeSubscriptionID != "" {
		if _, err := e.stripeService.CancelSubscription(ctx, subscription.StripeSubscriptionID, true); err != nil {
			return errors.WrapError(err, "failed to cancel subscription with payment provider")
		}
	}

	subscription.AutoRenew = false
	if err := e.subscriptionRepo.Update(ctx, subscription); err != nil {
		return errors.WrapError(err, "failed to update subscription")
	}
	return nil
}

func (e *entitlementEngineImpl) ReconcileExpired(ctx context.Context, now time.Time) (int, error) {
	expiring, err := e.subscriptionRepo.ListExpiring(ctx, now)
	if err != nil {
		return 0, errors.WrapError(err, "failed to list expiring subscriptions")
	}

	expired := 0
	for _, subscription := range expiring {
		subscription.Expire()
		if err := e.subscriptionRepo.Update(ctx, subscription); err != nil {
			logger.Error("failed to expire subscription", err, map[string]interface{}{"subscription_id": subscription.ID})
			continue
		}
		if subscriber, err := e.subscriberRepo.GetByID(ctx, subscription.SubscriberID); err == nil {
			subscriber.SetPremiumHint(false)
			e.subscriberRepo.Update(ctx, subscriber)
		}
		expired++
	}

	return expired, nil
}

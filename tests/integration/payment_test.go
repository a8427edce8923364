package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fenwicknet/vpnctl/internal/application/usecases/payment"
	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/stripe"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/handlers"
	"github.com/fenwicknet/vpnctl/internal/interfaces/http/routes"
)

// fakeSubscriberRepo, fakePlanRepo, fakeSubscriptionRepo and
// fakePaymentMethodRepo are minimal in-memory stand-ins for the repository
// interfaces, used to drive the real EntitlementEngine without a database.

type fakeSubscriberRepo struct {
	byID map[uuid.UUID]*entities.Subscriber
}

func (r *fakeSubscriberRepo) Create(ctx context.Context, s *entities.Subscriber) error {
	r.byID[s.ID] = s
	return nil
}
func (r *fakeSubscriberRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscriber, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}
func (r *fakeSubscriberRepo) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	for _, s := range r.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakeSubscriberRepo) GetByHandle(ctx context.Context, handle string) (*entities.Subscriber, error) {
	for _, s := range r.byID {
		if s.Handle == handle {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakeSubscriberRepo) Update(ctx context.Context, s *entities.Subscriber) error {
	r.byID[s.ID] = s
	return nil
}
func (r *fakeSubscriberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}
func (r *fakeSubscriberRepo) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	_, err := r.GetByHandle(ctx, handle)
	return err == nil, nil
}
func (r *fakeSubscriberRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakePlanRepo struct {
	byCode map[string]*entities.Plan
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	for _, p := range r.byCode {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakePlanRepo) GetByCode(ctx context.Context, code string) (*entities.Plan, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}
func (r *fakePlanRepo) ListActive(ctx context.Context) ([]*entities.Plan, error) {
	var plans []*entities.Plan
	for _, p := range r.byCode {
		if p.Active {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

type fakeSubscriptionRepo struct {
	bySubscriber map[uuid.UUID]*entities.Subscription
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, s *entities.Subscription) error {
	s.ID = uuid.New()
	r.bySubscriber[s.SubscriberID] = s
	return nil
}
func (r *fakeSubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error) {
	for _, s := range r.bySubscriber {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakeSubscriptionRepo) Update(ctx context.Context, s *entities.Subscription) error {
	r.bySubscriber[s.SubscriberID] = s
	return nil
}
func (r *fakeSubscriptionRepo) GetMostRecentForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Subscription, error) {
	s, ok := r.bySubscriber[subscriberID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}
func (r *fakeSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error) {
	for _, s := range r.bySubscriber {
		if s.StripeSubscriptionID == stripeSubscriptionID {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakeSubscriptionRepo) ListExpiring(ctx context.Context, before time.Time) ([]*entities.Subscription, error) {
	var out []*entities.Subscription
	for _, s := range r.bySubscriber {
		if s.IsActive() && s.CurrentPeriodEnd.Before(before) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePaymentRepo struct{}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entities.Payment) error { return nil }
func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	return nil, repositories.ErrNotFound
}
func (r *fakePaymentRepo) Update(ctx context.Context, p *entities.Payment) error { return nil }
func (r *fakePaymentRepo) GetByStripePaymentIntentID(ctx context.Context, id string) (*entities.Payment, error) {
	return nil, repositories.ErrNotFound
}

type fakeWebhookEventRepo struct{}

func (r *fakeWebhookEventRepo) Create(ctx context.Context, e *entities.WebhookEvent) error {
	return nil
}
func (r *fakeWebhookEventRepo) GetByStripeEventID(ctx context.Context, id string) (*entities.WebhookEvent, error) {
	return nil, repositories.ErrNotFound
}
func (r *fakeWebhookEventRepo) MarkProcessed(ctx context.Context, id string) error { return nil }

type fakePaymentMethodRepo struct {
	bySubscriber map[uuid.UUID][]*entities.PaymentMethod
}

func (r *fakePaymentMethodRepo) Create(ctx context.Context, m *entities.PaymentMethod) error {
	m.ID = uuid.New()
	r.bySubscriber[m.SubscriberID] = append(r.bySubscriber[m.SubscriberID], m)
	return nil
}
func (r *fakePaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentMethod, error) {
	for _, methods := range r.bySubscriber {
		for _, m := range methods {
			if m.ID == id {
				return m, nil
			}
		}
	}
	return nil, repositories.ErrNotFound
}
func (r *fakePaymentMethodRepo) ListForSubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entities.PaymentMethod, error) {
	return r.bySubscriber[subscriberID], nil
}

// PaymentIntegrationTestSuite exercises the payment routes wired to a real
// EntitlementEngine backed by in-memory repositories, covering every path
// that resolves without reaching the live Stripe API (free-plan subscribe,
// free-plan cancel, plan/subscription reads, stored payment methods).
type PaymentIntegrationTestSuite struct {
	suite.Suite
	router         *gin.Engine
	subscriberRepo *fakeSubscriberRepo
	planRepo       *fakePlanRepo
	subscriptionRepo *fakeSubscriptionRepo
	methodRepo     *fakePaymentMethodRepo
	subscriberID   uuid.UUID
}

func (suite *PaymentIntegrationTestSuite) SetupTest() {
	suite.subscriberID = uuid.New()

	suite.subscriberRepo = &fakeSubscriberRepo{byID: map[uuid.UUID]*entities.Subscriber{
		suite.subscriberID: {ID: suite.subscriberID, Email: "subscriber@example.com", Handle: "subscriber", Status: entities.SubscriberStatusActive},
	}}

	freePlan := &entities.Plan{ID: uuid.New(), Code: "free", Name: "Free", Tier: "free", Active: true}
	premiumPlan := &entities.Plan{ID: uuid.New(), Code: "premium", Name: "Premium", Tier: "paid", PriceCents: 999, Active: true}
	suite.planRepo = &fakePlanRepo{byCode: map[string]*entities.Plan{
		"free":    freePlan,
		"premium": premiumPlan,
	}}

	suite.subscriptionRepo = &fakeSubscriptionRepo{bySubscriber: map[uuid.UUID]*entities.Subscription{}}
	suite.methodRepo = &fakePaymentMethodRepo{bySubscriber: map[uuid.UUID][]*entities.PaymentMethod{}}

	stripeService := stripe.NewStripeService("sk_test_mock", "pk_test_mock", "whsec_test_mock")

	entitlementEngine := services.NewEntitlementEngine(
		suite.subscriberRepo,
		suite.planRepo,
		suite.subscriptionRepo,
		&fakePaymentRepo{},
		&fakeWebhookEventRepo{},
		stripeService,
	)

	getPlansUseCase := payment.NewGetPlansUseCase(entitlementEngine)
	subscribeUseCase := payment.NewSubscribeUseCase(entitlementEngine)
	getSubscriptionUseCase := payment.NewGetSubscriptionUseCase(entitlementEngine)
	cancelSubscriptionUseCase := payment.NewCancelSubscriptionUseCase(entitlementEngine)
	getPaymentMethodsUseCase := payment.NewGetPaymentMethodsUseCase(suite.methodRepo)
	addPaymentMethodUseCase := payment.NewAddPaymentMethodUseCase(nil, suite.methodRepo, stripeService)
	processWebhookUseCase := payment.NewProcessWebhookUseCase(entitlementEngine, stripeService)

	paymentHandler := handlers.NewPaymentHandler(
		getPlansUseCase,
		subscribeUseCase,
		getSubscriptionUseCase,
		cancelSubscriptionUseCase,
		addPaymentMethodUseCase,
		getPaymentMethodsUseCase,
		processWebhookUseCase,
	)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.subscriberID.String())
		c.Next()
	})

	paymentRoutes := routes.NewPaymentRoutes(paymentHandler)
	v1 := suite.router.Group("/api/v1")
	paymentRoutes.RegisterRoutes(v1)
}

func (suite *PaymentIntegrationTestSuite) TestGetPlans() {
	req := httptest.NewRequest("GET", "/api/v1/payments/plans", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body["success"].(bool))
}

func (suite *PaymentIntegrationTestSuite) TestGetSubscriptionDefaultsToFreePlan() {
	req := httptest.NewRequest("GET", "/api/v1/payments/subscription", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	plan := data["plan"].(map[string]interface{})
	suite.Equal("free", plan["code"])
}

func (suite *PaymentIntegrationTestSuite) TestSubscribeToFreePlan() {
	reqBody, _ := json.Marshal(payment.SubscribeRequest{PlanCode: "free", PaymentMethod: "none"})
	httpReq := httptest.NewRequest("POST", "/api/v1/payments/subscribe", bytes.NewBuffer(reqBody))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusCreated, w.Code)

	sub, err := suite.subscriptionRepo.GetMostRecentForSubscriber(context.Background(), suite.subscriberID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "active", sub.Status)
}

func (suite *PaymentIntegrationTestSuite) TestCancelSubscription() {
	plan := suite.planRepo.byCode["free"]
	suite.subscriptionRepo.bySubscriber[suite.subscriberID] = &entities.Subscription{
		ID:           uuid.New(),
		SubscriberID: suite.subscriberID,
		PlanID:       plan.ID,
		Status:       "active",
		AutoRenew:    true,
	}

	req := httptest.NewRequest("POST", "/api/v1/payments/subscription/cancel", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	sub := suite.subscriptionRepo.bySubscriber[suite.subscriberID]
	suite.False(sub.AutoRenew)
}

func (suite *PaymentIntegrationTestSuite) TestGetPaymentMethods() {
	last4 := "4242"
	suite.methodRepo.bySubscriber[suite.subscriberID] = []*entities.PaymentMethod{
		{ID: uuid.New(), SubscriberID: suite.subscriberID, Type: "card", CardLast4: &last4, IsDefault: true},
	}

	req := httptest.NewRequest("GET", "/api/v1/payments/payment-methods", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	methods := data["payment_methods"].([]interface{})
	suite.Len(methods, 1)
}

func (suite *PaymentIntegrationTestSuite) TestWebhookRequiresSignatureHeader() {
	req := httptest.NewRequest("POST", "/api/v1/payments/webhook", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestPaymentIntegration(t *testing.T) {
	suite.Run(t, new(PaymentIntegrationTestSuite))
}

package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	infraRepo "github.com/Raviram02/HostelBite/internal/infra/repository"
	"github.com/Raviram02/HostelBite/internal/metrics"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/payment"
	repo "github.com/Raviram02/HostelBite/internal/repository"
	"github.com/Raviram02/HostelBite/internal/testutil"
	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret  = "handler_test_secret"
	testRzpSecret  = "rzp_handler_secret"
	testWhsec      = "whsec_handler"
	sellerEmail    = "seller@canteen.test"
	sellerPassword = "counter-123"
)

// =====================
// collaborators
// =====================

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("order-%d", g.n)
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// razorpayStub remembers the receipt of every gateway order it creates.
type razorpayStub struct {
	mu       sync.Mutex
	receipts map[string]string
}

func (g *razorpayStub) CreateOrder(_ context.Context, req payment.GatewayOrderRequest) (map[string]interface{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := "order_RZP" + strconv.Itoa(len(g.receipts)+1)
	g.receipts[id] = req.Receipt
	return map[string]interface{}{"id": id, "amount": req.Amount, "currency": req.Currency, "receipt": req.Receipt}, nil
}

func (g *razorpayStub) FetchOrder(_ context.Context, id string) (map[string]interface{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return map[string]interface{}{"id": id, "receipt": g.receipts[id]}, nil
}

type checkoutStub struct {
	mu       sync.Mutex
	requests []payment.CheckoutRequest
}

func (s *checkoutStub) CreateSession(_ context.Context, req payment.CheckoutRequest) (payment.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return payment.CheckoutSession{ID: "cs_1", URL: "https://checkout.test/cs_1"}, nil
}

func (s *checkoutStub) MetadataForPaymentIntent(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

// =====================
// app
// =====================

type testApp struct {
	e        *echo.Echo
	orders   repo.OrderRepository
	carts    repo.CartRepository
	rzp      *razorpayStub
	checkout *checkoutStub
	issuer   *middleware.TokenIssuer
	pingErr  error
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	testutil.SeedProducts(t, gdb)

	cfg := config.Config{JWTSecret: testJWTSecret}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	publisher := events.NoopPublisher{}
	clock := wallClock{}

	products := infraRepo.NewProductGormRepository(gdb)
	orders := infraRepo.NewOrderGormRepository(gdb)
	carts := infraRepo.NewCartGormRepository(gdb)
	audits := infraRepo.NewAuditLogGormRepository(gdb)
	tx := infraRepo.NewTxManagerGorm(gdb)

	app := &testApp{
		e:        echo.New(),
		orders:   orders,
		carts:    carts,
		rzp:      &razorpayStub{receipts: map[string]string{}},
		checkout: &checkoutStub{},
		issuer:   middleware.NewTokenIssuer(testJWTSecret, time.Hour),
	}

	adapters := payment.NewRegistry(
		payment.NewCODAdapter(),
		payment.NewRazorpayAdapter(app.rzp, testRzpSecret, "INR"),
		payment.NewStripeAdapter(app.checkout, testWhsec, "INR"),
	)
	calc := pricing.NewCalculator(pricing.DefaultPolicy(), products)

	hash, err := bcrypt.GenerateFromPassword([]byte(sellerPassword), bcrypt.MinCost)
	require.NoError(t, err)

	orderUC := usecase.NewOrderUsecase(orders, calc, adapters, &seqIDs{}, clock, publisher, m, logger)
	paymentUC := usecase.NewPaymentUsecase(tx, orders, adapters, clock, publisher, m, logger)
	sellerUC := usecase.NewSellerOrderUsecase(tx, orders, audits, clock, publisher, m, logger)
	cartUC := usecase.NewCartUsecase(carts, products)
	authUC := usecase.NewSellerAuthUsecase(sellerEmail, string(hash), usecase.NewBcryptPasswordVerifier(), app.issuer, clock, logger)

	NewOrderHandler(orderUC, paymentUC).RegisterRoutes(app.e, cfg)
	NewSellerOrderHandler(sellerUC).RegisterRoutes(app.e, cfg)
	NewCartHandler(cartUC).RegisterRoutes(app.e, cfg)
	NewSellerAuthHandler(authUC, cfg).RegisterRoutes(app.e)
	NewWebhookHandler(paymentUC, logger).RegisterRoutes(app.e)
	NewHealthHandler(PingFunc(func(context.Context) error { return app.pingErr }), m.Registry).RegisterRoutes(app.e)

	return app
}

func (a *testApp) token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, _, err := a.issuer.Issue(subject, role, time.Now())
	require.NoError(t, err)
	return tok
}

func (a *testApp) userToken(t *testing.T, userID string) string {
	return a.token(t, userID, middleware.RoleUser)
}

func (a *testApp) sellerToken(t *testing.T) string {
	return a.token(t, sellerEmail, middleware.RoleSeller)
}

// doJSON sends body (marshalled unless it is already []byte) and returns the recorder.
func (a *testApp) doJSON(t *testing.T, method, path, bearer string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reqBody = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if reqBody != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body=%s", rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}

func orderBody(mode string, withAddress bool) PlaceOrderRequest {
	req := PlaceOrderRequest{
		Items: []OrderItemRequest{
			{Product: testutil.Thali.ID, Quantity: 1},
			{Product: testutil.Chai.ID, Quantity: 2},
		},
		OrderMode: mode,
	}
	if withAddress {
		req.Address = &model.DeliveryAddress{Name: "Asha", Phone: "9876543210", Room: "B-204"}
	}
	return req
}

func signedWebhook(t *testing.T, eventType, orderID string) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":{"id":"pi_1","object":"payment_intent","metadata":{"orderId":%q,"userId":"u-1"}}}}`, eventType, orderID))
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testWhsec))
	mac.Write([]byte(ts + "." + string(payload)))
	return payload, fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

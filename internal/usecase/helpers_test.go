package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	infraRepo "github.com/Raviram02/HostelBite/internal/infra/repository"
	"github.com/Raviram02/HostelBite/internal/metrics"
	"github.com/Raviram02/HostelBite/internal/payment"
	repo "github.com/Raviram02/HostelBite/internal/repository"
	"github.com/Raviram02/HostelBite/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// =====================
// collaborators
// =====================

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

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

type published struct {
	Subject string
	Event   events.OrderEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, ev events.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Subject: subject, Event: ev})
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}

// fakeAdapter stands in for an online gateway.
type fakeAdapter struct {
	method      model.PaymentMethod
	policy      payment.FailurePolicy
	initiateErr error
	pending     payment.PendingPayment
	outcome     payment.Outcome
	confirmErr  error
	initiated   []payment.Initiation
}

func (a *fakeAdapter) Method() model.PaymentMethod                   { return a.method }
func (a *fakeAdapter) FailurePolicy() payment.FailurePolicy          { return a.policy }
func (a *fakeAdapter) PaymentType(model.OrderMode) model.PaymentType { return model.PaymentTypeOnline }

func (a *fakeAdapter) Initiate(_ context.Context, in payment.Initiation) (payment.PendingPayment, error) {
	a.initiated = append(a.initiated, in)
	return a.pending, a.initiateErr
}

func (a *fakeAdapter) Confirm(context.Context, payment.Signal) (payment.Outcome, error) {
	return a.outcome, a.confirmErr
}

// =====================
// environment
// =====================

type testEnv struct {
	db       *gorm.DB
	orders   repo.OrderRepository
	carts    repo.CartRepository
	products repo.ProductRepository
	audits   repo.AuditLogRepository
	tx       repo.TransactionManager
	calc     *pricing.Calculator
	clock    fixedClock
	ids      *seqIDs
	events   *recordingPublisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	testutil.SeedProducts(t, gdb)

	products := infraRepo.NewProductGormRepository(gdb)
	return &testEnv{
		db:       gdb,
		orders:   infraRepo.NewOrderGormRepository(gdb),
		carts:    infraRepo.NewCartGormRepository(gdb),
		products: products,
		audits:   infraRepo.NewAuditLogGormRepository(gdb),
		tx:       infraRepo.NewTxManagerGorm(gdb),
		calc:     pricing.NewCalculator(pricing.DefaultPolicy(), products),
		clock:    fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		ids:      &seqIDs{},
		events:   &recordingPublisher{},
		metrics:  metrics.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *testEnv) orderUsecase(adapters ...payment.Adapter) *OrderUsecase {
	return NewOrderUsecase(e.orders, e.calc, payment.NewRegistry(adapters...), e.ids, e.clock, e.events, e.metrics, e.logger)
}

func (e *testEnv) paymentUsecase(adapters ...payment.Adapter) *PaymentUsecase {
	return NewPaymentUsecase(e.tx, e.orders, payment.NewRegistry(adapters...), e.clock, e.events, e.metrics, e.logger)
}

func (e *testEnv) sellerUsecase() *SellerOrderUsecase {
	return NewSellerOrderUsecase(e.tx, e.orders, e.audits, e.clock, e.events, e.metrics, e.logger)
}

// storeOrder saves an order straight into the store.
func (e *testEnv) storeOrder(t *testing.T, o model.Order) model.Order {
	t.Helper()
	_, err := e.orders.Create(context.Background(), o)
	require.NoError(t, err)
	got, err := e.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	return got
}

func (e *testEnv) fillCart(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, e.carts.ReplaceItems(context.Background(), userID, []model.CartItem{
		{ProductID: testutil.Thali.ID, Quantity: 1},
		{ProductID: testutil.Chai.ID, Quantity: 2},
	}))
}

func (e *testEnv) auditCount(t *testing.T, orderID string, action model.AuditAction) int {
	t.Helper()
	logs, err := e.audits.List(context.Background(), repo.AuditLogFilter{ResourceID: &orderID, Action: &action})
	require.NoError(t, err)
	return len(logs)
}

func twoItems() []OrderItemInput {
	return []OrderItemInput{
		{ProductID: testutil.Thali.ID, Quantity: 1},
		{ProductID: testutil.Chai.ID, Quantity: 2},
	}
}

func roomAddress() *model.DeliveryAddress {
	return &model.DeliveryAddress{Name: "Asha", Phone: "9876543210", Room: "B-204"}
}

// =====================
// version conflict injection
// =====================

// conflictingTx makes the first n order updates fail with a version conflict.
type conflictingTx struct {
	inner     repo.TransactionManager
	conflicts int
	attempts  int
}

func (c *conflictingTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return c.inner.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(&conflictingRepos{TxRepos: r, c: c})
	})
}

type conflictingRepos struct {
	repo.TxRepos
	c *conflictingTx
}

func (r *conflictingRepos) Orders() repo.OrderRepository {
	return &conflictingOrders{OrderRepository: r.TxRepos.Orders(), c: r.c}
}

type conflictingOrders struct {
	repo.OrderRepository
	c *conflictingTx
}

func (o *conflictingOrders) Update(ctx context.Context, id string, version int64, patch repo.OrderPatch) (model.Order, error) {
	o.c.attempts++
	if o.c.conflicts > 0 {
		o.c.conflicts--
		return model.Order{}, repo.ErrVersionConflict
	}
	return o.OrderRepository.Update(ctx, id, version, patch)
}

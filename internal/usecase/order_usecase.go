package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	"github.com/Raviram02/HostelBite/internal/metrics"
	"github.com/Raviram02/HostelBite/internal/payment"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

type OrderUsecase struct {
	orders   repo.OrderRepository
	calc     *pricing.Calculator
	adapters *payment.Registry
	ids      IDGenerator
	clock    Clock
	events   EventPublisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	calc *pricing.Calculator,
	adapters *payment.Registry,
	ids IDGenerator,
	clock Clock,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		calc:     calc,
		adapters: adapters,
		ids:      ids,
		clock:    clock,
		events:   publisher,
		metrics:  m,
		logger:   logger,
	}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

type PlaceOrderInput struct {
	Method    model.PaymentMethod
	Items     []OrderItemInput
	Address   *model.DeliveryAddress
	OrderMode string
	// request Origin header, for hosted checkout redirects
	Origin string
}

type PlaceOrderOutput struct {
	Order   model.Order
	Payment payment.PendingPayment
}

// PlaceOrder prices the items, stores an unpaid order and starts its payment.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	adapter, ok := u.adapters.Get(in.Method)
	if !ok {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Payment method not available")
	}

	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}
	if strings.TrimSpace(in.OrderMode) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order mode is required")
	}
	mode := model.OrderMode(strings.TrimSpace(in.OrderMode))
	if !mode.Valid() {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid order mode")
	}

	//room orders carry a complete address, pickup orders none
	var addr model.DeliveryAddress
	if mode == model.OrderModeRoom {
		if in.Address == nil || !in.Address.Complete() {
			return PlaceOrderOutput{}, wrapHTTPError(http.StatusBadRequest, "Incomplete delivery details", model.ErrIncompleteDelivery)
		}
		addr = in.Address.Trimmed()
	}

	items := make([]pricing.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, pricing.ItemInput{ProductID: strings.TrimSpace(it.ProductID), Quantity: it.Quantity})
	}
	quote, err := u.calc.Quote(ctx, items, mode)
	if err != nil {
		return PlaceOrderOutput{}, quoteError(err)
	}

	now := u.clock.Now()
	order := model.Order{
		ID:            u.ids.NewID(),
		UserID:        userID,
		Items:         quote.OrderItems(),
		Amount:        quote.Total,
		Address:       addr,
		OrderMode:     mode,
		PaymentType:   adapter.PaymentType(mode),
		PaymentMethod: adapter.Method(),
		IsPaid:        false,
		Status:        model.OrderStatusPlaced,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := u.orders.Create(ctx, order); err != nil {
		u.logger.Error("create order", "user_id", userID, "error", err)
		return PlaceOrderOutput{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	u.metrics.OrdersPlaced.WithLabelValues(string(order.PaymentMethod), string(order.OrderMode)).Inc()

	pending, err := adapter.Initiate(ctx, payment.Initiation{Order: order, Quote: quote, Origin: in.Origin})
	if err != nil {
		u.logger.Error("initiate payment",
			"order_id", order.ID,
			"method", order.PaymentMethod,
			"policy", adapter.FailurePolicy().String(),
			"error", err)
		u.abandon(ctx, adapter, order)
		return PlaceOrderOutput{}, paymentError(err)
	}

	u.events.Publish(ctx, events.SubjectOrderPlaced, events.NewOrderEvent(order, now))
	u.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", userID,
		"method", order.PaymentMethod,
		"mode", order.OrderMode,
		"amount", order.Amount)

	return PlaceOrderOutput{Order: order, Payment: pending}, nil
}

// abandon applies the adapter's failure policy to an order whose payment never started.
func (u *OrderUsecase) abandon(ctx context.Context, adapter payment.Adapter, order model.Order) {
	if adapter.FailurePolicy() != payment.DeleteOrder {
		return
	}
	if err := u.orders.Delete(ctx, order.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		u.logger.Error("delete abandoned order", "order_id", order.ID, "error", err)
		return
	}
	u.events.Publish(ctx, events.SubjectOrderDeleted, events.NewOrderEvent(order, u.clock.Now()))
}

// ListMyOrders returns the user's orders, newest first.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page, limit int) ([]model.Order, error) {
	if userID == "" {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, _, err := u.orders.List(ctx, repo.OrderListFilter{UserID: userID, Page: page, Limit: limit})
	if err != nil {
		return []model.Order{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return orders, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	"github.com/Raviram02/HostelBite/internal/metrics"
	"github.com/Raviram02/HostelBite/internal/payment"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

// PaymentUsecase turns gateway signals into order updates.
type PaymentUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	adapters *payment.Registry
	clock    Clock
	events   EventPublisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	adapters *payment.Registry,
	clock Clock,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:       tx,
		orders:   orders,
		adapters: adapters,
		clock:    clock,
		events:   publisher,
		metrics:  m,
		logger:   logger,
	}
}

type VerifyPaymentInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
	// optional, must match the caller when sent
	UserID string
}

// VerifyGatewayPayment confirms a gateway-session payment posted back by the browser.
func (u *PaymentUsecase) VerifyGatewayPayment(ctx context.Context, userID string, in VerifyPaymentInput) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	in.OrderID = strings.TrimSpace(in.OrderID)
	if in.OrderID == "" || in.GatewayOrderID == "" || in.GatewayPaymentID == "" || in.Signature == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Missing payment details")
	}
	if in.UserID != "" && in.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	adapter, ok := u.adapters.Get(model.PaymentMethodRazorpay)
	if !ok {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Payment method not available")
	}

	order, err := u.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return model.Order{}, orderError(err)
	}
	if order.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if !order.IsOnline() || order.PaymentMethod != model.PaymentMethodRazorpay {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order was not placed for online payment")
	}

	out, err := adapter.Confirm(ctx, payment.SignatureSignal{
		OrderID:          in.OrderID,
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		Signature:        in.Signature,
	})
	if err != nil {
		u.metrics.PaymentOutcomes.WithLabelValues(string(model.PaymentMethodRazorpay), string(payment.OutcomeRejected)).Inc()
		if errors.Is(err, payment.ErrGateway) {
			u.logger.Error("razorpay confirm", "order_id", in.OrderID, "error", err)
		} else {
			u.logger.Warn("razorpay payment rejected", "order_id", in.OrderID, "user_id", userID, "error", err)
		}
		return model.Order{}, paymentError(err)
	}
	u.metrics.PaymentOutcomes.WithLabelValues(string(model.PaymentMethodRazorpay), string(out.Status)).Inc()

	paid, err := u.confirmPaid(ctx, in.OrderID, "user:"+userID)
	if err != nil {
		return model.Order{}, orderError(err)
	}
	return paid, nil
}

type WebhookResult struct {
	EventType string
	Outcome   payment.OutcomeStatus
	OrderID   string
}

// HandleCheckoutWebhook processes one hosted-checkout webhook delivery.
// A returned error makes the gateway redeliver; anything it cannot act on is acknowledged.
func (u *PaymentUsecase) HandleCheckoutWebhook(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error) {
	adapter, ok := u.adapters.Get(model.PaymentMethodStripe)
	if !ok {
		return WebhookResult{}, NewHTTPError(http.StatusServiceUnavailable, "Payment method not available")
	}

	out, err := adapter.Confirm(ctx, payment.WebhookSignal{Payload: payload, SignatureHeader: signatureHeader})
	res := WebhookResult{EventType: out.EventType, Outcome: out.Status, OrderID: out.OrderID}
	switch {
	case err == nil:
	case errors.Is(err, payment.ErrInvalidSignature):
		u.logger.Warn("stripe webhook signature rejected", "error", err)
		return res, wrapHTTPError(http.StatusBadRequest, "Webhook Error: invalid signature", err)
	case errors.Is(err, payment.ErrMissingCorrelation):
		//nothing to correlate, redelivery would not help
		u.logger.Warn("stripe webhook without order metadata", "event", out.EventType, "reference", out.Reference)
		return res, nil
	default:
		u.logger.Error("stripe webhook", "event", out.EventType, "error", err)
		return res, paymentError(err)
	}

	u.metrics.WebhookDeliveries.WithLabelValues(out.EventType).Inc()

	switch out.Status {
	case payment.OutcomeConfirmed:
		u.metrics.PaymentOutcomes.WithLabelValues(string(model.PaymentMethodStripe), string(out.Status)).Inc()
		_, err := u.confirmPaid(ctx, out.OrderID, "gateway:stripe")
		if errors.Is(err, repo.ErrNotFound) {
			u.logger.Warn("paid webhook for unknown order", "order_id", out.OrderID, "reference", out.Reference)
			return res, nil
		}
		if err != nil {
			return res, orderError(err)
		}

	case payment.OutcomeFailed:
		u.metrics.PaymentOutcomes.WithLabelValues(string(model.PaymentMethodStripe), string(out.Status)).Inc()
		if err := u.applyFailure(ctx, adapter, out.OrderID, "gateway:stripe"); err != nil {
			return res, orderError(err)
		}

	default:
		u.logger.Info("unhandled stripe event type", "event", out.EventType)
	}
	return res, nil
}

// confirmPaid flips isPaid and empties the owner's cart in one transaction.
// An order that is already paid is returned untouched, so replays clear nothing.
func (u *PaymentUsecase) confirmPaid(ctx context.Context, orderID, actor string) (model.Order, error) {
	var (
		result  model.Order
		changed bool
		cleared int64
	)

	err := retryOnConflict(u.metrics, func() error {
		changed = false
		return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := r.Orders().FindByID(ctx, orderID)
			if err != nil {
				return err
			}
			if o.IsPaid {
				result = o
				return nil
			}

			paid := true
			updated, err := r.Orders().Update(ctx, o.ID, o.Version, repo.OrderPatch{IsPaid: &paid})
			if err != nil {
				return err
			}

			n, err := r.Carts().ClearByUserID(ctx, o.UserID)
			if err != nil {
				return err
			}

			if err := r.AuditLogs().Create(ctx, orderAudit(actor, model.AuditActionPaymentConfirmed, o.ID,
				map[string]interface{}{"isPaid": false},
				map[string]interface{}{"isPaid": true},
				u.clock.Now())); err != nil {
				return err
			}

			result, changed, cleared = updated, true, n
			return nil
		})
	})
	if err != nil {
		return model.Order{}, err
	}

	if changed {
		u.metrics.CartsCleared.Inc()
		u.events.Publish(ctx, events.SubjectOrderPaid, events.NewOrderEvent(result, u.clock.Now()))
		u.logger.Info("payment confirmed", "order_id", orderID, "actor", actor, "cart_items_cleared", cleared)
	} else {
		u.logger.Info("payment already confirmed", "order_id", orderID, "actor", actor)
	}
	return result, nil
}

// applyFailure runs the adapter's failure policy. A missing order counts as
// handled and a paid order is never deleted.
func (u *PaymentUsecase) applyFailure(ctx context.Context, adapter payment.Adapter, orderID, actor string) error {
	if adapter.FailurePolicy() != payment.DeleteOrder {
		u.logger.Info("payment failed, order kept unpaid", "order_id", orderID)
		return nil
	}

	var deleted model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.IsPaid {
			return errOrderAlreadyPaid
		}
		if err := r.Orders().Delete(ctx, o.ID); err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, orderAudit(actor, model.AuditActionOrderDeleted, o.ID,
			map[string]interface{}{"status": o.Status, "isPaid": o.IsPaid, "amount": o.Amount},
			map[string]interface{}{},
			u.clock.Now())); err != nil {
			return err
		}
		deleted = o
		return nil
	})

	switch {
	case errors.Is(err, repo.ErrNotFound):
		u.logger.Info("failed payment for missing order", "order_id", orderID)
		return nil
	case errors.Is(err, errOrderAlreadyPaid):
		u.logger.Warn("failed payment for paid order ignored", "order_id", orderID)
		return nil
	case err != nil:
		return err
	}

	u.events.Publish(ctx, events.SubjectOrderDeleted, events.NewOrderEvent(deleted, u.clock.Now()))
	u.logger.Info("unpaid order deleted after failed payment", "order_id", orderID)
	return nil
}

var errOrderAlreadyPaid = errors.New("order already paid")

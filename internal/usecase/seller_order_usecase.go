package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/infra/events"
	"github.com/Raviram02/HostelBite/internal/metrics"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

type SellerOrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
	events    EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewSellerOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *SellerOrderUsecase {
	return &SellerOrderUsecase{
		tx:        tx,
		orders:    orders,
		auditRepo: auditRepo,
		clock:     clock,
		events:    publisher,
		metrics:   m,
		logger:    logger,
	}
}

type SellerOrderListInput struct {
	Status string
	Page   int
	Limit  int
}

type SellerOrderListOutput struct {
	Orders []model.Order
	Total  int64
}

// List returns every order, newest first.
func (u *SellerOrderUsecase) List(ctx context.Context, in SellerOrderListInput) (SellerOrderListOutput, error) {
	if in.Page < 0 {
		return SellerOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 0 || in.Limit > 100 {
		return SellerOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	status := strings.TrimSpace(in.Status)
	if status != "" {
		if _, err := model.ParseOrderStatus(status); err != nil {
			return SellerOrderListOutput{}, orderError(err)
		}
	}

	orders, total, err := u.orders.List(ctx, repo.OrderListFilter{Status: status, Page: in.Page, Limit: in.Limit})
	if err != nil {
		return SellerOrderListOutput{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return SellerOrderListOutput{Orders: orders, Total: total}, nil
}

// UpdateStatus moves an order to a legal next status. The current status is not a change.
func (u *SellerOrderUsecase) UpdateStatus(ctx context.Context, actor, orderID, status string) (model.Order, error) {
	target, err := model.ParseOrderStatus(strings.TrimSpace(status))
	if err != nil {
		return model.Order{}, orderError(err)
	}
	return u.UpdateOrder(ctx, actor, orderID, UpdateOrderInput{Status: &target})
}

// MarkPaid settles a cash order. Already paid orders are returned unchanged.
func (u *SellerOrderUsecase) MarkPaid(ctx context.Context, actor, orderID string) (model.Order, error) {
	return u.apply(ctx, actor, orderID, func(o model.Order) (repo.OrderPatch, error) {
		if o.IsPaid {
			return repo.OrderPatch{}, nil
		}
		paid := true
		return repo.OrderPatch{IsPaid: &paid}, nil
	})
}

type UpdateOrderInput struct {
	Status *model.OrderStatus
	IsPaid *bool
}

// UpdateOrder submits a seller's edits to one order at once.
// It fails when nothing would change.
func (u *SellerOrderUsecase) UpdateOrder(ctx context.Context, actor, orderID string, in UpdateOrderInput) (model.Order, error) {
	if in.Status == nil && in.IsPaid == nil {
		return model.Order{}, orderError(model.ErrNoChangeRequested)
	}

	return u.apply(ctx, actor, orderID, func(o model.Order) (repo.OrderPatch, error) {
		var patch repo.OrderPatch

		if in.Status != nil && *in.Status != o.Status {
			if err := model.ValidateTransition(o.OrderMode, o.Status, *in.Status); err != nil {
				return repo.OrderPatch{}, fmt.Errorf("%w: %s -> %s", err, o.Status, *in.Status)
			}
			st := *in.Status
			patch.Status = &st
		}

		if in.IsPaid != nil && *in.IsPaid != o.IsPaid {
			if !*in.IsPaid {
				return repo.OrderPatch{}, model.ErrPaidIrreversible
			}
			paid := true
			patch.IsPaid = &paid
		}

		if patch.Empty() {
			return repo.OrderPatch{}, model.ErrNoChangeRequested
		}
		return patch, nil
	})
}

// History lists the audit trail of one order, newest first.
func (u *SellerOrderUsecase) History(ctx context.Context, orderID string, limit, offset int) ([]model.AuditLog, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		return []model.AuditLog{}, orderError(err)
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{ResourceID: &orderID, Limit: limit, Offset: offset})
	if err != nil {
		return []model.AuditLog{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return logs, nil
}

// apply reads the order, asks plan for a patch, and writes it with a version
// check and one audit row per changed field. Conflicts re-run plan on fresh state.
// An empty patch from plan leaves the order as it is.
func (u *SellerOrderUsecase) apply(ctx context.Context, actor, orderID string, plan func(o model.Order) (repo.OrderPatch, error)) (model.Order, error) {
	if actor == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var (
		before  model.Order
		result  model.Order
		applied repo.OrderPatch
	)

	err := retryOnConflict(u.metrics, func() error {
		applied = repo.OrderPatch{}
		return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := r.Orders().FindByID(ctx, orderID)
			if err != nil {
				return err
			}

			patch, err := plan(o)
			if err != nil {
				return err
			}
			if patch.Empty() {
				result = o
				return nil
			}

			updated, err := r.Orders().Update(ctx, o.ID, o.Version, patch)
			if err != nil {
				return err
			}

			now := u.clock.Now()
			if patch.Status != nil {
				if err := r.AuditLogs().Create(ctx, orderAudit(actor, model.AuditActionUpdateOrderStatus, o.ID,
					map[string]interface{}{"status": o.Status},
					map[string]interface{}{"status": *patch.Status},
					now)); err != nil {
					return err
				}
			}
			if patch.IsPaid != nil {
				if err := r.AuditLogs().Create(ctx, orderAudit(actor, model.AuditActionMarkPaid, o.ID,
					map[string]interface{}{"isPaid": o.IsPaid},
					map[string]interface{}{"isPaid": *patch.IsPaid},
					now)); err != nil {
					return err
				}
			}

			before, result, applied = o, updated, patch
			return nil
		})
	})
	if err != nil {
		u.logger.Info("seller order update rejected", "order_id", orderID, "actor", actor, "error", err)
		return model.Order{}, orderError(err)
	}

	now := u.clock.Now()
	if applied.Status != nil {
		u.metrics.StatusTransitions.WithLabelValues(string(*applied.Status)).Inc()
		u.events.Publish(ctx, events.SubjectOrderStatus, events.NewOrderEvent(result, now))
		u.logger.Info("order status updated", "order_id", orderID, "actor", actor, "from", before.Status, "to", result.Status)
	}
	if applied.IsPaid != nil {
		u.events.Publish(ctx, events.SubjectOrderPaid, events.NewOrderEvent(result, now))
		u.logger.Info("order marked paid", "order_id", orderID, "actor", actor)
	}
	return result, nil
}

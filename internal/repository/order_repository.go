package repository

import (
	"context"
	"errors"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

// ErrVersionConflict means the order changed between read and write.
var ErrVersionConflict = errors.New("order was modified concurrently")

type OrderListFilter struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

// Normalize clamps paging to sane defaults.
func (f OrderListFilter) Normalize() OrderListFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return f
}

// Fields a patch may change. nil = leave as is.
type OrderPatch struct {
	Status *model.OrderStatus
	IsPaid *bool
}

func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.IsPaid == nil
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	//newest first
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	// Update applies patch only if the stored version still equals expectedVersion,
	// and bumps the version. ErrNotFound / ErrVersionConflict otherwise.
	Update(ctx context.Context, orderID string, expectedVersion int64, patch OrderPatch) (model.Order, error)
	Delete(ctx context.Context, orderID string) error
}

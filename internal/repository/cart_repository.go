package repository

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

type CartRepository interface {
	// ListItems returns the ACTIVE cart's items, empty when the user has no cart.
	ListItems(ctx context.Context, userID string) ([]model.CartItem, error)
	ReplaceItems(ctx context.Context, userID string, items []model.CartItem) error
	// ClearByUserID empties the ACTIVE cart and reports how many items were removed.
	ClearByUserID(ctx context.Context, userID string) (int64, error)
}

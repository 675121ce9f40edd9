package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

// CartUsecase keeps the pending cart a confirmed payment clears.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

// price is the current catalog price
type CartItemResponse struct {
	ProductID string `json:"product"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal int64              `json:"subtotal"`
}

type CartItemInput struct {
	ProductID string
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return CartResponse{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return u.buildCartResponse(ctx, items)
}

// ReplaceCart overwrites the cart. Repeated products are merged and a zero
// quantity drops the product.
func (u *CartUsecase) ReplaceCart(ctx context.Context, userID string, in []CartItemInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	merged := make([]model.CartItem, 0, len(in))
	index := make(map[string]int, len(in))
	for _, it := range in {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		if it.Quantity < 0 || it.Quantity > pricing.MaxQuantity {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if it.Quantity == 0 {
			continue
		}
		if i, ok := index[pid]; ok {
			merged[i].Quantity += it.Quantity
			if merged[i].Quantity > pricing.MaxQuantity {
				return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
			continue
		}

		if _, err := u.productRepo.FindByID(ctx, pid); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product not found: "+pid)
			}
			return CartResponse{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		index[pid] = len(merged)
		merged = append(merged, model.CartItem{ProductID: pid, Quantity: it.Quantity})
	}

	if err := u.cartRepo.ReplaceItems(ctx, userID, merged); err != nil {
		return CartResponse{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return u.buildCartResponse(ctx, merged)
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, items []model.CartItem) (CartResponse, error) {
	out := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			//product left the catalog, skip it
			continue
		}
		if err != nil {
			return CartResponse{}, wrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		out.Items = append(out.Items, CartItemResponse{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		out.Subtotal += p.Price * it.Quantity
	}
	return out, nil
}

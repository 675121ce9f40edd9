// Package pricing computes what an order costs. Amounts are whole major currency
// units (rupees); ToMinorUnits is the only place they are scaled for a gateway.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is out of stock")
	ErrAmountTooLarge     = errors.New("order amount is too large")
)

const (
	MinorUnitsPerMajor = 100

	// per line
	MaxQuantity int64 = 1000
)

// largest total whose minor-unit value still fits an int64
var maxTotal = decimal.NewFromInt(math.MaxInt64 / MinorUnitsPerMajor)

// ProductLookup is the part of the catalog the calculator reads.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
}

type Policy struct {
	TaxRate         decimal.Decimal
	RoomDeliveryFee int64
	Currency        string
}

func DefaultPolicy() Policy {
	return Policy{
		TaxRate:         decimal.RequireFromString("0.02"),
		RoomDeliveryFee: 10,
		Currency:        "INR",
	}
}

type ItemInput struct {
	ProductID string
	Quantity  int64
}

type Line struct {
	Product   model.Product
	Quantity  int64
	LineTotal int64
}

type Quote struct {
	Lines       []Line
	Subtotal    int64
	Tax         int64
	DeliveryFee int64
	Total       int64
}

// OrderItems snapshots the quoted lines for persisting on an order.
func (q Quote) OrderItems() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		items = append(items, model.OrderItem{
			ProductID:           l.Product.ID,
			ProductNameSnapshot: l.Product.Name,
			UnitPriceSnapshot:   l.Product.Price,
			Quantity:            l.Quantity,
		})
	}
	return items
}

type Calculator struct {
	policy   Policy
	products ProductLookup
}

func NewCalculator(policy Policy, products ProductLookup) *Calculator {
	return &Calculator{policy: policy, products: products}
}

func (c *Calculator) Policy() Policy { return c.policy }

// Quote prices items for the given mode:
// total = subtotal + floor(subtotal * taxRate) + fee, the fee only for room orders.
func (c *Calculator) Quote(ctx context.Context, items []ItemInput, mode model.OrderMode) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrEmptyCart
	}
	if !mode.Valid() {
		return Quote{}, model.ErrUnknownOrderMode
	}

	q := Quote{Lines: make([]Line, 0, len(items))}
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 || it.Quantity > MaxQuantity {
			return Quote{}, fmt.Errorf("%w: product %s", ErrInvalidQuantity, it.ProductID)
		}

		p, err := c.products.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return Quote{}, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
		if err != nil {
			return Quote{}, fmt.Errorf("lookup product %s: %w", it.ProductID, err)
		}
		if !p.InStock {
			return Quote{}, fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
		}

		lineTotal := decimal.NewFromInt(p.Price).Mul(decimal.NewFromInt(it.Quantity))
		subtotal = subtotal.Add(lineTotal)
		if subtotal.GreaterThan(maxTotal) {
			return Quote{}, ErrAmountTooLarge
		}
		q.Lines = append(q.Lines, Line{Product: p, Quantity: it.Quantity, LineTotal: lineTotal.IntPart()})
	}

	if mode == model.OrderModeRoom {
		q.DeliveryFee = c.policy.RoomDeliveryFee
	}

	tax := c.policy.tax(subtotal)
	total := subtotal.Add(tax).Add(decimal.NewFromInt(q.DeliveryFee))
	if total.GreaterThan(maxTotal) {
		return Quote{}, ErrAmountTooLarge
	}
	q.Subtotal = subtotal.IntPart()
	q.Tax = tax.IntPart()
	q.Total = total.IntPart()
	return q, nil
}

// Tax is floor(subtotal * rate). Never rounded up.
func (p Policy) Tax(subtotal int64) int64 {
	return p.tax(decimal.NewFromInt(subtotal)).IntPart()
}

func (p Policy) tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Floor()
}

// ToMinorUnits converts rupees to paise (or cents) for gateway APIs.
func ToMinorUnits(major int64) int64 {
	return major * MinorUnitsPerMajor
}

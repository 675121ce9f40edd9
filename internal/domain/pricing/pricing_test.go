package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogStub map[string]model.Product

func (c catalogStub) FindByID(_ context.Context, id string) (model.Product, error) {
	p, ok := c[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func newCatalog() catalogStub {
	return catalogStub{
		"thali":  {ID: "thali", Name: "Veg Thali", Price: 100, InStock: true},
		"chai":   {ID: "chai", Name: "Masala Chai", Price: 50, InStock: true},
		"samosa": {ID: "samosa", Name: "Samosa", Price: 15, InStock: true},
		"lassi":  {ID: "lassi", Name: "Lassi", Price: 40, InStock: false},
	}
}

func TestCalculator_Quote(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), newCatalog())
	items := []ItemInput{{ProductID: "thali", Quantity: 1}, {ProductID: "chai", Quantity: 2}}

	tests := []struct {
		name    string
		mode    model.OrderMode
		wantFee int64
		want    int64
	}{
		{"pickup", model.OrderModePickup, 0, 204},
		{"room", model.OrderModeRoom, 10, 214},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.Quote(context.Background(), items, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, int64(200), q.Subtotal)
			assert.Equal(t, int64(4), q.Tax)
			assert.Equal(t, tt.wantFee, q.DeliveryFee)
			assert.Equal(t, tt.want, q.Total)
			assert.Len(t, q.Lines, 2)
		})
	}
}

func TestCalculator_Quote_TaxIsFloored(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), newCatalog())

	//subtotal 75 -> 1.5 tax -> 1
	q, err := calc.Quote(context.Background(), []ItemInput{{ProductID: "samosa", Quantity: 5}}, model.OrderModePickup)
	require.NoError(t, err)
	assert.Equal(t, int64(75), q.Subtotal)
	assert.Equal(t, int64(1), q.Tax)
	assert.Equal(t, int64(76), q.Total)

	//subtotal 45 -> 0.9 tax -> 0
	q, err = calc.Quote(context.Background(), []ItemInput{{ProductID: "samosa", Quantity: 3}}, model.OrderModePickup)
	require.NoError(t, err)
	assert.Zero(t, q.Tax)
}

func TestCalculator_Quote_Errors(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), newCatalog())
	ctx := context.Background()

	tests := []struct {
		name    string
		items   []ItemInput
		mode    model.OrderMode
		wantErr error
	}{
		{"empty", nil, model.OrderModePickup, ErrEmptyCart},
		{"zero quantity", []ItemInput{{ProductID: "chai", Quantity: 0}}, model.OrderModePickup, ErrInvalidQuantity},
		{"negative quantity", []ItemInput{{ProductID: "chai", Quantity: -1}}, model.OrderModeRoom, ErrInvalidQuantity},
		{"quantity over cap", []ItemInput{{ProductID: "chai", Quantity: MaxQuantity + 1}}, model.OrderModePickup, ErrInvalidQuantity},
		{"quantity that would wrap", []ItemInput{{ProductID: "thali", Quantity: math.MaxInt64/100 + 1}}, model.OrderModePickup, ErrInvalidQuantity},
		{"unknown product", []ItemInput{{ProductID: "biryani", Quantity: 1}}, model.OrderModePickup, ErrProductNotFound},
		{"out of stock", []ItemInput{{ProductID: "lassi", Quantity: 1}}, model.OrderModePickup, ErrProductUnavailable},
		{"unknown mode", []ItemInput{{ProductID: "chai", Quantity: 1}}, model.OrderMode("drone"), model.ErrUnknownOrderMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Quote(ctx, tt.items, tt.mode)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculator_Quote_QuantityCap(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), newCatalog())

	q, err := calc.Quote(context.Background(), []ItemInput{{ProductID: "thali", Quantity: MaxQuantity}}, model.OrderModePickup)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), q.Subtotal)
	assert.Equal(t, int64(102_000), q.Total)
	assert.Equal(t, int64(10_200_000), ToMinorUnits(q.Total))
}

func TestCalculator_Quote_AmountTooLarge(t *testing.T) {
	limit := int64(math.MaxInt64 / MinorUnitsPerMajor)
	catalog := catalogStub{
		"gold":   {ID: "gold", Name: "Gold Thali", Price: limit/2 + 1, InStock: true},
		"edge":   {ID: "edge", Name: "Edge Thali", Price: limit, InStock: true},
		"silver": {ID: "silver", Name: "Silver Thali", Price: limit - 5, InStock: true},
	}
	taxFree := Policy{TaxRate: decimal.Zero, RoomDeliveryFee: 10, Currency: "INR"}
	ctx := context.Background()

	tests := []struct {
		name   string
		policy Policy
		items  []ItemInput
		mode   model.OrderMode
	}{
		{"subtotal past limit", DefaultPolicy(), []ItemInput{{ProductID: "gold", Quantity: 2}}, model.OrderModePickup},
		{"lines add past limit", DefaultPolicy(), []ItemInput{{ProductID: "gold", Quantity: 1}, {ProductID: "gold", Quantity: 1}}, model.OrderModePickup},
		{"tax pushes total past limit", DefaultPolicy(), []ItemInput{{ProductID: "edge", Quantity: 1}}, model.OrderModePickup},
		{"fee pushes total past limit", taxFree, []ItemInput{{ProductID: "silver", Quantity: 1}}, model.OrderModeRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator(tt.policy, catalog).Quote(ctx, tt.items, tt.mode)
			assert.ErrorIs(t, err, ErrAmountTooLarge)
		})
	}
}

type failingCatalog struct{}

func (failingCatalog) FindByID(context.Context, string) (model.Product, error) {
	return model.Product{}, errors.New("connection refused")
}

func TestCalculator_Quote_LookupFailure(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), failingCatalog{})

	_, err := calc.Quote(context.Background(), []ItemInput{{ProductID: "chai", Quantity: 1}}, model.OrderModePickup)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestPolicy_Tax(t *testing.T) {
	p := Policy{TaxRate: decimal.RequireFromString("0.05")}
	assert.Equal(t, int64(9), p.Tax(199))
	assert.Equal(t, int64(0), p.Tax(0))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(21400), ToMinorUnits(214))
}

func TestQuote_OrderItems(t *testing.T) {
	calc := NewCalculator(DefaultPolicy(), newCatalog())

	q, err := calc.Quote(context.Background(), []ItemInput{{ProductID: "chai", Quantity: 2}}, model.OrderModeRoom)
	require.NoError(t, err)

	items := q.OrderItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Masala Chai", items[0].ProductNameSnapshot)
	assert.Equal(t, int64(50), items[0].UnitPriceSnapshot)
	assert.Equal(t, int64(2), items[0].Quantity)
}

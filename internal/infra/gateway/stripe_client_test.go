package gateway

import (
	"testing"

	"github.com/Raviram02/HostelBite/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemParams(t *testing.T) {
	items := lineItemParams(payment.CheckoutRequest{
		Currency: "inr",
		Lines: []payment.CheckoutLine{
			{Name: "Veg Thali", UnitAmount: 10000, Quantity: 1},
			{Name: "Tax", UnitAmount: 400, Quantity: 1},
		},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "inr", *items[0].PriceData.Currency)
	assert.Equal(t, "Veg Thali", *items[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(10000), *items[0].PriceData.UnitAmount)
	assert.Equal(t, int64(400), *items[1].PriceData.UnitAmount)
	assert.Equal(t, int64(1), *items[1].Quantity)
}

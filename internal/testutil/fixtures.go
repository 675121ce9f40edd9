package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Catalog used across tests: 100 + 2x50 = 200 subtotal.
var (
	Thali = model.Product{ID: "p-thali", Name: "Veg Thali", Category: "Meals", Price: 100, InStock: true}
	Chai  = model.Product{ID: "p-chai", Name: "Masala Chai", Category: "Drinks", Price: 50, InStock: true}
)

func SeedProducts(t *testing.T, gdb *gorm.DB, products ...model.Product) {
	t.Helper()
	if len(products) == 0 {
		products = []model.Product{Thali, Chai}
	}
	for _, p := range products {
		require.NoError(t, gdb.WithContext(context.Background()).Create(&p).Error)
	}
}

// PlacedOrder returns an unsaved pickup order in its initial state.
func PlacedOrder(id, userID string) model.Order {
	now := time.Now()
	return model.Order{
		ID:     id,
		UserID: userID,
		Items: []model.OrderItem{
			{ProductID: Thali.ID, ProductNameSnapshot: Thali.Name, UnitPriceSnapshot: Thali.Price, Quantity: 1},
			{ProductID: Chai.ID, ProductNameSnapshot: Chai.Name, UnitPriceSnapshot: Chai.Price, Quantity: 2},
		},
		Amount:        204,
		OrderMode:     model.OrderModePickup,
		PaymentType:   model.PaymentTypeOC,
		PaymentMethod: model.PaymentMethodCOD,
		Status:        model.OrderStatusPlaced,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

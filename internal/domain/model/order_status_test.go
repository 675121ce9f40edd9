package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatuses(t *testing.T) {
	tests := []struct {
		name    string
		mode    OrderMode
		current OrderStatus
		want    []OrderStatus
	}{
		{"pickup placed", OrderModePickup, OrderStatusPlaced, []OrderStatus{OrderStatusPreparing, OrderStatusCancelled}},
		{"room placed", OrderModeRoom, OrderStatusPlaced, []OrderStatus{OrderStatusPreparing, OrderStatusCancelled}},
		{"pickup preparing", OrderModePickup, OrderStatusPreparing, []OrderStatus{OrderStatusReadyForPickup}},
		{"room preparing", OrderModeRoom, OrderStatusPreparing, []OrderStatus{OrderStatusOutForDelivery}},
		{"pickup ready", OrderModePickup, OrderStatusReadyForPickup, []OrderStatus{OrderStatusPickedUp}},
		{"room out for delivery", OrderModeRoom, OrderStatusOutForDelivery, []OrderStatus{OrderStatusDelivered}},
		{"room ready for pickup is unreachable", OrderModeRoom, OrderStatusReadyForPickup, []OrderStatus{}},
		{"pickup out for delivery is unreachable", OrderModePickup, OrderStatusOutForDelivery, []OrderStatus{}},
		{"delivered is terminal", OrderModeRoom, OrderStatusDelivered, []OrderStatus{}},
		{"picked up is terminal", OrderModePickup, OrderStatusPickedUp, []OrderStatus{}},
		{"cancelled is absorbing", OrderModePickup, OrderStatusCancelled, []OrderStatus{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatuses(tt.mode, tt.current))
		})
	}
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := NextStatuses(OrderModePickup, OrderStatusPlaced)
	next[0] = OrderStatusDelivered

	assert.Equal(t, OrderStatusPreparing, NextStatuses(OrderModePickup, OrderStatusPlaced)[0])
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		mode    OrderMode
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"placed to preparing", OrderModePickup, OrderStatusPlaced, OrderStatusPreparing, nil},
		{"placed to cancelled", OrderModeRoom, OrderStatusPlaced, OrderStatusCancelled, nil},
		{"pickup placed to delivered", OrderModePickup, OrderStatusPlaced, OrderStatusDelivered, ErrIllegalTransition},
		{"pickup placed skips preparing", OrderModePickup, OrderStatusPlaced, OrderStatusReadyForPickup, ErrIllegalTransition},
		{"room preparing to ready for pickup", OrderModeRoom, OrderStatusPreparing, OrderStatusReadyForPickup, ErrIllegalTransition},
		{"preparing cannot cancel", OrderModeRoom, OrderStatusPreparing, OrderStatusCancelled, ErrIllegalTransition},
		{"no regression", OrderModeRoom, OrderStatusOutForDelivery, OrderStatusPreparing, ErrIllegalTransition},
		{"cancelled stays cancelled", OrderModePickup, OrderStatusCancelled, OrderStatusPreparing, ErrIllegalTransition},
		{"same status", OrderModePickup, OrderStatusPreparing, OrderStatusPreparing, ErrNoChangeRequested},
		{"unknown mode", OrderMode("drone"), OrderStatusPlaced, OrderStatusPreparing, ErrUnknownOrderMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.mode, tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("Out for Delivery")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusOutForDelivery, st)

	_, err = ParseOrderStatus("out for delivery")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusPickedUp.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPlaced.IsTerminal())
	assert.False(t, OrderStatusOutForDelivery.IsTerminal())
}

func TestDeliveryAddress_Complete(t *testing.T) {
	assert.True(t, DeliveryAddress{Name: "Asha", Phone: "9876543210", Room: "B-204"}.Complete())
	assert.False(t, DeliveryAddress{Name: "Asha", Phone: " ", Room: "B-204"}.Complete())
	assert.True(t, DeliveryAddress{}.IsZero())
}

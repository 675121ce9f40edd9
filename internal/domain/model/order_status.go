package model

import "errors"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Order Placed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusReadyForPickup OrderStatus = "Ready for Pickup"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusPickedUp       OrderStatus = "Picked Up"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

var (
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrNoChangeRequested  = errors.New("no changes to update")
	ErrPaidIrreversible   = errors.New("paid order cannot be marked unpaid")
	ErrUnknownOrderMode   = errors.New("unknown order mode")
	ErrIncompleteDelivery = errors.New("incomplete delivery details")
)

var allStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusOutForDelivery,
	OrderStatusPickedUp,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// legal next states per mode. Terminal states have no entry.
var transitions = map[OrderMode]map[OrderStatus][]OrderStatus{
	OrderModePickup: {
		OrderStatusPlaced:         {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusReadyForPickup},
		OrderStatusReadyForPickup: {OrderStatusPickedUp},
	},
	OrderModeRoom: {
		OrderStatusPlaced:         {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusOutForDelivery},
		OrderStatusOutForDelivery: {OrderStatusDelivered},
	},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

// NextStatuses returns the states an order in mode can move to from current.
// The slice is a copy and may be modified by the caller.
func NextStatuses(mode OrderMode, current OrderStatus) []OrderStatus {
	next := transitions[mode][current]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(mode OrderMode, from, to OrderStatus) bool {
	for _, st := range transitions[mode][from] {
		if st == to {
			return true
		}
	}
	return false
}

// ValidateTransition is CanTransition with the reason attached.
func ValidateTransition(mode OrderMode, from, to OrderStatus) error {
	if !mode.Valid() {
		return ErrUnknownOrderMode
	}
	if from == to {
		return ErrNoChangeRequested
	}
	if !CanTransition(mode, from, to) {
		return ErrIllegalTransition
	}
	return nil
}

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusPickedUp, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

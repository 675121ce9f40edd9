package payment

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

// CODAdapter settles in cash. The seller's mark-paid action is the only
// way such an order becomes paid.
type CODAdapter struct{}

func NewCODAdapter() *CODAdapter { return &CODAdapter{} }

func (a *CODAdapter) Method() model.PaymentMethod  { return model.PaymentMethodCOD }
func (a *CODAdapter) FailurePolicy() FailurePolicy { return RetainUnpaid }

// cash on delivery for rooms, cash on counter for pickup
func (a *CODAdapter) PaymentType(mode model.OrderMode) model.PaymentType {
	if mode == model.OrderModeRoom {
		return model.PaymentTypeCOD
	}
	return model.PaymentTypeOC
}

func (a *CODAdapter) Initiate(context.Context, Initiation) (PendingPayment, error) {
	return PendingPayment{}, nil
}

func (a *CODAdapter) Confirm(context.Context, Signal) (Outcome, error) {
	return Outcome{Status: OutcomeIgnored}, ErrConfirmUnsupported
}

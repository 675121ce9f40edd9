// Package payment holds the three ways an order can be paid for. Each adapter
// starts a payment for a freshly stored order and, for online methods, turns
// a gateway signal into an outcome. Persisting that outcome is up to the caller.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
)

var (
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrConfirmUnsupported  = errors.New("payment method has no confirmation signal")
	ErrMissingCorrelation  = errors.New("payment is not correlated to an order")
	ErrCorrelationMismatch = errors.New("payment belongs to a different order")
	ErrUnsupportedSignal   = errors.New("unsupported signal for payment method")
	ErrGateway             = errors.New("payment gateway error")
)

// FailurePolicy is what happens to an unpaid order when its payment fails.
type FailurePolicy int

const (
	RetainUnpaid FailurePolicy = iota
	DeleteOrder
)

func (p FailurePolicy) String() string {
	switch p {
	case RetainUnpaid:
		return "retain-unpaid"
	case DeleteOrder:
		return "delete-order"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

type Initiation struct {
	Order model.Order
	Quote pricing.Quote
	// request origin, used for hosted checkout redirects
	Origin string
}

// PendingPayment is what the client needs to complete payment.
type PendingPayment struct {
	// razorpay order object, returned verbatim to the checkout widget
	GatewayOrder   map[string]interface{}
	GatewayOrderID string

	// hosted checkout
	RedirectURL string
	SessionID   string
}

// Signal is a confirmation input: SignatureSignal or WebhookSignal.
type Signal interface {
	signal()
}

// SignatureSignal is posted by the browser after the gateway-session checkout.
type SignatureSignal struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// WebhookSignal is a raw hosted-checkout webhook delivery.
type WebhookSignal struct {
	Payload         []byte
	SignatureHeader string
}

func (SignatureSignal) signal() {}
func (WebhookSignal) signal()   {}

type OutcomeStatus string

const (
	OutcomeConfirmed OutcomeStatus = "confirmed"
	OutcomeRejected  OutcomeStatus = "rejected"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeIgnored   OutcomeStatus = "ignored"
)

type Outcome struct {
	Status  OutcomeStatus
	OrderID string
	UserID  string

	// gateway references, for logs
	EventType string
	Reference string
}

type Adapter interface {
	Method() model.PaymentMethod
	FailurePolicy() FailurePolicy
	PaymentType(mode model.OrderMode) model.PaymentType
	Initiate(ctx context.Context, in Initiation) (PendingPayment, error)
	Confirm(ctx context.Context, sig Signal) (Outcome, error)
}

// Registry maps a payment method to its adapter. Online methods are only
// registered when their gateway is configured.
type Registry struct {
	adapters map[model.PaymentMethod]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[model.PaymentMethod]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func (r *Registry) Register(a Adapter) {
	r.adapters[a.Method()] = a
}

func (r *Registry) Get(m model.PaymentMethod) (Adapter, bool) {
	a, ok := r.adapters[m]
	return a, ok
}

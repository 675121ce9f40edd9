package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

type CheckoutLine struct {
	Name string
	// minor units
	UnitAmount int64
	Quantity   int64
}

type CheckoutRequest struct {
	Currency   string
	Lines      []CheckoutLine
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutClient is the slice of the Stripe API the hosted checkout needs.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	// metadata of the checkout session that produced the payment intent
	MetadataForPaymentIntent(ctx context.Context, paymentIntentID string) (map[string]string, error)
}

type StripeAdapter struct {
	client        CheckoutClient
	webhookSecret string
	currency      string
}

func NewStripeAdapter(client CheckoutClient, webhookSecret, currency string) *StripeAdapter {
	return &StripeAdapter{client: client, webhookSecret: webhookSecret, currency: currency}
}

func (a *StripeAdapter) Method() model.PaymentMethod                   { return model.PaymentMethodStripe }
func (a *StripeAdapter) FailurePolicy() FailurePolicy                  { return DeleteOrder }
func (a *StripeAdapter) PaymentType(model.OrderMode) model.PaymentType { return model.PaymentTypeOnline }

// Initiate opens a checkout session whose lines add up to the order amount.
func (a *StripeAdapter) Initiate(ctx context.Context, in Initiation) (PendingPayment, error) {
	origin := strings.TrimRight(in.Origin, "/")
	meta := map[string]string{
		"orderId": in.Order.ID,
		"userId":  in.Order.UserID,
	}

	sess, err := a.client.CreateSession(ctx, CheckoutRequest{
		Currency:   strings.ToLower(a.currency),
		Lines:      CheckoutLines(in.Quote),
		SuccessURL: origin + "/loader?next=my-orders",
		CancelURL:  origin + "/cart",
		Metadata:   meta,
	})
	if err != nil {
		return PendingPayment{}, fmt.Errorf("%w: stripe checkout session: %v", ErrGateway, err)
	}
	return PendingPayment{RedirectURL: sess.URL, SessionID: sess.ID}, nil
}

// CheckoutLines splits a quote into product, tax and delivery lines.
// Their minor-unit sum equals ToMinorUnits(q.Total).
func CheckoutLines(q pricing.Quote) []CheckoutLine {
	lines := make([]CheckoutLine, 0, len(q.Lines)+2)
	for _, l := range q.Lines {
		lines = append(lines, CheckoutLine{
			Name:       l.Product.Name,
			UnitAmount: pricing.ToMinorUnits(l.Product.Price),
			Quantity:   l.Quantity,
		})
	}
	if q.Tax > 0 {
		lines = append(lines, CheckoutLine{Name: "Tax", UnitAmount: pricing.ToMinorUnits(q.Tax), Quantity: 1})
	}
	if q.DeliveryFee > 0 {
		lines = append(lines, CheckoutLine{Name: "Room delivery", UnitAmount: pricing.ToMinorUnits(q.DeliveryFee), Quantity: 1})
	}
	return lines
}

// Confirm verifies the webhook signature and classifies the event.
func (a *StripeAdapter) Confirm(ctx context.Context, sig Signal) (Outcome, error) {
	s, ok := sig.(WebhookSignal)
	if !ok {
		return Outcome{Status: OutcomeRejected}, ErrUnsupportedSignal
	}

	event, err := webhook.ConstructEventWithOptions(s.Payload, s.SignatureHeader, a.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Outcome{Status: OutcomeRejected}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := Outcome{EventType: string(event.Type), Reference: event.ID}

	var status OutcomeStatus
	switch string(event.Type) {
	case EventPaymentSucceeded:
		status = OutcomeConfirmed
	case EventPaymentFailed:
		status = OutcomeFailed
	default:
		out.Status = OutcomeIgnored
		return out, nil
	}

	if event.Data == nil {
		return Outcome{Status: OutcomeRejected}, ErrMissingCorrelation
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return Outcome{Status: OutcomeRejected}, fmt.Errorf("decode payment intent: %w", err)
	}
	out.Reference = pi.ID

	meta := pi.Metadata
	if meta["orderId"] == "" {
		//sessions created without payment intent metadata
		meta, err = a.client.MetadataForPaymentIntent(ctx, pi.ID)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: stripe list sessions: %v", ErrGateway, err)
		}
	}
	if meta["orderId"] == "" {
		return Outcome{Status: OutcomeRejected, EventType: out.EventType, Reference: pi.ID}, ErrMissingCorrelation
	}

	out.Status = status
	out.OrderID = meta["orderId"]
	out.UserID = meta["userId"]
	return out, nil
}

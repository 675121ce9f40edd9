package gateway

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/payment"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeClient adapts stripe-go checkout sessions to payment.CheckoutClient.
// It carries its own key instead of the package-level stripe.Key.
type StripeClient struct {
	sessions *session.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		sessions: &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (c *StripeClient) CreateSession(ctx context.Context, req payment.CheckoutRequest) (payment.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  lineItemParams(req),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: req.Metadata,
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := c.sessions.New(params)
	if err != nil {
		return payment.CheckoutSession{}, err
	}
	return payment.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (c *StripeClient) MetadataForPaymentIntent(ctx context.Context, paymentIntentID string) (map[string]string, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := c.sessions.List(params)
	for it.Next() {
		return it.CheckoutSession().Metadata, nil
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return map[string]string{}, nil
}

func lineItemParams(req payment.CheckoutRequest) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
				UnitAmount: stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}
	return items
}

var _ payment.CheckoutClient = (*StripeClient)(nil)

package gateway

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/payment"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayClient adapts the razorpay-go SDK to payment.RazorpayGateway.
// The SDK has no context support; ctx is only checked before calling out.
type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{client: razorpay.NewClient(keyID, keySecret)}
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req payment.GatewayOrderRequest) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}
	return c.client.Order.Create(data, nil)
}

func (c *RazorpayClient) FetchOrder(ctx context.Context, gatewayOrderID string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.client.Order.Fetch(gatewayOrderID, nil, nil)
}

var _ payment.RazorpayGateway = (*RazorpayClient)(nil)

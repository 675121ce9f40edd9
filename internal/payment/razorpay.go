package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
)

type GatewayOrderRequest struct {
	// minor units
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// RazorpayGateway is the slice of the Razorpay orders API the adapter needs.
type RazorpayGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (map[string]interface{}, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (map[string]interface{}, error)
}

type RazorpayAdapter struct {
	gateway   RazorpayGateway
	keySecret string
	currency  string
}

func NewRazorpayAdapter(gateway RazorpayGateway, keySecret, currency string) *RazorpayAdapter {
	return &RazorpayAdapter{gateway: gateway, keySecret: keySecret, currency: currency}
}

func (a *RazorpayAdapter) Method() model.PaymentMethod                   { return model.PaymentMethodRazorpay }
func (a *RazorpayAdapter) FailurePolicy() FailurePolicy                  { return RetainUnpaid }
func (a *RazorpayAdapter) PaymentType(model.OrderMode) model.PaymentType { return model.PaymentTypeOnline }

// Initiate opens a gateway order for the full order amount. The receipt is our order id.
func (a *RazorpayAdapter) Initiate(ctx context.Context, in Initiation) (PendingPayment, error) {
	gwOrder, err := a.gateway.CreateOrder(ctx, GatewayOrderRequest{
		Amount:   pricing.ToMinorUnits(in.Order.Amount),
		Currency: a.currency,
		Receipt:  in.Order.ID,
		Notes: map[string]string{
			"userId":  in.Order.UserID,
			"orderId": in.Order.ID,
		},
	})
	if err != nil {
		return PendingPayment{}, fmt.Errorf("%w: razorpay create order: %v", ErrGateway, err)
	}

	id, _ := gwOrder["id"].(string)
	return PendingPayment{GatewayOrder: gwOrder, GatewayOrderID: id}, nil
}

// Confirm checks the checkout signature and that the gateway order was opened
// for the order the client claims.
func (a *RazorpayAdapter) Confirm(ctx context.Context, sig Signal) (Outcome, error) {
	s, ok := sig.(SignatureSignal)
	if !ok {
		return Outcome{Status: OutcomeRejected}, ErrUnsupportedSignal
	}
	if s.OrderID == "" {
		return Outcome{Status: OutcomeRejected}, ErrMissingCorrelation
	}
	out := Outcome{OrderID: s.OrderID, Reference: s.GatewayPaymentID}

	if !VerifyRazorpaySignature(a.keySecret, s.GatewayOrderID, s.GatewayPaymentID, s.Signature) {
		out.Status = OutcomeRejected
		return out, ErrInvalidSignature
	}

	gwOrder, err := a.gateway.FetchOrder(ctx, s.GatewayOrderID)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: razorpay fetch order: %v", ErrGateway, err)
	}
	if receipt, _ := gwOrder["receipt"].(string); receipt != s.OrderID {
		out.Status = OutcomeRejected
		return out, ErrCorrelationMismatch
	}
	if notes, ok := gwOrder["notes"].(map[string]interface{}); ok {
		out.UserID, _ = notes["userId"].(string)
	}

	out.Status = OutcomeConfirmed
	return out, nil
}

// VerifyRazorpaySignature compares hex(HMAC-SHA256(secret, orderID|paymentID))
// with the received signature in constant time.
func VerifyRazorpaySignature(secret, gatewayOrderID, gatewayPaymentID, signature string) bool {
	if secret == "" || gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return false
	}
	expected := RazorpaySignature(secret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

func RazorpaySignature(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

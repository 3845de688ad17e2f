package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (r *RazorpayGateway) Provider() string {
	return "razorpay"
}

func (r *RazorpayGateway) KeyID() string {
	return r.keyID
}

func (r *RazorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error) {
	orderData := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderId|paymentId" keyed by
// the key secret and compares in constant time.
func (r *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := signPayload(gatewayOrderID+"|"+gatewayPaymentID, r.keySecret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func signPayload(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

package payment

import (
	"context"
	"crypto/hmac"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway is the alternate provider, selected via
// PAYMENT_DEFAULT_PROVIDER. It drives the client-side flow through a
// PaymentIntent instead of a gateway order.
type StripeGateway struct {
	client         *client.API
	publishableKey string
	signingSecret  string
}

func NewStripeGateway(secretKey, publishableKey, signingSecret string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeGateway{
		client:         sc,
		publishableKey: publishableKey,
		signingSecret:  signingSecret,
	}
}

func (s *StripeGateway) Provider() string {
	return "stripe"
}

func (s *StripeGateway) KeyID() string {
	return s.publishableKey
}

func (s *StripeGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("receipt", receipt)

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, nil
}

func (s *StripeGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := signPayload(gatewayOrderID+"|"+gatewayPaymentID, s.signingSecret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

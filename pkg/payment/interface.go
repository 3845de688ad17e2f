package payment

import (
	"context"
)

// Gateway is the narrow contract the checkout flow needs from a payment
// provider: open a provider-side order for an amount, and verify the
// signature the provider's client flow hands back.
type Gateway interface {
	// Provider returns the provider name recorded on the order.
	Provider() string

	// KeyID returns the public key identifier the frontend uses to drive
	// the provider's client-side payment flow.
	KeyID() string

	// CreateOrder opens a gateway order for the amount in minor currency
	// units and returns the gateway's order identifier.
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error)

	// VerifySignature reports whether signature is a valid signature over
	// the gateway order and payment identifiers.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "secret")

	valid := signPayload("order_abc|pay_xyz", "secret")

	assert.True(t, g.VerifySignature("order_abc", "pay_xyz", valid))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "secret")

	valid := signPayload("order_abc|pay_xyz", "secret")

	assert.False(t, g.VerifySignature("order_other", "pay_xyz", valid))
	assert.False(t, g.VerifySignature("order_abc", "pay_other", valid))
	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", valid+"00"))
	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", ""))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "secret")

	forged := signPayload("order_abc|pay_xyz", "other-secret")

	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", forged))
}

func TestSignPayloadIsDeterministicHex(t *testing.T) {
	a := signPayload("order_abc|pay_xyz", "secret")
	b := signPayload("order_abc|pay_xyz", "secret")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}

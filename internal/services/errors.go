package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrCouponInvalid      = errors.New("invalid coupon")
	ErrCouponNotYetActive = errors.New("coupon is not active yet")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrCouponAlreadyUsed  = errors.New("you already used this coupon")

	ErrOrderNotFound      = errors.New("order not found")
	ErrMealNotFound       = errors.New("meal not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("please verify your email first")
	ErrAccountFrozen      = errors.New("account is frozen")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must contain letters and digits")

	ErrPaymentUnavailable   = errors.New("payment service unavailable")
	ErrGatewayOrderMismatch = errors.New("payment does not belong to this order")
	ErrVerificationFailed   = errors.New("payment verification failed")
)

// MinCartTotalError carries the coupon's minimum cart requirement so
// the client can show the shortfall.
type MinCartTotalError struct {
	MinCartTotal int64
}

func (e *MinCartTotalError) Error() string {
	return fmt.Sprintf("minimum cart total ₹%d required for this coupon", e.MinCartTotal)
}

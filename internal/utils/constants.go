package utils

import "time"

// Application Constants
const (
	AppName    = "MacroBox"
	AppVersion = "1.0.0"

	DefaultCurrency = "INR"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 30 * time.Minute
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	VerificationTokenLength = 64
	ResetTokenTTL           = time.Hour

	// Orders
	MaxOrderHistoryLimit = 50
	MinPayableAmount     = 1 // rupees, gateway rejects zero-amount orders

	// Coupons
	DefaultUsageLimitPerUser = 1
	CouponCacheTTL           = 30 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "email already in use"
	ErrInvalidToken       = "invalid token"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
)

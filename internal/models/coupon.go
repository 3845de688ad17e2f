package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponType string

const (
	CouponTypeFlat    CouponType = "flat"
	CouponTypePercent CouponType = "percent"
)

// CouponUsage is one user's redemption tally. An absent entry means zero uses.
type CouponUsage struct {
	User  primitive.ObjectID `json:"user" bson:"user"`
	Count int                `json:"count" bson:"count"`
}

type Coupon struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code  string             `json:"code" bson:"code" validate:"required"`
	Type  CouponType         `json:"type" bson:"type" validate:"required"`
	Value float64            `json:"value" bson:"value" validate:"required"`

	MinCartTotal int64 `json:"min_cart_total" bson:"min_cart_total"`
	MaxDiscount  int64 `json:"max_discount" bson:"max_discount"` // percent only, 0 = uncapped

	ValidFrom *time.Time `json:"valid_from,omitempty" bson:"valid_from,omitempty"`
	ValidTo   *time.Time `json:"valid_to,omitempty" bson:"valid_to,omitempty"`
	// Legacy exact-instant expiry, consulted only when valid_to is absent.
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`

	IsActive bool `json:"is_active" bson:"is_active"`

	UsageLimitTotal   int `json:"usage_limit_total" bson:"usage_limit_total"`       // 0 = unlimited
	UsageLimitPerUser int `json:"usage_limit_per_user" bson:"usage_limit_per_user"` // default 1

	UsedCount int           `json:"used_count" bson:"used_count"`
	UsedBy    []CouponUsage `json:"used_by" bson:"used_by"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// UsedTimesBy returns how many times the given user has redeemed this coupon.
func (c *Coupon) UsedTimesBy(userID primitive.ObjectID) int {
	for _, u := range c.UsedBy {
		if u.User == userID {
			return u.Count
		}
	}
	return 0
}

// ValidityWindow resolves the coupon's validity bounds, preferring
// valid_from/valid_to over the legacy expires_at. valid_to is inclusive
// through the end of that calendar day; expires_at is an exact instant.
func (c *Coupon) ValidityWindow() (from, to *time.Time) {
	from = c.ValidFrom

	if c.ValidTo != nil {
		end := time.Date(c.ValidTo.Year(), c.ValidTo.Month(), c.ValidTo.Day(), 23, 59, 59, 999000000, c.ValidTo.Location())
		return from, &end
	}
	if c.ExpiresAt != nil {
		to = c.ExpiresAt
	}
	return from, to
}

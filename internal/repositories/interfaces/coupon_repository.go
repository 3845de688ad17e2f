package interfaces

import (
	"context"
	"errors"

	"macrobox/internal/models"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCouponExhausted is returned by RedeemOnce when the conditional
// update matched no document: another redemption consumed the last
// remaining use, or this user hit their per-user limit concurrently.
var ErrCouponExhausted = errors.New("coupon usage limit exhausted")

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	ListActive(ctx context.Context) ([]*models.Coupon, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error

	// RedeemOnce atomically records one use of the coupon by the given
	// user. The usage limits are re-checked inside the update filter so
	// concurrent redeemers cannot both pass a nearly exhausted limit.
	RedeemOnce(ctx context.Context, couponID, userID primitive.ObjectID) error
}

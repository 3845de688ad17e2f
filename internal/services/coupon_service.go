package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/pricing"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"
	"macrobox/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponService owns coupon eligibility, redemption and management.
type CouponService struct {
	couponRepo interfaces.CouponRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewCouponService(couponRepo interfaces.CouponRepository, log *logger.Logger) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		logger:     log,
		now:        time.Now,
	}
}

// CheckEligibility verifies the coupon can be applied by the user to a
// cart with the given subtotal and returns the coupon together with the
// discount it would grant. It does not consume a use.
func (s *CouponService) CheckEligibility(ctx context.Context, code string, userID primitive.ObjectID, subtotal int64) (*models.Coupon, int64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, 0, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, ErrCouponInvalid
	}

	if !coupon.IsActive {
		return nil, 0, ErrCouponInvalid
	}

	now := s.now()
	from, to := coupon.ValidityWindow()
	if from != nil && now.Before(*from) {
		return nil, 0, ErrCouponNotYetActive
	}
	if to != nil && now.After(*to) {
		return nil, 0, ErrCouponExpired
	}

	if coupon.MinCartTotal > 0 && subtotal < coupon.MinCartTotal {
		return nil, 0, &MinCartTotalError{MinCartTotal: coupon.MinCartTotal}
	}

	if coupon.UsageLimitTotal > 0 && coupon.UsedCount >= coupon.UsageLimitTotal {
		return nil, 0, ErrCouponLimitReached
	}

	perUser := coupon.UsageLimitPerUser
	if perUser <= 0 {
		perUser = utils.DefaultUsageLimitPerUser
	}
	if coupon.UsedTimesBy(userID) >= perUser {
		return nil, 0, ErrCouponAlreadyUsed
	}

	discount := pricing.ComputeDiscount(subtotal, pricing.DiscountRule{
		Type:        string(coupon.Type),
		Value:       coupon.Value,
		MaxDiscount: coupon.MaxDiscount,
	})

	return coupon, discount, nil
}

// Redeem consumes one use of the coupon for the user. The repository
// re-checks the limits atomically; losing the race surfaces as
// ErrCouponLimitReached.
func (s *CouponService) Redeem(ctx context.Context, couponID, userID primitive.ObjectID) error {
	err := s.couponRepo.RedeemOnce(ctx, couponID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrCouponExhausted) {
			return ErrCouponLimitReached
		}
		return err
	}

	return nil
}

// RedeemByCode resolves the coupon by code and consumes one use.
func (s *CouponService) RedeemByCode(ctx context.Context, code string, userID primitive.ObjectID) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return ErrCouponInvalid
	}

	if err := s.Redeem(ctx, coupon.ID, userID); err != nil {
		return err
	}

	s.logger.LogCouponEvent(code, userID, "redeemed", nil)

	return nil
}

// ListAvailable returns active coupons currently inside their validity
// window, for display to shoppers.
func (s *CouponService) ListAvailable(ctx context.Context) ([]*models.Coupon, error) {
	coupons, err := s.couponRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	available := make([]*models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		from, to := c.ValidityWindow()
		if from != nil && now.Before(*from) {
			continue
		}
		if to != nil && now.After(*to) {
			continue
		}
		if c.UsageLimitTotal > 0 && c.UsedCount >= c.UsageLimitTotal {
			continue
		}
		available = append(available, c)
	}

	return available, nil
}

// Create normalizes and stores a new coupon.
func (s *CouponService) Create(ctx context.Context, coupon *models.Coupon) error {
	normalizeCoupon(coupon)

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return err
	}

	s.logger.LogCouponEvent(coupon.Code, primitive.NilObjectID, "created", map[string]interface{}{
		"type":  coupon.Type,
		"value": coupon.Value,
	})

	return nil
}

// Update normalizes and stores changes to an existing coupon.
func (s *CouponService) Update(ctx context.Context, coupon *models.Coupon) error {
	normalizeCoupon(coupon)
	return s.couponRepo.Update(ctx, coupon)
}

func (s *CouponService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

func (s *CouponService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return s.couponRepo.List(ctx, params)
}

func (s *CouponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.couponRepo.Delete(ctx, id)
}

func (s *CouponService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return s.couponRepo.SetActive(ctx, id, active)
}

func normalizeCoupon(coupon *models.Coupon) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Type == models.CouponTypeFlat {
		coupon.MaxDiscount = 0
	}
	if coupon.UsageLimitPerUser <= 0 {
		coupon.UsageLimitPerUser = utils.DefaultUsageLimitPerUser
	}
	if coupon.UsedBy == nil {
		coupon.UsedBy = []models.CouponUsage{}
	}
}

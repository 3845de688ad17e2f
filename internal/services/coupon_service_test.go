package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"macrobox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCouponService(repo *fakeCouponRepo, now time.Time) *CouponService {
	svc := NewCouponService(repo, testLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckEligibilityInvalidCode(t *testing.T) {
	svc := newTestCouponService(newFakeCouponRepo(), time.Now())

	_, _, err := svc.CheckEligibility(context.Background(), "NOPE", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCheckEligibilityInactiveLooksLikeInvalid(t *testing.T) {
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "SAVE10", Type: models.CouponTypePercent, Value: 10, IsActive: false,
	})
	svc := newTestCouponService(repo, time.Now())

	_, _, err := svc.CheckEligibility(context.Background(), "SAVE10", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCheckEligibilityValidityWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	from := now.AddDate(0, 0, 1)
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "SOON", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		ValidFrom: &from,
	})
	svc := newTestCouponService(repo, now)

	_, _, err := svc.CheckEligibility(context.Background(), "SOON", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponNotYetActive)
}

func TestCheckEligibilityValidToIsInclusiveThroughEndOfDay(t *testing.T) {
	validTo := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "TODAY", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		ValidTo: &validTo,
	})

	// Late evening on the valid_to day still passes.
	svc := newTestCouponService(repo, time.Date(2026, 8, 31, 23, 30, 0, 0, time.Local))
	_, discount, err := svc.CheckEligibility(context.Background(), "TODAY", primitive.NewObjectID(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(50), discount)

	// The next morning it is expired.
	svc = newTestCouponService(repo, time.Date(2026, 9, 1, 0, 30, 0, 0, time.Local))
	_, _, err = svc.CheckEligibility(context.Background(), "TODAY", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCheckEligibilityExpiresAtFallbackIsExact(t *testing.T) {
	expires := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "LEGACY", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		ExpiresAt: &expires,
	})

	svc := newTestCouponService(repo, expires.Add(-time.Minute))
	_, _, err := svc.CheckEligibility(context.Background(), "LEGACY", primitive.NewObjectID(), 1000)
	assert.NoError(t, err)

	svc = newTestCouponService(repo, expires.Add(time.Minute))
	_, _, err = svc.CheckEligibility(context.Background(), "LEGACY", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCheckEligibilityMinCartTotal(t *testing.T) {
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "BIG", Type: models.CouponTypeFlat, Value: 100, IsActive: true,
		MinCartTotal: 300,
	})
	svc := newTestCouponService(repo, time.Now())

	_, _, err := svc.CheckEligibility(context.Background(), "BIG", primitive.NewObjectID(), 299)

	var minCart *MinCartTotalError
	require.ErrorAs(t, err, &minCart)
	assert.Equal(t, int64(300), minCart.MinCartTotal)
	assert.Contains(t, err.Error(), "300")
}

func TestCheckEligibilityTotalLimitReached(t *testing.T) {
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "CAPPED", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		UsageLimitTotal: 5, UsedCount: 5,
	})
	svc := newTestCouponService(repo, time.Now())

	_, _, err := svc.CheckEligibility(context.Background(), "CAPPED", primitive.NewObjectID(), 1000)
	assert.ErrorIs(t, err, ErrCouponLimitReached)
}

func TestCheckEligibilityPerUserLimit(t *testing.T) {
	userID := primitive.NewObjectID()
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "ONCE", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		UsedCount: 1,
		UsedBy:    []models.CouponUsage{{User: userID, Count: 1}},
	})
	svc := newTestCouponService(repo, time.Now())

	// The user who redeemed is rejected; a fresh user is not.
	_, _, err := svc.CheckEligibility(context.Background(), "ONCE", userID, 1000)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)

	_, _, err = svc.CheckEligibility(context.Background(), "ONCE", primitive.NewObjectID(), 1000)
	assert.NoError(t, err)
}

func TestCheckEligibilityComputesDiscount(t *testing.T) {
	repo := newFakeCouponRepo(&models.Coupon{
		Code: "PCT10", Type: models.CouponTypePercent, Value: 10, MaxDiscount: 50, IsActive: true,
	})
	svc := newTestCouponService(repo, time.Now())

	_, discount, err := svc.CheckEligibility(context.Background(), "pct10", primitive.NewObjectID(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(50), discount)
}

func TestRedeemRespectsTotalLimitAndDeactivates(t *testing.T) {
	coupon := &models.Coupon{
		Code: "LAST2", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		UsageLimitTotal: 2, UsageLimitPerUser: 1,
	}
	repo := newFakeCouponRepo(coupon)
	svc := newTestCouponService(repo, time.Now())

	require.NoError(t, svc.Redeem(context.Background(), coupon.ID, primitive.NewObjectID()))
	require.NoError(t, svc.Redeem(context.Background(), coupon.ID, primitive.NewObjectID()))

	err := svc.Redeem(context.Background(), coupon.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCouponLimitReached)

	assert.Equal(t, 2, coupon.UsedCount)
	assert.False(t, coupon.IsActive)
}

func TestRedeemConcurrentStopsAtTotalLimit(t *testing.T) {
	coupon := &models.Coupon{
		Code: "LAST7", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		UsageLimitTotal: 7, UsageLimitPerUser: 1,
	}
	repo := newFakeCouponRepo(coupon)
	svc := newTestCouponService(repo, time.Now())

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Redeem(context.Background(), coupon.ID, primitive.NewObjectID())
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrCouponLimitReached)
		rejected++
	}

	assert.Equal(t, 7, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 7, coupon.UsedCount)
	assert.False(t, coupon.IsActive)
}

func TestRedeemRejectsRepeatUserEvenCalledDirectly(t *testing.T) {
	coupon := &models.Coupon{
		Code: "ONE", Type: models.CouponTypeFlat, Value: 50, IsActive: true,
		UsageLimitPerUser: 1,
	}
	repo := newFakeCouponRepo(coupon)
	svc := newTestCouponService(repo, time.Now())
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Redeem(context.Background(), coupon.ID, userID))

	err := svc.Redeem(context.Background(), coupon.ID, userID)
	assert.ErrorIs(t, err, ErrCouponLimitReached)
	assert.Equal(t, 1, coupon.UsedCount)
}

func TestCreateNormalizesPayload(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newTestCouponService(repo, time.Now())

	coupon := &models.Coupon{
		Code:        "  save10 ",
		Type:        models.CouponTypeFlat,
		Value:       100,
		MaxDiscount: 75, // meaningless on flat coupons
		IsActive:    true,
	}
	require.NoError(t, svc.Create(context.Background(), coupon))

	assert.Equal(t, "SAVE10", coupon.Code)
	assert.Equal(t, int64(0), coupon.MaxDiscount)
	assert.Equal(t, 1, coupon.UsageLimitPerUser)
	assert.NotNil(t, coupon.UsedBy)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newFakeCouponRepo(&models.Coupon{Code: "DUP", Type: models.CouponTypeFlat, Value: 10, IsActive: true})
	svc := newTestCouponService(repo, time.Now())

	err := svc.Create(context.Background(), &models.Coupon{Code: "dup", Type: models.CouponTypeFlat, Value: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestListAvailableFiltersWindowAndExhaustion(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	future := now.AddDate(0, 0, 7)
	past := now.AddDate(0, 0, -7)

	repo := newFakeCouponRepo(
		&models.Coupon{Code: "LIVE", Type: models.CouponTypeFlat, Value: 10, IsActive: true},
		&models.Coupon{Code: "FUTURE", Type: models.CouponTypeFlat, Value: 10, IsActive: true, ValidFrom: &future},
		&models.Coupon{Code: "PAST", Type: models.CouponTypeFlat, Value: 10, IsActive: true, ExpiresAt: &past},
		&models.Coupon{Code: "GONE", Type: models.CouponTypeFlat, Value: 10, IsActive: true, UsageLimitTotal: 1, UsedCount: 1},
		&models.Coupon{Code: "OFF", Type: models.CouponTypeFlat, Value: 10, IsActive: false},
	)
	svc := newTestCouponService(repo, now)

	coupons, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "LIVE", coupons[0].Code)
}

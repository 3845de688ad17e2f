package services

import (
	"context"
	"strings"
	"testing"

	"macrobox/internal/delivery"
	"macrobox/internal/models"
	"macrobox/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checkoutFixture struct {
	svc        *CheckoutService
	orderRepo  *fakeOrderRepo
	couponRepo *fakeCouponRepo
	gateway    *fakeGateway
	meals      []*models.Meal
}

func newCheckoutFixture(t *testing.T, coupons ...*models.Coupon) *checkoutFixture {
	t.Helper()

	meals := []*models.Meal{
		{Title: "Paneer Power Bowl", Price: 200, Protein: 30, Calories: 400},
		{Title: "Chicken Rice Box", Price: 150, Protein: 10, Calories: 250},
	}
	mealRepo := newFakeMealRepo(meals...)
	orderRepo := newFakeOrderRepo()
	couponRepo := newFakeCouponRepo(coupons...)
	gateway := &fakeGateway{orderID: "order_gw_1", validSig: "good-signature"}

	log := testLogger()
	couponService := NewCouponService(couponRepo, log)
	svc := NewCheckoutService(
		orderRepo, mealRepo, couponService,
		delivery.NewSlotValidator(delivery.DefaultSlotConfig()),
		gateway, "INR", log,
	)

	return &checkoutFixture{
		svc:        svc,
		orderRepo:  orderRepo,
		couponRepo: couponRepo,
		gateway:    gateway,
		meals:      meals,
	}
}

// A slot far in the future is always outside the lead-time window.
func futureSlot() validators.DeliverySlotRequest {
	return validators.DeliverySlotRequest{Date: "2030-06-15", Time: "12:00"}
}

func validAddress() validators.AddressRequest {
	return validators.AddressRequest{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		Line1:        "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		LocationMode: "manual",
		LocationText: "Near the metro station",
	}
}

func TestCreateOrderComputesTotalsAndPersists(t *testing.T) {
	f := newCheckoutFixture(t)
	userID := primitive.NewObjectID()

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 2},
			{MealID: f.meals[1].ID.Hex(), Quantity: 1},
		},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	result, err := f.svc.CreateOrder(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, "key_test", result.KeyID)
	assert.Equal(t, "order_gw_1", result.GatewayOrderID)
	assert.Equal(t, int64(55000), result.Amount) // 550 rupees in paise
	assert.Equal(t, "INR", result.Currency)

	orderID, err := primitive.ObjectIDFromHex(result.OrderID)
	require.NoError(t, err)
	order, err := f.orderRepo.GetByID(context.Background(), orderID)
	require.NoError(t, err)

	assert.Equal(t, int64(550), order.Totals.Subtotal)
	assert.Equal(t, int64(70), order.Totals.TotalProtein)
	assert.Equal(t, int64(1050), order.Totals.TotalCalories)
	assert.Equal(t, int64(550), order.Totals.Payable)
	assert.Equal(t, models.PaymentStatusCreated, order.Payment.Status)
	assert.Equal(t, "fake", order.Payment.Provider)
	assert.Nil(t, order.Coupon)
}

func TestCreateOrderSnapshotsCatalogPrices(t *testing.T) {
	f := newCheckoutFixture(t)

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 1},
		},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	result, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)

	orderID, _ := primitive.ObjectIDFromHex(result.OrderID)
	order, _ := f.orderRepo.GetByID(context.Background(), orderID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Paneer Power Bowl", order.Items[0].Title)
	assert.Equal(t, int64(200), order.Items[0].UnitPrice)
}

func TestCreateOrderMergesDuplicateLines(t *testing.T) {
	f := newCheckoutFixture(t)

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 1},
			{MealID: f.meals[0].ID.Hex(), Quantity: 2},
		},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	result, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)

	orderID, _ := primitive.ObjectIDFromHex(result.OrderID)
	order, _ := f.orderRepo.GetByID(context.Background(), orderID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, int64(600), order.Totals.Subtotal)
}

func TestCreateOrderRejectsBadSlot(t *testing.T) {
	f := newCheckoutFixture(t)

	req := &validators.CreateOrderRequest{
		Items:        []validators.OrderItemRequest{{MealID: f.meals[0].ID.Hex(), Quantity: 1}},
		Address:      validAddress(),
		DeliverySlot: validators.DeliverySlotRequest{Date: "2030-06-15", Time: "20:00"},
	}

	_, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, delivery.ErrSlotUnavailable)
}

func TestCreateOrderRejectsUnknownMeal(t *testing.T) {
	f := newCheckoutFixture(t)

	req := &validators.CreateOrderRequest{
		Items:        []validators.OrderItemRequest{{MealID: primitive.NewObjectID().Hex(), Quantity: 1}},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	_, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestCreateOrderReceiptFitsGatewayLimit(t *testing.T) {
	f := newCheckoutFixture(t)

	req := &validators.CreateOrderRequest{
		Items:        []validators.OrderItemRequest{{MealID: f.meals[0].ID.Hex(), Quantity: 1}},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	_, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)

	// Razorpay rejects receipts longer than 40 characters.
	assert.True(t, strings.HasPrefix(f.gateway.lastReceipt, "rcpt_"))
	assert.LessOrEqual(t, len(f.gateway.lastReceipt), 40)
}

func TestCreateOrderGatewayFailurePersistsNothing(t *testing.T) {
	f := newCheckoutFixture(t)
	f.gateway.failNext = true

	req := &validators.CreateOrderRequest{
		Items:        []validators.OrderItemRequest{{MealID: f.meals[0].ID.Hex(), Quantity: 1}},
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	_, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrderAppliesCoupon(t *testing.T) {
	f := newCheckoutFixture(t, &models.Coupon{
		Code: "FLAT100", Type: models.CouponTypeFlat, Value: 100, MinCartTotal: 300, IsActive: true,
	})

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 2},
			{MealID: f.meals[1].ID.Hex(), Quantity: 1},
		},
		CouponCode:   "flat100",
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	result, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), result.Amount) // (550-100) rupees in paise

	orderID, _ := primitive.ObjectIDFromHex(result.OrderID)
	order, _ := f.orderRepo.GetByID(context.Background(), orderID)
	require.NotNil(t, order.Coupon)
	assert.Equal(t, "FLAT100", order.Coupon.Code)
	assert.Equal(t, int64(100), order.Coupon.Discount)
	assert.False(t, order.Coupon.Redeemed)
	assert.Equal(t, int64(450), order.Totals.Payable)
}

func TestCreateOrderRejectsIneligibleCoupon(t *testing.T) {
	f := newCheckoutFixture(t, &models.Coupon{
		Code: "BIG", Type: models.CouponTypeFlat, Value: 100, MinCartTotal: 10000, IsActive: true,
	})

	req := &validators.CreateOrderRequest{
		Items:        []validators.OrderItemRequest{{MealID: f.meals[0].ID.Hex(), Quantity: 1}},
		CouponCode:   "BIG",
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	_, err := f.svc.CreateOrder(context.Background(), primitive.NewObjectID(), req)

	var minCart *MinCartTotalError
	assert.ErrorAs(t, err, &minCart)
	assert.Empty(t, f.orderRepo.orders)
}

func createPaidableOrder(t *testing.T, f *checkoutFixture, userID primitive.ObjectID, couponCode string) string {
	t.Helper()

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 2},
			{MealID: f.meals[1].ID.Hex(), Quantity: 1},
		},
		CouponCode:   couponCode,
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}
	result, err := f.svc.CreateOrder(context.Background(), userID, req)
	require.NoError(t, err)
	return result.OrderID
}

func TestVerifyPaymentHappyPathRedeemsCoupon(t *testing.T) {
	f := newCheckoutFixture(t, &models.Coupon{
		Code: "FLAT100", Type: models.CouponTypeFlat, Value: 100, MinCartTotal: 300, IsActive: true,
		UsageLimitPerUser: 1,
	})
	userID := primitive.NewObjectID()
	orderID := createPaidableOrder(t, f, userID, "FLAT100")

	order, err := f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          orderID,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, order.Payment.Status)
	assert.Equal(t, "pay_1", order.Payment.GatewayPaymentID)
	require.NotNil(t, order.Coupon)
	assert.True(t, order.Coupon.Redeemed)

	coupon, _ := f.couponRepo.GetByCode(context.Background(), "FLAT100")
	assert.Equal(t, 1, coupon.UsedCount)
	assert.Equal(t, 1, coupon.UsedTimesBy(userID))
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	f := newCheckoutFixture(t, &models.Coupon{
		Code: "FLAT100", Type: models.CouponTypeFlat, Value: 100, MinCartTotal: 300, IsActive: true,
	})
	userID := primitive.NewObjectID()
	orderID := createPaidableOrder(t, f, userID, "FLAT100")

	req := &validators.VerifyPaymentRequest{
		OrderID:          orderID,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	}

	first, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	second, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, first.Payment.Status)
	assert.Equal(t, models.PaymentStatusPaid, second.Payment.Status)
	assert.Equal(t, first.ID, second.ID)

	// Usage incremented exactly once across both calls.
	coupon, _ := f.couponRepo.GetByCode(context.Background(), "FLAT100")
	assert.Equal(t, 1, coupon.UsedCount)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          primitive.NewObjectID().Hex(),
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyPaymentRejectsGatewayOrderMismatch(t *testing.T) {
	f := newCheckoutFixture(t)
	orderID := createPaidableOrder(t, f, primitive.NewObjectID(), "")

	_, err := f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          orderID,
		GatewayOrderID:   "order_someone_elses",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	})
	assert.ErrorIs(t, err, ErrGatewayOrderMismatch)

	// The order is untouched.
	oid, _ := primitive.ObjectIDFromHex(orderID)
	order, _ := f.orderRepo.GetByID(context.Background(), oid)
	assert.Equal(t, models.PaymentStatusCreated, order.Payment.Status)
}

func TestVerifyPaymentBadSignatureIsTerminal(t *testing.T) {
	f := newCheckoutFixture(t)
	orderID := createPaidableOrder(t, f, primitive.NewObjectID(), "")

	_, err := f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          orderID,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "forged",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	// Failure is persisted with the audit ids.
	oid, _ := primitive.ObjectIDFromHex(orderID)
	order, _ := f.orderRepo.GetByID(context.Background(), oid)
	assert.Equal(t, models.PaymentStatusFailed, order.Payment.Status)
	assert.Equal(t, "pay_1", order.Payment.GatewayPaymentID)
	assert.Equal(t, "forged", order.Payment.GatewaySignature)

	// A later valid signature cannot resurrect the order.
	_, err = f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          orderID,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

// Full scenario: flat 100 coupon on a 500 cart pays 400, then the same
// user's next checkout with the coupon is rejected.
func TestCouponScenarioSecondUseRejected(t *testing.T) {
	f := newCheckoutFixture(t, &models.Coupon{
		Code: "FLAT100", Type: models.CouponTypeFlat, Value: 100, MinCartTotal: 300, IsActive: true,
		UsageLimitPerUser: 1,
	})
	userID := primitive.NewObjectID()

	req := &validators.CreateOrderRequest{
		Items: []validators.OrderItemRequest{
			{MealID: f.meals[0].ID.Hex(), Quantity: 1},
			{MealID: f.meals[1].ID.Hex(), Quantity: 2},
		},
		CouponCode:   "FLAT100",
		Address:      validAddress(),
		DeliverySlot: futureSlot(),
	}

	result, err := f.svc.CreateOrder(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), result.Amount) // subtotal 500, payable 400

	_, err = f.svc.VerifyPayment(context.Background(), &validators.VerifyPaymentRequest{
		OrderID:          result.OrderID,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "good-signature",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"macrobox/internal/delivery"
	"macrobox/internal/models"
	"macrobox/internal/pricing"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"
	"macrobox/pkg/payment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutService orchestrates order creation against the payment
// gateway and payment verification with coupon redemption.
type CheckoutService struct {
	orderRepo     interfaces.OrderRepository
	mealRepo      interfaces.MealRepository
	couponService *CouponService
	slotValidator *delivery.SlotValidator
	gateway       payment.Gateway
	currency      string
	logger        *logger.Logger
}

func NewCheckoutService(
	orderRepo interfaces.OrderRepository,
	mealRepo interfaces.MealRepository,
	couponService *CouponService,
	slotValidator *delivery.SlotValidator,
	gateway payment.Gateway,
	currency string,
	log *logger.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		mealRepo:      mealRepo,
		couponService: couponService,
		slotValidator: slotValidator,
		gateway:       gateway,
		currency:      currency,
		logger:        log,
	}
}

// CreateOrderResult is what the client needs to open the gateway's
// payment widget.
type CreateOrderResult struct {
	KeyID          string `json:"key_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"` // minor units
	Currency       string `json:"currency"`
	OrderID        string `json:"order_id"`
}

// CreateOrder validates the cart, re-derives every price from the meal
// catalog, applies the coupon if one is supplied, registers the payable
// amount with the payment gateway and persists the order in "created"
// status. No order is persisted when the gateway call fails.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req *validators.CreateOrderRequest) (*CreateOrderResult, error) {
	if err := s.slotValidator.Validate(req.DeliverySlot.Date, req.DeliverySlot.Time); err != nil {
		return nil, err
	}

	// Collapse duplicate lines onto one quantity per meal.
	quantities := make(map[primitive.ObjectID]int)
	order := make([]primitive.ObjectID, 0, len(req.Items))
	for _, item := range req.Items {
		mealID, err := primitive.ObjectIDFromHex(item.MealID)
		if err != nil {
			return nil, ErrMealNotFound
		}
		if _, seen := quantities[mealID]; !seen {
			order = append(order, mealID)
		}
		quantities[mealID] += item.Quantity
	}

	meals, err := s.mealRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Meal, len(meals))
	for _, m := range meals {
		byID[m.ID] = m
	}

	items := make([]models.OrderItem, 0, len(order))
	lines := make([]pricing.LineItem, 0, len(order))
	for _, mealID := range order {
		meal, ok := byID[mealID]
		if !ok {
			return nil, ErrMealNotFound
		}
		qty := quantities[mealID]
		items = append(items, models.OrderItem{
			Meal:            meal.ID,
			Title:           meal.Title,
			UnitPrice:       meal.Price,
			ProteinPerUnit:  meal.Protein,
			CaloriesPerUnit: meal.Calories,
			Quantity:        qty,
		})
		lines = append(lines, pricing.LineItem{
			UnitPrice:       meal.Price,
			ProteinPerUnit:  meal.Protein,
			CaloriesPerUnit: meal.Calories,
			Quantity:        qty,
		})
	}

	totals := pricing.ComputeTotals(lines)

	var orderCoupon *models.OrderCoupon
	var discount int64
	if req.CouponCode != "" {
		coupon, d, err := s.couponService.CheckEligibility(ctx, req.CouponCode, userID, totals.Subtotal)
		if err != nil {
			return nil, err
		}
		discount = d
		orderCoupon = &models.OrderCoupon{
			Code:     coupon.Code,
			Discount: discount,
			Redeemed: false,
		}
	}

	payable := totals.Subtotal - discount
	if payable < utils.MinPayableAmount {
		payable = utils.MinPayableAmount
	}

	// Razorpay caps receipts at 40 characters, so strip the uuid hyphens.
	receipt := "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, payable*100, s.currency, receipt)
	if err != nil {
		s.logger.WithError(err).Error("gateway order creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	newOrder := &models.Order{
		UserID: userID,
		Items:  items,
		Totals: models.OrderTotals{
			Subtotal:      totals.Subtotal,
			Discount:      discount,
			Payable:       payable,
			TotalProtein:  totals.TotalProtein,
			TotalCalories: totals.TotalCalories,
		},
		Coupon: orderCoupon,
		Delivery: models.OrderDelivery{
			Address: models.DeliveryAddress{
				FullName:     req.Address.FullName,
				Phone:        req.Address.Phone,
				Line1:        req.Address.Line1,
				Line2:        req.Address.Line2,
				City:         req.Address.City,
				State:        req.Address.State,
				Pincode:      req.Address.Pincode,
				LocationMode: models.LocationMode(req.Address.LocationMode),
				LocationText: req.Address.LocationText,
				Lat:          req.Address.Lat,
				Lng:          req.Address.Lng,
				MapsURL:      req.Address.MapsURL,
			},
			Slot: models.DeliverySlot{
				Date: req.DeliverySlot.Date,
				Time: req.DeliverySlot.Time,
			},
		},
		Payment: models.OrderPayment{
			Provider:       s.gateway.Provider(),
			Status:         models.PaymentStatusCreated,
			GatewayOrderID: gatewayOrderID,
		},
	}

	if err := s.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(newOrder.ID, "order_created", payable, s.currency)

	return &CreateOrderResult{
		KeyID:          s.gateway.KeyID(),
		GatewayOrderID: gatewayOrderID,
		Amount:         payable * 100,
		Currency:       s.currency,
		OrderID:        newOrder.ID.Hex(),
	}, nil
}

// VerifyPayment checks the gateway signature for an order and settles
// its payment status. A valid signature transitions the order to paid
// and redeems the attached coupon exactly once; an invalid one records
// the failure for audit and is terminal for the order.
func (s *CheckoutService) VerifyPayment(ctx context.Context, req *validators.VerifyPaymentRequest) (*models.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	// Replaying a valid verification is a no-op.
	if order.Payment.Status == models.PaymentStatusPaid {
		return order, nil
	}
	if order.Payment.Status == models.PaymentStatusFailed {
		return nil, ErrVerificationFailed
	}

	if order.Payment.GatewayOrderID != req.GatewayOrderID {
		return nil, ErrGatewayOrderMismatch
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		order.Payment.Status = models.PaymentStatusFailed
		order.Payment.GatewayPaymentID = req.GatewayPaymentID
		order.Payment.GatewaySignature = req.GatewaySignature
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
		s.logger.LogPaymentEvent(order.ID, "verification_failed", order.Totals.Payable, s.currency)
		return nil, ErrVerificationFailed
	}

	order.Payment.Status = models.PaymentStatusPaid
	order.Payment.GatewayPaymentID = req.GatewayPaymentID
	order.Payment.GatewaySignature = req.GatewaySignature

	if order.Coupon != nil && !order.Coupon.Redeemed {
		if err := s.couponService.RedeemByCode(ctx, order.Coupon.Code, order.UserID); err != nil {
			// The payment already settled; keep the order paid and
			// surface the lost redemption in the logs.
			s.logger.WithError(err).WithOrderID(order.ID).Warn("coupon redemption failed after payment")
		} else {
			order.Coupon.Redeemed = true
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(order.ID, "payment_verified", order.Totals.Payable, s.currency)

	return order, nil
}

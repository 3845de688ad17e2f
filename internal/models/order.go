package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type LocationMode string

const (
	LocationModeManual  LocationMode = "manual"
	LocationModeCurrent LocationMode = "current"
)

// OrderItem is a normalized cart line. Unit price and nutrition are
// snapshotted from the meal catalog at order creation and never change.
type OrderItem struct {
	Meal            primitive.ObjectID `json:"meal" bson:"meal" validate:"required"`
	Title           string             `json:"title" bson:"title"`
	UnitPrice       int64              `json:"unit_price" bson:"unit_price"`
	ProteinPerUnit  float64            `json:"protein_per_unit" bson:"protein_per_unit"`
	CaloriesPerUnit float64            `json:"calories_per_unit" bson:"calories_per_unit"`
	Quantity        int                `json:"quantity" bson:"quantity" validate:"required,min=1"`
}

type OrderTotals struct {
	Subtotal      int64 `json:"subtotal" bson:"subtotal"`
	Discount      int64 `json:"discount" bson:"discount"`
	Payable       int64 `json:"payable" bson:"payable"`
	TotalProtein  int64 `json:"total_protein" bson:"total_protein"`
	TotalCalories int64 `json:"total_calories" bson:"total_calories"`
}

// OrderCoupon snapshots the coupon applied at checkout. Redeemed flips to
// true exactly once, after the payment is verified and the ledger increment
// succeeds.
type OrderCoupon struct {
	Code     string `json:"code" bson:"code"`
	Discount int64  `json:"discount" bson:"discount"`
	Redeemed bool   `json:"redeemed" bson:"redeemed"`
}

type DeliveryAddress struct {
	FullName string `json:"full_name" bson:"full_name"`
	Phone    string `json:"phone" bson:"phone"`
	Line1    string `json:"line1" bson:"line1"`
	Line2    string `json:"line2,omitempty" bson:"line2,omitempty"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`

	LocationMode LocationMode `json:"location_mode" bson:"location_mode"`
	LocationText string       `json:"location_text,omitempty" bson:"location_text,omitempty"`
	Lat          *float64     `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng          *float64     `json:"lng,omitempty" bson:"lng,omitempty"`
	MapsURL      string       `json:"maps_url,omitempty" bson:"maps_url,omitempty"`
}

type DeliverySlot struct {
	Date string `json:"date" bson:"date"` // "YYYY-MM-DD"
	Time string `json:"time" bson:"time"` // "HH:00"
}

type OrderDelivery struct {
	Address DeliveryAddress `json:"address" bson:"address"`
	Slot    DeliverySlot    `json:"slot" bson:"slot"`
}

type OrderPayment struct {
	Provider string        `json:"provider" bson:"provider"`
	Status   PaymentStatus `json:"status" bson:"status"`

	GatewayOrderID   string `json:"gateway_order_id" bson:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty" bson:"gateway_payment_id,omitempty"`
	GatewaySignature string `json:"gateway_signature,omitempty" bson:"gateway_signature,omitempty"`
}

type Order struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`

	Items   []OrderItem  `json:"items" bson:"items" validate:"required,min=1"`
	Totals  OrderTotals  `json:"totals" bson:"totals"`
	Coupon  *OrderCoupon `json:"coupon,omitempty" bson:"coupon,omitempty"`

	Delivery OrderDelivery `json:"delivery" bson:"delivery"`
	Payment  OrderPayment  `json:"payment" bson:"payment"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

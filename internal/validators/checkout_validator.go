package validators

// OrderItemRequest carries only the meal reference and quantity; title,
// price and macros are re-derived server-side from the catalog.
type OrderItemRequest struct {
	MealID   string `json:"meal" validate:"required,object_id"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=50"`
}

type AddressRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Line1    string `json:"line1" validate:"required,min=3,max=200"`
	Line2    string `json:"line2" validate:"max=200"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"required,max=100"`
	Pincode  string `json:"pincode" validate:"required,pincode"`

	LocationMode string   `json:"location_mode" validate:"required,oneof=manual current"`
	LocationText string   `json:"location_text" validate:"max=300"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	MapsURL      string   `json:"maps_url" validate:"max=500"`
}

type DeliverySlotRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type CreateOrderRequest struct {
	Items        []OrderItemRequest  `json:"items" validate:"required,min=1,max=50,dive"`
	CouponCode   string              `json:"coupon_code"`
	Address      AddressRequest      `json:"address" validate:"required"`
	DeliverySlot DeliverySlotRequest `json:"delivery_slot" validate:"required"`
}

type VerifyPaymentRequest struct {
	OrderID          string `json:"order_id" validate:"required,object_id"`
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	GatewaySignature string `json:"gateway_signature" validate:"required"`
}

// ValidateCreateOrderRequest checks structure plus the location-mode
// rules the tag syntax cannot express: manual mode needs a textual
// location, current mode needs coordinates and a maps link.
func ValidateCreateOrderRequest(req *CreateOrderRequest) ValidationErrors {
	errs := ValidateStruct(req)

	switch req.Address.LocationMode {
	case "manual":
		if req.Address.LocationText == "" {
			errs = append(errs, ValidationError{
				Field:   "LocationText",
				Tag:     "required",
				Message: "location_text is required for manual location",
			})
		}
	case "current":
		if req.Address.Lat == nil || req.Address.Lng == nil {
			errs = append(errs, ValidationError{
				Field:   "Lat",
				Tag:     "required",
				Message: "lat and lng are required for current location",
			})
		}
		if req.Address.MapsURL == "" {
			errs = append(errs, ValidationError{
				Field:   "MapsURL",
				Tag:     "required",
				Message: "maps_url is required for current location",
			})
		}
	}

	return errs
}

func ValidateVerifyPaymentRequest(req *VerifyPaymentRequest) ValidationErrors {
	return ValidateStruct(req)
}

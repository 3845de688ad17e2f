package validators

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`

	// A missing cart total is treated as zero so the minimum-cart rule
	// can answer with the specific threshold.
	CartTotal int64 `json:"cart_total" validate:"min=0"`
}

type CouponRequest struct {
	Code  string  `json:"code" validate:"required,min=1,max=50"`
	Type  string  `json:"type" validate:"required,coupon_type"`
	Value float64 `json:"value" validate:"required,gt=0"`

	MinCartTotal int64 `json:"min_cart_total" validate:"min=0"`
	MaxDiscount  int64 `json:"max_discount" validate:"min=0"`

	ValidFrom string `json:"valid_from"` // "YYYY-MM-DD", optional
	ValidTo   string `json:"valid_to"`   // "YYYY-MM-DD", optional

	IsActive *bool `json:"is_active"`

	UsageLimitTotal   int `json:"usage_limit_total" validate:"min=0"`
	UsageLimitPerUser int `json:"usage_limit_per_user" validate:"min=0"`
}

func ValidateApplyCouponRequest(req *ApplyCouponRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ValidateCouponRequest checks an admin create/update payload, including
// the percent-value bound tags cannot express.
func ValidateCouponRequest(req *CouponRequest) ValidationErrors {
	errs := ValidateStruct(req)

	if req.Type == "percent" && req.Value > 100 {
		errs = append(errs, ValidationError{
			Field:   "Value",
			Tag:     "max",
			Message: "percent value cannot exceed 100",
		})
	}

	return errs
}

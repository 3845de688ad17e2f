package handlers

import (
	"strconv"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponHandler struct {
	couponService *services.CouponService
	logger        *logger.Logger
}

func NewCouponHandler(couponService *services.CouponService, log *logger.Logger) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		logger:        log,
	}
}

// AvailableCoupon is the shopper-facing projection of a coupon; usage
// counters and limits stay server-side.
type AvailableCoupon struct {
	Code         string     `json:"code"`
	Type         string     `json:"type"`
	Value        float64    `json:"value"`
	MinCartTotal int64      `json:"min_cart_total"`
	MaxDiscount  int64      `json:"max_discount"`
	ValidFrom    *time.Time `json:"valid_from,omitempty"`
	ValidTo      *time.Time `json:"valid_to,omitempty"`
}

// Apply performs a dry-run eligibility check for the caller's cart.
// Unknown and inactive codes are reported identically so the endpoint
// cannot be used to probe for unissued coupons.
func (h *CouponHandler) Apply(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req validators.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateApplyCouponRequest(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	coupon, discount, err := h.couponService.CheckEligibility(c.Request.Context(), req.Code, userID, req.CartTotal)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Coupon applied", gin.H{
		"code":     coupon.Code,
		"discount": discount,
	})
}

// Available lists coupons the caller could use right now, optionally
// filtered to those already satisfied by the given cart total.
func (h *CouponHandler) Available(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rawTotal := c.Query("cart_total")
	if rawTotal == "" {
		rawTotal = c.Query("cartTotal")
	}
	cartTotal, _ := strconv.ParseInt(rawTotal, 10, 64)

	coupons, err := h.couponService.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	out := make([]AvailableCoupon, 0, len(coupons))
	for _, coupon := range coupons {
		perUser := coupon.UsageLimitPerUser
		if perUser <= 0 {
			perUser = utils.DefaultUsageLimitPerUser
		}
		if coupon.UsedTimesBy(userID) >= perUser {
			continue
		}
		if cartTotal > 0 && coupon.MinCartTotal > cartTotal {
			continue
		}
		out = append(out, AvailableCoupon{
			Code:         coupon.Code,
			Type:         string(coupon.Type),
			Value:        coupon.Value,
			MinCartTotal: coupon.MinCartTotal,
			MaxDiscount:  coupon.MaxDiscount,
			ValidFrom:    coupon.ValidFrom,
			ValidTo:      coupon.ValidTo,
		})
	}

	utils.SuccessResponse(c, "Available coupons", out)
}

// Create registers a new coupon (admin).
func (h *CouponHandler) Create(c *gin.Context) {
	var req validators.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponRequest(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	coupon, err := couponFromRequest(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.couponService.Create(c.Request.Context(), coupon); err != nil {
		utils.ConflictResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, "Coupon created", coupon)
}

// Update rewrites an existing coupon (admin). Usage counters carry over.
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	var req validators.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponRequest(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	existing, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "coupon")
		return
	}

	coupon, err := couponFromRequest(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	coupon.ID = existing.ID
	coupon.UsedCount = existing.UsedCount
	coupon.UsedBy = existing.UsedBy
	coupon.CreatedAt = existing.CreatedAt

	if err := h.couponService.Update(c.Request.Context(), coupon); err != nil {
		utils.ConflictResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, "Coupon updated", coupon)
}

// List returns all coupons with pagination (admin).
func (h *CouponHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Coupons", coupons, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

// Delete removes a coupon (admin).
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		utils.NotFoundResponse(c, "coupon")
		return
	}

	utils.SuccessResponse(c, "Coupon deleted", nil)
}

// Toggle flips a coupon's active flag (admin).
func (h *CouponHandler) Toggle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "coupon")
		return
	}

	if err := h.couponService.SetActive(c.Request.Context(), id, !coupon.IsActive); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Coupon status updated", gin.H{"is_active": !coupon.IsActive})
}

func couponFromRequest(req *validators.CouponRequest) (*models.Coupon, error) {
	coupon := &models.Coupon{
		Code:              req.Code,
		Type:              models.CouponType(req.Type),
		Value:             req.Value,
		MinCartTotal:      req.MinCartTotal,
		MaxDiscount:       req.MaxDiscount,
		UsageLimitTotal:   req.UsageLimitTotal,
		UsageLimitPerUser: req.UsageLimitPerUser,
		IsActive:          true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if req.ValidFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", req.ValidFrom, time.Local)
		if err != nil {
			return nil, err
		}
		coupon.ValidFrom = &from
	}
	if req.ValidTo != "" {
		to, err := time.ParseInLocation("2006-01-02", req.ValidTo, time.Local)
		if err != nil {
			return nil, err
		}
		coupon.ValidTo = &to
	}

	return coupon, nil
}

package handlers

import (
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	logger          *logger.Logger
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          log,
	}
}

// CreateOrder opens a gateway order for the caller's cart.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req validators.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateOrderRequest(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	result, err := h.checkoutService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Order created", result)
}

// VerifyPayment settles an order from the gateway callback payload.
// It is deliberately unauthenticated: the signature is the proof.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	var req validators.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateVerifyPaymentRequest(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	order, err := h.checkoutService.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Payment verified", order)
}

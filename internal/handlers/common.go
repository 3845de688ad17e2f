package handlers

import (
	"errors"
	"net/http"

	"macrobox/internal/delivery"
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser pulls the authenticated user id out of the context.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentRole(c *gin.Context) string {
	if v, exists := c.Get("user_role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func validationResponse(c *gin.Context, errs validators.ValidationErrors) {
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	utils.ValidationErrorResponse(c, details)
}

// respondServiceError maps service errors onto the HTTP taxonomy:
// business-rule rejections are 400 with their reason, missing entities
// are 404, everything unexpected collapses to a logged generic 500.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	var minCart *services.MinCartTotalError
	switch {
	case errors.Is(err, delivery.ErrSlotUnavailable),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrCouponNotYetActive),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponLimitReached),
		errors.Is(err, services.ErrCouponAlreadyUsed),
		errors.Is(err, services.ErrWeakPassword),
		errors.As(err, &minCart):
		utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, services.ErrGatewayOrderMismatch),
		errors.Is(err, services.ErrVerificationFailed):
		utils.ErrorResponse(c, http.StatusBadRequest, "PAYMENT_VERIFICATION_FAILED", err.Error())

	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrMealNotFound):
		utils.NotFoundResponse(c, "meal")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")

	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, services.ErrEmailNotVerified),
		errors.Is(err, services.ErrAccountFrozen),
		errors.Is(err, services.ErrAccountDeactivated):
		utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", err.Error())

	case errors.Is(err, services.ErrPaymentUnavailable):
		log.WithError(err).Error("payment gateway unavailable")
		utils.ErrorResponse(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", services.ErrPaymentUnavailable.Error())

	default:
		log.WithError(err).Error("unhandled service error")
		utils.InternalServerErrorResponse(c)
	}
}

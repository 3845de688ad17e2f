package routes

import (
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes wires the checkout flow. Order creation needs an
// authenticated cart owner; verification is public because the gateway
// signature itself authenticates the payload.
func SetupCheckoutRoutes(r *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, jwtSecret string) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/create-order", middleware.AuthRequired(jwtSecret), checkoutHandler.CreateOrder)
		checkout.POST("/verify", checkoutHandler.VerifyPayment)
	}
}

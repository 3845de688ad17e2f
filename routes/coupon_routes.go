package routes

import (
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes wires shopper-facing coupon lookups and the admin
// management surface.
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler, jwtSecret string) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthRequired(jwtSecret))
	{
		coupons.POST("/apply", couponHandler.Apply)
		coupons.GET("/available", couponHandler.Available)
	}

	admin := r.Group("/admin/coupons")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", couponHandler.List)
		admin.POST("/", couponHandler.Create)
		admin.PATCH("/:id", couponHandler.Update)
		admin.DELETE("/:id", couponHandler.Delete)
		admin.PATCH("/:id/toggle", couponHandler.Toggle)
	}
}

package routes

import (
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes wires order history for shoppers and admins.
func SetupOrderRoutes(r *gin.RouterGroup, orderHandler *handlers.OrderHandler, jwtSecret string) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(jwtSecret))
	{
		orders.GET("/", orderHandler.ListMine)
		orders.GET("/:id", orderHandler.Get)
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", orderHandler.ListAll)
	}
}

package routes

import (
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMealRoutes wires the public catalog and admin catalog management.
func SetupMealRoutes(r *gin.RouterGroup, mealHandler *handlers.MealHandler, jwtSecret string) {
	meals := r.Group("/meals")
	{
		meals.GET("/", mealHandler.List)
		meals.GET("/featured", mealHandler.Featured)
		meals.GET("/:id", mealHandler.Get)
	}

	admin := r.Group("/admin/meals")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/", mealHandler.Create)
		admin.PATCH("/:id", mealHandler.Update)
		admin.PATCH("/:id/feature", mealHandler.Feature)
		admin.DELETE("/:id", mealHandler.Delete)
	}
}

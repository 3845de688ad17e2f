package routes

import (
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes wires profile management plus admin account controls.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, jwtSecret string) {
	user := r.Group("/user")
	user.Use(middleware.AuthRequired(jwtSecret))
	{
		user.GET("/profile", userHandler.GetProfile)
		user.PATCH("/profile", userHandler.UpdateProfile)

		user.GET("/favorites", userHandler.ListFavorites)
		user.POST("/favorites/:meal_id", userHandler.AddFavorite)
		user.DELETE("/favorites/:meal_id", userHandler.RemoveFavorite)

		user.GET("/day-plans", userHandler.GetDayPlans)
		user.PUT("/day-plans", userHandler.SetDayPlan)

		user.PATCH("/body-metrics", userHandler.UpdateBodyMetrics)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", userHandler.ListUsers)
		admin.PATCH("/:id/freeze", userHandler.SetFrozen)
		admin.PATCH("/:id/deactivate", userHandler.SetDeactivated)
	}
}

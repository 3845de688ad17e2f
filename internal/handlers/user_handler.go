package handlers

import (
	"time"

	"macrobox/internal/models"
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

func NewUserHandler(userService *services.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      log,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Profile", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,min=2,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated", user)
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	mealID, err := primitive.ObjectIDFromHex(c.Param("meal_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	if err := h.userService.AddFavorite(c.Request.Context(), userID, mealID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Added to favorites", nil)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	mealID, err := primitive.ObjectIDFromHex(c.Param("meal_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	if err := h.userService.RemoveFavorite(c.Request.Context(), userID, mealID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Removed from favorites", nil)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	meals, err := h.userService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Favorites", meals)
}

type dayPlanRequest struct {
	Date  string `json:"date" validate:"required"` // "YYYY-MM-DD"
	Items []struct {
		MealID string   `json:"meal" validate:"required,object_id"`
		Times  []string `json:"times" validate:"required,min=1,dive,oneof=breakfast lunch snack dinner"`
	} `json:"items" validate:"dive"`
}

// SetDayPlan replaces the caller's plan for one calendar day.
func (h *UserHandler) SetDayPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dayPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	plan := models.DayPlan{Date: date, Items: make([]models.DayPlanItem, 0, len(req.Items))}
	for _, item := range req.Items {
		mealID, err := primitive.ObjectIDFromHex(item.MealID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid meal ID")
			return
		}
		times := make([]models.MealTime, 0, len(item.Times))
		for _, t := range item.Times {
			times = append(times, models.MealTime(t))
		}
		plan.Items = append(plan.Items, models.DayPlanItem{Meal: mealID, Times: times})
	}

	if err := h.userService.SetDayPlan(c.Request.Context(), userID, plan); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Day plan saved", plan)
}

func (h *UserHandler) GetDayPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.userService.GetDayPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Day plans", plans)
}

type bodyMetricsRequest struct {
	Height     *float64 `json:"height" validate:"omitempty,gt=0"`
	Weight     *float64 `json:"weight" validate:"omitempty,gt=0"`
	Age        *int     `json:"age" validate:"omitempty,gt=0,lt=150"`
	Gender     string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Activity   string   `json:"activity" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	GoalWeight *float64 `json:"goal_weight" validate:"omitempty,gt=0"`
	Locked     bool     `json:"locked"`
}

func (h *UserHandler) UpdateBodyMetrics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req bodyMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	metrics := &models.BodyMetrics{
		Height:     req.Height,
		Weight:     req.Weight,
		Age:        req.Age,
		Gender:     req.Gender,
		Activity:   req.Activity,
		GoalWeight: req.GoalWeight,
		Locked:     req.Locked,
	}

	if err := h.userService.UpdateBodyMetrics(c.Request.Context(), userID, metrics); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Body metrics updated", metrics)
}

// ListUsers returns all accounts with pagination (admin).
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users", users, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

// SetFrozen freezes or unfreezes an account (admin). Frozen users keep
// their data but cannot log in.
func (h *UserHandler) SetFrozen(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	var req struct {
		Frozen bool `json:"frozen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.userService.SetFrozen(c.Request.Context(), userID, req.Frozen); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "User freeze status updated", gin.H{"frozen": req.Frozen})
}

// SetDeactivated deactivates or reactivates an account (admin).
func (h *UserHandler) SetDeactivated(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	var req struct {
		Deactivated bool `json:"deactivated"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.userService.SetDeactivated(c.Request.Context(), userID, req.Deactivated); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "User deactivation status updated", gin.H{"deactivated": req.Deactivated})
}

package handlers

import (
	"macrobox/internal/models"
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/internal/validators"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealHandler struct {
	mealService *services.MealService
	logger      *logger.Logger
}

func NewMealHandler(mealService *services.MealService, log *logger.Logger) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		logger:      log,
	}
}

type mealRequest struct {
	Title         string  `json:"title" validate:"required,min=2,max=200"`
	Description   string  `json:"description" validate:"max=2000"`
	ImageURL      string  `json:"image_url" validate:"required,url"`
	Protein       float64 `json:"protein" validate:"min=0"`
	Calories      float64 `json:"calories" validate:"min=0"`
	Price         int64   `json:"price" validate:"required,min=1"`
	IsFeatured    bool    `json:"is_featured"`
	FeaturedOrder int     `json:"featured_order" validate:"min=0"`
}

// List returns the catalog with pagination.
func (h *MealHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	meals, total, err := h.mealService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Meals", meals, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

// Featured returns the curated carousel, ordered.
func (h *MealHandler) Featured(c *gin.Context) {
	meals, err := h.mealService.ListFeatured(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Featured meals", meals)
}

func (h *MealHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	meal, err := h.mealService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Meal", meal)
}

// Create adds a meal to the catalog (admin).
func (h *MealHandler) Create(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	meal := &models.Meal{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Protein:       req.Protein,
		Calories:      req.Calories,
		Price:         req.Price,
		IsFeatured:    req.IsFeatured,
		FeaturedOrder: req.FeaturedOrder,
	}

	if err := h.mealService.Create(c.Request.Context(), meal); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Meal created", meal)
}

// Update rewrites a catalog entry (admin).
func (h *MealHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationResponse(c, errs)
		return
	}

	existing, err := h.mealService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.ImageURL = req.ImageURL
	existing.Protein = req.Protein
	existing.Calories = req.Calories
	existing.Price = req.Price
	existing.IsFeatured = req.IsFeatured
	existing.FeaturedOrder = req.FeaturedOrder

	if err := h.mealService.Update(c.Request.Context(), existing); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Meal updated", existing)
}

// Feature toggles a meal's featured flag and carousel position (admin).
func (h *MealHandler) Feature(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	var req struct {
		IsFeatured    bool `json:"is_featured"`
		FeaturedOrder int  `json:"featured_order" validate:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	meal, err := h.mealService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	meal.IsFeatured = req.IsFeatured
	meal.FeaturedOrder = req.FeaturedOrder

	if err := h.mealService.Update(c.Request.Context(), meal); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Meal feature status updated", meal)
}

// Delete removes a catalog entry (admin).
func (h *MealHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid meal ID")
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), id); err != nil {
		utils.NotFoundResponse(c, "meal")
		return
	}

	utils.SuccessResponse(c, "Meal deleted", nil)
}

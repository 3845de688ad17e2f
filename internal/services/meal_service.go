package services

import (
	"context"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealService exposes the meal catalog.
type MealService struct {
	mealRepo interfaces.MealRepository
}

func NewMealService(mealRepo interfaces.MealRepository) *MealService {
	return &MealService{mealRepo: mealRepo}
}

func (s *MealService) Create(ctx context.Context, meal *models.Meal) error {
	return s.mealRepo.Create(ctx, meal)
}

func (s *MealService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMealNotFound
	}
	return meal, nil
}

func (s *MealService) Update(ctx context.Context, meal *models.Meal) error {
	return s.mealRepo.Update(ctx, meal)
}

func (s *MealService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.mealRepo.Delete(ctx, id)
}

func (s *MealService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Meal, int64, error) {
	return s.mealRepo.List(ctx, params)
}

func (s *MealService) ListFeatured(ctx context.Context) ([]*models.Meal, error) {
	return s.mealRepo.ListFeatured(ctx)
}

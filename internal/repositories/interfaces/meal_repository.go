package interfaces

import (
	"context"

	"macrobox/internal/models"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Meal, int64, error)
	ListFeatured(ctx context.Context) ([]*models.Meal, error)
}

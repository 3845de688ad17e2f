package interfaces

import (
	"context"

	"macrobox/internal/models"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.Order, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error)
}

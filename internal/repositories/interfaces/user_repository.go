package interfaces

import (
	"context"

	"macrobox/internal/models"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)

	AddFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error

	SetFrozen(ctx context.Context, id primitive.ObjectID, frozen bool) error
	SetDeactivated(ctx context.Context, id primitive.ObjectID, deactivated bool) error
}

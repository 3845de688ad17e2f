package services

import (
	"context"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService covers profile data: favorites, day plans and body
// metrics, plus the admin account controls.
type UserService struct {
	userRepo interfaces.UserRepository
	mealRepo interfaces.MealRepository
}

func NewUserService(userRepo interfaces.UserRepository, mealRepo interfaces.MealRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		mealRepo: mealRepo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if name != "" {
		user.Name = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AddFavorite records a meal on the user's favorites list after
// confirming it exists.
func (s *UserService) AddFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error {
	if _, err := s.mealRepo.GetByID(ctx, mealID); err != nil {
		return ErrMealNotFound
	}
	return s.userRepo.AddFavorite(ctx, userID, mealID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error {
	return s.userRepo.RemoveFavorite(ctx, userID, mealID)
}

// ListFavorites resolves the user's favorite meal ids into catalog
// entries, dropping meals that no longer exist.
func (s *UserService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Meal, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if len(user.Favorites) == 0 {
		return []*models.Meal{}, nil
	}

	return s.mealRepo.GetByIDs(ctx, user.Favorites)
}

// SetDayPlan replaces the plan for the given calendar day.
func (s *UserService) SetDayPlan(ctx context.Context, userID primitive.ObjectID, plan models.DayPlan) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	day := plan.Date.Truncate(24 * time.Hour)
	plan.Date = day

	replaced := false
	for i, p := range user.DayPlans {
		if p.Date.Truncate(24 * time.Hour).Equal(day) {
			user.DayPlans[i] = plan
			replaced = true
			break
		}
	}
	if !replaced {
		user.DayPlans = append(user.DayPlans, plan)
	}

	return s.userRepo.Update(ctx, user)
}

func (s *UserService) GetDayPlans(ctx context.Context, userID primitive.ObjectID) ([]models.DayPlan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user.DayPlans, nil
}

// UpdateBodyMetrics stores the user's metrics unless they locked them.
func (s *UserService) UpdateBodyMetrics(ctx context.Context, userID primitive.ObjectID, metrics *models.BodyMetrics) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if user.BodyMetrics != nil && user.BodyMetrics.Locked {
		metrics.Locked = true
	}
	user.BodyMetrics = metrics

	return s.userRepo.Update(ctx, user)
}

func (s *UserService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *UserService) SetFrozen(ctx context.Context, userID primitive.ObjectID, frozen bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetFrozen(ctx, userID, frozen)
}

func (s *UserService) SetDeactivated(ctx context.Context, userID primitive.ObjectID, deactivated bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetDeactivated(ctx, userID, deactivated)
}

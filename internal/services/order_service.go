package services

import (
	"context"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService exposes order history reads; mutation happens only
// through the checkout flow.
type OrderService struct {
	orderRepo interfaces.OrderRepository
}

func NewOrderService(orderRepo interfaces.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListMine returns the caller's most recent orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, utils.MaxOrderHistoryLimit)
}

// Get returns an order visible to the caller: the owner or an admin.
func (s *OrderService) Get(ctx context.Context, orderID, requesterID primitive.ObjectID, requesterRole string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if order.UserID != requesterID && requesterRole != string(models.UserRoleAdmin) {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// ListAll is the admin view over every order.
func (s *OrderService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

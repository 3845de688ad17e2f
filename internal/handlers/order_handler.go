package handlers

import (
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	orderService *services.OrderService
	logger       *logger.Logger
}

func NewOrderHandler(orderService *services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       log,
	}
}

// ListMine returns the caller's order history, newest first.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Orders", orders)
}

// Get returns one order, visible to its owner or an admin.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), orderID, userID, currentRole(c))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Order", order)
}

// ListAll returns every order with pagination (admin).
func (h *OrderHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListAll(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Orders", orders, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

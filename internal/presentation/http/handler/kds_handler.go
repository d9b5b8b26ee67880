package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/request"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/response"
)

// KdsHandler handles kitchen display HTTP requests
type KdsHandler struct {
	kdsService *service.KdsService
}

// NewKdsHandler creates a new KDS handler
func NewKdsHandler(kdsService *service.KdsService) *KdsHandler {
	return &KdsHandler{kdsService: kdsService}
}

// ListActive handles listing orders still in the kitchen queue
func (h *KdsHandler) ListActive(c *gin.Context) {
	orders, err := h.kdsService.ListActiveOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen orders retrieved successfully", orders)
}

// ListByDate handles listing all orders for a given day
func (h *KdsHandler) ListByDate(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	orders, err := h.kdsService.ListOrdersByDate(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen orders retrieved successfully", orders)
}

// UpdateItemStatus handles moving one kitchen item through the workflow
func (h *KdsHandler) UpdateItemStatus(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateKdsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.kdsService.UpdateItemStatus(c.Request.Context(), orderID, itemID, enum.KdsStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen item updated successfully", order)
}

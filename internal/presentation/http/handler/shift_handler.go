package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/request"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/response"
	"github.com/ardiwinata/cuepos/pkg/pagination"
)

// ShiftHandler handles cashier shift HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open handles opening a shift with a counted float
func (h *ShiftHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), *userID, req.StartCash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened successfully", shift)
}

// Current handles retrieving the caller's open shift with a live reconciliation
func (h *ShiftHandler) Current(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.shiftService.GetCurrentShift(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Current shift retrieved successfully", summary)
}

// RecordMovement handles a drawer cash in/out entry
func (h *ShiftHandler) RecordMovement(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	movement, err := h.shiftService.RecordCashMovement(c.Request.Context(), *userID,
		enum.CashMovementType(req.Type), req.Amount, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash movement recorded successfully", movement)
}

// Close handles closing the caller's open shift
func (h *ShiftHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.shiftService.CloseShift(c.Request.Context(), *userID, req.EndCash, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", summary)
}

// Get handles retrieving a single shift with its reconciliation
func (h *ShiftHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	summary, err := h.shiftService.GetShift(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", summary)
}

// List handles listing shifts
func (h *ShiftHandler) List(c *gin.Context) {
	var filter struct {
		UserID  string `form:"user_id"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	_ = c.ShouldBindQuery(&filter)

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	params.Validate()

	shifts, total, err := h.shiftService.ListShifts(c.Request.Context(), params, parseOptionalUUID(filter.UserID))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(shifts,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Shifts retrieved successfully", result)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/request"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/response"
	"github.com/ardiwinata/cuepos/pkg/pagination"
)

// SessionHandler handles table session HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start handles opening a session on a free table
func (h *SessionHandler) Start(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), *userID, req.TableID, req.PackageID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session started successfully", session)
}

// Pause handles pausing a running session
func (h *SessionHandler) Pause(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.PauseSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session paused successfully", session)
}

// Resume handles resuming a paused session
func (h *SessionHandler) Resume(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.ResumeSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session resumed successfully", session)
}

// AttachCharge handles adding an F&B item to a live session
func (h *SessionHandler) AttachCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AttachChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.AttachCharge(c.Request.Context(), id, req.ProductID, req.Qty)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Charge attached successfully", session)
}

// Stop handles closing a session and freezing its bill
func (h *SessionHandler) Stop(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	// Body is optional; payment may be settled later through the POS.
	var req request.StopSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	var payment *enum.PaymentMethod
	if req.Payment != nil {
		method := enum.PaymentMethod(*req.Payment)
		if !method.IsValid() {
			response.BadRequest(c, "Invalid payment method")
			return
		}
		payment = &method
	}

	session, err := h.sessionService.StopSession(c.Request.Context(), *userID, id, payment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session stopped successfully", session)
}

// Get handles retrieving a single session with its current bill
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// Live handles listing the recalculated bills of all live sessions
func (h *SessionHandler) Live(c *gin.Context) {
	bills := h.sessionService.LiveBills(c.Request.Context())
	response.OK(c, "Live sessions retrieved successfully", bills)
}

// History handles listing ended sessions
func (h *SessionHandler) History(c *gin.Context) {
	var filter request.SessionHistoryFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SessionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		TableID:  parseOptionalUUID(filter.TableID),
		DateFrom: parseOptionalDate(filter.DateFrom),
		DateTo:   parseOptionalDate(filter.DateTo),
	}
	params.Pagination.Validate()

	sessions, total, err := h.sessionService.ListHistory(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sessions,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Session history retrieved successfully", result)
}

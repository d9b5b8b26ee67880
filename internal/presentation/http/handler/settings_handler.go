package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/request"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/response"
	"github.com/ardiwinata/cuepos/pkg/pagination"
)

// SettingsHandler handles outlet settings and audit log HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetOutlet handles retrieving the outlet profile
func (h *SettingsHandler) GetOutlet(c *gin.Context) {
	outlet, err := h.settingsService.GetOutlet(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outlet retrieved successfully", outlet)
}

// UpdateOutlet handles updating the outlet profile and receipt settings
func (h *SettingsHandler) UpdateOutlet(c *gin.Context) {
	var req request.UpdateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	outlet, err := h.settingsService.UpdateOutlet(c.Request.Context(), &service.UpdateOutletInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		TaxPercent:    req.TaxPercent,
		ReceiptHeader: req.ReceiptHeader,
		ReceiptFooter: req.ReceiptFooter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outlet updated successfully", outlet)
}

// ListAuditLogs handles listing the audit trail
func (h *SettingsHandler) ListAuditLogs(c *gin.Context) {
	var filter struct {
		UserID  string `form:"user_id"`
		Action  string `form:"action"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	_ = c.ShouldBindQuery(&filter)

	params := &repository.AuditLogFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		UserID: parseOptionalUUID(filter.UserID),
		Action: filter.Action,
	}
	params.Pagination.Validate()

	logs, total, err := h.settingsService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(logs,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Audit logs retrieved successfully", result)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/request"
	"github.com/ardiwinata/cuepos/internal/presentation/http/dto/response"
	"github.com/ardiwinata/cuepos/pkg/pagination"
)

// PricelistHandler handles pricing package HTTP requests
type PricelistHandler struct {
	pricelistService *service.PricelistService
}

// NewPricelistHandler creates a new pricelist handler
func NewPricelistHandler(pricelistService *service.PricelistService) *PricelistHandler {
	return &PricelistHandler{pricelistService: pricelistService}
}

// List handles listing pricing packages
func (h *PricelistHandler) List(c *gin.Context) {
	var filter struct {
		TableType  string `form:"table_type"`
		ActiveOnly bool   `form:"active_only"`
		Page       int    `form:"page"`
		PerPage    int    `form:"per_page"`
	}
	_ = c.ShouldBindQuery(&filter)

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	params.Validate()

	packages, total, err := h.pricelistService.ListPackages(c.Request.Context(), params, filter.TableType, filter.ActiveOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(packages,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Pricelist packages retrieved successfully", result)
}

// Get handles retrieving a single pricing package
func (h *PricelistHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid package ID")
		return
	}

	pkg, err := h.pricelistService.GetPackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricelist package retrieved successfully", pkg)
}

func pricelistInput(c *gin.Context, req *request.PricelistRequest) *service.PricelistInput {
	userID := GetUserID(c)
	input := &service.PricelistInput{
		Name:           req.Name,
		TableType:      enum.TableType(req.TableType),
		Unit:           enum.PricingUnit(req.Unit),
		PricePerUnit:   req.PricePerUnit,
		Rounding:       enum.RoundingMethod(req.Rounding),
		GraceMinutes:   req.GraceMinutes,
		MinBillMinutes: req.MinBillMinutes,
		IsActive:       req.IsActive,
	}
	if userID != nil {
		input.ActorID = *userID
	}
	return input
}

// Create handles pricing package creation
func (h *PricelistHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PricelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pkg, err := h.pricelistService.CreatePackage(c.Request.Context(), pricelistInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pricelist package created successfully", pkg)
}

// Update handles pricing package updates
func (h *PricelistHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid package ID")
		return
	}

	var req request.PricelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pkg, err := h.pricelistService.UpdatePackage(c.Request.Context(), id, pricelistInput(c, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricelist package updated successfully", pkg)
}

// Delete handles pricing package deletion
func (h *PricelistHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid package ID")
		return
	}

	if err := h.pricelistService.DeletePackage(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricelist package deleted successfully", nil)
}

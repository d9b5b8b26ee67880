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

// PurchaseHandler handles supplier and stock purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// ListSuppliers handles listing suppliers
func (h *PurchaseHandler) ListSuppliers(c *gin.Context) {
	params, search := bindListParams(c)

	suppliers, total, err := h.purchaseService.ListSuppliers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(suppliers,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// CreateSupplier handles supplier creation
func (h *PurchaseHandler) CreateSupplier(c *gin.Context) {
	var req request.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.purchaseService.CreateSupplier(c.Request.Context(), &service.SupplierInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// UpdateSupplier handles supplier updates
func (h *PurchaseHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.purchaseService.UpdateSupplier(c.Request.Context(), id, &service.SupplierInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// DeleteSupplier handles supplier deletion
func (h *PurchaseHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.purchaseService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted successfully", nil)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter struct {
		Search     string `form:"search"`
		SupplierID string `form:"supplier_id"`
		Status     string `form:"status"`
		DateFrom   string `form:"date_from"`
		DateTo     string `form:"date_to"`
		Page       int    `form:"page"`
		PerPage    int    `form:"per_page"`
	}
	_ = c.ShouldBindQuery(&filter)

	params := &repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		SupplierID: parseOptionalUUID(filter.SupplierID),
		DateFrom:   parseOptionalDate(filter.DateFrom),
		DateTo:     parseOptionalDate(filter.DateTo),
	}
	if filter.Status != "" {
		status := enum.PurchaseStatus(filter.Status)
		params.Status = &status
	}
	params.Pagination.Validate()

	purchases, total, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(purchases,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Get handles retrieving a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Create handles recording a draft purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Cost:      item.Cost,
		})
	}

	input := &service.CreatePurchaseInput{
		SupplierID: req.SupplierID,
		Items:      items,
	}
	if req.PurchaseDate != nil {
		if date := parseOptionalDate(*req.PurchaseDate); date != nil {
			input.PurchaseDate = date
		}
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Receive handles marking a draft purchase as received and restocking
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.ReceivePurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase received successfully", purchase)
}

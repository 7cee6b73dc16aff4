package handler

import (
	"net/http"

	"pricing-backend/internal/middleware"
	"pricing-backend/internal/model"
	"pricing-backend/internal/service"
	"pricing-backend/pkg/pagination"
	"pricing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VatHandler struct {
	vatService service.VatCategoryService
}

func NewVatHandler(vatService service.VatCategoryService) *VatHandler {
	return &VatHandler{vatService: vatService}
}

func (h *VatHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/vat-categories")
	categories.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		categories.GET("", h.ListCategories)
	}

	admin := router.Group("/api/vat-categories")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		admin.POST("", h.CreateCategory)
		admin.PUT("/:id", h.UpdateCategory)
		admin.DELETE("/:id", h.DeleteCategory)
	}
}

// ListCategories returns all VAT categories with their default rates
func (h *VatHandler) ListCategories(c *gin.Context) {
	params := pagination.Parse(c)

	categories, total, err := h.vatService.ListCategories(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, categories, params.Page, params.Limit, total))
}

// CreateCategory creates a new VAT category
func (h *VatHandler) CreateCategory(c *gin.Context) {
	var req service.CreateVatCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.vatService.CreateCategory(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateCategory updates a VAT category's name or default rate
func (h *VatHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateVatCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.vatService.UpdateCategory(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteCategory removes a VAT category
func (h *VatHandler) DeleteCategory(c *gin.Context) {
	if err := h.vatService.DeleteCategory(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

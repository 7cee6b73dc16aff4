package handler

import (
	"net/http"

	"pricing-backend/internal/middleware"
	"pricing-backend/internal/model"
	"pricing-backend/internal/service"
	"pricing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PriceTypeHandler struct {
	priceTypeService service.PriceTypeService
}

func NewPriceTypeHandler(priceTypeService service.PriceTypeService) *PriceTypeHandler {
	return &PriceTypeHandler{priceTypeService: priceTypeService}
}

func (h *PriceTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	priceTypes := router.Group("/api/price-types")
	priceTypes.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		priceTypes.GET("", h.ListPriceTypes)
	}

	admin := router.Group("/api/price-types")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		admin.POST("", h.CreatePriceType)
		admin.DELETE("/:id", h.DeletePriceType)
	}
}

// ListPriceTypes returns all price type labels
func (h *PriceTypeHandler) ListPriceTypes(c *gin.Context) {
	priceTypes, err := h.priceTypeService.ListPriceTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, priceTypes))
}

// CreatePriceType creates a new price type
func (h *PriceTypeHandler) CreatePriceType(c *gin.Context) {
	var req service.CreatePriceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	priceType, err := h.priceTypeService.CreatePriceType(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, priceType))
}

// DeletePriceType removes a price type
func (h *PriceTypeHandler) DeletePriceType(c *gin.Context) {
	if err := h.priceTypeService.DeletePriceType(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

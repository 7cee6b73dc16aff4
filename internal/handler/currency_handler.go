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

type CurrencyHandler struct {
	currencyService service.CurrencyService
}

func NewCurrencyHandler(currencyService service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

func (h *CurrencyHandler) RegisterRoutes(router *gin.RouterGroup) {
	currencies := router.Group("/api/currencies")
	currencies.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		currencies.GET("", h.ListCurrencies)
		currencies.GET("/:code", h.GetCurrency)
	}

	admin := router.Group("/api/currencies")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		admin.POST("", h.CreateCurrency)
		admin.PUT("/:code", h.UpdateCurrency)
		admin.DELETE("/:code", h.DeleteCurrency)
	}
}

// ListCurrencies returns all currencies with rounding metadata
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	params := pagination.Parse(c)

	currencies, total, err := h.currencyService.ListCurrencies(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, currencies, params.Page, params.Limit, total))
}

// GetCurrency returns a single currency by code
func (h *CurrencyHandler) GetCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrency(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, currency))
}

// CreateCurrency registers a new currency
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	var req service.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, currency))
}

// UpdateCurrency updates an existing currency's metadata
func (h *CurrencyHandler) UpdateCurrency(c *gin.Context) {
	var req service.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), c.Param("code"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, currency))
}

// DeleteCurrency removes a currency
func (h *CurrencyHandler) DeleteCurrency(c *gin.Context) {
	if err := h.currencyService.DeleteCurrency(c.Request.Context(), c.Param("code"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

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

type ExchangeHandler struct {
	rateService service.ExchangeRateService
}

func NewExchangeHandler(rateService service.ExchangeRateService) *ExchangeHandler {
	return &ExchangeHandler{rateService: rateService}
}

func (h *ExchangeHandler) RegisterRoutes(router *gin.RouterGroup) {
	rates := router.Group("/api/exchange-rates")
	rates.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		rates.GET("", h.ListRates)
	}

	admin := router.Group("/api/exchange-rates")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		admin.PUT("", h.UpsertRate)
		admin.DELETE("/:id", h.DeleteRate)
	}
}

// ListRates returns the published exchange rates
func (h *ExchangeHandler) ListRates(c *gin.Context) {
	params := pagination.Parse(c)

	rates, total, err := h.rateService.ListRates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, rates, params.Page, params.Limit, total))
}

// UpsertRate publishes or replaces the rate for a currency pair
func (h *ExchangeHandler) UpsertRate(c *gin.Context) {
	var req service.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rate, err := h.rateService.UpsertRate(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// DeleteRate unpublishes an exchange rate
func (h *ExchangeHandler) DeleteRate(c *gin.Context) {
	if err := h.rateService.DeleteRate(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

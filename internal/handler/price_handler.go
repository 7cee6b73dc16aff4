package handler

import (
	"errors"
	"net/http"

	"pricing-backend/internal/middleware"
	"pricing-backend/internal/model"
	"pricing-backend/internal/price"
	"pricing-backend/internal/service"
	"pricing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	priceService service.PriceService
}

func NewPriceHandler(priceService service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

func (h *PriceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prices := router.Group("/api/prices")
	prices.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		prices.POST("/preview", h.Preview)
		prices.POST("/exchange", h.Exchange)
	}
}

// Preview derives net/gross/VAT from raw values and returns the formatted
// render fragment. Supply "original" to preview a modified price with a
// struck-through original.
func (h *PriceHandler) Preview(c *gin.Context) {
	var req service.PreviewPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.priceService.Preview(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForPriceError(err), response.Error(statusForPriceError(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Exchange converts raw price values into a target currency. When no rate
// is published the response carries rate_found=false rather than an error.
func (h *PriceHandler) Exchange(c *gin.Context) {
	var req service.ExchangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.priceService.Exchange(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForPriceError(err), response.Error(statusForPriceError(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// statusForPriceError maps engine caller-contract violations to 400 and
// everything else (infrastructure failures) to 500.
func statusForPriceError(err error) int {
	if errors.Is(err, price.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

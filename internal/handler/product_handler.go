package handler

import (
	"net/http"
	"strconv"

	"pricing-backend/internal/middleware"
	"pricing-backend/internal/model"
	"pricing-backend/internal/service"
	"pricing-backend/pkg/pagination"
	"pricing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
	priceService   service.PriceService
}

func NewProductHandler(productService service.ProductService, priceService service.PriceService) *ProductHandler {
	return &ProductHandler{productService: productService, priceService: priceService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	products.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleViewer))
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/price", h.GetProductPrice)
	}

	admin := router.Group("/api/products")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		admin.POST("", h.CreateProduct)
		admin.PUT("/:id", h.UpdateProduct)
		admin.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts returns the catalog with stored raw price fields
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, products, params.Page, params.Limit, total))
}

// GetProduct returns a single catalog record
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// GetProductPrice derives and formats the product's price on demand.
// Query params: mode (net|gross|full|vat_value), currency (display currency),
// label (bool), vat_info (bool).
func (h *ProductHandler) GetProductPrice(c *gin.Context) {
	label, _ := strconv.ParseBool(c.DefaultQuery("label", "false"))
	vatInfo, _ := strconv.ParseBool(c.DefaultQuery("vat_info", "false"))

	opts := service.ProductPriceOptions{
		Mode:            c.DefaultQuery("mode", "gross"),
		DisplayCurrency: c.Query("currency"),
		Label:           label,
		VatInfo:         vatInfo,
	}

	result, err := h.priceService.ProductPrice(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CreateProduct adds a catalog record
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// UpdateProduct replaces a catalog record's name and raw price fields
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct removes a catalog record
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricing-backend/internal/model"
	"pricing-backend/internal/price"
	"pricing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type ProductPriceFields struct {
	CalculationBase string `json:"calculation_base" binding:"required,oneof=net gross"`
	Currency        string `json:"currency" binding:"required,len=3"`
	Net             string `json:"net"`   // Decimal string
	Gross           string `json:"gross"` // Decimal string
	VatCategory     string `json:"vat_category"`
	VatRate         string `json:"vat_rate"` // Decimal string; overrides the category default
	PriceType       string `json:"price_type"`
	ValidFrom       string `json:"valid_from"` // YYYY-MM-DD
	ValidTo         string `json:"valid_to"`   // YYYY-MM-DD
}

type CreateProductRequest struct {
	SKU   string             `json:"sku" binding:"required"`
	Name  string             `json:"name" binding:"required"`
	Price ProductPriceFields `json:"price" binding:"required"`
}

type UpdateProductRequest struct {
	Name  string             `json:"name" binding:"required"`
	Price ProductPriceFields `json:"price" binding:"required"`
}

type ProductResponse struct {
	ID              string  `json:"id"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	CalculationBase string  `json:"calculation_base"`
	Currency        string  `json:"currency"`
	Net             string  `json:"net"`
	Gross           string  `json:"gross"`
	VatCategory     *string `json:"vat_category"`
	VatRate         *string `json:"vat_rate"`
	PriceType       *string `json:"price_type"`
	ValidFrom       *string `json:"valid_from"`
	ValidTo         *string `json:"valid_to"`
	CreatedAt       string  `json:"created_at"`
}

// --- Interface ---

type ProductService interface {
	ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	CreateProduct(ctx context.Context, req CreateProductRequest, userID string) (ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest, userID string) (ProductResponse, error)
	DeleteProduct(ctx context.Context, id string, userID string) error
}

type productService struct {
	repo  repository.ProductRepository
	audit AuditService
}

func NewProductService(repo repository.ProductRepository, audit AuditService) ProductService {
	return &productService{repo: repo, audit: audit}
}

// --- Implementation ---

func (s *productService) ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error) {
	products, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}

	return res, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toProductResponse(*product)
	return &resp, nil
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest, userID string) (ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return ProductResponse{}, fmt.Errorf("product with SKU '%s' already exists", req.SKU)
	}

	product := model.Product{
		SKU:  req.SKU,
		Name: req.Name,
	}
	if err := applyPriceFields(&product, req.Price); err != nil {
		return ProductResponse{}, err
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionCreateProduct, product.ID.String(), req.SKU, req)

	return toProductResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest, userID string) (ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	product.Name = req.Name
	if err := applyPriceFields(product, req.Price); err != nil {
		return ProductResponse{}, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionUpdateProduct, product.ID.String(), product.SKU, req)

	return toProductResponse(*product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, userID string) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionDeleteProduct, id, product.SKU, map[string]string{"deleted_id": id})

	return nil
}

// --- Helpers ---

func (s *productService) findProduct(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return product, nil
}

// applyPriceFields parses and stores the raw price fields. Only the raw
// inputs are persisted; derived figures are recomputed by the price engine
// on every read.
func applyPriceFields(product *model.Product, fields ProductPriceFields) error {
	base := price.CalculationBase(fields.CalculationBase)
	if !base.Valid() {
		return fmt.Errorf("invalid calculation base '%s'", fields.CalculationBase)
	}

	net, err := parseOptionalAmount(fields.Net)
	if err != nil {
		return fmt.Errorf("invalid net value: %w", err)
	}
	gross, err := parseOptionalAmount(fields.Gross)
	if err != nil {
		return fmt.Errorf("invalid gross value: %w", err)
	}

	var vatRate *decimal.Decimal
	if fields.VatRate != "" {
		rate, err := parseVatRate(fields.VatRate)
		if err != nil {
			return err
		}
		vatRate = &rate
	}

	validFrom, err := parseOptionalDate(fields.ValidFrom)
	if err != nil {
		return fmt.Errorf("invalid valid_from date format (expected YYYY-MM-DD): %w", err)
	}
	validTo, err := parseOptionalDate(fields.ValidTo)
	if err != nil {
		return fmt.Errorf("invalid valid_to date format (expected YYYY-MM-DD): %w", err)
	}

	product.CalculationBase = string(base)
	product.CurrencyCode = normalizeCurrencyCode(fields.Currency)
	product.Net = net
	product.Gross = gross
	product.VatCategoryID = optionalString(fields.VatCategory)
	product.VatRate = vatRate
	product.PriceTypeID = optionalString(fields.PriceType)
	product.PriceValidFrom = validFrom
	product.PriceValidTo = validTo

	return nil
}

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toProductResponse(p model.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID.String(),
		SKU:             p.SKU,
		Name:            p.Name,
		CalculationBase: p.CalculationBase,
		Currency:        p.CurrencyCode,
		Net:             p.Net.StringFixed(2),
		Gross:           p.Gross.StringFixed(2),
		VatCategory:     p.VatCategoryID,
		PriceType:       p.PriceTypeID,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if p.VatRate != nil {
		s := p.VatRate.StringFixed(4)
		resp.VatRate = &s
	}
	if p.PriceValidFrom != nil {
		s := p.PriceValidFrom.Format("2006-01-02")
		resp.ValidFrom = &s
	}
	if p.PriceValidTo != nil {
		s := p.PriceValidTo.Format("2006-01-02")
		resp.ValidTo = &s
	}
	return resp
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pricing-backend/internal/model"
	"pricing-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVatCategoryRequest struct {
	ID   string `json:"id" binding:"required"` // slug, e.g. "standard"
	Name string `json:"name" binding:"required"`
	Rate string `json:"rate" binding:"required"` // Decimal string, e.g. "0.27"
}

type UpdateVatCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Rate string `json:"rate" binding:"required"`
}

type VatCategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rate      string `json:"rate"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type VatCategoryService interface {
	ListCategories(ctx context.Context, page, limit int) ([]VatCategoryResponse, int64, error)
	CreateCategory(ctx context.Context, req CreateVatCategoryRequest, userID string) (VatCategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req UpdateVatCategoryRequest, userID string) (VatCategoryResponse, error)
	DeleteCategory(ctx context.Context, id string, userID string) error
}

type vatCategoryService struct {
	repo  repository.VatCategoryRepository
	audit AuditService
}

func NewVatCategoryService(repo repository.VatCategoryRepository, audit AuditService) VatCategoryService {
	return &vatCategoryService{repo: repo, audit: audit}
}

// --- Implementation ---

func (s *vatCategoryService) ListCategories(ctx context.Context, page, limit int) ([]VatCategoryResponse, int64, error) {
	categories, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch VAT categories: %w", err)
	}

	res := make([]VatCategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, toVatCategoryResponse(c))
	}

	return res, total, nil
}

func (s *vatCategoryService) CreateCategory(ctx context.Context, req CreateVatCategoryRequest, userID string) (VatCategoryResponse, error) {
	rate, err := parseVatRate(req.Rate)
	if err != nil {
		return VatCategoryResponse{}, err
	}

	id := strings.ToLower(strings.TrimSpace(req.ID))
	if _, err := s.repo.FindByID(ctx, id); err == nil {
		return VatCategoryResponse{}, fmt.Errorf("VAT category '%s' already exists", id)
	}

	category := model.VatCategory{
		ID:   id,
		Name: req.Name,
		Rate: rate,
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return VatCategoryResponse{}, fmt.Errorf("failed to create VAT category: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionCreateVatCategory, id, req.Name, req)

	return toVatCategoryResponse(category), nil
}

func (s *vatCategoryService) UpdateCategory(ctx context.Context, id string, req UpdateVatCategoryRequest, userID string) (VatCategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VatCategoryResponse{}, fmt.Errorf("VAT category not found")
		}
		return VatCategoryResponse{}, fmt.Errorf("failed to fetch VAT category: %w", err)
	}

	rate, err := parseVatRate(req.Rate)
	if err != nil {
		return VatCategoryResponse{}, err
	}

	category.Name = req.Name
	category.Rate = rate

	if err := s.repo.Update(ctx, category); err != nil {
		return VatCategoryResponse{}, fmt.Errorf("failed to update VAT category: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionUpdateVatCategory, id, req.Name, req)

	return toVatCategoryResponse(*category), nil
}

func (s *vatCategoryService) DeleteCategory(ctx context.Context, id string, userID string) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("VAT category not found")
		}
		return fmt.Errorf("failed to fetch VAT category: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete VAT category: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionDeleteVatCategory, id, category.Name, map[string]string{"deleted_id": id})

	return nil
}

// --- Helpers ---

func parseVatRate(rateStr string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate value: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate must not be negative")
	}
	return rate, nil
}

func toVatCategoryResponse(c model.VatCategory) VatCategoryResponse {
	return VatCategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Rate:      c.Rate.StringFixed(4),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

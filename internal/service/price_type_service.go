package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pricing-backend/internal/model"
	"pricing-backend/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreatePriceTypeRequest struct {
	ID    string `json:"id" binding:"required"` // slug, e.g. "retail"
	Label string `json:"label" binding:"required"`
}

type PriceTypeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// --- Interface ---

type PriceTypeService interface {
	ListPriceTypes(ctx context.Context) ([]PriceTypeResponse, error)
	CreatePriceType(ctx context.Context, req CreatePriceTypeRequest, userID string) (PriceTypeResponse, error)
	DeletePriceType(ctx context.Context, id string, userID string) error
}

type priceTypeService struct {
	repo  repository.PriceTypeRepository
	audit AuditService
}

func NewPriceTypeService(repo repository.PriceTypeRepository, audit AuditService) PriceTypeService {
	return &priceTypeService{repo: repo, audit: audit}
}

// --- Implementation ---

func (s *priceTypeService) ListPriceTypes(ctx context.Context) ([]PriceTypeResponse, error) {
	priceTypes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price types: %w", err)
	}

	res := make([]PriceTypeResponse, 0, len(priceTypes))
	for _, t := range priceTypes {
		res = append(res, PriceTypeResponse{ID: t.ID, Label: t.Label})
	}

	return res, nil
}

func (s *priceTypeService) CreatePriceType(ctx context.Context, req CreatePriceTypeRequest, userID string) (PriceTypeResponse, error) {
	id := strings.ToLower(strings.TrimSpace(req.ID))
	if _, err := s.repo.FindByID(ctx, id); err == nil {
		return PriceTypeResponse{}, fmt.Errorf("price type '%s' already exists", id)
	}

	priceType := model.PriceType{ID: id, Label: req.Label}
	if err := s.repo.Create(ctx, &priceType); err != nil {
		return PriceTypeResponse{}, fmt.Errorf("failed to create price type: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionCreatePriceType, id, req.Label, req)

	return PriceTypeResponse{ID: priceType.ID, Label: priceType.Label}, nil
}

func (s *priceTypeService) DeletePriceType(ctx context.Context, id string, userID string) error {
	priceType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("price type not found")
		}
		return fmt.Errorf("failed to fetch price type: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete price type: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionDeletePriceType, id, priceType.Label, map[string]string{"deleted_id": id})

	return nil
}

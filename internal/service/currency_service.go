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

type CreateCurrencyRequest struct {
	Code         string `json:"code" binding:"required,len=3"`
	Name         string `json:"name" binding:"required"`
	Symbol       string `json:"symbol"`
	RoundingStep string `json:"rounding_step"` // Decimal string, e.g. "0.05"; defaults to "0.01"
	Decimals     *int32 `json:"decimals"`      // Defaults to 2
}

type UpdateCurrencyRequest struct {
	Name         string `json:"name" binding:"required"`
	Symbol       string `json:"symbol"`
	RoundingStep string `json:"rounding_step" binding:"required"`
	Decimals     *int32 `json:"decimals" binding:"required"`
}

type CurrencyResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	RoundingStep string `json:"rounding_step"`
	Decimals     int32  `json:"decimals"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type CurrencyService interface {
	ListCurrencies(ctx context.Context, page, limit int) ([]CurrencyResponse, int64, error)
	GetCurrency(ctx context.Context, code string) (*CurrencyResponse, error)
	CreateCurrency(ctx context.Context, req CreateCurrencyRequest, userID string) (CurrencyResponse, error)
	UpdateCurrency(ctx context.Context, code string, req UpdateCurrencyRequest, userID string) (CurrencyResponse, error)
	DeleteCurrency(ctx context.Context, code string, userID string) error
}

type currencyService struct {
	repo  repository.CurrencyRepository
	audit AuditService
}

func NewCurrencyService(repo repository.CurrencyRepository, audit AuditService) CurrencyService {
	return &currencyService{repo: repo, audit: audit}
}

// --- Implementation ---

func (s *currencyService) ListCurrencies(ctx context.Context, page, limit int) ([]CurrencyResponse, int64, error) {
	currencies, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch currencies: %w", err)
	}

	res := make([]CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		res = append(res, toCurrencyResponse(c))
	}

	return res, total, nil
}

func (s *currencyService) GetCurrency(ctx context.Context, code string) (*CurrencyResponse, error) {
	currency, err := s.repo.FindByCode(ctx, normalizeCurrencyCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("currency not found")
		}
		return nil, fmt.Errorf("failed to fetch currency: %w", err)
	}

	resp := toCurrencyResponse(*currency)
	return &resp, nil
}

func (s *currencyService) CreateCurrency(ctx context.Context, req CreateCurrencyRequest, userID string) (CurrencyResponse, error) {
	code := normalizeCurrencyCode(req.Code)

	step := decimal.New(1, -2) // 0.01
	if req.RoundingStep != "" {
		parsed, err := decimal.NewFromString(req.RoundingStep)
		if err != nil {
			return CurrencyResponse{}, fmt.Errorf("invalid rounding step: %w", err)
		}
		if !parsed.IsPositive() {
			return CurrencyResponse{}, fmt.Errorf("rounding step must be positive")
		}
		step = parsed
	}

	decimals := int32(2)
	if req.Decimals != nil {
		if *req.Decimals < 0 || *req.Decimals > 6 {
			return CurrencyResponse{}, fmt.Errorf("decimals must be between 0 and 6")
		}
		decimals = *req.Decimals
	}

	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return CurrencyResponse{}, fmt.Errorf("currency '%s' already exists", code)
	}

	currency := model.Currency{
		Code:         code,
		Name:         req.Name,
		Symbol:       req.Symbol,
		RoundingStep: step,
		Decimals:     decimals,
	}

	if err := s.repo.Create(ctx, &currency); err != nil {
		return CurrencyResponse{}, fmt.Errorf("failed to create currency: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionCreateCurrency, code, req.Name, req)

	return toCurrencyResponse(currency), nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, code string, req UpdateCurrencyRequest, userID string) (CurrencyResponse, error) {
	code = normalizeCurrencyCode(code)
	if code == model.NoCurrencyCode {
		return CurrencyResponse{}, fmt.Errorf("the placeholder currency cannot be modified")
	}

	currency, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CurrencyResponse{}, fmt.Errorf("currency not found")
		}
		return CurrencyResponse{}, fmt.Errorf("failed to fetch currency: %w", err)
	}

	step, err := decimal.NewFromString(req.RoundingStep)
	if err != nil {
		return CurrencyResponse{}, fmt.Errorf("invalid rounding step: %w", err)
	}
	if !step.IsPositive() {
		return CurrencyResponse{}, fmt.Errorf("rounding step must be positive")
	}
	if *req.Decimals < 0 || *req.Decimals > 6 {
		return CurrencyResponse{}, fmt.Errorf("decimals must be between 0 and 6")
	}

	currency.Name = req.Name
	currency.Symbol = req.Symbol
	currency.RoundingStep = step
	currency.Decimals = *req.Decimals

	if err := s.repo.Update(ctx, currency); err != nil {
		return CurrencyResponse{}, fmt.Errorf("failed to update currency: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionUpdateCurrency, code, req.Name, req)

	return toCurrencyResponse(*currency), nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, code string, userID string) error {
	code = normalizeCurrencyCode(code)
	if code == model.NoCurrencyCode {
		return fmt.Errorf("the placeholder currency cannot be deleted")
	}

	currency, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("currency not found")
		}
		return fmt.Errorf("failed to fetch currency: %w", err)
	}

	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionDeleteCurrency, code, currency.Name, map[string]string{"deleted_code": code})

	return nil
}

// --- Helpers ---

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toCurrencyResponse(c model.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:         c.Code,
		Name:         c.Name,
		Symbol:       c.Symbol,
		RoundingStep: c.RoundingStep.String(),
		Decimals:     c.Decimals,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

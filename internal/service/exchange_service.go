package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pricing-backend/internal/model"
	"pricing-backend/internal/repository"
	"pricing-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type UpsertExchangeRateRequest struct {
	FromCurrency string `json:"from_currency" binding:"required,len=3"`
	ToCurrency   string `json:"to_currency" binding:"required,len=3"`
	Rate         string `json:"rate" binding:"required"` // Decimal string, e.g. "0.9215"
}

type ExchangeRateResponse struct {
	ID           string `json:"id"`
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Rate         string `json:"rate"`
	UpdatedAt    string `json:"updated_at"`
}

// rateEvent is the payload broadcast to WebSocket clients when a rate
// changes, so they can drop cached conversions.
type rateEvent struct {
	Event        string `json:"event"`
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Rate         string `json:"rate,omitempty"`
}

// --- Interface ---

type ExchangeRateService interface {
	ListRates(ctx context.Context, page, limit int) ([]ExchangeRateResponse, int64, error)
	UpsertRate(ctx context.Context, req UpsertExchangeRateRequest, userID string) (ExchangeRateResponse, error)
	DeleteRate(ctx context.Context, id string, userID string) error
}

type exchangeRateService struct {
	repo       repository.ExchangeRateRepository
	currencies repository.CurrencyRepository
	audit      AuditService
	hub        *websocket.Hub
}

func NewExchangeRateService(repo repository.ExchangeRateRepository, currencies repository.CurrencyRepository, audit AuditService, hub *websocket.Hub) ExchangeRateService {
	return &exchangeRateService{repo: repo, currencies: currencies, audit: audit, hub: hub}
}

// --- Implementation ---

func (s *exchangeRateService) ListRates(ctx context.Context, page, limit int) ([]ExchangeRateResponse, int64, error) {
	rates, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	res := make([]ExchangeRateResponse, 0, len(rates))
	for _, r := range rates {
		res = append(res, toExchangeRateResponse(r))
	}

	return res, total, nil
}

func (s *exchangeRateService) UpsertRate(ctx context.Context, req UpsertExchangeRateRequest, userID string) (ExchangeRateResponse, error) {
	from := normalizeCurrencyCode(req.FromCurrency)
	to := normalizeCurrencyCode(req.ToCurrency)
	if from == to {
		return ExchangeRateResponse{}, fmt.Errorf("source and target currency must differ")
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return ExchangeRateResponse{}, fmt.Errorf("invalid rate value: %w", err)
	}
	if !rate.IsPositive() {
		return ExchangeRateResponse{}, fmt.Errorf("rate must be positive")
	}

	// Both sides must be known currencies; publishing a rate for an
	// unknown code would never be reachable by the engine.
	for _, code := range []string{from, to} {
		if _, err := s.currencies.FindByCode(ctx, code); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ExchangeRateResponse{}, fmt.Errorf("unknown currency '%s'", code)
			}
			return ExchangeRateResponse{}, fmt.Errorf("failed to verify currency: %w", err)
		}
	}

	record := model.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
	}

	if err := s.repo.Upsert(ctx, &record); err != nil {
		return ExchangeRateResponse{}, fmt.Errorf("failed to store exchange rate: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionUpsertExchangeRate, from+"/"+to, from+"→"+to+" "+rate.String(), req)
	s.broadcast(rateEvent{Event: "rate_updated", FromCurrency: from, ToCurrency: to, Rate: rate.String()})

	return toExchangeRateResponse(record), nil
}

func (s *exchangeRateService) DeleteRate(ctx context.Context, id string, userID string) error {
	rateID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid exchange rate id: %w", err)
	}

	record, err := s.repo.FindByID(ctx, rateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("exchange rate not found")
		}
		return fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	if err := s.repo.Delete(ctx, rateID); err != nil {
		return fmt.Errorf("failed to delete exchange rate: %w", err)
	}

	s.audit.Write(ctx, userID, model.ActionDeleteExchangeRate, id, record.FromCurrency+"→"+record.ToCurrency, map[string]string{"deleted_id": id})
	s.broadcast(rateEvent{Event: "rate_removed", FromCurrency: record.FromCurrency, ToCurrency: record.ToCurrency})

	return nil
}

// --- Helpers ---

func (s *exchangeRateService) broadcast(event rateEvent) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}

func toExchangeRateResponse(r model.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:           r.ID.String(),
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate.String(),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}

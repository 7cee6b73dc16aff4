package service

import (
	"context"
	"errors"

	"pricing-backend/internal/price"
	"pricing-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// gormStores adapts the gorm repositories to the price engine's collaborator
// interfaces. Record-not-found becomes (nil, nil): the engine treats unknown
// reference data as a recoverable gap, not a failure. Real database errors
// pass through.
type gormStores struct {
	currencies    repository.CurrencyRepository
	vatCategories repository.VatCategoryRepository
	priceTypes    repository.PriceTypeRepository
	rates         repository.ExchangeRateRepository
}

// NewPriceFactory wires a price factory over the database-backed lookups.
func NewPriceFactory(
	currencies repository.CurrencyRepository,
	vatCategories repository.VatCategoryRepository,
	priceTypes repository.PriceTypeRepository,
	rates repository.ExchangeRateRepository,
) *price.Factory {
	stores := &gormStores{
		currencies:    currencies,
		vatCategories: vatCategories,
		priceTypes:    priceTypes,
		rates:         rates,
	}
	return price.NewFactory(stores, stores, stores, stores)
}

func (s *gormStores) LoadCurrency(ctx context.Context, id string) (*price.Currency, error) {
	currency, err := s.currencies.FindByCode(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price.Currency{
		ID:           currency.Code,
		RoundingStep: currency.RoundingStep,
		Decimals:     currency.Decimals,
	}, nil
}

func (s *gormStores) LoadVatCategory(ctx context.Context, id string) (*price.VatCategory, error) {
	category, err := s.vatCategories.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price.VatCategory{ID: category.ID, Rate: category.Rate}, nil
}

func (s *gormStores) LoadPriceType(ctx context.Context, id string) (*price.PriceType, error) {
	priceType, err := s.priceTypes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price.PriceType{ID: priceType.ID, Label: priceType.Label}, nil
}

func (s *gormStores) LoadRate(ctx context.Context, from, to string) (*decimal.Decimal, error) {
	rate, err := s.rates.FindByPair(ctx, from, to)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate.Rate, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"pricing-backend/internal/model"
	"pricing-backend/internal/price"
	"pricing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type PriceValuesRequest struct {
	Currency     string `json:"currency" binding:"required"`
	Base         string `json:"base" binding:"required,oneof=net gross"`
	Net          string `json:"net"`      // Decimal string
	Gross        string `json:"gross"`    // Decimal string
	VatCategory  string `json:"vat_category"`
	VatRate      string `json:"vat_rate"` // Decimal string; overrides the category default
	PriceType    string `json:"price_type"`
	ReasonOfDiff string `json:"reason_of_diff"`
}

type FormatSettingsRequest struct {
	Label           bool   `json:"label"`
	VatInfo         bool   `json:"vat_info"`
	DisplayCurrency string `json:"display_currency"`
	WrapperElement  string `json:"wrapper_element"`
}

type PreviewPriceRequest struct {
	Values   PriceValuesRequest    `json:"values" binding:"required"`
	Original *PriceValuesRequest   `json:"original"` // builds a modified price when present
	Mode     string                `json:"mode" binding:"omitempty,oneof=net gross full vat_value"`
	Settings FormatSettingsRequest `json:"settings"`
}

type ExchangePriceRequest struct {
	Values         PriceValuesRequest `json:"values" binding:"required"`
	TargetCurrency string             `json:"target_currency" binding:"required,len=3"`
}

// PriceBreakdown is the derived view of a price: both sides plus VAT,
// every figure rounded to 2 decimals by the engine.
type PriceBreakdown struct {
	Currency         string `json:"currency"`
	CurrencyFellBack bool   `json:"currency_fell_back"`
	Base             string `json:"base"`
	Net              string `json:"net"`
	Gross            string `json:"gross"`
	VatValue         string `json:"vat_value"`
	VatRate          string `json:"vat_rate"`
	VatRatePercent   string `json:"vat_rate_percent"`
	VatCategory      string `json:"vat_category,omitempty"`
	PriceType        string `json:"price_type,omitempty"`
}

type PreviewPriceResponse struct {
	Price        PriceBreakdown  `json:"price"`
	Original     *PriceBreakdown `json:"original,omitempty"`
	ReasonOfDiff string          `json:"reason_of_diff,omitempty"`
	Fragment     *price.Fragment `json:"fragment"`
	Rendered     string          `json:"rendered"`
}

type ExchangePriceResponse struct {
	RateFound bool            `json:"rate_found"`
	Converted *PriceBreakdown `json:"converted,omitempty"`
}

type ProductPriceOptions struct {
	Mode            string
	DisplayCurrency string
	Label           bool
	VatInfo         bool
}

type ProductPriceResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Missing   bool            `json:"missing"`
	Price     *PriceBreakdown `json:"price,omitempty"`
	Fragment  *price.Fragment `json:"fragment"`
	Rendered  string          `json:"rendered"`
	ValidFrom *string         `json:"valid_from,omitempty"`
	ValidTo   *string         `json:"valid_to,omitempty"`
}

// --- Interface ---

// PriceService exposes the price engine over raw request values and stored
// catalog records.
type PriceService interface {
	Preview(ctx context.Context, req PreviewPriceRequest) (*PreviewPriceResponse, error)
	Exchange(ctx context.Context, req ExchangePriceRequest) (*ExchangePriceResponse, error)
	ProductPrice(ctx context.Context, productID string, opts ProductPriceOptions) (*ProductPriceResponse, error)
}

type priceService struct {
	factory   *price.Factory
	formatter *price.Formatter
	products  repository.ProductRepository
}

func NewPriceService(factory *price.Factory, formatter *price.Formatter, products repository.ProductRepository) PriceService {
	return &priceService{factory: factory, formatter: formatter, products: products}
}

// --- Implementation ---

func (s *priceService) Preview(ctx context.Context, req PreviewPriceRequest) (*PreviewPriceResponse, error) {
	values, err := parsePriceValues(req.Values)
	if err != nil {
		return nil, err
	}

	var built *price.Price
	var original *price.Price
	if req.Original != nil {
		originalValues, err := parsePriceValues(*req.Original)
		if err != nil {
			return nil, fmt.Errorf("original price: %w", err)
		}
		original, err = s.factory.NewPrice(ctx, originalValues)
		if err != nil {
			return nil, fmt.Errorf("original price: %w", err)
		}
		modified, err := s.factory.NewModifiedPrice(ctx, values, original)
		if err != nil {
			return nil, err
		}
		built = &modified.Price
	} else {
		built, err = s.factory.NewPrice(ctx, values)
		if err != nil {
			return nil, err
		}
	}

	mode := parseMode(req.Mode)
	settings := toFormatSettings(req.Settings)
	fragment := s.formatter.Build(ctx, built, mode, settings)

	resp := &PreviewPriceResponse{
		Price:        toBreakdown(built),
		ReasonOfDiff: built.ReasonOfDifference(),
		Fragment:     fragment,
		Rendered:     s.formatter.Format(ctx, built, mode, settings),
	}
	if original != nil {
		breakdown := toBreakdown(original)
		resp.Original = &breakdown
	}

	return resp, nil
}

func (s *priceService) Exchange(ctx context.Context, req ExchangePriceRequest) (*ExchangePriceResponse, error) {
	values, err := parsePriceValues(req.Values)
	if err != nil {
		return nil, err
	}

	built, err := s.factory.NewPrice(ctx, values)
	if err != nil {
		return nil, err
	}

	converted, err := built.Exchanged(ctx, normalizeCurrencyCode(req.TargetCurrency))
	if err != nil {
		return nil, err
	}
	if converted == nil {
		// No published rate for the pair — a normal outcome, not an error.
		return &ExchangePriceResponse{RateFound: false}, nil
	}

	breakdown := toBreakdown(converted)
	return &ExchangePriceResponse{RateFound: true, Converted: &breakdown}, nil
}

func (s *priceService) ProductPrice(ctx context.Context, productID string, opts ProductPriceOptions) (*ProductPriceResponse, error) {
	product, err := findProductForPricing(ctx, s.products, productID)
	if err != nil {
		return nil, err
	}

	mode := parseMode(opts.Mode)
	settings := price.Settings{
		Label:           opts.Label,
		VatInfo:         opts.VatInfo,
		DisplayCurrency: normalizeCurrencyCode(opts.DisplayCurrency),
	}

	// A record without a currency has no price configured — distinct from a
	// zero-priced product.
	if product.CurrencyCode == "" {
		missing := s.factory.MissingPrice()
		return &ProductPriceResponse{
			ProductID: product.ID.String(),
			SKU:       product.SKU,
			Missing:   true,
			Fragment:  s.formatter.Build(ctx, missing, mode, settings),
			Rendered:  s.formatter.Format(ctx, missing, mode, settings),
		}, nil
	}

	built, err := s.factory.NewPrice(ctx, productValues(product))
	if err != nil {
		return nil, err
	}

	breakdown := toBreakdown(built)
	resp := &ProductPriceResponse{
		ProductID: product.ID.String(),
		SKU:       product.SKU,
		Price:     &breakdown,
		Fragment:  s.formatter.Build(ctx, built, mode, settings),
		Rendered:  s.formatter.Format(ctx, built, mode, settings),
	}
	if product.PriceValidFrom != nil {
		v := product.PriceValidFrom.Format("2006-01-02")
		resp.ValidFrom = &v
	}
	if product.PriceValidTo != nil {
		v := product.PriceValidTo.Format("2006-01-02")
		resp.ValidTo = &v
	}

	return resp, nil
}

// --- Helpers ---

func parsePriceValues(req PriceValuesRequest) (price.Values, error) {
	net, err := parseOptionalAmount(req.Net)
	if err != nil {
		return price.Values{}, fmt.Errorf("%w: invalid net value: %v", price.ErrInvalidArgument, err)
	}
	gross, err := parseOptionalAmount(req.Gross)
	if err != nil {
		return price.Values{}, fmt.Errorf("%w: invalid gross value: %v", price.ErrInvalidArgument, err)
	}

	var vatRate *decimal.Decimal
	if req.VatRate != "" {
		rate, err := decimal.NewFromString(req.VatRate)
		if err != nil {
			return price.Values{}, fmt.Errorf("%w: invalid vat rate: %v", price.ErrInvalidArgument, err)
		}
		vatRate = &rate
	}

	return price.Values{
		Currency:     normalizeCurrencyCode(req.Currency),
		Base:         price.CalculationBase(req.Base),
		Net:          net,
		Gross:        gross,
		VatCategory:  req.VatCategory,
		VatRate:      vatRate,
		PriceType:    req.PriceType,
		ReasonOfDiff: req.ReasonOfDiff,
	}, nil
}

func productValues(p *model.Product) price.Values {
	return price.Values{
		Currency:    p.CurrencyCode,
		Base:        price.CalculationBase(p.CalculationBase),
		Net:         p.Net,
		Gross:       p.Gross,
		VatCategory: derefString(p.VatCategoryID),
		VatRate:     p.VatRate,
		PriceType:   derefString(p.PriceTypeID),
		ValidFrom:   p.PriceValidFrom,
		ValidTo:     p.PriceValidTo,
	}
}

func parseMode(mode string) price.Mode {
	switch mode {
	case "gross":
		return price.ModeGross
	case "full":
		return price.ModeFull
	case "vat_value":
		return price.ModeVatValue
	default:
		return price.ModeNet
	}
}

func toFormatSettings(req FormatSettingsRequest) price.Settings {
	return price.Settings{
		Label:           req.Label,
		VatInfo:         req.VatInfo,
		DisplayCurrency: normalizeCurrencyCode(req.DisplayCurrency),
		WrapperElement:  req.WrapperElement,
	}
}

func toBreakdown(p *price.Price) PriceBreakdown {
	return PriceBreakdown{
		Currency:         p.Currency().ID,
		CurrencyFellBack: p.CurrencyFellBack(),
		Base:             string(p.Base()),
		Net:              p.NetPrice().StringFixed(2),
		Gross:            p.GrossPrice().StringFixed(2),
		VatValue:         p.VatValue().StringFixed(2),
		VatRate:          p.VatRate().String(),
		VatRatePercent:   p.VatRatePercent().StringFixed(2),
		VatCategory:      p.VatCategory(),
		PriceType:        p.PriceTypeID(),
	}
}

func findProductForPricing(ctx context.Context, repo repository.ProductRepository, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return product, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

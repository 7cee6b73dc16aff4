package price

import (
	"context"

	"github.com/shopspring/decimal"
)

// NoCurrencyID is the placeholder substituted when a currency code cannot be
// resolved. Callers should prefer Price.CurrencyFellBack over comparing
// against this code.
const NoCurrencyID = "XXX"

// Currency carries the metadata the engine needs for rounding and display.
type Currency struct {
	ID           string          `json:"id"`
	RoundingStep decimal.Decimal `json:"rounding_step"`
	Decimals     int32           `json:"decimals"`
}

// NoCurrency returns the placeholder currency used when resolution fails.
func NoCurrency() Currency {
	return Currency{
		ID:           NoCurrencyID,
		RoundingStep: decimal.New(1, -2), // 0.01
		Decimals:     2,
	}
}

// VatCategory is a named tax classification with a default fractional rate.
type VatCategory struct {
	ID   string          `json:"id"`
	Rate decimal.Decimal `json:"rate"`
}

// PriceType is a descriptive price classification (retail, wholesale, ...).
// It never affects derivation.
type PriceType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CurrencyStore looks up currency metadata. A (nil, nil) return means the
// code is unknown — not an error; the engine falls back to NoCurrency.
type CurrencyStore interface {
	LoadCurrency(ctx context.Context, id string) (*Currency, error)
}

// VatCategoryStore looks up VAT categories. (nil, nil) means unknown.
type VatCategoryStore interface {
	LoadVatCategory(ctx context.Context, id string) (*VatCategory, error)
}

// PriceTypeStore looks up price types. (nil, nil) means unknown.
type PriceTypeStore interface {
	LoadPriceType(ctx context.Context, id string) (*PriceType, error)
}

// RateProvider looks up a published exchange rate from one currency to
// another. (nil, nil) means no rate is published for the pair — a normal
// outcome callers must handle, not an error.
type RateProvider interface {
	LoadRate(ctx context.Context, from, to string) (*decimal.Decimal, error)
}

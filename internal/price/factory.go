package price

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Factory is the sole construction point for prices. It wires the lookup
// collaborators once so every price built through it resolves currencies,
// VAT categories and rates the same way.
type Factory struct {
	currencies    CurrencyStore
	vatCategories VatCategoryStore
	priceTypes    PriceTypeStore
	rates         RateProvider
}

// NewFactory returns a factory over the given lookup collaborators.
func NewFactory(currencies CurrencyStore, vatCategories VatCategoryStore, priceTypes PriceTypeStore, rates RateProvider) *Factory {
	return &Factory{
		currencies:    currencies,
		vatCategories: vatCategories,
		priceTypes:    priceTypes,
		rates:         rates,
	}
}

// NewPrice validates the raw values and returns an immutable Price.
// Malformed input fails here, at creation, not on first read.
//
// Resolution rules:
//   - currency and base are mandatory; anything else defaults to unset
//   - an unknown currency code falls back to the XXX placeholder (never fails)
//   - an explicit VAT rate wins; otherwise a resolvable VAT category supplies
//     its default rate and the category id is normalized to the canonical one
func (f *Factory) NewPrice(ctx context.Context, v Values) (*Price, error) {
	if v.Currency == "" {
		return nil, ErrCurrencyRequired
	}
	if v.Base == "" {
		return nil, ErrBaseRequired
	}
	if !v.Base.Valid() {
		return nil, fmt.Errorf("%w: unknown calculation base %q", ErrInvalidArgument, v.Base)
	}
	if v.VatRate != nil && v.VatRate.IsNegative() {
		return nil, fmt.Errorf("%w: vat rate must not be negative", ErrInvalidArgument)
	}

	currency, fellBack, err := f.resolveCurrency(ctx, v.Currency)
	if err != nil {
		return nil, err
	}

	vatRate := decimal.Zero
	vatCategory := v.VatCategory
	if v.VatRate != nil {
		vatRate = *v.VatRate
	} else if v.VatCategory != "" {
		category, err := f.vatCategories.LoadVatCategory(ctx, v.VatCategory)
		if err != nil {
			return nil, err
		}
		if category != nil {
			vatRate = category.Rate
			vatCategory = category.ID
		}
	}

	return &Price{
		factory:      f,
		currency:     currency,
		fellBack:     fellBack,
		base:         v.Base,
		net:          v.Net,
		gross:        v.Gross,
		vatRate:      vatRate,
		vatCategory:  vatCategory,
		priceTypeID:  v.PriceType,
		validFrom:    v.ValidFrom,
		validTo:      v.ValidTo,
		reasonOfDiff: v.ReasonOfDiff,
	}, nil
}

// NewModifiedPrice builds a price that supersedes original and keeps a
// reference to it. The original must share the new price's currency —
// a struck-through figure in another currency is meaningless to display.
// Calculation bases may differ; derived figures remain comparable.
func (f *Factory) NewModifiedPrice(ctx context.Context, v Values, original *Price) (*ModifiedPrice, error) {
	p, err := f.NewPrice(ctx, v)
	if err != nil {
		return nil, err
	}
	if original != nil && original.Currency().ID != p.Currency().ID {
		return nil, fmt.Errorf("%w: original price currency %q does not match %q",
			ErrInvalidArgument, original.Currency().ID, p.Currency().ID)
	}
	return &ModifiedPrice{Price: *p, original: original}, nil
}

// MissingPrice returns the "no price configured" sentinel: placeholder
// currency, zero amounts, zero rate. It performs no lookups and cannot fail.
func (f *Factory) MissingPrice() *Price {
	return &Price{
		factory:  f,
		currency: NoCurrency(),
		base:     BaseNet,
		net:      decimal.Zero,
		gross:    decimal.Zero,
		vatRate:  decimal.Zero,
		missing:  true,
	}
}

func (f *Factory) resolveCurrency(ctx context.Context, id string) (Currency, bool, error) {
	currency, err := f.currencies.LoadCurrency(ctx, id)
	if err != nil {
		return Currency{}, false, err
	}
	if currency == nil {
		return NoCurrency(), true, nil
	}
	return *currency, false, nil
}

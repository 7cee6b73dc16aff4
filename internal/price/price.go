package price

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// moneyScale is the fixed scale for all derived monetary values. Rounding
// happens at every derivation step, not just at display time, so repeated
// derivation is idempotent.
const moneyScale = 2

var one = decimal.NewFromInt(1)

// Price derives net/gross/VAT figures from one authoritative side.
// Instances are immutable after construction and safe for concurrent reads;
// build them through a Factory.
type Price struct {
	factory *Factory

	currency     Currency
	fellBack     bool
	base         CalculationBase
	net          decimal.Decimal
	gross        decimal.Decimal
	vatRate      decimal.Decimal
	vatCategory  string
	priceTypeID  string
	validFrom    *time.Time
	validTo      *time.Time
	reasonOfDiff string
	missing      bool
}

// Currency returns the resolved currency (the placeholder if the requested
// code was unknown).
func (p *Price) Currency() Currency { return p.currency }

// CurrencyFellBack reports whether the requested currency code could not be
// resolved and the placeholder was substituted.
func (p *Price) CurrencyFellBack() bool { return p.fellBack }

// Base returns the authoritative side of the price.
func (p *Price) Base() CalculationBase { return p.base }

// VatCategory returns the canonical VAT category id, or "" when none applies.
func (p *Price) VatCategory() string { return p.vatCategory }

// ReasonOfDifference returns the free-text annotation explaining why this
// price differs from a reference price.
func (p *Price) ReasonOfDifference() string { return p.reasonOfDiff }

// ValidFrom returns the start of the validity window, if any. The window is
// caller-managed; the engine stores and echoes it without enforcing it.
func (p *Price) ValidFrom() *time.Time { return p.validFrom }

// ValidTo returns the end of the validity window, if any.
func (p *Price) ValidTo() *time.Time { return p.validTo }

// IsMissing reports whether this is the "no price configured" sentinel,
// distinct from a zero-valued price.
func (p *Price) IsMissing() bool { return p.missing }

// NetPrice returns the net amount rounded to 2 decimals. When the base is
// gross, net = gross / (1 + rate).
func (p *Price) NetPrice() decimal.Decimal {
	if p.base == BaseNet {
		return p.net.Round(moneyScale)
	}
	return p.gross.Div(one.Add(p.vatRate)).Round(moneyScale)
}

// GrossPrice returns the gross amount rounded to 2 decimals. When the base
// is net, gross = net × (1 + rate).
func (p *Price) GrossPrice() decimal.Decimal {
	if p.base == BaseGross {
		return p.gross.Round(moneyScale)
	}
	return p.net.Mul(one.Add(p.vatRate)).Round(moneyScale)
}

// VatValue returns gross − net, rounded to 2 decimals.
func (p *Price) VatValue() decimal.Decimal {
	return p.GrossPrice().Sub(p.NetPrice()).Round(moneyScale)
}

// VatRate returns the fractional VAT rate (0.27 for 27%).
func (p *Price) VatRate() decimal.Decimal { return p.vatRate }

// VatRatePercent returns the VAT rate as a percentage, rounded to 2 decimals.
func (p *Price) VatRatePercent() decimal.Decimal {
	return p.vatRate.Mul(decimal.NewFromInt(100)).Round(moneyScale)
}

// PriceTypeID returns the raw price-type id supplied at construction.
func (p *Price) PriceTypeID() string { return p.priceTypeID }

// PriceType resolves the price type lazily. Unknown ids return (nil, nil);
// the type is descriptive only and never affects derivation.
func (p *Price) PriceType(ctx context.Context) (*PriceType, error) {
	if p.priceTypeID == "" {
		return nil, nil
	}
	return p.factory.priceTypes.LoadPriceType(ctx, p.priceTypeID)
}

// Values returns a snapshot of the raw values, suitable for rebuilding an
// equivalent price through a factory.
func (p *Price) Values() Values {
	rate := p.vatRate
	vat := p.VatValue()
	return Values{
		Currency:     p.currency.ID,
		Base:         p.base,
		PriceType:    p.priceTypeID,
		Net:          p.net,
		Gross:        p.gross,
		VatCategory:  p.vatCategory,
		VatRate:      &rate,
		VatValue:     &vat,
		ValidFrom:    p.validFrom,
		ValidTo:      p.validTo,
		ReasonOfDiff: p.reasonOfDiff,
	}
}

// ExchangedValues converts the price into the target currency. It returns
// (nil, nil) when no rate is published for the pair — absence of a rate is a
// normal outcome, not an error. An empty or placeholder-only target is a
// caller error.
func (p *Price) ExchangedValues(ctx context.Context, target string) (*Values, error) {
	if target == "" {
		return nil, ErrCurrencyRequired
	}

	rate, err := p.factory.rates.LoadRate(ctx, p.currency.ID, target)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}

	net := p.NetPrice().Mul(*rate).Round(moneyScale)
	gross := p.GrossPrice().Mul(*rate).Round(moneyScale)
	vat := gross.Sub(net)

	v := p.Values()
	v.Currency = target
	v.Net = net
	v.Gross = gross
	v.VatValue = &vat
	return &v, nil
}

// Exchanged wraps ExchangedValues into a fresh Price built by the same
// factory. Returns (nil, nil) under the same no-rate condition.
func (p *Price) Exchanged(ctx context.Context, target string) (*Price, error) {
	values, err := p.ExchangedValues(ctx, target)
	if err != nil || values == nil {
		return nil, err
	}
	return p.factory.NewPrice(ctx, *values)
}

// ModifiedPrice is a Price that supersedes an earlier one and keeps a
// reference to it, so the original can be shown struck-through next to the
// new figure. The original is constructed independently; this type does not
// own its lifecycle.
type ModifiedPrice struct {
	Price

	original *Price
}

// Original returns the superseded price.
func (m *ModifiedPrice) Original() *Price { return m.original }

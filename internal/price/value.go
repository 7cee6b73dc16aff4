package price

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CalculationBase enum constants
const (
	BaseNet   CalculationBase = "net"
	BaseGross CalculationBase = "gross"
)

// CalculationBase declares which of net/gross is the authoritative figure;
// the other side is always derived from it and the VAT rate.
type CalculationBase string

// Valid reports whether the base is one of the two known values.
func (b CalculationBase) Valid() bool {
	return b == BaseNet || b == BaseGross
}

// ErrInvalidArgument is the sentinel for caller-contract violations.
// Data-consistency gaps (unknown currency, missing rate) never wrap it —
// those recover locally instead of failing.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrCurrencyRequired = fmt.Errorf("%w: currency is required", ErrInvalidArgument)
	ErrBaseRequired     = fmt.Errorf("%w: calculation base is required", ErrInvalidArgument)
)

// Values is the raw input bag for building a price. Optional decimal and
// time fields are pointers so an absent value is distinguishable from zero.
type Values struct {
	Currency     string              `json:"currency"`
	Base         CalculationBase     `json:"base"`
	PriceType    string              `json:"price_type,omitempty"`
	Net          decimal.Decimal     `json:"net"`
	Gross        decimal.Decimal     `json:"gross"`
	VatCategory  string              `json:"vat_category,omitempty"`
	VatRate      *decimal.Decimal    `json:"vat_rate,omitempty"`
	VatValue     *decimal.Decimal    `json:"vat_value,omitempty"`
	ValidFrom    *time.Time          `json:"date_from,omitempty"`
	ValidTo      *time.Time          `json:"date_to,omitempty"`
	ReasonOfDiff string              `json:"reason_of_diff,omitempty"`
}

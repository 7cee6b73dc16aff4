package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoCurrencyCode is the placeholder row substituted when a price references
// an unknown currency. Seeded at migration time and never deleted.
const NoCurrencyCode = "XXX"

// Currency stores per-currency display metadata: the smallest increment a
// shown amount is snapped to and how many fraction digits to print.
type Currency struct {
	Code         string          `gorm:"type:varchar(3);primaryKey" json:"code"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Symbol       string          `gorm:"type:varchar(10)" json:"symbol"`
	RoundingStep decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0.01" json:"rounding_step"` // e.g. 0.05 for currencies without 1-cent coins
	Decimals     int32           `gorm:"not null;default:2" json:"decimals"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

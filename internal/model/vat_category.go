package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatCategory is a named tax classification with a default fractional rate
// (0.27 = 27%). Prices without an explicit rate inherit the category default.
type VatCategory struct {
	ID        string          `gorm:"type:varchar(50);primaryKey" json:"id"` // slug, e.g. "standard", "reduced"
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Rate      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

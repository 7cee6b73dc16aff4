package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the published multiplicative factor converting an
// amount from one currency to another. At most one rate per directed pair.
type ExchangeRate struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FromCurrency string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_pair;index" json:"from_currency"`
	ToCurrency   string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_pair" json:"to_currency"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog record holding the raw price fields. Derived figures
// (the non-authoritative side, VAT value) are never persisted; they are
// recomputed on demand from these fields by the price engine.
type Product struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU             string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	CalculationBase string           `gorm:"type:varchar(10);not null" json:"calculation_base"` // "net" or "gross"
	CurrencyCode    string           `gorm:"type:varchar(3);not null;index" json:"currency_code"`
	Net             decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"net"`
	Gross           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"gross"`
	VatCategoryID   *string          `gorm:"type:varchar(50);index" json:"vat_category_id"`
	VatRate         *decimal.Decimal `gorm:"type:decimal(10,4)" json:"vat_rate"` // explicit rate overrides the category default
	PriceTypeID     *string          `gorm:"type:varchar(50);index" json:"price_type_id"`
	PriceValidFrom  *time.Time       `gorm:"type:date" json:"price_valid_from"`
	PriceValidTo    *time.Time       `gorm:"type:date" json:"price_valid_to"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

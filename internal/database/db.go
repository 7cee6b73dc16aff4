package database

import (
	"log"

	"pricing-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.AuditLog{},
		&model.Currency{},
		&model.VatCategory{},
		&model.PriceType{},
		&model.ExchangeRate{},
		&model.Product{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	seedPlaceholderCurrency(db)

	return db, nil
}

// seedPlaceholderCurrency guarantees the "XXX" row exists. Prices that
// reference an unknown currency fall back to it, so it must always be
// resolvable.
func seedPlaceholderCurrency(db *gorm.DB) {
	placeholder := model.Currency{
		Code:         model.NoCurrencyCode,
		Name:         "No currency",
		RoundingStep: decimal.RequireFromString("0.01"),
		Decimals:     2,
	}
	err := db.Where(model.Currency{Code: model.NoCurrencyCode}).
		Attrs(placeholder).
		FirstOrCreate(&model.Currency{}).Error
	if err != nil {
		log.Println("WARNING: Failed to seed placeholder currency:", err)
	}
}

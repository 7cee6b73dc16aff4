package repository

import (
	"context"

	"pricing-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExchangeRateRepository interface {
	Upsert(ctx context.Context, rate *model.ExchangeRate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ExchangeRate, error)
	FindByPair(ctx context.Context, from, to string) (*model.ExchangeRate, error)
	List(ctx context.Context, page, limit int) ([]model.ExchangeRate, int64, error)
}

type exchangeRateRepository struct {
	db *gorm.DB
}

func NewExchangeRateRepository(db *gorm.DB) ExchangeRateRepository {
	return &exchangeRateRepository{db: db}
}

// Upsert inserts the rate or replaces the existing one for the same
// directed currency pair.
func (r *exchangeRateRepository) Upsert(ctx context.Context, rate *model.ExchangeRate) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_currency"}, {Name: "to_currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(rate).Error
}

func (r *exchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ExchangeRate{}).Error
}

func (r *exchangeRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := GetDB(ctx, r.db).First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *exchangeRateRepository) FindByPair(ctx context.Context, from, to string) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := GetDB(ctx, r.db).
		Where("from_currency = ? AND to_currency = ?", from, to).
		First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *exchangeRateRepository) List(ctx context.Context, page, limit int) ([]model.ExchangeRate, int64, error) {
	var rates []model.ExchangeRate
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ExchangeRate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("from_currency asc, to_currency asc").Offset(offset).Limit(limit).Find(&rates).Error; err != nil {
		return nil, 0, err
	}

	return rates, total, nil
}

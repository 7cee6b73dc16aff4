package repository

import (
	"context"

	"pricing-backend/internal/model"

	"gorm.io/gorm"
)

type CurrencyRepository interface {
	Create(ctx context.Context, currency *model.Currency) error
	Update(ctx context.Context, currency *model.Currency) error
	Delete(ctx context.Context, code string) error
	FindByCode(ctx context.Context, code string) (*model.Currency, error)
	List(ctx context.Context, page, limit int) ([]model.Currency, int64, error)
}

type currencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Create(ctx context.Context, currency *model.Currency) error {
	return GetDB(ctx, r.db).Create(currency).Error
}

func (r *currencyRepository) Update(ctx context.Context, currency *model.Currency) error {
	return GetDB(ctx, r.db).Save(currency).Error
}

func (r *currencyRepository) Delete(ctx context.Context, code string) error {
	return GetDB(ctx, r.db).Where("code = ?", code).Delete(&model.Currency{}).Error
}

func (r *currencyRepository) FindByCode(ctx context.Context, code string) (*model.Currency, error) {
	var currency model.Currency
	if err := GetDB(ctx, r.db).First(&currency, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) List(ctx context.Context, page, limit int) ([]model.Currency, int64, error) {
	var currencies []model.Currency
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Currency{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("code asc").Offset(offset).Limit(limit).Find(&currencies).Error; err != nil {
		return nil, 0, err
	}

	return currencies, total, nil
}

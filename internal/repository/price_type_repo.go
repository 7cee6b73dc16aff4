package repository

import (
	"context"

	"pricing-backend/internal/model"

	"gorm.io/gorm"
)

type PriceTypeRepository interface {
	Create(ctx context.Context, priceType *model.PriceType) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.PriceType, error)
	List(ctx context.Context) ([]model.PriceType, error)
}

type priceTypeRepository struct {
	db *gorm.DB
}

func NewPriceTypeRepository(db *gorm.DB) PriceTypeRepository {
	return &priceTypeRepository{db: db}
}

func (r *priceTypeRepository) Create(ctx context.Context, priceType *model.PriceType) error {
	return GetDB(ctx, r.db).Create(priceType).Error
}

func (r *priceTypeRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PriceType{}).Error
}

func (r *priceTypeRepository) FindByID(ctx context.Context, id string) (*model.PriceType, error) {
	var priceType model.PriceType
	if err := GetDB(ctx, r.db).First(&priceType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &priceType, nil
}

func (r *priceTypeRepository) List(ctx context.Context) ([]model.PriceType, error) {
	var priceTypes []model.PriceType
	if err := GetDB(ctx, r.db).Order("id asc").Find(&priceTypes).Error; err != nil {
		return nil, err
	}
	return priceTypes, nil
}

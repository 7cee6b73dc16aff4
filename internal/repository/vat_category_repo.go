package repository

import (
	"context"

	"pricing-backend/internal/model"

	"gorm.io/gorm"
)

type VatCategoryRepository interface {
	Create(ctx context.Context, category *model.VatCategory) error
	Update(ctx context.Context, category *model.VatCategory) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.VatCategory, error)
	List(ctx context.Context, page, limit int) ([]model.VatCategory, int64, error)
}

type vatCategoryRepository struct {
	db *gorm.DB
}

func NewVatCategoryRepository(db *gorm.DB) VatCategoryRepository {
	return &vatCategoryRepository{db: db}
}

func (r *vatCategoryRepository) Create(ctx context.Context, category *model.VatCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *vatCategoryRepository) Update(ctx context.Context, category *model.VatCategory) error {
	return GetDB(ctx, r.db).Save(category).Error
}

func (r *vatCategoryRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VatCategory{}).Error
}

func (r *vatCategoryRepository) FindByID(ctx context.Context, id string) (*model.VatCategory, error) {
	var category model.VatCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *vatCategoryRepository) List(ctx context.Context, page, limit int) ([]model.VatCategory, int64, error) {
	var categories []model.VatCategory
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.VatCategory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("id asc").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

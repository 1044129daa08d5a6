package repository

import (
	"context"

	"storefront-api/internal/models"

	"gorm.io/gorm"
)

// CategoryWithCount — категория плюс число доступных товаров в ней.
type CategoryWithCount struct {
	models.Category
	ProductCount int64
}

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	ListActive(ctx context.Context) ([]CategoryWithCount, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]CategoryWithCount, error) {
	var cats []models.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}

	out := make([]CategoryWithCount, 0, len(cats))
	for _, c := range cats {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&models.Product{}).
			Where("category_id = ? AND is_active = ? AND deleted_at IS NULL", c.ID, true).
			Count(&cnt).Error; err != nil {
			return nil, err
		}
		out = append(out, CategoryWithCount{Category: c, ProductCount: cnt})
	}
	return out, nil
}

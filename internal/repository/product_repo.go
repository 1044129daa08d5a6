package repository

import (
	"context"
	"errors"
	"strings"

	"storefront-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortOldest    ProductSort = "oldest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

type ProductListFilter struct {
	CategoryID   *uuid.UUID
	Search       string // по name/description
	SortBy       ProductSort
	OnlyFeatured bool
	Limit        int
	Offset       int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	// GetByID грузит категорию, изображения и активные варианты.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// GetBasicByID — только строка товара, без связей (валидация позиций).
	GetBasicByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("size ASC, color ASC")
		}).
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetBasicByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ? AND deleted_at IS NULL", true)

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.OnlyFeatured {
		q = q.Where("is_featured = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", "%"+s+"%", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.SortBy {
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	case SortOldest:
		q = q.Order("created_at ASC")
	default:
		q = q.Order("created_at DESC")
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	err := q.Limit(f.Limit).Offset(f.Offset).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&list).Error
	return list, total, err
}

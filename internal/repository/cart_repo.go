package repository

import (
	"context"
	"errors"

	"storefront-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo interface {
	// GetOrCreate лениво создаёт корзину при первом обращении.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	// GetWithItems грузит позиции (в порядке добавления) вместе с товаром,
	// изображениями и вариантом.
	GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error)

	GetItem(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error)
	// GetItemByID грузит позицию вместе с корзиной (проверка владельца) и вариантом.
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	// ClearItems удаляет все позиции; сама корзина остаётся.
	ClearItems(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error; err != nil {
		return nil, err
	}
	// при конфликте Create не возвращает существующую строку — перечитываем
	var out models.Cart
	if err := r.db.WithContext(ctx).First(&out, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepo) GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Items.Variant").
		First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepo) GetItem(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "cart_id = ? AND product_id = ? AND variant_id = ?", cartID, productID, variantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartRepo) GetItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Variant").
		Preload("Product").
		First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "id = ?", item.CartID).Error; err != nil {
		return nil, nil, err
	}
	return &item, &cart, nil
}

func (r *cartRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", itemID)
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&models.CartItem{}, "cart_id = ?", cartID)
	return tx.RowsAffected, tx.Error
}

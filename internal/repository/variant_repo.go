package repository

import (
	"context"
	"errors"

	"storefront-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantRepo interface {
	Create(ctx context.Context, v *models.ProductVariant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)

	// DecrementStock — атомарное условное списание:
	// stock -= qty только если stock >= qty. Возврат false означает,
	// что остатка уже не хватает (конкурирующий заказ успел раньше).
	// Никогда не заменять на чтение-затем-запись.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// IncrementStock возвращает запас (отмена/компенсация).
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepo(db *gorm.DB) VariantRepo { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_variants
SET stock = stock - @q,
    updated_at = now()
WHERE id = @id
  AND stock >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *variantRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_variants
SET stock = stock + @q,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

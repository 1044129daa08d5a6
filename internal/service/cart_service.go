package service

import (
	"context"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService struct {
	store repository.Store
	log   *zap.Logger
}

func NewCartService(store repository.Store, log *zap.Logger) *CartService {
	return &CartService{store: store, log: log}
}

// GetCart возвращает корзину с позициями; nil — корзины ещё нет,
// наружу это отдаётся как пустая корзина.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.store.Carts().GetWithItems(ctx, userID)
}

// AddItem добавляет вариант в корзину; повторное добавление той же пары
// товар+вариант суммирует количество. Итог не может превысить остаток.
func (s *CartService) AddItem(ctx context.Context, userID, productID, variantID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.store.Products().GetBasicByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !productAvailable(p) {
		return nil, ErrProductNotFound
	}

	v, err := s.store.Variants().GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !variantAvailable(v) || v.ProductID != p.ID {
		return nil, ErrVariantNotFound
	}
	if quantity > v.Stock {
		return nil, &CartStockError{Available: v.Stock}
	}

	cart, err := s.store.Carts().GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Carts().GetItem(ctx, cart.ID, productID, variantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQty := existing.Quantity + quantity
		if newQty > v.Stock {
			return nil, &CartStockError{Available: v.Stock, InCart: existing.Quantity}
		}
		if err := s.store.Carts().UpdateItemQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		}
		if err := s.store.Carts().CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.store.Carts().GetWithItems(ctx, userID)
}

// UpdateItemQuantity меняет количество позиции. Чужая позиция и
// несуществующая неразличимы снаружи.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, cart, err := s.store.Carts().GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || cart == nil || cart.UserID != userID {
		return nil, ErrCartItemNotFound
	}
	if quantity > item.Variant.Stock {
		return nil, &CartStockError{Available: item.Variant.Stock}
	}

	if err := s.store.Carts().UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	return s.store.Carts().GetWithItems(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	item, cart, err := s.store.Carts().GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || cart == nil || cart.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	if _, err := s.store.Carts().DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.store.Carts().GetWithItems(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.store.Carts().GetWithItems(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	_, err = s.store.Carts().ClearItems(ctx, cart.ID)
	return err
}

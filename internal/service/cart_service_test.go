package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/models"
	"storefront-api/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestCartService_AddItem_NewItem(t *testing.T) {
	store := NewMockStore()
	userID := uuid.New()

	p := activeProduct("Oversize Pamuklu T-Shirt", "299")
	v := activeVariant(p.ID, 10)
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}
	store.VariantsRepo.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
		return v, nil
	}

	cart := cartWith(userID)
	store.CartsRepo.GetOrCreateFunc = func(ctx context.Context, uid uuid.UUID) (*models.Cart, error) {
		return cart, nil
	}

	var createdItem *models.CartItem
	store.CartsRepo.CreateItemFunc = func(ctx context.Context, item *models.CartItem) error {
		createdItem = item
		return nil
	}
	store.CartsRepo.GetWithItemsFunc = func(ctx context.Context, uid uuid.UUID) (*models.Cart, error) {
		return cart, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	got, err := svc.AddItem(context.Background(), userID, p.ID, v.ID, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("Expected cart in response")
	}
	if createdItem == nil {
		t.Fatal("Expected CreateItem to be called")
	}
	if createdItem.CartID != cart.ID || createdItem.ProductID != p.ID || createdItem.VariantID != v.ID || createdItem.Quantity != 2 {
		t.Errorf("Unexpected item: %+v", createdItem)
	}
}

func TestCartService_AddItem_MergesQuantity(t *testing.T) {
	store := NewMockStore()
	userID := uuid.New()

	p := activeProduct("Mom Jean", "599")
	v := activeVariant(p.ID, 10)
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}
	store.VariantsRepo.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
		return v, nil
	}

	cart := cartWith(userID)
	store.CartsRepo.GetOrCreateFunc = func(ctx context.Context, uid uuid.UUID) (*models.Cart, error) {
		return cart, nil
	}
	existing := &models.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: p.ID, VariantID: v.ID, Quantity: 3}
	store.CartsRepo.GetItemFunc = func(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error) {
		return existing, nil
	}

	var gotItemID uuid.UUID
	var gotQty int
	store.CartsRepo.UpdateItemQuantityFunc = func(ctx context.Context, itemID uuid.UUID, quantity int) error {
		gotItemID, gotQty = itemID, quantity
		return nil
	}
	store.CartsRepo.GetWithItemsFunc = func(ctx context.Context, uid uuid.UUID) (*models.Cart, error) {
		return cart, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	if _, err := svc.AddItem(context.Background(), userID, p.ID, v.ID, 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotItemID != existing.ID || gotQty != 5 {
		t.Errorf("Expected quantity 5 on item %s, got %d on %s", existing.ID, gotQty, gotItemID)
	}
}

func TestCartService_AddItem_MergeExceedsStock(t *testing.T) {
	store := NewMockStore()
	userID := uuid.New()

	p := activeProduct("Performans Tayt", "279")
	v := activeVariant(p.ID, 5)
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}
	store.VariantsRepo.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
		return v, nil
	}
	store.CartsRepo.GetItemFunc = func(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error) {
		return &models.CartItem{ID: uuid.New(), Quantity: 4}, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.AddItem(context.Background(), userID, p.ID, v.ID, 3)

	var stockErr *service.CartStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected CartStockError, got %v", err)
	}
	if stockErr.Available != 5 || stockErr.InCart != 4 {
		t.Errorf("Unexpected error fields: %+v", stockErr)
	}
	want := "Only 5 items available, you already have 4 in your cart"
	if stockErr.Detail() != want {
		t.Errorf("Expected detail %q, got %q", want, stockErr.Detail())
	}
}

func TestCartService_AddItem_ExceedsStock(t *testing.T) {
	store := NewMockStore()

	p := activeProduct("Deri Kemer", "199")
	v := activeVariant(p.ID, 2)
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}
	store.VariantsRepo.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
		return v, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.AddItem(context.Background(), uuid.New(), p.ID, v.ID, 3)

	var stockErr *service.CartStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected CartStockError, got %v", err)
	}
	if stockErr.Detail() != "Only 2 items available" {
		t.Errorf("Unexpected detail: %q", stockErr.Detail())
	}
}

// В отличие от оформления заказа, при добавлении в корзину неактивный
// товар неотличим от несуществующего.
func TestCartService_AddItem_InactiveProductIsNotFound(t *testing.T) {
	store := NewMockStore()

	p := activeProduct("Saten Gomlek Elbise", "899")
	p.IsActive = false
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.AddItem(context.Background(), uuid.New(), p.ID, uuid.New(), 1)

	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_AddItem_VariantOfOtherProduct(t *testing.T) {
	store := NewMockStore()

	p := activeProduct("Gunluk Sneaker", "899")
	foreign := activeVariant(uuid.New(), 5)
	store.ProductsRepo.GetBasicByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return p, nil
	}
	store.VariantsRepo.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
		return foreign, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.AddItem(context.Background(), uuid.New(), p.ID, foreign.ID, 1)

	if !errors.Is(err, service.ErrVariantNotFound) {
		t.Fatalf("Expected ErrVariantNotFound, got %v", err)
	}
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	store := NewMockStore()

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), uuid.New(), 0)

	if !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("Expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartService_UpdateItemQuantity_NotOwned(t *testing.T) {
	store := NewMockStore()
	owner := uuid.New()
	stranger := uuid.New()

	item := &models.CartItem{ID: uuid.New(), Quantity: 1, Variant: models.ProductVariant{Stock: 10}}
	store.CartsRepo.GetItemByIDFunc = func(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
		return item, &models.Cart{ID: uuid.New(), UserID: owner}, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.UpdateItemQuantity(context.Background(), stranger, item.ID, 2)

	if !errors.Is(err, service.ErrCartItemNotFound) {
		t.Fatalf("Expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_UpdateItemQuantity_ExceedsStock(t *testing.T) {
	store := NewMockStore()
	userID := uuid.New()

	item := &models.CartItem{ID: uuid.New(), Quantity: 1, Variant: models.ProductVariant{Stock: 3}}
	store.CartsRepo.GetItemByIDFunc = func(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
		return item, &models.Cart{ID: uuid.New(), UserID: userID}, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.UpdateItemQuantity(context.Background(), userID, item.ID, 4)

	var stockErr *service.CartStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected CartStockError, got %v", err)
	}
	if stockErr.Available != 3 {
		t.Errorf("Expected available 3, got %d", stockErr.Available)
	}
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	store := NewMockStore()

	svc := service.NewCartService(store, zap.NewNop())
	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())

	if !errors.Is(err, service.ErrCartItemNotFound) {
		t.Fatalf("Expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_Clear_NoCartIsNoop(t *testing.T) {
	store := NewMockStore()

	cleared := false
	store.CartsRepo.ClearItemsFunc = func(ctx context.Context, cartID uuid.UUID) (int64, error) {
		cleared = true
		return 0, nil
	}

	svc := service.NewCartService(store, zap.NewNop())
	if err := svc.Clear(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cleared {
		t.Error("ClearItems must not be called when there is no cart")
	}
}

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"storefront-api/internal/migrate"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test, requires docker")
	}

	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStorefrontDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db), db
}

type fixture struct {
	user    *models.User
	product *models.Product
	variant *models.ProductVariant
}

func seedFixture(t *testing.T, db *gorm.DB, stock int) fixture {
	t.Helper()
	ctx := context.Background()

	user := &models.User{
		Email:     fmt.Sprintf("user-%s@stilora.com", uuid.New().String()[:8]),
		Password:  "hash",
		FirstName: "Test",
		LastName:  "Kullanici",
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	cat := &models.Category{
		Name:     "Kadin",
		Slug:     "kadin-" + uuid.New().String()[:8],
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	product := &models.Product{
		CategoryID: cat.ID,
		Name:       "Oversize Pamuklu T-Shirt",
		Slug:       "oversize-tshirt-" + uuid.New().String()[:8],
		Price:      decimal.RequireFromString("299.90"),
		IsActive:   true,
	}
	if err := db.WithContext(ctx).Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	variant := &models.ProductVariant{
		ProductID: product.ID,
		Size:      "M",
		Color:     "Beyaz",
		SKU:       "TSH-" + uuid.New().String()[:8],
		Stock:     stock,
		IsActive:  true,
	}
	if err := db.WithContext(ctx).Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}

	return fixture{user: user, product: product, variant: variant}
}

// Десять единиц остатка, двадцать конкурирующих списаний по одной:
// ровно десять проходят, ни одной лишней.
func TestVariantRepo_DecrementStock_Concurrent(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 10)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Variants().DecrementStock(ctx, fx.variant.ID, 1)
			if err != nil {
				t.Errorf("decrement: %v", err)
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	if succeeded != 10 {
		t.Errorf("Expected exactly 10 successful decrements, got %d", succeeded)
	}

	v, err := store.Variants().GetByID(ctx, fx.variant.ID)
	if err != nil {
		t.Fatalf("get variant: %v", err)
	}
	if v.Stock != 0 {
		t.Errorf("Expected stock 0, got %d", v.Stock)
	}
}

func TestVariantRepo_DecrementStock_InsufficientIsNoop(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 2)
	ctx := context.Background()

	ok, err := store.Variants().DecrementStock(ctx, fx.variant.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if ok {
		t.Error("Expected decrement beyond stock to be rejected")
	}

	v, _ := store.Variants().GetByID(ctx, fx.variant.ID)
	if v.Stock != 2 {
		t.Errorf("Stock must be untouched, got %d", v.Stock)
	}
}

// Ошибка внутри WithTx откатывает и заказ, и уже прошедшее списание.
func TestRepository_WithTx_RollsBackEverything(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 5)
	ctx := context.Background()

	boom := errors.New("boom")
	var orderID uuid.UUID

	err := store.WithTx(ctx, func(tx repository.Store) error {
		order := &models.Order{
			OrderNumber:  "STL-TEST-ROLLBACK",
			UserID:       fx.user.ID,
			Subtotal:     decimal.RequireFromString("299.90"),
			ShippingCost: decimal.RequireFromString("29.99"),
			Total:        decimal.RequireFromString("329.89"),
			ShippingAddress: models.ShippingAddress{
				FullName: "Test", Phone: "+90555", Address: "Adres", City: "Istanbul", PostalCode: "34000", Country: "TR",
			},
			Status: models.OrderStatusPending,
			Items: []models.OrderItem{{
				ProductID: fx.product.ID,
				VariantID: fx.variant.ID,
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("299.90"),
				Total:     decimal.RequireFromString("299.90"),
			}},
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID

		ok, err := tx.Variants().DecrementStock(ctx, fx.variant.ID, 1)
		if err != nil || !ok {
			t.Fatalf("decrement inside tx failed: ok=%v err=%v", ok, err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the inner error to propagate, got %v", err)
	}

	got, err := store.Orders().GetByID(ctx, orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got != nil {
		t.Error("Order must not survive the rollback")
	}

	v, _ := store.Variants().GetByID(ctx, fx.variant.ID)
	if v.Stock != 5 {
		t.Errorf("Stock must be restored to 5, got %d", v.Stock)
	}
}

func TestCartRepo_GetOrCreate_Idempotent(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 5)
	ctx := context.Background()

	first, err := store.Carts().GetOrCreate(ctx, fx.user.ID)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := store.Carts().GetOrCreate(ctx, fx.user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Expected the same cart, got %s and %s", first.ID, second.ID)
	}
}

func TestCartRepo_ClearItems(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 5)
	ctx := context.Background()

	cart, err := store.Carts().GetOrCreate(ctx, fx.user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := store.Carts().CreateItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: fx.product.ID,
		VariantID: fx.variant.ID,
		Quantity:  2,
	}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	deleted, err := store.Carts().ClearItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("ClearItems: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted item, got %d", deleted)
	}

	got, err := store.Carts().GetWithItems(ctx, fx.user.ID)
	if err != nil {
		t.Fatalf("GetWithItems: %v", err)
	}
	if got == nil {
		t.Fatal("The cart itself must survive ClearItems")
	}
	if len(got.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(got.Items))
	}
}

func TestOrderRepo_GetByIDForUser_Ownership(t *testing.T) {
	store, db := setupStore(t)
	fx := seedFixture(t, db, 5)
	other := seedFixture(t, db, 5)
	ctx := context.Background()

	order := &models.Order{
		OrderNumber:  "STL-TEST-OWNER",
		UserID:       fx.user.ID,
		Subtotal:     decimal.RequireFromString("299.90"),
		ShippingCost: decimal.RequireFromString("29.99"),
		Total:        decimal.RequireFromString("329.89"),
		ShippingAddress: models.ShippingAddress{
			FullName: "Test", Phone: "+90555", Address: "Adres", City: "Istanbul", PostalCode: "34000", Country: "TR",
		},
		Status: models.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID: fx.product.ID,
			VariantID: fx.variant.ID,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("299.90"),
			Total:     decimal.RequireFromString("299.90"),
		}},
	}
	if err := store.Orders().Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	own, err := store.Orders().GetByIDForUser(ctx, order.ID, fx.user.ID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if own == nil || own.ID != order.ID {
		t.Fatal("Owner must see the order")
	}
	if len(own.Items) != 1 {
		t.Errorf("Expected items to be loaded, got %d", len(own.Items))
	}

	foreign, err := store.Orders().GetByIDForUser(ctx, order.ID, other.user.ID)
	if err != nil {
		t.Fatalf("GetByIDForUser foreign: %v", err)
	}
	if foreign != nil {
		t.Error("Another user must not see the order")
	}
}

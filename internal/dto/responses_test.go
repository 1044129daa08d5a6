package dto_test

import (
	"testing"

	"storefront-api/internal/dto"
	"storefront-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func cartFixture() *models.Cart {
	available := models.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Quantity:  2,
		Product: models.Product{
			Name:     "Oversize Pamuklu T-Shirt",
			Price:    decimal.RequireFromString("299.90"),
			IsActive: true,
			Images:   []models.ProductImage{{URL: "https://cdn.stilora.com/tshirt.jpg"}},
		},
		Variant: models.ProductVariant{Size: "M", Color: "Beyaz", Stock: 10, IsActive: true},
	}
	unavailable := models.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Quantity:  1,
		Product: models.Product{
			Name:     "Eski Model",
			Price:    decimal.RequireFromString("100"),
			IsActive: false,
		},
		Variant: models.ProductVariant{Size: "L", Color: "Siyah", Stock: 5, IsActive: true},
	}
	return &models.Cart{ID: uuid.New(), UserID: uuid.New(), Items: []models.CartItem{available, unavailable}}
}

func TestFromCart_ExcludesUnavailableFromTotals(t *testing.T) {
	resp := dto.FromCart(cartFixture())

	if len(resp.Items) != 2 {
		t.Fatalf("Unavailable items must stay in the list, got %d items", len(resp.Items))
	}
	if !resp.Items[0].Product.IsAvailable {
		t.Error("First item must be available")
	}
	if resp.Items[1].Product.IsAvailable {
		t.Error("Second item must be marked unavailable")
	}

	// 2 * 299.90, недоступная позиция не считается
	if resp.Subtotal != 599.80 {
		t.Errorf("Expected subtotal 599.80, got %v", resp.Subtotal)
	}
	if resp.ItemCount != 2 {
		t.Errorf("Expected itemCount 2, got %d", resp.ItemCount)
	}
}

func TestFromCart_NilCartIsEmpty(t *testing.T) {
	resp := dto.FromCart(nil)

	if resp.Items == nil {
		t.Error("Items must be an empty slice, not nil")
	}
	if len(resp.Items) != 0 || resp.Subtotal != 0 || resp.ItemCount != 0 {
		t.Errorf("Expected empty cart, got %+v", resp)
	}
}

func TestFromOrder_ItemCountAndImage(t *testing.T) {
	order := &models.Order{
		ID:           uuid.New(),
		OrderNumber:  "STL-ABC123-DEADBEEF",
		UserID:       uuid.New(),
		Subtotal:     decimal.RequireFromString("499.02"),
		ShippingCost: decimal.RequireFromString("29.99"),
		Total:        decimal.RequireFromString("529.01"),
		Status:       models.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ID:        uuid.New(),
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("199"),
				Total:     decimal.RequireFromString("398"),
				Product: models.Product{
					Name:   "Deri Kemer",
					Images: []models.ProductImage{{URL: "https://cdn.stilora.com/kemer.jpg"}},
				},
				Variant: models.ProductVariant{Size: "STD", Color: "Kahverengi"},
			},
			{
				ID:        uuid.New(),
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("101.02"),
				Total:     decimal.RequireFromString("101.02"),
				Product:   models.Product{Name: "Corap"},
			},
		},
	}

	resp := dto.FromOrder(order)

	if resp.OrderNumber != "STL-ABC123-DEADBEEF" {
		t.Errorf("Unexpected order number: %s", resp.OrderNumber)
	}
	if resp.ItemCount != 3 {
		t.Errorf("Expected itemCount 3 (sum of quantities), got %d", resp.ItemCount)
	}
	if resp.Total != 529.01 {
		t.Errorf("Expected total 529.01, got %v", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].ImageURL == nil || *resp.Items[0].ImageURL != "https://cdn.stilora.com/kemer.jpg" {
		t.Error("Expected first image URL on the first item")
	}
	if resp.Items[1].ImageURL != nil {
		t.Error("Expected nil image URL when the product has no images")
	}
}

func TestFromProductList_CoverImageOnly(t *testing.T) {
	products := []models.Product{
		{
			ID:       uuid.New(),
			Name:     "Gunluk Sneaker",
			Price:    decimal.RequireFromString("899"),
			IsActive: true,
			Category: models.Category{Name: "Ayakkabi"},
			Images: []models.ProductImage{
				{URL: "https://cdn.stilora.com/sneaker-1.jpg", AltText: "Gunluk Sneaker"},
				{URL: "https://cdn.stilora.com/sneaker-2.jpg"},
			},
		},
		{
			ID:       uuid.New(),
			Name:     "Corap",
			Price:    decimal.RequireFromString("49"),
			IsActive: true,
		},
	}

	out := dto.FromProductList(products)

	if len(out) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(out))
	}
	if len(out[0].Images) != 1 || out[0].Images[0].URL != "https://cdn.stilora.com/sneaker-1.jpg" {
		t.Errorf("Expected a single cover image, got %+v", out[0].Images)
	}
	if out[0].Category.Name != "Ayakkabi" {
		t.Errorf("Unexpected category: %+v", out[0].Category)
	}
	if out[1].Images == nil {
		t.Error("Images must be an empty slice, not nil")
	}
}

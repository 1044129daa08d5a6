package dto

import (
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	AvatarURL     *string   `json:"avatarUrl"`
	Phone         *string   `json:"phone"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

type TokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		AvatarURL:     u.AvatarURL,
		Phone:         u.Phone,
		Role:          string(u.Role),
		EmailVerified: u.IsEmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func FromAuth(u *models.User, pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		User: FromUser(u),
		Tokens: TokensResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	}
}

// --- Каталог ---

type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	SortOrder    int       `json:"sortOrder"`
	ProductCount int64     `json:"productCount"`
}

func FromCategories(cats []repository.CategoryWithCount) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryResponse{
			ID:           c.ID,
			Name:         c.Name,
			Slug:         c.Slug,
			Description:  c.Description,
			ImageURL:     c.ImageURL,
			SortOrder:    c.SortOrder,
			ProductCount: c.ProductCount,
		})
	}
	return out
}

type ProductImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   string    `json:"altText"`
	SortOrder int       `json:"sortOrder"`
}

type ProductVariantResponse struct {
	ID       uuid.UUID `json:"id"`
	Size     string    `json:"size"`
	Color    string    `json:"color"`
	ColorHex string    `json:"colorHex"`
	Stock    int       `json:"stock"`
	SKU      string    `json:"sku"`
}

// ProductListItem — облегчённая карточка для списков: одна обложка,
// категория только по имени.
type ProductListItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Price        float64   `json:"price"`
	ComparePrice *float64  `json:"comparePrice"`
	IsFeatured   bool      `json:"isFeatured"`
	Category     struct {
		Name string `json:"name"`
	} `json:"category"`
	Images []struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"images"`
}

type ProductDetail struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ComparePrice *float64  `json:"comparePrice"`
	IsFeatured   bool      `json:"isFeatured"`
	Category     struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
		Slug string    `json:"slug"`
	} `json:"category"`
	Images    []ProductImageResponse   `json:"images"`
	Variants  []ProductVariantResponse `json:"variants"`
	CreatedAt time.Time                `json:"createdAt"`
}

func comparePricePtr(p *models.Product) *float64 {
	if p.ComparePrice == nil {
		return nil
	}
	v := p.ComparePrice.InexactFloat64()
	return &v
}

func FromProductList(products []models.Product) []ProductListItem {
	out := make([]ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		item := ProductListItem{
			ID:           p.ID,
			Name:         p.Name,
			Slug:         p.Slug,
			Price:        p.Price.InexactFloat64(),
			ComparePrice: comparePricePtr(p),
			IsFeatured:   p.IsFeatured,
		}
		item.Category.Name = p.Category.Name
		if len(p.Images) > 0 {
			img := p.Images[0]
			item.Images = append(item.Images, struct {
				URL     string `json:"url"`
				AltText string `json:"altText"`
			}{URL: img.URL, AltText: img.AltText})
		} else {
			item.Images = []struct {
				URL     string `json:"url"`
				AltText string `json:"altText"`
			}{}
		}
		out = append(out, item)
	}
	return out
}

func FromProductDetail(p *models.Product) ProductDetail {
	d := ProductDetail{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		ComparePrice: comparePricePtr(p),
		IsFeatured:   p.IsFeatured,
		Images:       make([]ProductImageResponse, 0, len(p.Images)),
		Variants:     make([]ProductVariantResponse, 0, len(p.Variants)),
		CreatedAt:    p.CreatedAt,
	}
	d.Category.ID = p.Category.ID
	d.Category.Name = p.Category.Name
	d.Category.Slug = p.Category.Slug
	for _, img := range p.Images {
		d.Images = append(d.Images, ProductImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
		})
	}
	for _, v := range p.Variants {
		d.Variants = append(d.Variants, ProductVariantResponse{
			ID:       v.ID,
			Size:     v.Size,
			Color:    v.Color,
			ColorHex: v.ColorHex,
			Stock:    v.Stock,
			SKU:      v.SKU,
		})
	}
	return d
}

type HomeResponse struct {
	FeaturedProducts []ProductListItem  `json:"featuredProducts"`
	NewArrivals      []ProductListItem  `json:"newArrivals"`
	Categories       []CategoryResponse `json:"categories"`
}

func FromHome(h *service.HomeData) HomeResponse {
	return HomeResponse{
		FeaturedProducts: FromProductList(h.FeaturedProducts),
		NewArrivals:      FromProductList(h.NewArrivals),
		Categories:       FromCategories(h.Categories),
	}
}

// --- Корзина ---

type CartItemProduct struct {
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"comparePrice"`
	ImageURL     *string  `json:"imageUrl"`
	IsAvailable  bool     `json:"isAvailable"`
}

type CartItemVariant struct {
	Size        string `json:"size"`
	Color       string `json:"color"`
	ColorHex    string `json:"colorHex"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"isAvailable"`
}

type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	VariantID uuid.UUID       `json:"variantId"`
	Quantity  int             `json:"quantity"`
	Product   CartItemProduct `json:"product"`
	Variant   CartItemVariant `json:"variant"`
	UnitPrice float64         `json:"unitPrice"`
	Total     float64         `json:"total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	ItemCount int                `json:"itemCount"`
}

// FromCart собирает представление корзины. Недоступные позиции остаются
// в списке с пометкой, но не участвуют в subtotal и itemCount.
func FromCart(cart *models.Cart) CartResponse {
	resp := CartResponse{Items: []CartItemResponse{}}
	if cart == nil {
		return resp
	}
	for i := range cart.Items {
		it := &cart.Items[i]
		p := it.Product
		v := it.Variant

		productAvailable := p.IsActive && p.DeletedAt == nil
		variantAvailable := v.IsActive

		var imageURL *string
		if len(p.Images) > 0 {
			imageURL = &p.Images[0].URL
		}

		price := p.Price.InexactFloat64()
		item := CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Product: CartItemProduct{
				Name:         p.Name,
				Price:        price,
				ComparePrice: comparePricePtr(&p),
				ImageURL:     imageURL,
				IsAvailable:  productAvailable,
			},
			Variant: CartItemVariant{
				Size:        v.Size,
				Color:       v.Color,
				ColorHex:    v.ColorHex,
				Stock:       v.Stock,
				IsAvailable: variantAvailable,
			},
			UnitPrice: price,
			Total:     price * float64(it.Quantity),
		}
		resp.Items = append(resp.Items, item)

		if productAvailable && variantAvailable {
			resp.Subtotal += item.Total
			resp.ItemCount += it.Quantity
		}
	}
	return resp
}

// --- Заказы ---

type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	VariantID   uuid.UUID `json:"variantId"`
	ProductName string    `json:"productName"`
	ImageURL    *string   `json:"imageUrl"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
}

type OrderResponse struct {
	ID              uuid.UUID              `json:"id"`
	OrderNumber     string                 `json:"orderNumber"`
	Status          string                 `json:"status"`
	Subtotal        float64                `json:"subtotal"`
	ShippingCost    float64                `json:"shippingCost"`
	Total           float64                `json:"total"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Notes           *string                `json:"notes"`
	Items           []OrderItemResponse    `json:"items"`
	ItemCount       int                    `json:"itemCount"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func FromOrder(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		Subtotal:        o.Subtotal.InexactFloat64(),
		ShippingCost:    o.ShippingCost.InexactFloat64(),
		Total:           o.Total.InexactFloat64(),
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i := range o.Items {
		it := &o.Items[i]
		var imageURL *string
		if len(it.Product.Images) > 0 {
			imageURL = &it.Product.Images[0].URL
		}
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.Product.Name,
			ImageURL:    imageURL,
			Size:        it.Variant.Size,
			Color:       it.Variant.Color,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Total:       it.Total.InexactFloat64(),
		})
		resp.ItemCount += it.Quantity
	}
	return resp
}

func FromOrders(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}

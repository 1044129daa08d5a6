package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	VariantID uuid.UUID `json:"variantId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type ShippingAddressRequest struct {
	FullName   string `json:"fullName" binding:"required,min=2"`
	Phone      string `json:"phone" binding:"required,min=10"`
	Address    string `json:"address" binding:"required,min=5"`
	City       string `json:"city" binding:"required,min=2"`
	PostalCode string `json:"postalCode" binding:"required,min=4"`
	Country    string `json:"country"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	VariantID uuid.UUID `json:"variantId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest: items пустой — заказ из корзины.
type CreateOrderRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	Notes           *string                `json:"notes"`
	Items           []OrderItemRequest     `json:"items" binding:"omitempty,dive"`
}

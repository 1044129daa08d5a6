package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("product variant not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrCartEmpty       = errors.New("Cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// AccountLockedError — аккаунт временно заблокирован после серии
// неудачных попыток входа.
type AccountLockedError struct {
	Minutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is locked, try again in %d minutes", e.Minutes)
}

// ProductUnavailableError — товар снят с продажи или удалён, но всё ещё
// лежит в корзине пользователя.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("\"%s\" artik mevcut degil", e.Name)
}

// VariantUnavailableError — выбранный вариант товара деактивирован.
type VariantUnavailableError struct {
	Name string
}

func (e *VariantUnavailableError) Error() string {
	return fmt.Sprintf("\"%s\" secili varyant artik mevcut degil", e.Name)
}

// InsufficientStockError — остатка не хватает уже на этапе предварительной
// проверки, до списания.
type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("\"%s\" icin yeterli stok yok", e.Name)
}

// StockConflictError — условное списание не прошло: остаток успел
// измениться между проверкой и UPDATE. Транзакция откатывается целиком.
type StockConflictError struct {
	Name string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("\"%s\" icin yeterli stok kalmadi", e.Name)
}

// CartStockError — запрошенное количество превышает остаток варианта
// при работе с корзиной.
type CartStockError struct {
	Available int
	InCart    int
}

func (e *CartStockError) Error() string {
	return "insufficient stock"
}

func (e *CartStockError) Detail() string {
	if e.InCart > 0 {
		return fmt.Sprintf("Only %d items available, you already have %d in your cart", e.Available, e.InCart)
	}
	return fmt.Sprintf("Only %d items available", e.Available)
}

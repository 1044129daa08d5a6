package service

import "github.com/shopspring/decimal"

// Стоимость доставки фиксированная; при достижении порога доставка
// бесплатная. Значения совпадают с теми, что показывает витрина.
var (
	shippingCost          = decimal.RequireFromString("29.99")
	freeShippingThreshold = decimal.NewFromInt(500)
)

// ShippingFor возвращает стоимость доставки для заказа с данным subtotal.
// Порог включительный: ровно 500.00 — доставка бесплатная.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return shippingCost
}

package service_test

import (
	"testing"

	"storefront-api/internal/service"

	"github.com/shopspring/decimal"
)

func TestShippingFor(t *testing.T) {
	cases := []struct {
		subtotal string
		want     string
	}{
		{"0", "29.99"},
		{"499.99", "29.99"},
		{"500", "0"},
		{"500.01", "0"},
		{"1250", "0"},
	}

	for _, tc := range cases {
		got := service.ShippingFor(decimal.RequireFromString(tc.subtotal))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("ShippingFor(%s) = %s, want %s", tc.subtotal, got, tc.want)
		}
	}
}

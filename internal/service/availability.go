package service

import "storefront-api/internal/models"

func productAvailable(p *models.Product) bool {
	return p != nil && p.IsActive && p.DeletedAt == nil
}

func variantAvailable(v *models.ProductVariant) bool {
	return v != nil && v.IsActive
}

package service

import (
	"context"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService struct {
	store repository.Store
	log   *zap.Logger
}

func NewCatalogService(store repository.Store, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

type ListProductsInput struct {
	CategoryID *uuid.UUID
	Search     string
	SortBy     repository.ProductSort
	Page       int
	Limit      int
}

func (s *CatalogService) ListProducts(ctx context.Context, in ListProductsInput) ([]models.Product, int64, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 20
	}
	if in.Limit > 100 {
		in.Limit = 100
	}
	return s.store.Products().List(ctx, repository.ProductListFilter{
		CategoryID: in.CategoryID,
		Search:     in.Search,
		SortBy:     in.SortBy,
		Limit:      in.Limit,
		Offset:     (in.Page - 1) * in.Limit,
	})
}

// GetProduct отдаёт только доступные товары: неактивный или удалённый
// неотличим от несуществующего.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !productAvailable(p) {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]repository.CategoryWithCount, error) {
	return s.store.Categories().ListActive(ctx)
}

// HomeData — агрегат для главной страницы витрины.
type HomeData struct {
	FeaturedProducts []models.Product
	NewArrivals      []models.Product
	Categories       []repository.CategoryWithCount
}

func (s *CatalogService) GetHomeData(ctx context.Context) (*HomeData, error) {
	featured, _, err := s.store.Products().List(ctx, repository.ProductListFilter{
		OnlyFeatured: true,
		SortBy:       repository.SortNewest,
		Limit:        10,
	})
	if err != nil {
		return nil, err
	}
	arrivals, _, err := s.store.Products().List(ctx, repository.ProductListFilter{
		SortBy: repository.SortNewest,
		Limit:  10,
	})
	if err != nil {
		return nil, err
	}
	cats, err := s.store.Categories().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeData{FeaturedProducts: featured, NewArrivals: arrivals, Categories: cats}, nil
}

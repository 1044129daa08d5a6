package handlers

import (
	"net/http"
	"strconv"

	"storefront-api/internal/dto"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewProductHandler(catalog *service.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// ListProducts godoc
// @Summary Список товаров
// @Description Только активные и не удалённые товары, с пагинацией
// @Tags products
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы (1..100)" default(20)
// @Param categoryId query string false "Фильтр по категории (uuid)"
// @Param search query string false "Поиск по имени и описанию"
// @Param sortBy query string false "newest|oldest|price_asc|price_desc"
// @Success 200 {object} dto.Response{data=[]dto.ProductListItem}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	in := service.ListProductsInput{
		Search: c.Query("search"),
		SortBy: repository.ProductSort(c.DefaultQuery("sortBy", "newest")),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid category ID"))
			return
		}
		in.CategoryID = &id
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKPaginated(dto.FromProductList(products), page, limit, total))
}

// GetHomeData godoc
// @Summary Данные главной страницы
// @Description Избранные товары, новинки и активные категории одним запросом
// @Tags products
// @Produce json
// @Success 200 {object} dto.Response{data=dto.HomeResponse}
// @Router /api/v1/products/home [get]
func (h *ProductHandler) GetHomeData(c *gin.Context) {
	home, err := h.catalog.GetHomeData(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromHome(home)))
}

// GetProduct godoc
// @Summary Карточка товара
// @Tags products
// @Produce json
// @Param id path string true "ID товара (uuid)"
// @Success 200 {object} dto.Response{data=dto.ProductDetail}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid product ID"))
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromProductDetail(product)))
}

// ListCategories godoc
// @Summary Активные категории со счётчиком товаров
// @Tags categories
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.CategoryResponse}
// @Router /api/v1/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCategories(cats)))
}

package handlers

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/models"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// CreateOrder godoc
// @Summary Оформить заказ
// @Description Без items заказ собирается из корзины и корзина очищается.
// @Description С items — покупка напрямую, корзина не трогается.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Адрес доставки и опционально позиции"
// @Success 201 {object} dto.Response{data=dto.OrderResponse}
// @Failure 400 {object} dto.ErrorResponse "Пустая корзина, недоступный товар или нехватка остатка"
// @Failure 404 {object} dto.ErrorResponse "Товар или вариант не найден"
// @Security BearerAuth
// @Router /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	country := req.ShippingAddress.Country
	if country == "" {
		country = "TR"
	}
	in := service.PlaceOrderInput{
		ShippingAddress: models.ShippingAddress{
			FullName:   req.ShippingAddress.FullName,
			Phone:      req.ShippingAddress.Phone,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    country,
		},
		Notes: req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.PlaceOrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.FromOrder(order)))
}

// ListOrders godoc
// @Summary Заказы текущего пользователя
// @Tags orders
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы (1..100)" default(20)
// @Success 200 {object} dto.Response{data=[]dto.OrderResponse}
// @Security BearerAuth
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	page, limit := parsePagination(c)
	orders, total, err := h.orders.ListOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKPaginated(dto.FromOrders(orders), page, limit, total))
}

// GetOrder godoc
// @Summary Заказ по ID
// @Description Чужой заказ неотличим от несуществующего
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа (uuid)"
// @Success 200 {object} dto.Response{data=dto.OrderResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid order ID"))
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromOrder(order)))
}

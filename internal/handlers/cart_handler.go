package handlers

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart *service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// GetCart godoc
// @Summary Корзина текущего пользователя
// @Tags cart
// @Produce json
// @Success 200 {object} dto.Response{data=dto.CartResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	cart, err := h.cart.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCart(cart)))
}

// AddItem godoc
// @Summary Добавить вариант товара в корзину
// @Description Повторное добавление той же пары товар+вариант суммирует количество
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemRequest true "Позиция"
// @Success 200 {object} dto.Response{data=dto.CartResponse}
// @Failure 400 {object} dto.ErrorResponse "Не хватает остатка"
// @Failure 404 {object} dto.ErrorResponse "Товар или вариант не найден"
// @Security BearerAuth
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := h.cart.AddItem(c.Request.Context(), userID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCart(cart)))
}

// UpdateItem godoc
// @Summary Изменить количество позиции
// @Tags cart
// @Accept json
// @Produce json
// @Param itemId path string true "ID позиции (uuid)"
// @Param item body dto.UpdateCartItemRequest true "Новое количество"
// @Success 200 {object} dto.Response{data=dto.CartResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Позиция не найдена"
// @Security BearerAuth
// @Router /api/v1/cart/items/{itemId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid item ID"))
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := h.cart.UpdateItemQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCart(cart)))
}

// RemoveItem godoc
// @Summary Удалить позицию из корзины
// @Tags cart
// @Produce json
// @Param itemId path string true "ID позиции (uuid)"
// @Success 200 {object} dto.Response{data=dto.CartResponse}
// @Failure 404 {object} dto.ErrorResponse "Позиция не найдена"
// @Security BearerAuth
// @Router /api/v1/cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid item ID"))
		return
	}

	cart, err := h.cart.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCart(cart)))
}

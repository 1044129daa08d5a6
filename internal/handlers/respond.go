package handlers

import (
	"errors"
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDKey должен совпадать с ключом, который выставляет middleware.Auth.
const userIDKey = "userID"

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// bindError переводит ошибку биндинга в конверт валидации с деталями
// по полям, когда их удаётся извлечь.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, dto.FieldError{
				Field:   fe.Field(),
				Message: "failed on " + fe.Tag() + " validation",
			})
		}
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Validation failed", details...))
		return
	}
	c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid request body"))
}

// respondError — единая точка перевода ошибок сервисов в HTTP-ответы.
// Всё, что не распознано, уходит наружу как 500 без деталей.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		lockErr      *service.AccountLockedError
		prodUnavail  *service.ProductUnavailableError
		varUnavail   *service.VariantUnavailableError
		insufficient *service.InsufficientStockError
		conflict     *service.StockConflictError
		cartStock    *service.CartStockError
	)

	switch {
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, dto.Err(dto.CodeAlreadyExists, "A user with this email already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Invalid email or password"))
	case errors.Is(err, service.ErrAccountDeactivated):
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Account is deactivated"))
	case errors.As(err, &lockErr):
		c.JSON(http.StatusTooManyRequests, dto.Err(dto.CodeRateLimitExceeded, lockErr.Error()))
	case errors.Is(err, service.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Invalid session"))
	case errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Session expired"))
	case errors.Is(err, service.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Invalid or expired reset token"))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "User not found"))
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "Product not found"))
	case errors.Is(err, service.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "Product variant not found"))
	case errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "Cart item not found"))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "Order not found"))
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Cart is empty"))
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Quantity must be at least 1"))
	case errors.As(err, &prodUnavail):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, prodUnavail.Error()))
	case errors.As(err, &varUnavail):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, varUnavail.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, insufficient.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, conflict.Error()))
	case errors.As(err, &cartStock):
		c.JSON(http.StatusBadRequest, dto.Err(dto.CodeValidationError, "Insufficient stock",
			dto.FieldError{Field: "quantity", Message: cartStock.Detail()}))
	default:
		log.Error("необработанная ошибка запроса", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Err(dto.CodeInternalError, "Internal server error"))
	}
}

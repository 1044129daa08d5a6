package service

import (
	"context"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceOrderItem — явная позиция заказа ("buy now" мимо корзины).
type PlaceOrderItem struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

type PlaceOrderInput struct {
	ShippingAddress models.ShippingAddress
	Notes           *string
	// Items пустой — заказ собирается из корзины пользователя,
	// и после успеха корзина очищается.
	Items []PlaceOrderItem
}

type OrderService struct {
	store repository.Store
	email EmailProducer
	log   *zap.Logger
	now   func() time.Time
}

func NewOrderService(store repository.Store, email EmailProducer, log *zap.Logger) *OrderService {
	return &OrderService{store: store, email: email, log: log, now: time.Now}
}

// resolvedItem — позиция после валидации, с зафиксированной ценой.
type resolvedItem struct {
	productID   uuid.UUID
	variantID   uuid.UUID
	quantity    int
	productName string
	unitPrice   decimal.Decimal
}

// PlaceOrder транзакционно превращает корзину (или явный список позиций)
// в заказ. Любая ошибка на любом шаге откатывает всё: заказ, списания,
// очистку корзины. Против гонок за последние единицы остатка работает
// условный UPDATE в VariantRepo.DecrementStock.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, in PlaceOrderInput) (*models.Order, error) {
	var placed *models.Order

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var (
			resolved []resolvedItem
			fromCart bool
			cartID   uuid.UUID
		)

		if len(in.Items) > 0 {
			for _, it := range in.Items {
				if it.Quantity < 1 {
					return ErrInvalidQuantity
				}
				p, err := tx.Products().GetBasicByID(ctx, it.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return ErrProductNotFound
				}
				if !productAvailable(p) {
					return &ProductUnavailableError{Name: p.Name}
				}
				v, err := tx.Variants().GetByID(ctx, it.VariantID)
				if err != nil {
					return err
				}
				if v == nil || v.ProductID != p.ID {
					return ErrVariantNotFound
				}
				if !variantAvailable(v) {
					return &VariantUnavailableError{Name: p.Name}
				}
				if it.Quantity > v.Stock {
					return &InsufficientStockError{Name: p.Name}
				}
				resolved = append(resolved, resolvedItem{
					productID:   p.ID,
					variantID:   v.ID,
					quantity:    it.Quantity,
					productName: p.Name,
					unitPrice:   p.Price,
				})
			}
		} else {
			cart, err := tx.Carts().GetWithItems(ctx, userID)
			if err != nil {
				return err
			}
			if cart == nil || len(cart.Items) == 0 {
				return ErrCartEmpty
			}
			fromCart = true
			cartID = cart.ID
			for _, it := range cart.Items {
				p := it.Product
				if !productAvailable(&p) {
					return &ProductUnavailableError{Name: p.Name}
				}
				v := it.Variant
				if !variantAvailable(&v) {
					return &VariantUnavailableError{Name: p.Name}
				}
				if it.Quantity > v.Stock {
					return &InsufficientStockError{Name: p.Name}
				}
				resolved = append(resolved, resolvedItem{
					productID:   p.ID,
					variantID:   v.ID,
					quantity:    it.Quantity,
					productName: p.Name,
					unitPrice:   p.Price,
				})
			}
		}

		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(resolved))
		for _, it := range resolved {
			lineTotal := it.unitPrice.Mul(decimal.NewFromInt(int64(it.quantity)))
			subtotal = subtotal.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID: it.productID,
				VariantID: it.variantID,
				Quantity:  it.quantity,
				UnitPrice: it.unitPrice,
				Total:     lineTotal,
			})
		}
		shipping := ShippingFor(subtotal)

		order := &models.Order{
			OrderNumber:     newOrderNumber(s.now()),
			UserID:          userID,
			Subtotal:        subtotal,
			ShippingCost:    shipping,
			Total:           subtotal.Add(shipping),
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
			Status:          models.OrderStatusPending,
			Items:           items,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		// Списание остатков после создания заказа: конфликт на любом
		// варианте откатывает и заказ, и уже прошедшие списания.
		for _, it := range resolved {
			ok, err := tx.Variants().DecrementStock(ctx, it.variantID, it.quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &StockConflictError{Name: it.productName}
			}
		}

		if fromCart {
			if _, err := tx.Carts().ClearItems(ctx, cartID); err != nil {
				return err
			}
		}

		full, err := tx.Orders().GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		placed = full
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("заказ создан",
		zap.String("orderNumber", placed.OrderNumber),
		zap.String("userID", userID.String()),
		zap.String("total", placed.Total.String()),
	)

	if s.email != nil {
		user, err := s.store.Users().GetByID(ctx, userID)
		if err == nil && user != nil {
			if err := s.email.SendOrderConfirmation(ctx, user.Email, placed.OrderNumber, placed.Total.InexactFloat64()); err != nil {
				s.log.Warn("не удалось опубликовать событие письма о заказе", zap.Error(err))
			}
		}
	}

	return placed, nil
}

// ListOrders возвращает страницу заказов пользователя, новые первыми.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.store.Orders().ListByUser(ctx, userID, limit, (page-1)*limit)
}

// GetOrder отдаёт заказ только его владельцу; для чужого заказа —
// тот же not found, что и для несуществующего.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	o, err := s.store.Orders().GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

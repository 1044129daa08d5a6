package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисов

// MockUserRepo
type MockUserRepo struct {
	CreateFunc               func(ctx context.Context, u *models.User) error
	GetByEmailFunc           func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailFunc        func(ctx context.Context, email string) (bool, error)
	UpdateFieldsFunc         func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByValidResetTokenFunc func(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockUserRepo) GetByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.GetByValidResetTokenFunc != nil {
		return m.GetByValidResetTokenFunc(ctx, tokenHash, now)
	}
	return nil, nil
}

// MockSessionRepo
type MockSessionRepo struct {
	CreateFunc            func(ctx context.Context, s *models.Session) error
	GetByTokenHashFunc    func(ctx context.Context, tokenHash string) (*models.Session, error)
	DeleteByIDFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByTokenHashFunc func(ctx context.Context, tokenHash string) (int64, error)
	DeleteAllByUserFunc   func(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpiredFunc     func(ctx context.Context) (int64, error)
}

func (m *MockSessionRepo) Create(ctx context.Context, s *models.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *MockSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	if m.GetByTokenHashFunc != nil {
		return m.GetByTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *MockSessionRepo) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return true, nil
}

func (m *MockSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	if m.DeleteByTokenHashFunc != nil {
		return m.DeleteByTokenHashFunc(ctx, tokenHash)
	}
	return 1, nil
}

func (m *MockSessionRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// MockCategoryRepo
type MockCategoryRepo struct {
	CreateFunc     func(ctx context.Context, c *models.Category) error
	ListActiveFunc func(ctx context.Context) ([]repository.CategoryWithCount, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) ListActive(ctx context.Context) ([]repository.CategoryWithCount, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc       func(ctx context.Context, p *models.Product) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBasicByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc         func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBasicByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetBasicByIDFunc != nil {
		return m.GetBasicByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

// MockVariantRepo
type MockVariantRepo struct {
	CreateFunc         func(ctx context.Context, v *models.ProductVariant) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	IncrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

func (m *MockVariantRepo) Create(ctx context.Context, v *models.ProductVariant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVariantRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockVariantRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.IncrementStockFunc != nil {
		return m.IncrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

// MockCartRepo
type MockCartRepo struct {
	GetOrCreateFunc        func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetWithItemsFunc       func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetItemFunc            func(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error)
	GetItemByIDFunc        func(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error)
	CreateItemFunc         func(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantityFunc func(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItemFunc         func(ctx context.Context, itemID uuid.UUID) (bool, error)
	ClearItemsFunc         func(ctx context.Context, cartID uuid.UUID) (int64, error)
}

func (m *MockCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	return &models.Cart{ID: uuid.New(), UserID: userID}, nil
}

func (m *MockCartRepo) GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetWithItemsFunc != nil {
		return m.GetWithItemsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetItem(ctx context.Context, cartID, productID, variantID uuid.UUID) (*models.CartItem, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, cartID, productID, variantID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
	if m.GetItemByIDFunc != nil {
		return m.GetItemByIDFunc(ctx, itemID)
	}
	return nil, nil, nil
}

func (m *MockCartRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	if m.CreateItemFunc != nil {
		return m.CreateItemFunc(ctx, item)
	}
	return nil
}

func (m *MockCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if m.UpdateItemQuantityFunc != nil {
		return m.UpdateItemQuantityFunc(ctx, itemID, quantity)
	}
	return nil
}

func (m *MockCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, itemID)
	}
	return true, nil
}

func (m *MockCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	if m.ClearItemsFunc != nil {
		return m.ClearItemsFunc(ctx, cartID)
	}
	return 0, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc         func(ctx context.Context, o *models.Order) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUserFunc func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUserFunc     func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

// MockStore собирает репозитории в один Store. WithTx по умолчанию просто
// вызывает fn с этим же стором: транзакционность проверяют
// интеграционные тесты, здесь важна логика.
type MockStore struct {
	UsersRepo      *MockUserRepo
	SessionsRepo   *MockSessionRepo
	CategoriesRepo *MockCategoryRepo
	ProductsRepo   *MockProductRepo
	VariantsRepo   *MockVariantRepo
	CartsRepo      *MockCartRepo
	OrdersRepo     *MockOrderRepo

	WithTxFunc func(ctx context.Context, fn func(tx repository.Store) error) error
}

func NewMockStore() *MockStore {
	return &MockStore{
		UsersRepo:      &MockUserRepo{},
		SessionsRepo:   &MockSessionRepo{},
		CategoriesRepo: &MockCategoryRepo{},
		ProductsRepo:   &MockProductRepo{},
		VariantsRepo:   &MockVariantRepo{},
		CartsRepo:      &MockCartRepo{},
		OrdersRepo:     &MockOrderRepo{},
	}
}

func (m *MockStore) Users() repository.UserRepo          { return m.UsersRepo }
func (m *MockStore) Sessions() repository.SessionRepo    { return m.SessionsRepo }
func (m *MockStore) Categories() repository.CategoryRepo { return m.CategoriesRepo }
func (m *MockStore) Products() repository.ProductRepo    { return m.ProductsRepo }
func (m *MockStore) Variants() repository.VariantRepo    { return m.VariantsRepo }
func (m *MockStore) Carts() repository.CartRepo          { return m.CartsRepo }
func (m *MockStore) Orders() repository.OrderRepo        { return m.OrdersRepo }

func (m *MockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m)
}

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

// MockTokenProvider
type MockTokenProvider struct {
	SignAccessFunc func(ctx context.Context, userID uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	NewRefreshFunc func(ctx context.Context, ttl time.Duration) (string, string, time.Time, error)
	ParseFunc      func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, userID uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, userID, role, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) NewRefresh(ctx context.Context, ttl time.Duration) (string, string, time.Time, error) {
	if m.NewRefreshFunc != nil {
		return m.NewRefreshFunc(ctx, ttl)
	}
	return "refresh_opaque", mockHash("refresh_opaque"), time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, token)
	}
	return &service.Claims{}, nil
}

func (m *MockTokenProvider) HashOpaque(opaque string) string {
	return mockHash(opaque)
}

func mockHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// MockEmailProducer
type MockEmailProducer struct {
	WelcomeCalls []string
	ResetCalls   []string
	OrderCalls   []string
}

func (m *MockEmailProducer) SendWelcome(ctx context.Context, email, firstName string) error {
	m.WelcomeCalls = append(m.WelcomeCalls, email)
	return nil
}

func (m *MockEmailProducer) SendPasswordReset(ctx context.Context, email, code string) error {
	m.ResetCalls = append(m.ResetCalls, code)
	return nil
}

func (m *MockEmailProducer) SendOrderConfirmation(ctx context.Context, email, orderNumber string, total float64) error {
	m.OrderCalls = append(m.OrderCalls, orderNumber)
	return nil
}

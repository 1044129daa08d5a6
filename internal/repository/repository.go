package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store — единая точка доступа к репозиториям и граница транзакции.
// Сервисы зависят от интерфейса, а не от глобального подключения:
// в тестах подменяется моками, в транзакции — tx-скоупом.
type Store interface {
	Users() UserRepo
	Sessions() SessionRepo
	Categories() CategoryRepo
	Products() ProductRepo
	Variants() VariantRepo
	Carts() CartRepo
	Orders() OrderRepo

	// WithTx выполняет fn в одной транзакции: все репозитории внутри fn
	// работают через tx, любая ошибка откатывает всё целиком.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type Repository struct {
	db         *gorm.DB
	users      UserRepo
	sessions   SessionRepo
	categories CategoryRepo
	products   ProductRepo
	variants   VariantRepo
	carts      CartRepo
	orders     OrderRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		users:      NewUserRepo(db),
		sessions:   NewSessionRepo(db),
		categories: NewCategoryRepo(db),
		products:   NewProductRepo(db),
		variants:   NewVariantRepo(db),
		carts:      NewCartRepo(db),
		orders:     NewOrderRepo(db),
	}
}

func (r *Repository) Users() UserRepo          { return r.users }
func (r *Repository) Sessions() SessionRepo    { return r.sessions }
func (r *Repository) Categories() CategoryRepo { return r.categories }
func (r *Repository) Products() ProductRepo    { return r.products }
func (r *Repository) Variants() VariantRepo    { return r.variants }
func (r *Repository) Carts() CartRepo          { return r.carts }
func (r *Repository) Orders() OrderRepo        { return r.orders }

func (r *Repository) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

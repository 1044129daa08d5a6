package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email               string     `gorm:"not null"` // уникальность через функциональный индекс lower(email)
	Password            string     `gorm:"not null"` // bcrypt hash
	FirstName           string     `gorm:"type:text;not null"`
	LastName            string     `gorm:"type:text;not null"`
	Phone               *string    `gorm:"type:text"`
	AvatarURL           *string    `gorm:"type:text"`
	Role                Role       `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`
	IsEmailVerified     bool       `gorm:"not null;default:false"`
	IsActive            bool       `gorm:"not null;default:true"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LockUntil           *time.Time `gorm:"index"`
	ResetTokenHash      *string    `gorm:"type:text;index"`
	ResetTokenExp       *time.Time
	LastLoginAt         *time.Time
	DeletedAt           *time.Time `gorm:"index"` // soft delete, проверяется явно
	CreatedAt           time.Time  `gorm:"not null;default:now()"`
	UpdatedAt           time.Time  `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

// Session — одна строка на выданный refresh-токен; ротация удаляет и создаёт заново.
type Session struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	RefreshTokenHash string    `gorm:"not null;index"` // sha256 от opaque-токена
	UserAgent        *string   `gorm:"type:text"`
	IP               *string   `gorm:"type:inet"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	CreatedAt        time.Time `gorm:"not null;default:now()"`
}

func (Session) TableName() string { return "sessions" }

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Slug        string    `gorm:"type:text;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	SortOrder   int       `gorm:"not null;default:0;index"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
	UpdatedAt   time.Time `gorm:"not null;default:now()"`

	Products []Product `gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name         string           `gorm:"type:text;not null"`
	Slug         string           `gorm:"type:text;not null;uniqueIndex"`
	Description  string           `gorm:"type:text"`
	Price        decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	ComparePrice *decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsFeatured   bool             `gorm:"not null;default:false;index"`
	IsActive     bool             `gorm:"not null;default:true;index"`
	DeletedAt    *time.Time       `gorm:"index"` // soft delete, проверяется явно
	CreatedAt    time.Time        `gorm:"not null;default:now();index"`
	UpdatedAt    time.Time        `gorm:"not null;default:now()"`

	Category Category         `gorm:"foreignKey:CategoryID"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	AltText   string    `gorm:"type:text"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductImage) TableName() string { return "product_images" }

// ProductVariant — конкретная покупаемая конфигурация товара.
// Stock — единственный разделяемый изменяемый ресурс всей системы,
// мутации только через условный декремент (CHECK stock >= 0 в миграции).
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Size      string    `gorm:"type:text;not null"`
	Color     string    `gorm:"type:text;not null"`
	ColorHex  string    `gorm:"type:text"`
	SKU       string    `gorm:"type:text;not null;uniqueIndex"`
	Stock     int       `gorm:"not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductVariant) TableName() string { return "product_variants" }

type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_cart_product_variant"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product_variant"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product_variant"`
	Quantity  int       `gorm:"type:int;not null"` // CHECK quantity >= 1 в миграции
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Product Product        `gorm:"foreignKey:ProductID"`
	Variant ProductVariant `gorm:"foreignKey:VariantID"`
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ShippingAddress встраивается в заказ как снимок — переживает
// редактирование и удаление адресов пользователя.
type ShippingAddress struct {
	FullName   string `gorm:"column:ship_full_name;type:text;not null" json:"fullName"`
	Phone      string `gorm:"column:ship_phone;type:text;not null" json:"phone"`
	Address    string `gorm:"column:ship_address;type:text;not null" json:"address"`
	City       string `gorm:"column:ship_city;type:text;not null" json:"city"`
	PostalCode string `gorm:"column:ship_postal_code;type:text;not null" json:"postalCode"`
	Country    string `gorm:"column:ship_country;type:text;not null;default:'TR'" json:"country"`
}

// Order неизменяем после создания, кроме переходов статуса.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string          `gorm:"type:text;not null;uniqueIndex"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ShippingCost    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ShippingAddress ShippingAddress `gorm:"embedded"`
	Notes           *string         `gorm:"type:text"`
	Status          OrderStatus     `gorm:"type:text;not null;default:'PENDING';index"`
	CreatedAt       time.Time       `gorm:"not null;default:now();index"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem — снимок позиции на момент создания заказа. UnitPrice и Total
/// фиксируются один раз и никогда не пересчитываются: именно это делает заказ
// историческим документом, независимым от последующих правок каталога.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"type:int;not null"` // CHECK quantity > 0 в миграции
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"not null;default:now()"`

	// только для отображения при чтении, не часть снимка
	Product Product        `gorm:"foreignKey:ProductID"`
	Variant ProductVariant `gorm:"foreignKey:VariantID"`
}

func (OrderItem) TableName() string { return "order_items" }

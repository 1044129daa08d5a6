package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher — хеширование и проверка паролей.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Claims — полезная нагрузка access-токена.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// TokenProvider выпускает access-токены и непрозрачные refresh-токены.
// Для refresh наружу уходит сам токен, в БД кладётся только его хеш.
type TokenProvider interface {
	SignAccess(ctx context.Context, userID uuid.UUID, role string, ttl time.Duration) (token string, expiresAt time.Time, err error)
	NewRefresh(ctx context.Context, ttl time.Duration) (opaque string, hash string, expiresAt time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
	HashOpaque(opaque string) string
}

// TokenPair — результат успешной аутентификации.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// EmailProducer публикует события для отправки почты во внешний
// консьюмер. Реализация может быть nil-безопасной заглушкой в тестах.
type EmailProducer interface {
	SendWelcome(ctx context.Context, email, firstName string) error
	SendPasswordReset(ctx context.Context, email, code string) error
	SendOrderConfirmation(ctx context.Context, email, orderNumber string, total float64) error
}

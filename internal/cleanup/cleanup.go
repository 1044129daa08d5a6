package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CleanupService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCleanupService(db *gorm.DB, log *zap.Logger) *CleanupService {
	return &CleanupService{
		db:  db,
		log: log,
	}
}

// CleanupExpiredSessions удаляет сессии с истёкшим refresh-токеном.
func (c *CleanupService) CleanupExpiredSessions(ctx context.Context) error {
	result := c.db.WithContext(ctx).
		Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if result.Error != nil {
		c.log.Error("failed to cleanup expired sessions", zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected > 0 {
		c.log.Info("cleaned up expired sessions", zap.Int64("count", result.RowsAffected))
	}
	return nil
}

// CleanupExpiredResetTokens обнуляет просроченные коды сброса пароля.
func (c *CleanupService) CleanupExpiredResetTokens(ctx context.Context) error {
	result := c.db.WithContext(ctx).
		Exec("UPDATE users SET reset_token_hash = NULL, reset_token_exp = NULL WHERE reset_token_exp IS NOT NULL AND reset_token_exp < ?", time.Now())
	if result.Error != nil {
		c.log.Error("failed to cleanup expired reset tokens", zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected > 0 {
		c.log.Info("cleaned up expired reset tokens", zap.Int64("count", result.RowsAffected))
	}
	return nil
}

// CleanupStaleCarts удаляет позиции корзин, не менявшихся больше 90 дней.
func (c *CleanupService) CleanupStaleCarts(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -90)

	result := c.db.WithContext(ctx).
		Exec("DELETE FROM cart_items WHERE updated_at < ?", cutoff)
	if result.Error != nil {
		c.log.Error("failed to cleanup stale cart items", zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected > 0 {
		c.log.Info("cleaned up stale cart items", zap.Int64("count", result.RowsAffected))
	}
	return nil
}

// RunFullCleanup выполняет все задачи очистки
func (c *CleanupService) RunFullCleanup(ctx context.Context) error {
	c.log.Info("starting full cleanup")

	if err := c.CleanupExpiredSessions(ctx); err != nil {
		return err
	}

	if err := c.CleanupExpiredResetTokens(ctx); err != nil {
		return err
	}

	if err := c.CleanupStaleCarts(ctx); err != nil {
		return err
	}

	c.log.Info("full cleanup completed")
	return nil
}

package repository

import (
	"context"
	"errors"

	"storefront-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepo interface {
	Create(ctx context.Context, s *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) SessionRepo { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).First(&s, "refresh_token_hash = ?", tokenHash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *sessionRepo) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *sessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Session{}, "refresh_token_hash = ?", tokenHash)
	return tx.RowsAffected, tx.Error
}

func (r *sessionRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Session{}, "user_id = ?", userID)
	return tx.RowsAffected, tx.Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Session{}, "expires_at < now()")
	return tx.RowsAffected, tx.Error
}

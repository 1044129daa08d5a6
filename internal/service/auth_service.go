package service

import (
	"context"
	"math"
	"strings"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

const (
	maxFailedLoginAttempts = 5
	loginLockDuration      = 30 * time.Minute
	resetTokenTTL          = time.Hour
	resetCodeDigits        = 32
)

type AuthService struct {
	store  repository.Store
	hasher PasswordHasher
	tokens TokenProvider
	email  EmailProducer
	log    *zap.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens TokenProvider, email EmailProducer, log *zap.Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		email:      email,
		log:        log,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ClientMeta — атрибуты клиента, сохраняемые вместе с сессией.
type ClientMeta struct {
	UserAgent string
	IP        string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta ClientMeta) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      models.RoleCustomer,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.createSession(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("пользователь зарегистрирован", zap.String("userID", user.ID.String()))

	if s.email != nil {
		if err := s.email.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
			s.log.Warn("не удалось опубликовать приветственное письмо", zap.Error(err))
		}
	}

	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*models.User, *TokenPair, error) {
	user, err := s.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.DeletedAt != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	now := s.now()
	if user.LockUntil != nil && user.LockUntil.After(now) {
		minutes := int(math.Ceil(user.LockUntil.Sub(now).Minutes()))
		return nil, nil, &AccountLockedError{Minutes: minutes}
	}

	if !s.hasher.Compare(user.Password, password) {
		attempts := user.FailedLoginAttempts + 1
		fields := map[string]any{"failed_login_attempts": attempts}
		if attempts >= maxFailedLoginAttempts {
			fields["lock_until"] = now.Add(loginLockDuration)
			fields["failed_login_attempts"] = 0
			s.log.Warn("аккаунт заблокирован после неудачных попыток входа",
				zap.String("userID", user.ID.String()))
		}
		if uerr := s.store.Users().UpdateFields(ctx, user.ID, fields); uerr != nil {
			s.log.Error("не удалось обновить счётчик неудачных попыток", zap.Error(uerr))
		}
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.store.Users().UpdateFields(ctx, user.ID, map[string]any{
		"failed_login_attempts": 0,
		"lock_until":            nil,
		"last_login_at":         now,
	}); err != nil {
		return nil, nil, err
	}

	pair, err := s.createSession(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	deleted, err := s.store.Sessions().DeleteByTokenHash(ctx, s.tokens.HashOpaque(refreshToken))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrInvalidSession
	}
	return nil
}

// Refresh ротирует refresh-токен: старая сессия удаляется, выдаётся
// новая пара. Повторное использование старого токена даст session expired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*models.User, *TokenPair, error) {
	sess, err := s.store.Sessions().GetByTokenHash(ctx, s.tokens.HashOpaque(refreshToken))
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrSessionExpired
	}
	if sess.ExpiresAt.Before(s.now()) {
		if _, derr := s.store.Sessions().DeleteByID(ctx, sess.ID); derr != nil {
			s.log.Error("не удалось удалить истёкшую сессию", zap.Error(derr))
		}
		return nil, nil, ErrSessionExpired
	}

	user, err := s.store.Users().GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.DeletedAt != nil || !user.IsActive {
		if _, derr := s.store.Sessions().DeleteByID(ctx, sess.ID); derr != nil {
			s.log.Error("не удалось удалить сессию деактивированного пользователя", zap.Error(derr))
		}
		return nil, nil, ErrAccountDeactivated
	}

	if _, err := s.store.Sessions().DeleteByID(ctx, sess.ID); err != nil {
		return nil, nil, err
	}

	pair, err := s.createSession(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ForgotPassword всегда отвечает одинаково, существует почта или нет.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil || user.DeletedAt != nil || !user.IsActive {
		return nil
	}

	code, err := nanorand.Gen(resetCodeDigits)
	if err != nil {
		return err
	}
	exp := s.now().Add(resetTokenTTL)
	if err := s.store.Users().UpdateFields(ctx, user.ID, map[string]any{
		"reset_token_hash": s.tokens.HashOpaque(code),
		"reset_token_exp":  exp,
	}); err != nil {
		return err
	}

	s.log.Info("выдан код сброса пароля", zap.String("userID", user.ID.String()))

	if s.email != nil {
		if err := s.email.SendPasswordReset(ctx, user.Email, code); err != nil {
			s.log.Warn("не удалось опубликовать письмо сброса пароля", zap.Error(err))
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.store.Users().GetByValidResetToken(ctx, s.tokens.HashOpaque(token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.Users().UpdateFields(ctx, user.ID, map[string]any{
		"password":              hash,
		"reset_token_hash":      nil,
		"reset_token_exp":       nil,
		"failed_login_attempts": 0,
		"lock_until":            nil,
	}); err != nil {
		return err
	}

	// Смена пароля разлогинивает все устройства.
	if _, err := s.store.Sessions().DeleteAllByUser(ctx, user.ID); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.DeletedAt != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.User, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if len(fields) == 0 {
		return user, nil
	}
	if err := s.store.Users().UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.store.Users().GetByID(ctx, userID)
}

func (s *AuthService) ParseAccess(ctx context.Context, token string) (*Claims, error) {
	return s.tokens.ParseAndValidateAccess(ctx, token)
}

func (s *AuthService) createSession(ctx context.Context, user *models.User, meta ClientMeta) (*TokenPair, error) {
	access, accessExp, err := s.tokens.SignAccess(ctx, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}
	opaque, hash, refreshExp, err := s.tokens.NewRefresh(ctx, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		UserID:           user.ID,
		RefreshTokenHash: hash,
		ExpiresAt:        refreshExp,
	}
	if meta.UserAgent != "" {
		sess.UserAgent = &meta.UserAgent
	}
	if meta.IP != "" {
		sess.IP = &meta.IP
	}
	if err := s.store.Sessions().Create(ctx, sess); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     opaque,
		RefreshExpiresAt: refreshExp,
	}, nil
}

package handlers

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func clientMeta(c *gin.Context) service.ClientMeta {
	return service.ClientMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и сразу выдаёт пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Неверные данные"
// @Failure 409 {object} dto.ErrorResponse "Email уже занят"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, pair, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, clientMeta(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.FromAuth(user, pair)))
}

// Login godoc
// @Summary Вход пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные входа"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Неверные учётные данные"
// @Failure 429 {object} dto.ErrorResponse "Аккаунт временно заблокирован"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromAuth(user, pair)))
}

// Logout godoc
// @Summary Выход (инвалидация refresh-токена)
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.LogoutRequest true "Refresh-токен"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse "Сессия не найдена"
// @Security BearerAuth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKWithMessage(nil, "Logged out successfully"))
}

// Refresh godoc
// @Summary Ротация refresh-токена
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Refresh-токен"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Токен истёк или неизвестен"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientMeta(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromAuth(user, pair)))
}

// ForgotPassword godoc
// @Summary Запрос кода сброса пароля
// @Description Ответ одинаков вне зависимости от существования почты
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.Response
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKWithMessage(nil, "If the email exists, a reset link has been sent"))
}

// ResetPassword godoc
// @Summary Сброс пароля по коду
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Код и новый пароль"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Код неверен или истёк"
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKWithMessage(nil, "Password has been reset"))
}

// GetMe godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	user, err := h.auth.GetMe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromUser(user)))
}

// UpdateProfile godoc
// @Summary Частичное обновление профиля
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auth/me [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, service.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromUser(user)))
}

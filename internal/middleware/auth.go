package middleware

import (
	"net/http"
	"strings"

	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// AuthRequired проверяет Bearer-токен и кладёт userID/роль в контекст gin.
func AuthRequired(tokens service.TokenProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Unauthorized"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), token)
		if err != nil {
			log.Debug("отклонён access-токен", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Err(dto.CodeUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// ExtractBearerToken извлекает токен из заголовка Authorization,
// устойчиво к лишним кавычкам и хвостам после запятой.
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return strings.Trim(t, " \"'"), true
}

package middleware

import (
	"net/http"
	"time"

	"storefront-api/internal/cache"
	"storefront-api/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit режет запросы по IP через Redis-счётчик. Без Redis (rdb ==
// nil) лимитер выключен: деградация — открытый доступ, а не отказ.
func RateLimit(rdb *cache.RedisClient, log *zap.Logger, prefix string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := prefix + ":" + c.ClientIP()
		allowed, err := rdb.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn("лимитер недоступен, запрос пропущен", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.Err(dto.CodeRateLimitExceeded, "Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

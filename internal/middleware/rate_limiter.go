package middleware

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateInfo estado de la ventana actual del cliente
type RateInfo struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

const rateInfoKey = "rateLimit"

// RateLimiter limita por ventana fija usando un contador en Redis por IP, método y ruta
func RateLimiter(client redis.Cmdable, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + endpoint
		resetKey := key + ":resetAt"

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limiter unavailable"})
			return
		}

		resetAtUnix, err := client.Get(ctx, resetKey).Int64()
		switch {
		// Primera petición de la ventana, o un contador que quedó sin expiración
		case count == 1 || errors.Is(err, redis.Nil):
			resetAtUnix = time.Now().Add(window).Unix()
			_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Expire(ctx, key, window)
				pipe.Set(ctx, resetKey, resetAtUnix, window)
				return nil
			})
			if err != nil {
				log.Printf("⚠️ Rate limiter could not start window for %s: %v", key, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limiter unavailable"})
				return
			}
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limiter unavailable"})
			return
		}
		resetAt := time.Unix(resetAtUnix, 0)

		rate := &RateInfo{
			Limit:          maxRequests,
			Remaining:      max(maxRequests-int(count), 0),
			ResetAt:        resetAt,
			ResetInSeconds: max(int(time.Until(resetAt).Seconds()), 0),
		}
		c.Set(rateInfoKey, rate)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rate.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rate.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAtUnix, 10))

		if int(count) > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests",
				"rate_limit": rate,
			})
			return
		}

		c.Next()
	}
}

// RateFromContext devuelve el estado del limitador si la petición pasó por él
func RateFromContext(c *gin.Context) *RateInfo {
	if v, ok := c.Get(rateInfoKey); ok {
		if rate, ok := v.(*RateInfo); ok {
			return rate
		}
	}
	return nil
}

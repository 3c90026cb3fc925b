package middlewares

import (
	"fmt"
	"time"

	"realtime_chat_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateLimitConfig one limiter tier
type RateLimitConfig struct {
	Prefix string
	Max    int64
	Window time.Duration
}

// GeneralLimit default API tier, 100 requests per 15 minutes per IP
func GeneralLimit() RateLimitConfig {
	return RateLimitConfig{Prefix: "rl:general", Max: 100, Window: 15 * time.Minute}
}

// AuthLimit login/signup tier, 5 attempts per 15 minutes per IP
func AuthLimit() RateLimitConfig {
	return RateLimitConfig{Prefix: "rl:auth", Max: 5, Window: 15 * time.Minute}
}

// ChatLimit messaging tier, 30 requests per minute per IP
func ChatLimit() RateLimitConfig {
	return RateLimitConfig{Prefix: "rl:chat", Max: 30, Window: time.Minute}
}

// RateLimiter counts requests per client IP in redis with a windowed key.
// Redis being down fails open, limiting is advisory.
func RateLimiter(client *redis.Client, cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", cfg.Prefix, c.IP())

		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Log.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		if count == 1 {
			if err := client.Expire(c.Context(), key, cfg.Window).Err(); err != nil {
				logger.Log.Warn("rate limiter expire failed", zap.Error(err))
			}
		}

		if count > cfg.Max {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests, please try again later.",
				"retry_after": cfg.Window.String(),
			})
		}

		return c.Next()
	}
}

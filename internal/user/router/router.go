package router

import (
	"realtime_chat_service/internal/user/app"
	"realtime_chat_service/pkg/middlewares"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mount the account routes
func RegisterRoutes(r *fiber.App, redisClient *redis.Client, userHandler *app.UserHandler) {
	authRoutes := r.Group("/api/auth")
	authRoutes.Post("/signup", middlewares.RateLimiter(redisClient, middlewares.AuthLimit()), userHandler.Signup)
	authRoutes.Post("/signin", middlewares.RateLimiter(redisClient, middlewares.AuthLimit()), userHandler.Signin)

	authRoutes.Use(middlewares.JWTMiddleware())
	authRoutes.Post("/signout", userHandler.Signout)
	authRoutes.Get("/profile", userHandler.Profile)

	userRoutes := r.Group("/api/users", middlewares.RateLimiter(redisClient, middlewares.GeneralLimit()), middlewares.JWTMiddleware())
	userRoutes.Get("/", userHandler.AllUsers)
	userRoutes.Get("/search", userHandler.Search)
}

package router

import (
	"context"

	"realtime_chat_service/internal/chat/app"
	"realtime_chat_service/pkg/middlewares"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mount the chat REST routes and the WebSocket endpoint
func RegisterRoutes(r *fiber.App, redisClient *redis.Client, chatHandler *app.ChatHandler, wsHandler *app.ChatWebsocketHandler) {
	chatRoutes := r.Group("/api/chat", middlewares.RateLimiter(redisClient, middlewares.GeneralLimit()), middlewares.JWTMiddleware())
	chatRoutes.Get("/conversations", chatHandler.Conversations)
	chatRoutes.Post("/conversations", middlewares.RateLimiter(redisClient, middlewares.ChatLimit()), chatHandler.CreateOrGetConversation)
	chatRoutes.Get("/conversations/:id/messages", chatHandler.ConversationMessages)
	chatRoutes.Delete("/messages/:id", chatHandler.DeleteMessage)
	chatRoutes.Post("/media", middlewares.RateLimiter(redisClient, middlewares.ChatLimit()), chatHandler.UploadMedia)

	r.Use("/ws", middlewares.JWTMiddleware(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		wsHandler.HandleConnection(context.Background(), conn)
	}))
}

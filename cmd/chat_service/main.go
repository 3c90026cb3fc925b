package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"realtime_chat_service/internal/chat/app"
	"realtime_chat_service/internal/chat/repository"
	chatrouter "realtime_chat_service/internal/chat/router"
	userapp "realtime_chat_service/internal/user/app"
	userdomain "realtime_chat_service/internal/user/domain"
	userrepo "realtime_chat_service/internal/user/repository"
	userrouter "realtime_chat_service/internal/user/router"
	"realtime_chat_service/pkg/config"
	"realtime_chat_service/pkg/database"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	token.SetSecret(os.Getenv("TOKEN_SECRET"))
	token.SetExpiration(cfg.Token.Expiration)

	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	if err := userrepo.EnsureUserIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal(fmt.Sprintf("ensure user indexes err : %v", err))
	}
	if err := repository.EnsureConversationIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal(fmt.Sprintf("ensure conversation indexes err : %v", err))
	}
	if err := repository.EnsureMessageIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal(fmt.Sprintf("ensure message indexes err : %v", err))
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	media, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minio err : %v", err))
	}

	userRepository := userrepo.NewMongoUserRepository(mongo.Database)
	convRepository := repository.NewMongoConversationRepository(mongo.Database)
	msgRepository := repository.NewMongoMessageRepository(mongo.Database)
	sessionRepository := database.NewRedisRepository[userdomain.UserSession](redisClient)

	hub := app.NewHub()
	presence := app.NewPresenceRegistry(userRepository, hub)
	messageUC := app.NewSendMessageUseCase(convRepository, msgRepository, userRepository, hub)
	signalUC := app.NewSignalUseCase(convRepository, msgRepository, hub)
	convUC := app.NewConversationUseCase(convRepository, userRepository)
	userUC := userapp.NewUserUseCase(userRepository, cfg.Token.SessionTTL, sessionRepository)

	userHandler := userapp.NewUserHandler(userUC)
	chatHandler := app.NewChatHandler(convUC, messageUC, media)
	wsHandler := app.NewChatWebsocketHandler(presence, hub, messageUC, signalUC)

	fiberApp := fiber.New()
	fiberApp.Use(fiber_log.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	userrouter.RegisterRoutes(fiberApp, redisClient, userHandler)
	chatrouter.RegisterRoutes(fiberApp, redisClient, chatHandler, wsHandler)

	logger.Log.Info("chat_service start", zap.String("port", cfg.Port))
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal(fmt.Sprintf("chat_service listen err : %v", err))
	}
}

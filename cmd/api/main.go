package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"palaver/config"
	"palaver/internal/bus"
	"palaver/internal/handler"
	"palaver/internal/repository"
	"palaver/internal/server"
	"palaver/internal/services"
	"palaver/pkg/database"
	"palaver/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	var eventBus *bus.Bus
	if cfg.EventBroker == config.BrokerRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		eventBus = bus.NewRedisBus(client, l)
	} else {
		eventBus = bus.NewMemoryBus()
	}

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, messageRepo)
	conversationService := services.NewConversationService(userRepo, messageRepo)
	messageService := services.NewMessageService(userRepo, messageRepo, eventBus.NewMessage, l)
	reactionService := services.NewReactionService(messageRepo, reactionRepo, eventBus.NewReaction, l)

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Message:   handler.NewMessageHandler(conversationService, messageService, reactionService),
		Subscribe: server.NewSubscriptionHandler(eventBus, authService, messageRepo, l),
	}, authService)

	if err := srv.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

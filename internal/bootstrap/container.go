package bootstrap

import (
	"context"
	"log"

	"exam-companion-be/internal/config"
	"exam-companion-be/internal/controller"
	"exam-companion-be/internal/pkg/logger"
	"exam-companion-be/internal/repository/memory"
	"exam-companion-be/internal/repository/unitofwork"
	"exam-companion-be/internal/service"
	"exam-companion-be/pkg/llm/factory"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AccessController controller.IAccessController
	ChatController   controller.IChatController
	AdminController  controller.IAdminController

	// Shared infrastructure
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. In-memory study loop state
	loopStates := memory.NewLoopStateRepository()

	// 4. Redis (optional, best effort cache for access codes)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Access code caching disabled", err)
			rdb = nil
		}
	}

	// 5. Services
	accessService := service.NewAccessService(uowFactory, rdb, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, loopStates, sysLogger)
	adminService := service.NewAdminService(uowFactory, rdb, sysLogger)

	// 6. Controllers
	return &Container{
		AccessController: controller.NewAccessController(accessService),
		ChatController:   controller.NewChatController(chatService),
		AdminController:  controller.NewAdminController(adminService),
		Logger:           sysLogger,
	}
}

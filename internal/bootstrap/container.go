package bootstrap

import (
	"context"
	"log"

	"studyflow-be/internal/config"
	"studyflow-be/internal/controller"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/internal/repository/implementation"
	"studyflow-be/internal/security"
	"studyflow-be/internal/security/ratelimit"
	"studyflow-be/internal/service"
	"studyflow-be/pkg/embedding"
	"studyflow-be/pkg/llm/factory"
	"studyflow-be/pkg/llm/fallback"
	"studyflow-be/pkg/rag/retriever"
	"studyflow-be/pkg/storage"

	pktNats "studyflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController  controller.IChatbotController
	AnalysisController controller.IAnalysisController
	IngestController   controller.IIngestController
	ImportController   controller.IImportController
	AdminController    controller.IAdminController

	// Security perimeter shared by every route group
	SecurityMiddleware *security.Middleware

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ingestLogger := logger.NewIsolatedLogger("logs/ingestion.log")

	chunkRepository := implementation.NewDocumentChunkRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	// Query embeddings are cached; document embeddings pass through.
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider)

	candidateCfg := factory.CandidateConfig{
		HuggingFaceKey:     cfg.Keys.HuggingFace,
		HuggingFaceBaseURL: cfg.Ai.HuggingFaceURL,
		HuggingFaceModels:  cfg.Ai.HuggingFaceModels,
		OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
		OllamaChatModel:    cfg.Ai.OllamaChatModel,
	}
	fallbackLogger := log.Default()
	chatDriver := fallback.NewDriver(factory.NewCandidates(candidateCfg), fallback.ChatPolicy(), fallbackLogger)
	analysisDriver := fallback.NewDriver(factory.NewAnalysisCandidates(candidateCfg), fallback.AnalysisPolicy(), fallbackLogger)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	var limiter ratelimit.Limiter
	if cfg.App.RateLimitBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		limiter = ratelimit.NewRedisLimiter(rdb)
		log.Printf("[INFO] Using Rate Limit Backend: REDIS")
	} else {
		limiter = ratelimit.NewMemoryLimiter()
		log.Printf("[INFO] Using Rate Limit Backend: MEMORY")
	}

	originPolicy := security.NewOriginPolicy(cfg.App.Environment)
	securityMiddleware := security.NewMiddleware(originPolicy, limiter, sysLogger)

	storageClient := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.AdminKey)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		storageClient,
		chunkRepository,
		embeddingProvider,
		natsPub,
		ingestLogger,
	)

	docRetriever := retriever.NewRetriever(embeddingProvider, chunkRepository, log.Default())
	chatbotService := service.NewChatbotService(docRetriever, chatDriver, sysLogger)
	analysisService := service.NewAnalysisService(analysisDriver, sysLogger)
	ingestService := service.NewIngestService(publisherService, sysLogger)
	importService := service.NewImportService(sysLogger)
	adminService := service.NewAdminService(sysLogger)

	return &Container{
		ChatbotController:  controller.NewChatbotController(chatbotService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		IngestController:   controller.NewIngestController(ingestService),
		ImportController:   controller.NewImportController(importService),
		AdminController:    controller.NewAdminController(adminService),

		SecurityMiddleware: securityMiddleware,

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}

package bootstrap

import (
	"context"
	"log"

	"ai-luthier-be/internal/config"
	"ai-luthier-be/internal/controller"
	"ai-luthier-be/internal/handler"
	"ai-luthier-be/internal/pkg/logger"
	"ai-luthier-be/internal/repository/memory"
	"ai-luthier-be/internal/service"
	internalWS "ai-luthier-be/internal/websocket"
	"ai-luthier-be/pkg/gemini"

	pktNats "ai-luthier-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	WorkshopController controller.IWorkshopController
	AdvisorController  controller.IAdvisorController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *internalWS.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	geminiClient, err := gemini.NewClient(cfg.Keys.GoogleGemini)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gemini client: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS (optional mirror of workshop events)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// Redis (optional cross-instance websocket fan-out)
	rdb := newRedisClient(cfg.App.RedisURL)
	if rdb != nil {
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := internalWS.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub, natsPub, sysLogger)
	auditService := service.NewAuditService(pubSub, cfg.App.EventsTopic, sysLogger)

	workshopService := service.NewWorkshopService(sessionRepo, geminiClient, publisherService, sysLogger)
	advisorService := service.NewAdvisorService(sessionRepo, geminiClient, wsHub, publisherService, sysLogger)

	// Handler
	streamHandler := handler.NewStreamHandler(sessionRepo, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,

		WorkshopController: controller.NewWorkshopController(workshopService, auditService),
		AdvisorController:  controller.NewAdvisorController(advisorService),

		AuditService: auditService,
	}
}

// newRedisClient builds the hub's Redis client. An empty URL means Redis is
// not configured; the hub then skips cross-instance fan-out entirely instead
// of publishing every frame into a dead connection.
func newRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	return redis.NewClient(opt)
}

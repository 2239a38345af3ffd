package bootstrap

import (
	"context"
	"log"

	"chatbot-flow-be/internal/config"
	"chatbot-flow-be/internal/controller"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/internal/service"
	"chatbot-flow-be/pkg/engine/graph"
	"chatbot-flow-be/pkg/engine/nlp"

	pktNats "chatbot-flow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BotController      controller.IBotController
	WorkflowController controller.IWorkflowController
	IntentController   controller.IIntentController
	ChatController     controller.IChatController

	// Background services (run by main)
	AnalyticsService service.IAnalyticsService
	GraphSubscriber  *graph.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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

	// 4. Engine
	graphStore := service.NewGraphStore(uowFactory)
	loader := graph.NewLoader(graphStore, cfg.Engine.GraphCacheTTL, sysLogger)
	graphSubscriber := graph.NewSubscriber(rdb, loader, sysLogger)

	intentService := service.NewIntentService(uowFactory, cfg.Engine.IntentCacheTTL, sysLogger)
	classifier := nlp.NewClassifier(intentService)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Engine.AnalyticsTopic)
	chatService := service.NewChatService(uowFactory, loader, classifier, publisherService, sysLogger)
	botService := service.NewBotService(uowFactory)
	workflowService := service.NewWorkflowService(uowFactory, loader, rdb, sysLogger)
	analyticsService := service.NewAnalyticsService(pubSub, cfg.Engine.AnalyticsTopic, uowFactory, natsPub, sysLogger)

	// 6. Controllers
	return &Container{
		BotController:      controller.NewBotController(botService),
		WorkflowController: controller.NewWorkflowController(workflowService, analyticsService),
		IntentController:   controller.NewIntentController(intentService),
		ChatController:     controller.NewChatController(chatService),

		AnalyticsService: analyticsService,
		GraphSubscriber:  graphSubscriber,
	}
}

// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"
	"time"

	"rag-admin-be/internal/config"
	"rag-admin-be/internal/controller"
	"rag-admin-be/internal/handler"
	"rag-admin-be/internal/job"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/pkg/mailer"
	"rag-admin-be/internal/repository/implementation"
	"rag-admin-be/internal/repository/memory"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/internal/service"
	"rag-admin-be/internal/websocket"
	"rag-admin-be/pkg/admin/dashboard"
	"rag-admin-be/pkg/admin/user"
	"rag-admin-be/pkg/citation"
	"rag-admin-be/pkg/events"
	"rag-admin-be/pkg/ingest"

	pktNats "rag-admin-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController               controller.IAuthController
	UserController               controller.IUserController
	KnowledgeBaseController      controller.IKnowledgeBaseController
	DatasourceController         controller.IDatasourceController
	DocumentController           controller.IDocumentController
	GraphController              controller.IGraphController
	ChatEngineController         controller.IChatEngineController
	AIModelController            controller.IAIModelController
	DatabaseConnectionController controller.IDatabaseConnectionController
	FeedbackController           controller.IFeedbackController
	EvaluationController         controller.IEvaluationController
	SiteSettingController        controller.ISiteSettingController
	ChatController               controller.IChatController
	SystemController             controller.ISystemController

	// Background workers (exposed for main.go to run)
	IngestConsumer     service.IIngestConsumerService
	EvaluationConsumer service.IEvaluationConsumerService
	Scheduler          *job.Scheduler

	// Notification system
	NotificationService *service.NotificationService
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. In-process work queues. Ingestion and evaluation run as separate
	// topics so a slow crawl cannot starve evaluation runs.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	ingestPublisher := service.NewPublisherService(cfg.Ingest.Topic, pubSub)
	evalPublisher := service.NewPublisherService(cfg.Eval.Topic, pubSub)

	// 3. External infrastructure. Both NATS and Redis are optional: the
	// platform degrades to no notifications and uncached previews.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	var eventPublisher events.Publisher = events.NoopPublisher{}
	if natsPub != nil {
		eventPublisher = events.NewNatsPublisher(natsPub, sysLogger)
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

	// 4. WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Shared domain components
	progressStore := memory.NewProgressStore()
	citationResolver := citation.NewResolver(implementation.NewChunkRepository(db), rdb, sysLogger)
	userManager := user.NewManager(sysLogger, eventPublisher)
	statsAggregator := dashboard.NewAggregator(sysLogger)

	// 6. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHour)
	userService := service.NewUserService(uowFactory, userManager, emailService, sysLogger)
	knowledgeBaseService := service.NewKnowledgeBaseService(uowFactory)
	datasourceService := service.NewDatasourceService(
		uowFactory,
		ingestPublisher,
		eventPublisher,
		sysLogger,
		cfg.App.UploadDir,
	)
	documentService := service.NewDocumentService(uowFactory, ingestPublisher)
	graphService := service.NewGraphService(uowFactory, sysLogger)
	chatEngineService := service.NewChatEngineService(uowFactory)
	aiModelService := service.NewAIModelService(uowFactory)
	databaseConnectionService := service.NewDatabaseConnectionService(uowFactory)
	chatService := service.NewChatService(uowFactory, citationResolver)
	feedbackService := service.NewFeedbackService(uowFactory, eventPublisher)
	evaluationService := service.NewEvaluationService(
		uowFactory,
		evalPublisher,
		eventPublisher,
		progressStore,
	)
	siteSettingService := service.NewSiteSettingService(uowFactory)
	systemService := service.NewSystemService(uowFactory, sysLogger, statsAggregator)

	// 7. Workers
	ingestConsumer := service.NewIngestConsumerService(
		pubSub,
		cfg.Ingest.Topic,
		uowFactory,
		ingest.NewFetcher(time.Duration(cfg.Ingest.FetchTimeoutMs)*time.Millisecond),
		eventPublisher,
		cfg.Ingest.SitemapMaxURLs,
	)
	evaluationConsumer := service.NewEvaluationConsumerService(
		pubSub,
		cfg.Eval.Topic,
		uowFactory,
		progressStore,
		eventPublisher,
	)

	// 8. Notification system. The hub implements NotificationDelivery.
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, eventPublisher, wsHub, wsLogger)

	// 9. Maintenance jobs
	scheduler := job.NewScheduler(uowFactory, notifService, sysLogger)

	return &Container{
		AuthController:               controller.NewAuthController(authService),
		UserController:               controller.NewUserController(userService),
		KnowledgeBaseController:      controller.NewKnowledgeBaseController(knowledgeBaseService),
		DatasourceController:         controller.NewDatasourceController(datasourceService),
		DocumentController:           controller.NewDocumentController(documentService),
		GraphController:              controller.NewGraphController(graphService),
		ChatEngineController:         controller.NewChatEngineController(chatEngineService),
		AIModelController:            controller.NewAIModelController(aiModelService),
		DatabaseConnectionController: controller.NewDatabaseConnectionController(databaseConnectionService),
		FeedbackController:           controller.NewFeedbackController(feedbackService),
		EvaluationController:         controller.NewEvaluationController(evaluationService),
		SiteSettingController:        controller.NewSiteSettingController(siteSettingService),
		ChatController:               controller.NewChatController(chatService, documentService),
		SystemController:             controller.NewSystemController(systemService),

		IngestConsumer:     ingestConsumer,
		EvaluationConsumer: evaluationConsumer,
		Scheduler:          scheduler,

		NotificationService: notifService,
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}

package bootstrap

import (
	"context"
	"log"

	"getscience-be/internal/config"
	"getscience-be/internal/controller"
	"getscience-be/internal/handler"
	"getscience-be/internal/pkg/logger"
	"getscience-be/internal/pkg/mailer"
	"getscience-be/internal/repository/implementation"
	"getscience-be/internal/repository/unitofwork"
	"getscience-be/internal/service"
	"getscience-be/internal/websocket"
	pktNats "getscience-be/pkg/nats"
	"getscience-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	EventController       controller.IEventController
	ApplicationController controller.IApplicationController
	ChatController        controller.IChatController

	// Background Services (Exposed for main.go to run)
	EmailWorkerService service.IEmailWorkerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	// Redis
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

	// Object storage
	var storageProvider storage.Provider
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewAWSS3Storage(cfg.Storage.Region, cfg.Storage.Bucket)
		if err != nil {
			log.Printf("[WARN] Failed to initialize S3 storage: %v. Falling back to in-memory storage", err)
			storageProvider = storage.NewMemoryStorage()
		} else {
			storageProvider = s3
		}
	} else {
		log.Printf("[WARN] S3_BUCKET not configured. Using in-memory storage")
		storageProvider = storage.NewMemoryStorage()
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	emailOutbox := service.NewEmailOutbox(pubSub, cfg.Keys.EmailTopic, sysLogger)
	emailWorker := service.NewEmailWorkerService(pubSub, cfg.Keys.EmailTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, emailOutbox)
	userService := service.NewUserService(uowFactory, storageProvider)

	geocodingService := service.NewGeocodingService(cfg.Keys.Geoapify)
	chatService := service.NewChatService(uowFactory, wsHub, eventPublisher)
	eventService := service.NewEventService(
		uowFactory,
		geocodingService,
		chatService,
		eventPublisher,
		rdb,
		storageProvider,
	)
	applicationService := service.NewApplicationService(
		uowFactory,
		storageProvider,
		emailOutbox,
		eventPublisher,
	)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:        controller.NewAuthController(authService),
		UserController:        controller.NewUserController(userService),
		EventController:       controller.NewEventController(eventService),
		ApplicationController: controller.NewApplicationController(applicationService),
		ChatController:        controller.NewChatController(chatService),

		EmailWorkerService: emailWorker,
	}
}

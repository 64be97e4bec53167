package bootstrap

import (
	"context"
	"log"
	"time"

	"event-reg-be/internal/config"
	"event-reg-be/internal/controller"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/pkg/mailer"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/internal/service"
	"event-reg-be/internal/websocket"
	"event-reg-be/pkg/storage"

	pktNats "event-reg-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	RegistrationController controller.IRegistrationController
	CheckInController      controller.ICheckInController
	PaymentController      controller.IPaymentController
	TeamController         controller.ITeamController
	FinanceController      controller.IFinanceController
	AdminController        controller.IAdminController

	// Shared infrastructure
	Logger logger.ILogger

	// Background workers, started here, exposed for shutdown
	EventConsumer *service.EventConsumerService
	WebSocketHub  *websocket.Hub

	NatsPublisher  *pktNats.Publisher
	NatsSubscriber *pktNats.Subscriber
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
	)

	fileStore, err := storage.NewLocalStore(cfg.App.UploadDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to prepare upload directory: %v", err)
	}

	// 2. Mail bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	mailPublisher := service.NewMailPublisher(pubSub, sysLogger)
	mailConsumer := service.NewMailConsumer(pubSub, emailService, sysLogger)
	mailMessages, err := pubSub.Subscribe(context.Background(), service.MailTopic)
	if err != nil {
		log.Fatalf("[FATAL] Failed to subscribe to mail topic: %v", err)
	}
	go mailConsumer.Start(mailMessages)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	teamCache := gocache.New(5*time.Minute, 10*time.Minute)

	// 4. Services
	authService := service.NewAuthService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory)
	registrationService := service.NewRegistrationService(uowFactory, fileStore, mailPublisher, natsPub, sysLogger)
	cancellationService := service.NewCancellationService(uowFactory, mailPublisher, natsPub, sysLogger)
	checkInService := service.NewCheckInService(uowFactory, natsPub, wsHub, sysLogger)
	teamService := service.NewTeamService(uowFactory, teamCache, sysLogger)
	financeService := service.NewFinanceService(uowFactory, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, sysLogger)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	var eventConsumer *service.EventConsumerService
	if natsSub != nil {
		eventConsumer = service.NewEventConsumerService(uowFactory, natsSub, sysLogger)
		if err := eventConsumer.Start(); err != nil {
			log.Printf("[WARN] Failed to start event consumer: %v", err)
		}
	}

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		RegistrationController: controller.NewRegistrationController(registrationService, cancellationService),
		CheckInController:      controller.NewCheckInController(checkInService),
		PaymentController:      controller.NewPaymentController(paymentService),
		TeamController:         controller.NewTeamController(teamService),
		FinanceController:      controller.NewFinanceController(financeService),
		AdminController:        controller.NewAdminController(adminService, registrationService, cancellationService),

		Logger: sysLogger,

		EventConsumer:  eventConsumer,
		WebSocketHub:   wsHub,
		NatsPublisher:  natsPub,
		NatsSubscriber: natsSub,
	}
}

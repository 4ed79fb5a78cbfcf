package bootstrap

import (
	"booknotion-be/internal/config"
	"booknotion-be/internal/controller"
	"booknotion-be/internal/pkg/logger"
	"booknotion-be/internal/pkg/serverutils"
	"booknotion-be/internal/pkg/token"
	"booknotion-be/internal/repository/memory"
	"booknotion-be/internal/repository/unitofwork"
	"booknotion-be/internal/service"
	"booknotion-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	SectionController  controller.ISectionController
	NotebookController controller.INotebookController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure
	Logger        logger.ILogger
	JwtMiddleware fiber.Handler
	StoreKind     string
}

func NewContainer(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core facades
	tokenService := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	statsCache := memory.NewStatsCache()

	// 2. In-process event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	topicName := events.BusTopic

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, topicName)
	consumerService := service.NewConsumerService(pubSub, topicName, statsCache, sysLogger)
	authService := service.NewAuthService(uowFactory, tokenService, publisherService)
	sectionService := service.NewSectionService(uowFactory, statsCache)
	notebookService := service.NewNotebookService(uowFactory, publisherService)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		SectionController:  controller.NewSectionController(sectionService),
		NotebookController: controller.NewNotebookController(notebookService),

		ConsumerService: consumerService,

		Logger:        sysLogger,
		JwtMiddleware: serverutils.NewJwtMiddleware(tokenService),
		StoreKind:     uowFactory.Kind(),
	}
}

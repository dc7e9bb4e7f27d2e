package configuration

import (
	"CineShelf/internal/client"
	"CineShelf/internal/db"
	"CineShelf/internal/handler"
	"CineShelf/internal/hub"
	"CineShelf/internal/middleware"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"
	"CineShelf/internal/service"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// moodRequestsPerMinute caps the LLM proxy per client IP.
const moodRequestsPerMinute = 20

type Container struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	CollectionHandler   *handler.CollectionHandler
	ReviewHandler       *handler.ReviewHandler
	PeopleHandler       *handler.PeopleHandler
	NotificationHandler *handler.NotificationHandler
	PickHandler         *handler.PickHandler
	ExportHandler       *handler.ExportHandler
	ProxyHandler        *handler.ProxyHandler
	AdminHandler        *handler.AdminHandler

	AuthService *service.AuthService
	UserRepo    repo.UserRepository
	MoodLimiter *middleware.IPRateLimiter

	Hub    *hub.Hub
	Config *Config
	Logger *zap.Logger

	// private - for cleanup
	mongoClient *mongo.Database
}

func BuildContainer() (*Container, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	con, err := db.OpenConnection(config.MongoURI, config.DBName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx, con); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	logger, _ := zap.NewProduction()

	userRepo := repo.NewUserRepository(db.NewRepository[model.User](con, "users"), logger)
	watchlistRepo := repo.NewCollectionRepository("watchlist", db.NewRepository[model.Collection](con, "watchlists"), logger)
	listRepo := repo.NewCollectionRepository("list", db.NewRepository[model.Collection](con, "lists"), logger)
	reviewRepo := repo.NewReviewRepository(db.NewRepository[model.Review](con, "reviews"), logger)
	notifRepo := repo.NewNotificationRepository(db.NewRepository[model.Notification](con, "notifications"), logger)
	pickRepo := repo.NewPickRepository(db.NewRepository[model.Pick](con, "picks"), logger)

	notificationHub := hub.NewHub(config.CORSOrigins, logger)

	notificationService := service.NewNotificationService(notifRepo, userRepo, notificationHub, logger)
	authService := service.NewAuthService(userRepo, config.JWTSecret, logger)
	userService := service.NewUserService(userRepo, logger)
	watchlistService := service.NewWatchlistService(watchlistRepo, notificationService, logger)
	listService := service.NewListService(listRepo, reviewRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, listRepo, logger)
	peopleService := service.NewPeopleService(userRepo, notificationService, logger)
	pickService := service.NewPickService(pickRepo, logger)
	exportService := service.NewExportService(userRepo, watchlistRepo, listService, reviewRepo, logger)
	adminService := service.NewAdminService(userRepo, watchlistRepo, listRepo, reviewRepo, notifRepo, pickRepo, logger)

	tmdbClient := client.NewTMDBClient(config.TMDBAPIKey)
	openRouterClient := client.NewOpenRouterClient(config.OpenRouterAPIKey)

	return &Container{
		AuthHandler:         handler.NewAuthHandler(authService),
		UserHandler:         handler.NewUserHandler(userService, config.UploadDir),
		CollectionHandler:   handler.NewCollectionHandler(watchlistService, listService),
		ReviewHandler:       handler.NewReviewHandler(reviewService),
		PeopleHandler:       handler.NewPeopleHandler(peopleService),
		NotificationHandler: handler.NewNotificationHandler(notificationService, notificationHub),
		PickHandler:         handler.NewPickHandler(pickService),
		ExportHandler:       handler.NewExportHandler(exportService),
		ProxyHandler:        handler.NewProxyHandler(tmdbClient, openRouterClient),
		AdminHandler:        handler.NewAdminHandler(adminService),

		AuthService: authService,
		UserRepo:    userRepo,
		MoodLimiter: middleware.NewIPRateLimiter(moodRequestsPerMinute, logger),

		Hub:    notificationHub,
		Config: config,
		Logger: logger,

		mongoClient: con,
	}, nil
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	// Stop the hub first (closes all WebSocket connections)
	if c.Hub != nil {
		c.Hub.Stop()
	}

	// Sync logger
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	// Close MongoDB connection pool
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}

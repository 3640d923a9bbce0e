package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"healthspot/config"
	deliveryHttp "healthspot/internal/delivery/http"
	"healthspot/internal/delivery/http/handler"
	"healthspot/internal/delivery/http/middleware"
	"healthspot/internal/gateway/deepseek"
	"healthspot/internal/gateway/googlemaps"
	"healthspot/internal/gateway/nominatim"
	"healthspot/internal/gateway/postcodesio"
	"healthspot/internal/gateway/twilio"
	"healthspot/internal/infrastructure/cache"
	"healthspot/internal/infrastructure/database"
	"healthspot/internal/repository"
	"healthspot/internal/service"
	"healthspot/internal/usecase"
	"healthspot/pkg/validator"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Mongo       *mongo.Database
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewSQLiteConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db

	mongoDB, err := database.NewMongoConnection(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.Mongo = mongoDB

	// Redis only caches geocode lookups, so a missing instance degrades to
	// uncached resolution instead of failing startup.
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, geocode caching disabled")
		} else {
			app.RedisClient = redisClient
		}
	} else {
		logrus.Info("Redis not configured, geocode caching disabled")
	}

	app.Server = initializeServer(cfg, db, mongoDB, app.RedisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, mongoDB *mongo.Database, redisClient *redis.Client) *http.Server {
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Initialize gateways
	mapsClient := googlemaps.NewClient(cfg.Google.MapsAPIKey)
	if !mapsClient.IsConfigured() {
		log.Warn("Google Maps API key not set, live search and geocoding disabled")
	}
	postcodesClient := postcodesio.NewClient()
	nominatimClient := nominatim.NewClient()
	twilioClient := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber)
	deepseekClient := deepseek.NewClient(cfg.DeepSeek.APIKey, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model)

	// Initialize repositories
	providerRepo := repository.NewProviderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	subscriptionRepo := repository.NewSmsSubscriptionRepository(db)
	savedProviderRepo := repository.NewSavedProviderRepository(db)
	anonymousUserRepo := repository.NewAnonymousUserRepository(mongoDB)
	searchHistoryRepo := repository.NewSearchHistoryRepository(mongoDB)

	// Initialize services
	resolver := service.NewGeocodeResolver(log, mapsClient, postcodesClient, nominatimClient, redisClient, cfg.Search.GeocodeCacheTTL)

	// Initialize usecases
	searchUsecase := usecase.NewProviderSearchUseCase(log, providerRepo, mapsClient, cfg.Search.CacheHitThreshold, cfg.Search.DefaultRadius)
	routeUsecase := usecase.NewRouteUseCase(log, mapsClient)
	reviewUsecase := usecase.NewReviewUseCase(log, reviewRepo, providerRepo, mapsClient, deepseekClient, cfg.Search.GoogleReviewTTL, cfg.Search.RedditReviewTTL)
	smsUsecase := usecase.NewSmsUseCase(log, subscriptionRepo, providerRepo, twilioClient, deepseekClient, deepseekClient)
	savedUsecase := usecase.NewSavedProviderUseCase(log, savedProviderRepo, providerRepo, anonymousUserRepo)
	userUsecase := usecase.NewUserUseCase(log, anonymousUserRepo, searchHistoryRepo)

	// Initialize handlers
	mapHandler := handler.NewMapHandler(searchUsecase, userUsecase, resolver, mapsClient, customValidator)
	routeHandler := handler.NewRouteHandler(routeUsecase, customValidator)
	reviewHandler := handler.NewReviewHandler(reviewUsecase)
	smsHandler := handler.NewSmsHandler(smsUsecase, customValidator)
	savedProviderHandler := handler.NewSavedProviderHandler(savedUsecase, customValidator)
	historyHandler := handler.NewHistoryHandler(userUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	anonymousMiddleware := middleware.NewAnonymousMiddleware(userUsecase, cfg.App.Env == "production")
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimiter)
	metricsMiddleware := middleware.NewMetricsMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		mapHandler,
		routeHandler,
		reviewHandler,
		smsHandler,
		savedProviderHandler,
		historyHandler,
		corsMiddleware,
		anonymousMiddleware,
		rateLimitMiddleware,
		metricsMiddleware,
	)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		app.Mongo.Client().Disconnect(ctx)
		cancel()
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

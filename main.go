package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labbook/config"
	"labbook/cron"
	"labbook/database"
	"labbook/database/recordstore"
	bookingRepo "labbook/database/repository/booking"
	catalogRepo "labbook/database/repository/catalog"
	"labbook/handlers"
	"labbook/middleware"
	"labbook/routes"
	"labbook/services/booking"
	"labbook/services/catalog"
	"labbook/services/scheduling"
	"labbook/services/session"
	"labbook/services/wizard"
	"labbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// openRecordStore connects the backend selected by RECORD_STORE.
func openRecordStore(ctx context.Context, logger *zap.Logger) recordstore.Store {
	switch config.AppConfig.RecordStore {
	case "supabase":
		store, err := recordstore.NewSupabaseStore(config.AppConfig.SupabaseURL, config.AppConfig.SupabaseKey)
		if err != nil {
			logger.Fatal("main: failed to initialize Supabase record store", zap.Error(err))
		}
		logger.Info("Using Supabase record store")
		return store
	case "mongo", "":
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		store := recordstore.NewMongoStore(database.Database())
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal("main: failed to prepare MongoDB collections", zap.Error(err))
		}
		logger.Info("Using MongoDB record store")
		return store
	default:
		logger.Fatal("main: unknown RECORD_STORE", zap.String("recordStore", config.AppConfig.RecordStore))
		return nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := config.AppConfig.Location()
	store := openRecordStore(ctx, logger)
	utils.InitRedis()

	// repositories.
	catalogRepository := catalogRepo.NewCatalogRepo(store)
	bookingRepository := bookingRepo.NewBookingRepo(store)

	// services.
	catalogCache := catalog.NewRedisCatalogCache(utils.GetCacheClient(), config.AppConfig.CatalogCacheTTL)
	catalogService := catalog.NewCatalogService(catalogRepository, catalogCache, logger)

	reminderQueue := asynq.NewClient(utils.QueueRedisOpt())
	defer reminderQueue.Close()
	bookingService := booking.NewBookingService(bookingRepository, reminderQueue, loc, logger)

	slotProvider, err := scheduling.NewStaticSlotProvider(
		config.AppConfig.TimeSlots,
		config.AppConfig.BookingWindowMonths,
		loc,
		scheduling.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("main: invalid TIME_SLOTS", zap.Error(err))
	}

	registry := wizard.NewRegistry(wizard.RegistryConfig{
		Catalog:      catalogService,
		Slots:        slotProvider,
		Submitter:    bookingService,
		WindowMonths: config.AppConfig.BookingWindowMonths,
		Location:     loc,
		IdleTTL:      config.AppConfig.WizardIdleTTL,
		Logger:       logger,
	})
	go registry.Run(ctx, time.Minute)

	sessions := session.NewRedisSessionProvider(
		utils.GetAuthCacheClient(),
		config.AppConfig.IdentityJWTSecret,
		config.AppConfig.SessionTTL,
		logger,
	)

	// background work.
	worker := cron.NewReminderWorker(utils.QueueRedisOpt(), 10, logger)
	if err := worker.Start(ctx); err != nil {
		logger.Fatal("main: reminder worker failed", zap.Error(err))
	}
	pinger, _ := store.(utils.StorePinger)
	utils.StartHealthMonitor(ctx, time.Minute, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, pinger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.Use(middleware.SessionMiddleware(sessions))

	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(sessions),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Admin:   handlers.NewAdminHandler(catalogService),
		Wizard:  handlers.NewWizardHandler(registry),
		Booking: handlers.NewBookingHandler(bookingService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	utils.CloseRedis()
	if database.MongoClient != nil {
		if err := database.CloseDB(shutdownCtx); err != nil {
			logger.Warn("main: failed to close MongoDB", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package server

import (
	"context"
	"fmt"
	"os"

	"eventspot/config"
	"eventspot/internal/client"
	"eventspot/internal/handlers"
	"eventspot/internal/imagestore"
	"eventspot/internal/middleware"
	"eventspot/internal/repositories"
	"eventspot/internal/services"
	"github.com/gin-gonic/gin"
)

func Start() error {
	logger, err := config.InitLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	cldCfg, err := config.LoadCloudinaryConfig()
	if err != nil {
		return fmt.Errorf("failed to load cloudinary config: %v", err)
	}
	cld, err := config.InitCloudinary(cldCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cloudinary: %v", err)
	}

	redisCfg := config.LoadRedisConfig()
	cache := config.InitRedis(redisCfg)

	eventRepo := repositories.NewEventRepository(db)
	uploadRepo := repositories.NewUploadRepository(db)
	store := imagestore.NewCloudinaryStore(cld)

	ingestion := services.NewIngestionService(eventRepo, uploadRepo, store, cldCfg.Folder, logger)
	queries := services.NewQueryService(eventRepo, cache, redisCfg.ListTTL, logger)

	recCfg := config.LoadReconcilerConfig()
	reconciler := services.NewReconciler(uploadRepo, store, recCfg.Interval, recCfg.GracePeriod, logger)
	go reconciler.Run(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	eventsClient := client.NewEventsClient(baseURL, logger)

	eventHandler := handlers.NewEventHandler(ingestion, queries, logger)
	pageHandler := handlers.NewPageHandler(eventsClient, logger)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	setupRoutes(r, eventHandler, pageHandler)

	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, events *handlers.EventHandler, pages *handlers.PageHandler) {
	api := r.Group("/v1")
	{
		eventAPI := api.Group("/events")
		{
			eventAPI.GET("", events.ListEvents)
			eventAPI.POST("", events.CreateEvent)
			eventAPI.GET("/:slug", events.GetEvent)
			eventAPI.GET("/:slug/similar", events.ListSimilarEvents)
		}
	}

	r.GET("/", pages.Index)
	r.GET("/events/:slug", pages.EventDetail)
}

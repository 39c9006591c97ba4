package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"etn-patron/pkg/cache"
	"etn-patron/pkg/config"
	"etn-patron/pkg/database"
	"etn-patron/pkg/jwt"
	"etn-patron/pkg/logger"
	"etn-patron/pkg/middleware"
	"etn-patron/pkg/pinning"
	"etn-patron/pkg/queue"
	"etn-patron/pkg/s3"
	contentHTTP "etn-patron/services/content/internal/controller/http"
	"etn-patron/services/content/internal/repo/persistent"
	"etn-patron/services/content/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	pinClient   *pinning.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		pinClient:   pinning.NewClient(cfg),
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	contentRepo := persistent.NewContentRepository(a.db)

	contentUseCase := usecase.NewContentUseCase(
		contentRepo,
		a.s3Client,
		a.pinClient,
		a.queueClient,
		a.log,
	)

	contentHandler := contentHTTP.NewContentHandler(contentUseCase, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/content", contentHandler.ListContent)
		api.GET("/content/creator/:creator_id", contentHandler.ListCreatorContent)
		api.GET("/content/:id/comments", contentHandler.ListComments)

		// Anonymous viewers still count views, so the single-item fetch
		// takes the optional auth path plus a rate limit.
		view := api.Group("")
		view.Use(middleware.OptionalAuthMiddleware(a.jwtService))
		view.Use(middleware.RateLimitMiddleware(a.redisClient, 120, time.Minute))
		{
			view.GET("/content/:id", contentHandler.GetContent)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.POST("/content", contentHandler.CreateContent)
			protected.PUT("/content/:id", contentHandler.UpdateContent)
			protected.DELETE("/content/:id", contentHandler.DeleteContent)

			protected.POST("/content/:id/like", contentHandler.LikeContent)
			protected.POST("/comments/:id/like", contentHandler.LikeComment)

			protected.POST("/content/:id/comments", contentHandler.AddComment)
			protected.DELETE("/comments/:id", contentHandler.DeleteComment)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Content service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down content service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing queue: %v", err)
		}
	}

	return a.httpServer.Shutdown(ctx)
}

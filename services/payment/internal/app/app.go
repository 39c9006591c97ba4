package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"etn-patron/pkg/chain"
	"etn-patron/pkg/config"
	"etn-patron/pkg/database"
	"etn-patron/pkg/jwt"
	"etn-patron/pkg/logger"
	"etn-patron/pkg/middleware"
	"etn-patron/pkg/queue"
	paymentHTTP "etn-patron/services/payment/internal/controller/http"
	"etn-patron/services/payment/internal/repo/persistent"
	"etn-patron/services/payment/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	ethClient   chain.EthClient
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
	cron        *cron.Cron
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	ethClient, err := chain.Dial(context.Background(), cfg.ChainRPCURL)
	if err != nil {
		log.Error("Failed to connect to chain RPC: %v", err)
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
		ethClient:   ethClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	paymentRepo := persistent.NewPaymentRepository(a.db)
	verifier := chain.NewPaymentVerifier(a.ethClient, a.cfg.PaymentContract, a.cfg.MinConfirmations)

	paymentUseCase := usecase.NewPaymentUseCase(
		paymentRepo,
		verifier,
		a.queueClient,
		a.log,
	)

	paymentHandler := paymentHTTP.NewPaymentHandler(paymentUseCase, a.log)

	// Hourly sweep flips subscriptions whose end date has passed.
	a.cron = cron.New()
	if _, err := a.cron.AddFunc("@hourly", func() {
		if _, err := paymentUseCase.SweepExpiredSubscriptions(); err != nil {
			a.log.Error("Scheduled subscription sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}
	a.cron.Start()

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
		api.GET("/payments/creator/:creator_id", paymentHandler.GetCreatorEarnings)
		api.GET("/subscriptions/:user_id/:creator_id/status", paymentHandler.GetSubscriptionStatus)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.POST("/payments", paymentHandler.RecordPayment)
			protected.GET("/payments/user/:user_id", paymentHandler.ListUserTransactions)
			protected.GET("/subscriptions/user/:user_id", paymentHandler.ListUserSubscriptions)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Payment service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down payment service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.cron != nil {
		<-a.cron.Stop().Done()
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.ethClient != nil {
		a.ethClient.Close()
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing queue: %v", err)
		}
	}

	return a.httpServer.Shutdown(ctx)
}

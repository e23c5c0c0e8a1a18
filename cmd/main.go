package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/common"
	"resellerdesk/internal/config"
	"resellerdesk/internal/google"
	"resellerdesk/internal/handlers"
	"resellerdesk/internal/jobs"
	"resellerdesk/internal/jobs/background"
	"resellerdesk/internal/middleware"
	"resellerdesk/internal/repositories"
	"resellerdesk/internal/services"
	"resellerdesk/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePool(pool)

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDBStr := os.Getenv("REDIS_DB")
	redisDB := 0 // Default DB
	if redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000" // Default MinIO endpoint
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Reseller configuration
	configPath := os.Getenv("RESELLER_CONFIG")
	if configPath == "" {
		configPath = "reseller.toml"
	}
	cfg, err := config.LoadResellerConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load reseller config: %v", err)
	}

	// Initialize storage service
	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Initialize Google API client
	googleClient, err := google.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Google client: %v", err)
	}

	// Create repositories
	resellerRepo := repositories.NewResellerPartnerRepo(pool)
	partnerRepo := repositories.NewPartnerRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	tagRepo := repositories.NewTagRepo(pool)
	saleOrderRepo := repositories.NewSaleOrderRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	tagSvc := services.NewTagService(tagRepo, cacheSvc)

	// Create jobs
	resellerSync := jobs.NewResellerSync(
		googleClient,
		resellerRepo,
		partnerRepo,
		subscriptionRepo,
		tagSvc,
		cacheSvc,
		cfg.Sync.Tags,
	)
	profitabilityReport := jobs.NewProfitabilityReport(
		subscriptionRepo,
		resellerRepo,
		saleOrderRepo,
		invoiceRepo,
		storageSvc,
		cacheSvc,
		cfg.Report,
	)

	// Background scheduler; jobs only start running when the schedule is
	// enabled, but the status endpoint reports them either way.
	scheduler := background.NewJobScheduler(resellerSync, cfg.Sync)
	if cfg.Sync.ScheduleEnabled {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Create handlers
	syncHandlers := handlers.NewSyncHandlers(resellerSync, cacheSvc)
	reportHandlers := handlers.NewReportHandlers(profitabilityReport)
	resellerHandlers := handlers.NewResellerHandlers(resellerRepo, partnerRepo, subscriptionRepo)
	jobHandlers := handlers.NewJobHandlers(scheduler)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// JWT middleware configuration
	jwtConfig := echojwt.Config{
		SigningKey:     []byte(jwtSecret),
		SuccessHandler: middleware.BindUserContext,
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}

	// Protected routes (require JWT)
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(jwtConfig))

	// Sync routes
	v1.POST("/sync/contacts", syncHandlers.SyncContacts)
	v1.POST("/sync/subscriptions", syncHandlers.SyncSubscriptions)
	v1.GET("/sync/:kind/last", syncHandlers.GetLastSyncResult)

	// Report routes
	v1.POST("/reports/profitability", reportHandlers.GenerateProfitabilityReport)

	// Background job routes
	v1.GET("/jobs/status", jobHandlers.GetJobStatus)

	// Data routes
	v1.GET("/reseller-partners", resellerHandlers.ListResellerPartners)
	v1.GET("/reseller-partners/:id", resellerHandlers.GetResellerPartner)
	v1.GET("/partners", resellerHandlers.ListPartners)
	v1.GET("/subscriptions", resellerHandlers.ListSubscriptions)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Resellerdesk server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

// Package main is the entry point for the wallet and withdrawal API.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"log"
	"strconv"
	"time"

	"pawpay/internal/config"
	"pawpay/internal/handlers"
	"pawpay/internal/repositories"
	"pawpay/internal/services/banktransfer"
	"pawpay/internal/services/ledger"
	"pawpay/internal/services/notification"
	"pawpay/internal/services/wallet"
	"pawpay/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	maxIdleConns, _ := strconv.Atoi(config.GetEnv("DB_MAX_IDLE_CONNS", "10"))
	maxOpenConns, _ := strconv.Atoi(config.GetEnv("DB_MAX_OPEN_CONNS", "100"))
	connMaxLifetime, _ := time.ParseDuration(config.GetEnv("DB_CONN_MAX_LIFETIME", "1h"))
	connMaxIdleTime, _ := time.ParseDuration(config.GetEnv("DB_CONN_MAX_IDLE_TIME", "30m"))

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database with connection pooling")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	withdrawalRepo := repositories.NewWithdrawalRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)
	bookingRepo := repositories.NewBookingRepository(repositories.DB)

	// Bank transfer rail: Stripe payouts when configured, otherwise the
	// simulated gateway (local development).
	var gateway banktransfer.Gateway
	if key := config.GetEnv("STRIPE_SECRET_KEY", ""); key != "" {
		gateway = banktransfer.NewStripeGateway(key, config.GetEnv("PAYOUT_CURRENCY", "vnd"))
		log.Println("✅ Stripe payout gateway configured")
	} else {
		gateway = banktransfer.NewSimulatedGateway()
		log.Println("⚠️ STRIPE_SECRET_KEY not set, using simulated bank transfers")
	}

	// Services
	walletService := wallet.NewService(walletRepo, bookingRepo, repositories.CacheService, nil)
	ledgerService := ledger.NewService(walletRepo)
	withdrawalService := withdrawal.NewService(
		withdrawalRepo,
		userRepo,
		repositories.CacheService,
		gateway,
		notification.NewService(),
		withdrawal.Config{
			Fees: withdrawal.FeePolicy{
				Rate:   config.GetDecimalEnv("WITHDRAWAL_FEE_RATE", withdrawal.DefaultFeeRate),
				MinFee: config.GetDecimalEnv("WITHDRAWAL_MIN_FEE", withdrawal.DefaultMinFee),
				MaxFee: config.GetDecimalEnv("WITHDRAWAL_MAX_FEE", withdrawal.DefaultMaxFee),
			},
			Limits: withdrawal.LimitPolicy{
				DailyCap:   config.GetDecimalEnv("WITHDRAWAL_DAILY_CAP", withdrawal.DefaultDailyCap),
				MonthlyCap: config.GetDecimalEnv("WITHDRAWAL_MONTHLY_CAP", withdrawal.DefaultMonthlyCap),
			},
		},
	)

	walletHandler := handlers.NewWalletHandler(walletService, ledgerService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)

	// Create Fiber app
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Withdrawal creation is the abuse-prone endpoint; rate limit it per IP.
	app.Use("/api/withdrawals", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("WITHDRAWAL_RATE_LIMIT", 10),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	handlers.SetupRoutes(app, walletHandler, withdrawalHandler)

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

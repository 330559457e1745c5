package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/cargoflow/backend/internal/application/billing"
	customsapp "github.com/cargoflow/backend/internal/application/customs"
	eventapp "github.com/cargoflow/backend/internal/application/event"
	gamificationapp "github.com/cargoflow/backend/internal/application/gamification"
	partnerapp "github.com/cargoflow/backend/internal/application/partner"
	paymentapp "github.com/cargoflow/backend/internal/application/payment"
	pricingapp "github.com/cargoflow/backend/internal/application/pricing"
	settlementapp "github.com/cargoflow/backend/internal/application/settlement"
	"github.com/cargoflow/backend/internal/infrastructure/auth"
	"github.com/cargoflow/backend/internal/infrastructure/cache"
	"github.com/cargoflow/backend/internal/infrastructure/config"
	"github.com/cargoflow/backend/internal/infrastructure/event"
	"github.com/cargoflow/backend/internal/infrastructure/logger"
	"github.com/cargoflow/backend/internal/infrastructure/persistence"
	"github.com/cargoflow/backend/internal/infrastructure/scheduler"
	"github.com/cargoflow/backend/internal/infrastructure/telemetry"
	"github.com/cargoflow/backend/internal/interfaces/http/handler"
	"github.com/cargoflow/backend/internal/interfaces/http/middleware"
	"github.com/cargoflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Initialize OpenTelemetry providers. Disabled config yields no-op
	// providers, so the rest of the wiring stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Bridge zap to OTEL logs so log records carry trace context
	if cfg.Telemetry.Enabled {
		loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Warn("Failed to initialize OTEL logger provider, continuing with stdout only", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
					log.Error("Error shutting down logger provider", zap.Error(err))
				}
			}()
			otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
				ServiceName:    cfg.Telemetry.ServiceName,
				LoggerProvider: loggerProvider,
				Level:          zapcore.InfoLevel,
			})
			log = telemetry.NewBridgedLogger(log.Core(), otelCore)
		}
	}

	// Continuous profiling (pyroscope)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilingEnabled,
		ServerAddress:       cfg.Telemetry.PyroscopeAddress,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler, continuing without profiling", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}

	log.Info("Starting CargoFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing and pool metrics
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	if cfg.Telemetry.Enabled {
		dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
		dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
		if _, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log); err != nil {
			log.Warn("Failed to register database metrics", zap.Error(err))
		}
	}

	// Redis-backed exchange rate cache and token blacklist with
	// in-memory fallbacks
	var rateCache pricingapp.RateCache
	var tokenBlacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory rate cache and token blacklist", zap.Error(err))
		rateCache = cache.NewInMemoryRateCache(cfg.Billing.RateCacheTTL)
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		rateCache = cache.NewRedisRateCache(redisClient, cfg.Billing.RateCacheTTL, log)
		tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
	}
	pingCancel()

	// Initialize repositories
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	rateCardRepo := persistence.NewGormRateCardRepository(db.DB)
	exchangeRateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	estimateRepo := persistence.NewGormEstimateRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	settlementRepo := persistence.NewGormSettlementRepository(db.DB)
	vehicleDutyRateRepo := persistence.NewGormVehicleDutyRateRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	agentRepo := persistence.NewGormAgentRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	badgeRepo := persistence.NewGormBadgeRepository(db.DB)
	milestoneRepo := persistence.NewGormMilestoneRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	scoreReader := persistence.NewGormScoreReader(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize the versioned event serializer and register all event
	// types, so payloads written under older schema versions are
	// upgraded when the outbox processor reads them back
	eventSerializer := event.NewVersionedSerializer(log)
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories that persist aggregates
	// raising domain events
	regionRepo.SetOutboxEventSaver(outboxPublisher)
	rateCardRepo.SetOutboxEventSaver(outboxPublisher)
	exchangeRateRepo.SetOutboxEventSaver(outboxPublisher)
	estimateRepo.SetOutboxEventSaver(outboxPublisher)
	invoiceRepo.SetOutboxEventSaver(outboxPublisher)
	paymentRepo.SetOutboxEventSaver(outboxPublisher)
	settlementRepo.SetOutboxEventSaver(outboxPublisher)
	customerRepo.SetOutboxEventSaver(outboxPublisher)
	agentRepo.SetOutboxEventSaver(outboxPublisher)

	// Business metrics on the OTEL meter. With telemetry disabled the
	// meter is a no-op, so recording stays safe and cheap.
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:               meterProvider.Meter("cargoflow-backend"),
		Logger:              log,
		ReceivablesProvider: telemetry.NewGormReceivablesMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Initialize application services
	billingPolicy := billingapp.Policy{
		InvoiceDueDays:    cfg.Billing.InvoiceDueDays,
		EstimateValidDays: cfg.Billing.EstimateValidDays,
	}
	regionService := pricingapp.NewRegionService(regionRepo, rateCardRepo)
	rateCardService := pricingapp.NewRateCardService(regionRepo, rateCardRepo, txManager)
	exchangeRateService := pricingapp.NewExchangeRateService(exchangeRateRepo, rateCache)
	estimateService := billingapp.NewEstimateService(estimateRepo, regionRepo, rateCardRepo, billingPolicy, businessMetrics)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, estimateRepo, exchangeRateService, txManager, billingPolicy, businessMetrics)
	paymentService := paymentapp.NewPaymentService(paymentRepo, bankAccountRepo, invoiceRepo, exchangeRateService, txManager, businessMetrics)
	bankAccountService := paymentapp.NewBankAccountService(bankAccountRepo)
	settlementService := settlementapp.NewSettlementService(settlementRepo, invoiceRepo, agentRepo, bankAccountRepo, txManager, businessMetrics)
	dutyService := customsapp.NewDutyService(vehicleDutyRateRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	agentService := partnerapp.NewAgentService(agentRepo, regionRepo)
	shipmentService := partnerapp.NewShipmentService(shipmentRepo, customerRepo, agentRepo)
	notificationService := gamificationapp.NewNotificationService(notificationRepo)
	rankingService := gamificationapp.NewRankingService(badgeRepo, milestoneRepo, notificationRepo, scoreReader, txManager, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// JWT verification service. Tokens are issued by the identity
	// provider upstream; this service only validates them.
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store backs event handler dedup (redis with in-memory fallback)
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Invoice paid -> milestone sweep, deduplicated per event
	invoicePaidHandler := event.NewIdempotentHandler(
		gamificationapp.NewInvoicePaidHandler(rankingService, log),
		idempotencyStore,
		log,
	)
	eventBus.Subscribe(invoicePaidHandler)

	log.Info("Event handlers registered",
		zap.Strings("invoice_paid_events", invoicePaidHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start outbox processor for guaranteed event delivery.
	// The processor reads events from the outbox_events table and publishes
	// them to the event bus.
	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		}
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", outboxProcessorConfig.BatchSize),
			zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
		)
	}

	// Initialize billing cron scheduler (if enabled)
	var cronScheduler *scheduler.BillingCronScheduler
	if cfg.Scheduler.Enabled {
		overdueHour, overdueMinute, err := scheduler.ParseCronSchedule(cfg.Scheduler.OverdueCronSchedule)
		if err != nil {
			log.Fatal("Invalid overdue cron schedule", zap.Error(err))
		}
		rankingHour, rankingMinute, err := scheduler.ParseCronSchedule(cfg.Scheduler.RankingCronSchedule)
		if err != nil {
			log.Fatal("Invalid ranking cron schedule", zap.Error(err))
		}
		schedulerConfig := scheduler.BillingCronSchedulerConfig{
			Enabled:             cfg.Scheduler.Enabled,
			OverdueHour:         overdueHour,
			OverdueMinute:       overdueMinute,
			RankingHour:         rankingHour,
			RankingMinute:       rankingMinute,
			OverdueCronSchedule: cfg.Scheduler.OverdueCronSchedule,
			RankingCronSchedule: cfg.Scheduler.RankingCronSchedule,
			JobTimeout:          cfg.Scheduler.JobTimeout,
			MaxConcurrentJobs:   cfg.Scheduler.MaxConcurrentJobs,
			RetryAttempts:       cfg.Scheduler.RetryAttempts,
			RetryDelay:          cfg.Scheduler.RetryDelay,
		}
		jobRepo := scheduler.NewSchedulerJobRepository(db.DB)
		jobExecutor := scheduler.NewBillingJobExecutor(invoiceService, rankingService, jobRepo, log)
		cronScheduler = scheduler.NewBillingCronScheduler(schedulerConfig, jobExecutor, jobRepo, log)
		if err := cronScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
		defer func() {
			if err := cronScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping billing scheduler", zap.Error(err))
			}
		}()
		log.Info("Billing scheduler started",
			zap.String("overdue_schedule", cfg.Scheduler.OverdueCronSchedule),
			zap.String("ranking_schedule", cfg.Scheduler.RankingCronSchedule),
		)
	}

	// Initialize HTTP handlers
	regionHandler := handler.NewRegionHandler(regionService)
	rateCardHandler := handler.NewRateCardHandler(rateCardService)
	exchangeRateHandler := handler.NewExchangeRateHandler(exchangeRateService)
	estimateHandler := handler.NewEstimateHandler(estimateService, invoiceService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountService)
	settlementHandler := handler.NewSettlementHandler(settlementService)
	customsHandler := handler.NewCustomsHandler(dutyService)
	customerHandler := handler.NewCustomerHandler(customerService)
	agentHandler := handler.NewAgentHandler(agentService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	gamificationHandler := handler.NewGamificationHandler(rankingService, notificationService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/metrics/profiling - Observability (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("cargoflow-backend/http"), true))
	}
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Token issuance happens out of band; here we only verify.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Role gates for mutating routes. Reads stay open to any
	// authenticated caller.
	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	staffUp := middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff)
	agentUp := middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff, auth.RoleAgent)

	// Pricing domain (regions, rate cards, exchange rates)
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/regions", adminOnly, regionHandler.Create)
	pricingRoutes.GET("/regions", regionHandler.List)
	pricingRoutes.GET("/regions/:id", regionHandler.Get)
	pricingRoutes.PUT("/regions/:id", adminOnly, regionHandler.Update)
	pricingRoutes.POST("/regions/:id/activate", adminOnly, regionHandler.Activate)
	pricingRoutes.POST("/regions/:id/deactivate", adminOnly, regionHandler.Deactivate)
	// Rate cards per region
	pricingRoutes.GET("/regions/:id/rate-cards", rateCardHandler.ListByRegion)
	pricingRoutes.GET("/regions/:id/rate-cards/active", rateCardHandler.GetActive)
	pricingRoutes.GET("/regions/:id/quote", rateCardHandler.Quote)
	pricingRoutes.POST("/rate-cards", adminOnly, rateCardHandler.Create)
	pricingRoutes.PUT("/rate-cards/:id", adminOnly, rateCardHandler.Update)
	// Exchange rates
	pricingRoutes.POST("/exchange-rates", adminOnly, exchangeRateHandler.Set)
	pricingRoutes.GET("/exchange-rates/latest", exchangeRateHandler.Latest)
	pricingRoutes.GET("/exchange-rates/table", exchangeRateHandler.RateTable)
	pricingRoutes.GET("/exchange-rates/convert", exchangeRateHandler.Convert)
	pricingRoutes.GET("/exchange-rates/:currency/history", exchangeRateHandler.History)

	// Billing domain (estimates, invoices)
	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/estimates", staffUp, estimateHandler.Create)
	billingRoutes.GET("/estimates", estimateHandler.List)
	billingRoutes.GET("/estimates/:id", estimateHandler.Get)
	billingRoutes.PUT("/estimates/:id", staffUp, estimateHandler.Update)
	billingRoutes.DELETE("/estimates/:id", staffUp, estimateHandler.Delete)
	billingRoutes.POST("/estimates/:id/convert", staffUp, estimateHandler.ConvertToInvoice)
	billingRoutes.POST("/estimates/:id/reject", staffUp, estimateHandler.Reject)

	billingRoutes.POST("/invoices", staffUp, invoiceHandler.Create)
	billingRoutes.GET("/invoices", invoiceHandler.List)
	billingRoutes.GET("/invoices/:id", invoiceHandler.Get)
	billingRoutes.POST("/invoices/:id/items", staffUp, invoiceHandler.AddItem)
	billingRoutes.DELETE("/invoices/:id/items/:itemId", staffUp, invoiceHandler.RemoveItem)
	billingRoutes.POST("/invoices/:id/cancel", staffUp, invoiceHandler.Cancel)

	// Payment domain (payments, bank accounts)
	paymentRoutes := router.NewDomainGroup("payment", "/payment")
	paymentRoutes.POST("/payments", agentUp, paymentHandler.Record)
	paymentRoutes.GET("/payments", paymentHandler.List)
	paymentRoutes.GET("/payments/:id", paymentHandler.Get)
	paymentRoutes.POST("/payments/:id/verify", staffUp, paymentHandler.Verify)
	paymentRoutes.POST("/payments/:id/reject", staffUp, paymentHandler.Reject)
	paymentRoutes.GET("/payments/invoice/:invoiceId", paymentHandler.ListByInvoice)

	paymentRoutes.POST("/bank-accounts", adminOnly, bankAccountHandler.Create)
	paymentRoutes.GET("/bank-accounts", bankAccountHandler.List)
	paymentRoutes.GET("/bank-accounts/:id", bankAccountHandler.Get)
	paymentRoutes.POST("/bank-accounts/:id/deactivate", adminOnly, bankAccountHandler.Deactivate)
	paymentRoutes.GET("/bank-accounts/:id/transactions", bankAccountHandler.ListTransactions)

	// Settlement domain (agent settlements)
	settlementRoutes := router.NewDomainGroup("settlement", "/settlement")
	settlementRoutes.POST("/settlements", staffUp, settlementHandler.Create)
	settlementRoutes.GET("/settlements", settlementHandler.List)
	settlementRoutes.GET("/settlements/:id", settlementHandler.Get)
	settlementRoutes.POST("/settlements/:id/approve", staffUp, settlementHandler.Approve)
	settlementRoutes.POST("/settlements/:id/pay", staffUp, settlementHandler.Pay)
	settlementRoutes.POST("/settlements/:id/cancel", staffUp, settlementHandler.Cancel)
	settlementRoutes.GET("/settlements/agent/:agentId", settlementHandler.ListByAgent)

	// Customs domain (vehicle duty calculator, duty rates)
	customsRoutes := router.NewDomainGroup("customs", "/customs")
	customsRoutes.POST("/duty/calculate", customsHandler.Calculate)
	customsRoutes.GET("/duty-rates", customsHandler.ListRates)
	customsRoutes.POST("/duty-rates", adminOnly, customsHandler.CreateRate)
	customsRoutes.PUT("/duty-rates/:id", adminOnly, customsHandler.UpdateRate)
	customsRoutes.POST("/duty-rates/:id/deactivate", adminOnly, customsHandler.DeactivateRate)

	// Partner domain (customers, agents, shipments)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", staffUp, customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.Get)
	partnerRoutes.PUT("/customers/:id", staffUp, customerHandler.Update)
	partnerRoutes.POST("/customers/:id/activate", staffUp, customerHandler.Activate)
	partnerRoutes.POST("/customers/:id/deactivate", staffUp, customerHandler.Deactivate)
	partnerRoutes.POST("/customers/:id/suspend", staffUp, customerHandler.Suspend)

	partnerRoutes.POST("/agents", staffUp, agentHandler.Create)
	partnerRoutes.GET("/agents", agentHandler.List)
	partnerRoutes.GET("/agents/:id", agentHandler.Get)
	partnerRoutes.PUT("/agents/:id", staffUp, agentHandler.Update)
	partnerRoutes.POST("/agents/:id/activate", staffUp, agentHandler.Activate)
	partnerRoutes.POST("/agents/:id/deactivate", staffUp, agentHandler.Deactivate)
	partnerRoutes.POST("/agents/:id/block", staffUp, agentHandler.Block)
	partnerRoutes.GET("/regions/:regionId/agents", agentHandler.ListByRegion)

	partnerRoutes.POST("/shipments", agentUp, shipmentHandler.Create)
	partnerRoutes.GET("/shipments", shipmentHandler.List)
	partnerRoutes.GET("/shipments/:id", shipmentHandler.Get)
	partnerRoutes.POST("/shipments/:id/advance", agentUp, shipmentHandler.Advance)
	partnerRoutes.POST("/shipments/:id/cancel", agentUp, shipmentHandler.Cancel)

	// Gamification domain (leaderboards, badges, notifications)
	gamificationRoutes := router.NewDomainGroup("gamification", "/gamification")
	gamificationRoutes.GET("/leaderboard", gamificationHandler.Leaderboard)
	gamificationRoutes.GET("/employees/:employeeId/badges", gamificationHandler.ListBadges)
	gamificationRoutes.POST("/rankings/run", adminOnly, gamificationHandler.RunRankings)
	gamificationRoutes.POST("/milestones/run", adminOnly, gamificationHandler.RunMilestones)
	gamificationRoutes.GET("/notifications", gamificationHandler.ListNotifications)
	gamificationRoutes.GET("/notifications/unread/count", gamificationHandler.CountUnreadNotifications)
	gamificationRoutes.POST("/notifications/:id/read", gamificationHandler.MarkNotificationRead)

	// System routes (info, ping, scheduler and outbox administration)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	if cronScheduler != nil {
		schedulerHandler := handler.NewSchedulerHandler(cronScheduler)
		systemRoutes.POST("/scheduler/trigger", adminOnly, schedulerHandler.TriggerJob)
		systemRoutes.GET("/scheduler/status", adminOnly, schedulerHandler.Status)
	}
	systemRoutes.GET("/outbox/stats", adminOnly, outboxHandler.GetStats)
	systemRoutes.GET("/outbox/dead-letters", adminOnly, outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead-letters/retry-all", adminOnly, outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/entries/:id", adminOnly, outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/entries/:id/retry", adminOnly, outboxHandler.RetryDeadEntry)

	// Register all domain groups
	r.Register(pricingRoutes).
		Register(billingRoutes).
		Register(paymentRoutes).
		Register(settlementRoutes).
		Register(customsRoutes).
		Register(partnerRoutes).
		Register(gamificationRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

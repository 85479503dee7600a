package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/TableReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/TableReservationService/internal/api/handlers/check_availability"
	createDineInHandler "github.com/m04kA/TableReservationService/internal/api/handlers/create_dine_in"
	createPaymentIntentHandler "github.com/m04kA/TableReservationService/internal/api/handlers/create_payment_intent"
	createReservationHandler "github.com/m04kA/TableReservationService/internal/api/handlers/create_reservation"
	executeReallocationHandler "github.com/m04kA/TableReservationService/internal/api/handlers/execute_reallocation"
	extendTablesHandler "github.com/m04kA/TableReservationService/internal/api/handlers/extend_tables"
	getCatalogHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_catalog"
	getFloorStatusHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_floor_status"
	getPendingChecksHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_pending_checks"
	getReallocationAlertsHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_reallocation_alerts"
	getReservationHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_reservation"
	getTableDetailsHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_table_details"
	getTimeSlotsHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_time_slots"
	getUpcomingReservationsHandler "github.com/m04kA/TableReservationService/internal/api/handlers/get_upcoming_reservations"
	healthHandler "github.com/m04kA/TableReservationService/internal/api/handlers/health"
	paymentWebhookHandler "github.com/m04kA/TableReservationService/internal/api/handlers/payment_webhook"
	releaseTablesHandler "github.com/m04kA/TableReservationService/internal/api/handlers/release_tables"
	respondCheckHandler "github.com/m04kA/TableReservationService/internal/api/handlers/respond_check"
	runSweepHandler "github.com/m04kA/TableReservationService/internal/api/handlers/run_sweep"
	seatReservationHandler "github.com/m04kA/TableReservationService/internal/api/handlers/seat_reservation"
	"github.com/m04kA/TableReservationService/internal/api/middleware"
	"github.com/m04kA/TableReservationService/internal/config"
	"github.com/m04kA/TableReservationService/internal/infra/ratelimit"
	dineInRepo "github.com/m04kA/TableReservationService/internal/infra/storage/dinein"
	reservationRepo "github.com/m04kA/TableReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/TableReservationService/internal/infra/storage/table"
	tableCheckRepo "github.com/m04kA/TableReservationService/internal/infra/storage/tablecheck"
	tableLockRepo "github.com/m04kA/TableReservationService/internal/infra/storage/tablelock"
	"github.com/m04kA/TableReservationService/internal/integrations/mailer"
	"github.com/m04kA/TableReservationService/internal/integrations/stripegateway"
	"github.com/m04kA/TableReservationService/internal/scheduler"
	"github.com/m04kA/TableReservationService/internal/service/assignment"
	floorService "github.com/m04kA/TableReservationService/internal/service/floor"
	"github.com/m04kA/TableReservationService/internal/service/locks"
	"github.com/m04kA/TableReservationService/internal/service/occupancy"
	paymentsService "github.com/m04kA/TableReservationService/internal/service/payments"
	reservationsService "github.com/m04kA/TableReservationService/internal/service/reservations"
	"github.com/m04kA/TableReservationService/internal/service/tablechecks"
	checkAvailabilityUC "github.com/m04kA/TableReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/TableReservationService/internal/usecase/create_reservation"
	executeReallocationUC "github.com/m04kA/TableReservationService/internal/usecase/execute_reallocation"
	getFloorStatusUC "github.com/m04kA/TableReservationService/internal/usecase/get_floor_status"
	getTimeSlotsUC "github.com/m04kA/TableReservationService/internal/usecase/get_time_slots"
	scanAlertsUC "github.com/m04kA/TableReservationService/internal/usecase/scan_reallocation_alerts"
	"github.com/m04kA/TableReservationService/pkg/dbmetrics"
	"github.com/m04kA/TableReservationService/pkg/logger"
	"github.com/m04kA/TableReservationService/pkg/metrics"
	"github.com/m04kA/TableReservationService/pkg/telemetry"
	"github.com/m04kA/TableReservationService/pkg/txmanager"
)

const (
	// jobTimeout предел одного прогона по расписанию
	jobTimeout = 2 * time.Minute

	sweepRateLimitCleanup = "ratelimit-cleanup"
	rateLimitScope        = "create-reservation"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TableReservationService...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Restaurant.Location()
	if err != nil {
		log.Fatal("Invalid restaurant timezone: %v", err)
	}

	// Трейсинг (пустой endpoint отключает экспорт)
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Metrics.ServiceName, cfg.Telemetry.Endpoint, cfg.Telemetry.Insecure)
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// С nil-коллектором обёртка прозрачна
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	tableRepository := tableRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	dineInRepository := dineInRepo.NewRepository(wrappedDB)
	lockRepository := tableLockRepo.NewRepository(wrappedDB)
	checkRepository := tableCheckRepo.NewRepository(wrappedDB)

	// Лимитер запросов: Redis, если включен, иначе память процесса
	var (
		limiter       middleware.Limiter
		memoryLimiter *ratelimit.MemoryLimiter
		healthDeps    = map[string]healthHandler.Pinger{"postgres": db}
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisLimiter := ratelimit.NewRedisLimiter(redisClient, cfg.Metrics.ServiceName, cfg.RateLimit.Requests, cfg.RateLimit.Window())
		if err := redisLimiter.Ping(context.Background()); err != nil {
			log.Warn("Redis is not reachable yet, rate limiter fails open: %v", err)
		}
		limiter = redisLimiter
		healthDeps["redis"] = healthHandler.PingFunc(redisLimiter.Ping)
		log.Info("Rate limiter backed by Redis at %s", cfg.Redis.Addr)
	} else {
		memoryLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window(), nil)
		limiter = memoryLimiter
		log.Info("Rate limiter backed by process memory")
	}

	// Интеграции
	mailProvider := mailer.NewProvider(mailer.ProviderConfig{
		Kind:         cfg.Mail.Provider,
		From:         cfg.Mail.From,
		SMTPHost:     cfg.Mail.SMTPHost,
		SMTPPort:     cfg.Mail.SMTPPort,
		SMTPUsername: cfg.Mail.SMTPUsername,
		SMTPPassword: cfg.Mail.SMTPPassword,
		WebhookURL:   cfg.Mail.WebhookURL,
		WebhookToken: cfg.Mail.WebhookToken,
		Timeout:      cfg.Mail.Timeout(),
	}, log)
	notifier, err := mailer.NewNotifier(mailProvider, cfg.Restaurant.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}

	stripeClient := stripegateway.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe is not configured, deposits cannot be paid online")
	}
	log.Info("Integrations initialized (mail=%s)", cfg.Mail.Provider)

	// Инициализируем сервисы
	lockManager := locks.NewManager(
		lockRepository,
		reservationRepository,
		metricsCollector,
		locks.Options{
			LockTTL:     time.Duration(cfg.Booking.LockTTLMinutes) * time.Minute,
			DepositHold: time.Duration(cfg.Booking.DepositHoldMinutes) * time.Minute,
		},
		log,
	)

	occupancyResolver := occupancy.NewResolver(reservationRepository, dineInRepository, loc)

	layout := assignment.DefaultLayout()
	if len(cfg.Layout.PreferredLargeTables) > 0 {
		layout.PreferredLargeTables = cfg.Layout.PreferredLargeTables
	}
	if cfg.Layout.AnchorTable > 0 {
		layout.AnchorTable = cfg.Layout.AnchorTable
	}
	if len(cfg.Layout.BridgeTables) > 0 {
		layout.BridgeTables = cfg.Layout.BridgeTables
	}
	engine := assignment.NewEngine(tableRepository, occupancyResolver, layout, metricsCollector, log)

	checkSvc := tablechecks.NewService(
		checkRepository,
		dineInRepository,
		reservationRepository,
		lockManager,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		lockManager,
		checkSvc,
		notifier,
		txMgr,
		metricsCollector,
		loc,
		time.Duration(cfg.Booking.ReviewDelayMinutes)*time.Minute,
		log,
	)
	floorSvc := floorService.NewService(
		tableRepository,
		dineInRepository,
		reservationRepository,
		lockManager,
		checkSvc,
		notifier,
		txMgr,
		log,
	)
	paymentSvc := paymentsService.NewService(
		stripeClient,
		reservationRepository,
		lockManager,
		notifier,
		paymentsService.DepositPolicy{
			MinPartySize: cfg.Booking.DepositMinPartySize,
			AmountCents:  cfg.Booking.DepositAmountCents,
			Currency:     cfg.Booking.DepositCurrency,
		},
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(engine, cfg.Booking.MaxPartySize, log)
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(engine, lockManager, log)
	getFloorStatusUseCase := getFloorStatusUC.NewUseCase(engine, lockManager, log)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		occupancyResolver,
		engine,
		lockManager,
		notifier,
		txMgr,
		createReservationUC.Options{
			MaxPartySize:        cfg.Booking.MaxPartySize,
			DepositMinPartySize: cfg.Booking.DepositMinPartySize,
			Location:            loc,
			BridgeTables:        layout.BridgeTables,
		},
		log,
	)
	scanAlertsUseCase := scanAlertsUC.NewUseCase(
		reservationRepository,
		dineInRepository,
		lockManager,
		engine,
		scanAlertsUC.Options{
			LookAhead: time.Duration(cfg.Booking.AlertLookAheadMinutes) * time.Minute,
			Location:  loc,
		},
		log,
	)
	executeReallocationUseCase := executeReallocationUC.NewUseCase(
		reservationRepository,
		dineInRepository,
		tableRepository,
		lockManager,
		notifier,
		txMgr,
		log,
	)

	// Прогоны обслуживания: по расписанию и через /cron/{job}
	jobs := []scheduler.Job{
		{Name: locks.SweepExpireReservations, Spec: cfg.Cron.ExpireSchedule, Run: lockManager.ExpireStale},
		{Name: tablechecks.SweepTableChecks, Spec: cfg.Cron.TableChecksSchedule, Run: checkSvc.SweepOverdue},
		{Name: reservationsService.SweepReminders, Spec: cfg.Cron.RemindersSchedule, Run: reservationSvc.SendReminders},
		{Name: reservationsService.SweepReviewRequests, Spec: cfg.Cron.ReviewsSchedule, Run: reservationSvc.SendReviewRequests},
	}
	if memoryLimiter != nil {
		jobs = append(jobs, scheduler.Job{
			Name: sweepRateLimitCleanup,
			Spec: "*/5 * * * *",
			Run: func(context.Context, time.Time) (int, error) {
				return memoryLimiter.Cleanup(), nil
			},
		})
	}
	sweeps := scheduler.New(jobTimeout, log, jobs...)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	getFloorStatus := getFloorStatusHandler.NewHandler(getFloorStatusUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	createAdminReservation := createReservationHandler.NewAdminHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getCatalog := getCatalogHandler.NewHandler(floorSvc, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(paymentSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentSvc, log)

	getReallocationAlerts := getReallocationAlertsHandler.NewHandler(scanAlertsUseCase, log)
	executeReallocation := executeReallocationHandler.NewHandler(executeReallocationUseCase, log)
	getUpcomingReservations := getUpcomingReservationsHandler.NewHandler(reservationSvc, log)
	seatReservation := seatReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	createDineIn := createDineInHandler.NewHandler(floorSvc, log)
	releaseTables := releaseTablesHandler.NewHandler(floorSvc, log)
	extendTables := extendTablesHandler.NewHandler(floorSvc, log)
	getTableDetails := getTableDetailsHandler.NewHandler(floorSvc, log)
	getPendingChecks := getPendingChecksHandler.NewHandler(checkSvc, log)
	respondCheck := respondCheckHandler.NewHandler(checkSvc, log)

	runSweep := runSweepHandler.NewHandler(sweeps, log)
	health := healthHandler.NewHandler(healthDeps, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Tracing(cfg.Metrics.ServiceName))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// --- Подбор столов ---
	api.HandleFunc("/reservations/check-availability", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/floor-status", getFloorStatus.Handle).Methods(http.MethodPost)
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	limited := api.PathPrefix("").Subrouter()
	limited.Use(middleware.RateLimit(limiter, rateLimitScope, metricsCollector, log))
	limited.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// --- Депозиты ---
	api.HandleFunc("/payments/intents", createPaymentIntent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	// --- Пересадки ---
	admin.HandleFunc("/reallocation-alerts", getReallocationAlerts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reallocation/execute", executeReallocation.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/reservations", createAdminReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/upcoming", getUpcomingReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId}/seat", seatReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// --- Зал ---
	admin.HandleFunc("/dine-ins", createDineIn.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/tables/release", releaseTables.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/tables/extend", extendTables.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/tables/{tableId:[0-9]+}", getTableDetails.Handle).Methods(http.MethodGet)

	// --- Проверки столов ---
	admin.HandleFunc("/checks/pending", getPendingChecks.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/checks/{checkId}/respond", respondCheck.Handle).Methods(http.MethodPost)

	// ============================================================
	// CRON ROUTES (требуют Authorization: Bearer <secret>)
	// ============================================================

	cronRoutes := api.PathPrefix("/cron").Subrouter()
	cronRoutes.Use(middleware.CronAuth(cfg.Cron.Secret, log))
	cronRoutes.HandleFunc("/{job}", runSweep.Handle).Methods(http.MethodPost)

	// Планировщик внутри процесса (можно отключить, если прогоны дергает внешний cron)
	if cfg.Cron.Scheduler {
		if err := sweeps.Start(); err != nil {
			log.Fatal("Failed to start scheduler: %v", err)
		}
		log.Info("In-process scheduler started: jobs=%v", sweeps.Names())
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Cron.Scheduler {
		sweeps.Stop(shutdownCtx)
		log.Info("Scheduler stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

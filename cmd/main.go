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

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/paintly/booking-service/internal/api/handlers/cancel_booking"
	createAvailabilityHandler "github.com/paintly/booking-service/internal/api/handlers/create_availability"
	createBookingHandler "github.com/paintly/booking-service/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/paintly/booking-service/internal/api/handlers/delete_availability"
	getBookingHandler "github.com/paintly/booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/paintly/booking-service/internal/api/handlers/get_customer_bookings"
	getMyAvailabilityHandler "github.com/paintly/booking-service/internal/api/handlers/get_my_availability"
	getPainterBookingsHandler "github.com/paintly/booking-service/internal/api/handlers/get_painter_bookings"
	listAvailabilityHandler "github.com/paintly/booking-service/internal/api/handlers/list_availability"
	"github.com/paintly/booking-service/internal/api/middleware"
	"github.com/paintly/booking-service/internal/config"
	availabilityRepo "github.com/paintly/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/paintly/booking-service/internal/infra/storage/booking"
	userRepo "github.com/paintly/booking-service/internal/infra/storage/user"
	"github.com/paintly/booking-service/internal/jobs"
	availabilityService "github.com/paintly/booking-service/internal/service/availability"
	bookingsService "github.com/paintly/booking-service/internal/service/bookings"
	createBookingUC "github.com/paintly/booking-service/internal/usecase/create_booking"
	"github.com/paintly/booking-service/pkg/dbmetrics"
	"github.com/paintly/booking-service/pkg/logger"
	"github.com/paintly/booking-service/pkg/metrics"
	"github.com/paintly/booking-service/pkg/simpletxmanager"
	"github.com/paintly/booking-service/pkg/txmanager"
)

func main() {
	// .env удобен для локальной разработки, в проде его просто нет
	_ = godotenv.Load()

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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
		userRepository         *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		userRepository,
		&availabilityService.RealTimeProvider{},
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	getMyAvailability := getMyAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getPainterBookings := getPainterBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичный поиск доступности маляров
	api.HandleFunc("/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Публичный трекер бронирования
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Создание бронирования доступно анонимно: заказчик привязывается,
	// только если пришли валидные заголовки идентификации
	anonymous := api.PathPrefix("").Subrouter()
	anonymous.Use(middleware.OptionalAuth())
	anonymous.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Доступность маляров ---
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/my", getMyAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/painters/{painterId}/bookings", getPainterBookings.Handle).Methods(http.MethodGet)

	// Фоновая очистка истекших слотов доступности
	var jobManager *jobs.Manager
	if cfg.Jobs.AvailabilityCleanupEnabled {
		jobManager = jobs.NewManager(log)
		cleanupJob := jobs.NewAvailabilityCleanupJob(
			availabilityRepository,
			cfg.Jobs.AvailabilityRetentionDays,
			log,
		)
		if err := jobManager.RegisterAvailabilityCleanup(cleanupJob); err != nil {
			log.Fatal("Failed to register availability cleanup job: %v", err)
		}
		jobManager.Start()
		log.Info("Availability cleanup job scheduled (retention=%d days)", cfg.Jobs.AvailabilityRetentionDays)
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

	// Останавливаем фоновые задачи
	if jobManager != nil {
		jobManager.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	deleteDateOverrideHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_date_override"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event_type"
	getEventTypeBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event_type_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_user_bookings"
	releaseReservationHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/release_reservation"
	reserveSlotHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reserve_slot"
	upsertDateOverrideHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/upsert_date_override"
	validateSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/validate_slots"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	reservationRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/reservation"
	calendarServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	schedulesService "github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	reserveSlotUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
	validateSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики опциональны: nil коллектор ничего не пишет
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis хранит временные удержания слотов
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	eventTypeRepository := eventTypeRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(rdb, cfg.Redis.KeyPrefix)

	// Календарь владельца опционален: без URL источник считается пустым
	var calendarClient snapshot.CalendarClient
	if cfg.CalendarService.URL != "" {
		calendarClient = calendarServiceClient.NewClient(
			cfg.CalendarService.URL,
			time.Duration(cfg.CalendarService.Timeout)*time.Second,
			log,
		)
		log.Info("Calendar integration initialized (url=%s, timeout=%ds)",
			cfg.CalendarService.URL, cfg.CalendarService.Timeout)
	} else {
		log.Warn("Calendar integration disabled: calendar_service.url is empty")
	}

	converter := availability.NewIANAConverter().WithDefaultZone(cfg.Engine.DefaultTimezone)

	snapshotLoader := snapshot.NewLoader(
		bookingRepository,
		eventTypeRepository,
		calendarClient,
		reservationRepository,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		eventTypeRepository,
		txMgr,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		eventTypeRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		eventTypeRepository,
		snapshotLoader,
		converter,
		metricsCollector,
		cfg.Engine.MaxRangeDays,
		log,
	)
	validateSlotsUseCase := validateSlotsUC.NewUseCase(
		eventTypeRepository,
		snapshotLoader,
		converter,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		eventTypeRepository,
		snapshotLoader,
		reservationRepository,
		converter,
		txMgr,
		metricsCollector,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		eventTypeRepository,
		snapshotLoader,
		reservationRepository,
		converter,
		cfg.Engine.HoldTTL(),
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateSlots := validateSlotsHandler.NewHandler(validateSlotsUseCase, log)
	getEventType := getEventTypeHandler.NewHandler(scheduleSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseReservation := releaseReservationHandler.NewHandler(reserveSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, converter, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getEventTypeBookings := getEventTypeBookingsHandler.NewHandler(bookingSvc, log)
	upsertDateOverride := upsertDateOverrideHandler.NewHandler(scheduleSvc, log)
	deleteDateOverride := deleteDateOverrideHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Тип события с расписанием
	api.HandleFunc("/event-types/{eventTypeId}", getEventType.Handle).Methods(http.MethodGet)

	// Доступные слоты за диапазон дат
	api.HandleFunc("/event-types/{eventTypeId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка набора времен начала с альтернативами
	api.HandleFunc("/event-types/{eventTypeId}/slots/validate", validateSlots.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/event-types/{eventTypeId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Удержания слотов ---
	protected.HandleFunc("/event-types/{eventTypeId}/reservations", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-types/{eventTypeId}/reservations/{reservationId}",
		releaseReservation.Handle).Methods(http.MethodDelete)

	// --- Управление типом события (для владельца) ---
	protected.HandleFunc("/event-types/{eventTypeId}/bookings", getEventTypeBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/event-types/{eventTypeId}/overrides", upsertDateOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/event-types/{eventTypeId}/overrides/{date}",
		deleteDateOverride.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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

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

	createBookingHandler "github.com/bitebooking/booking-engine/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_availability"
	getBookingHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_booking"
	getClosedDatesHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_closed_dates"
	getRestaurantBookingsHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_restaurant_bookings"
	getSchedulesHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_schedules"
	getUserBookingsHandler "github.com/bitebooking/booking-engine/internal/api/handlers/get_user_bookings"
	manageClosedDatesHandler "github.com/bitebooking/booking-engine/internal/api/handlers/manage_closed_dates"
	updateBookingStatusHandler "github.com/bitebooking/booking-engine/internal/api/handlers/update_booking_status"
	updateSchedulesHandler "github.com/bitebooking/booking-engine/internal/api/handlers/update_schedules"
	"github.com/bitebooking/booking-engine/internal/api/middleware"
	"github.com/bitebooking/booking-engine/internal/config"
	bookingRepo "github.com/bitebooking/booking-engine/internal/infra/storage/booking"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	notifyServiceClient "github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	restaurantServiceClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	bookingsService "github.com/bitebooking/booking-engine/internal/service/bookings"
	schedulesService "github.com/bitebooking/booking-engine/internal/service/schedules"
	createBookingUC "github.com/bitebooking/booking-engine/internal/usecase/create_booking"
	getAvailabilityUC "github.com/bitebooking/booking-engine/internal/usecase/get_availability"
	"github.com/bitebooking/booking-engine/pkg/dbmetrics"
	"github.com/bitebooking/booking-engine/pkg/logger"
	"github.com/bitebooking/booking-engine/pkg/metrics"
	"github.com/bitebooking/booking-engine/pkg/simpletxmanager"
	"github.com/bitebooking/booking-engine/pkg/txmanager"
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

	log.Info("Starting BiteBooking Availability & Booking Engine...")
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

	// Инициализируем интеграционных клиентов
	restaurantClient := restaurantServiceClient.NewClient(
		cfg.RestaurantService.URL,
		time.Duration(cfg.RestaurantService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (RestaurantService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.RestaurantService.URL, cfg.RestaurantService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		closedDateRepository *closedDateRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		closedDateRepository = closedDateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		closedDateRepository = closedDateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		restaurantClient,
		notifyClient,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		closedDateRepository,
		restaurantClient,
		txMgr,
		&schedulesService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		closedDateRepository,
		restaurantClient,
		notifyClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		closedDateRepository,
		restaurantClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRestaurantBookings := getRestaurantBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getSchedules := getSchedulesHandler.NewHandler(scheduleSvc, log)
	updateSchedules := updateSchedulesHandler.NewHandler(scheduleSvc, log)
	getClosedDates := getClosedDatesHandler.NewHandler(scheduleSvc, log)
	manageClosedDates := manageClosedDatesHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

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

	// Доступность на день и на неделю
	api.HandleFunc("/restaurants/{restaurantId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{restaurantId}/availability/week",
		getAvailability.HandleWeek).Methods(http.MethodGet)

	// Недельное расписание ресторана
	api.HandleFunc("/restaurants/{restaurantId}/schedules",
		getSchedules.Handle).Methods(http.MethodGet)

	// Предстоящие даты закрытия
	api.HandleFunc("/restaurants/{restaurantId}/closed-dates",
		getClosedDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы статусов бронирования
	protected.HandleFunc("/bookings/{bookingId}/confirm", updateBookingStatus.HandleConfirm).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", updateBookingStatus.HandleReject).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", updateBookingStatus.HandleCancel).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", updateBookingStatus.HandleComplete).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", updateBookingStatus.HandleNoShow).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление рестораном (для владельцев) ---
	// Список бронирований ресторана
	protected.HandleFunc("/restaurants/{restaurantId}/bookings", getRestaurantBookings.Handle).Methods(http.MethodGet)

	// Управление недельным расписанием
	protected.HandleFunc("/restaurants/{restaurantId}/schedules", updateSchedules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/restaurants/{restaurantId}/schedules/bulk", updateSchedules.HandleBulk).Methods(http.MethodPut)
	protected.HandleFunc("/restaurants/{restaurantId}/schedules/{dayOfWeek}", updateSchedules.HandleDelete).Methods(http.MethodDelete)

	// Управление датами закрытия
	protected.HandleFunc("/restaurants/{restaurantId}/closed-dates", manageClosedDates.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/closed-dates/bulk", manageClosedDates.HandleBulkAdd).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/closed-dates/{date}", manageClosedDates.HandleRemove).Methods(http.MethodDelete)

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

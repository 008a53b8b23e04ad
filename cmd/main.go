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

	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createLeaveHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_leave"
	deleteLeaveHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_leave"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_calendar_availability"
	getCustomerBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_customer_bookings"
	getUnitBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_unit_bookings"
	getUnitScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_unit_schedule"
	healthHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/health"
	listLeavesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_leaves"
	transitionBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/transition_booking"
	updateUnitScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_unit_schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/hold"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/migrator"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	leaveRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getCalendarUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_calendar_availability"
	transitionBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const (
	version           = "1.0.0"
	poolStatsInterval = 15 * time.Second
)

// eventPublisher Kafka или no-op публикатор, закрывается при остановке
type eventPublisher interface {
	createBookingUC.EventPublisher
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Коллекторы создаются всегда, endpoint и HTTP middleware включаются флагом
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	clock, err := civiltime.NewClock(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Подключаемся к базе данных
	rawDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}

	// Настраиваем connection pool
	rawDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	rawDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	rawDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	db := dbmetrics.Wrap(rawDB, metricsCollector)
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	go db.CollectPoolStats(ctx, poolStatsInterval)

	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db.Unwrap(), migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Up(ctx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Удержание расписания мастера на время бронирования
	var (
		holder      createBookingUC.SlotHolder = hold.NoopHolder{}
		redisHealth healthHandler.Check
	)
	if cfg.Redis.Enabled {
		client, err := hold.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer client.Close()

		holder = hold.NewRedisHolder(client, cfg.Booking.HoldTTL())
		redisHealth = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info("Redis booking hold enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Booking.HoldTTL())
	} else {
		log.Warn("Redis disabled: booking relies on serializable transactions and the exclusion constraint only")
	}

	// Публикация событий бронирования
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Репозитории
	txManager := txmanager.NewTransactionManager(db)
	bookingRepository := bookingRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	leaveRepository := leaveRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		leaveRepository,
		catalogRepository,
		txManager,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		leaveRepository,
		catalogRepository,
		clock,
		metricsCollector,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		leaveRepository,
		catalogRepository,
		clock,
		cfg.Booking.SaturationThreshold,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		leaveRepository,
		catalogRepository,
		holder,
		publisher,
		txManager,
		clock,
		metricsCollector,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		txManager,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUnitBookings := getUnitBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getUnitSchedule := getUnitScheduleHandler.NewHandler(scheduleSvc, log)
	updateUnitSchedule := updateUnitScheduleHandler.NewHandler(scheduleSvc, log)
	listLeaves := listLeavesHandler.NewHandler(scheduleSvc, log)
	createLeave := createLeaveHandler.NewHandler(scheduleSvc, log)
	deleteLeave := deleteLeaveHandler.NewHandler(scheduleSvc, log)

	deps := []healthHandler.Dependency{{Name: "postgres", Check: db.PingContext, Required: true}}
	if redisHealth != nil {
		deps = append(deps, healthHandler.Dependency{Name: "redis", Check: redisHealth})
	}
	health := healthHandler.NewHandler(version, deps...)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health/live", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.Readiness).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободное время мастера на дату и календарь на месяц
	api.HandleFunc("/units/{unitId}/professionals/{professionalId}/availability",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/professionals/{professionalId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Расписание салона
	api.HandleFunc("/units/{unitId}/schedule", getUnitSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	protected.HandleFunc("/units/{unitId}/bookings", getUnitBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/units/{unitId}/schedule", updateUnitSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}/leaves", listLeaves.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/leaves", createLeave.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/leaves/{leaveId}", deleteLeave.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор статистики пула
	stop()

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

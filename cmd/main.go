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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_slot"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getStoreAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_store_appointments"
	getStoreSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_store_settings"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment_status"
	updateStoreSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_store_settings"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/idempotency"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	storeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/store"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/whatsapp"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	settingsService "github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/worker/reminders"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// .env опционален, переменные окружения могут прийти из оркестратора
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

	log.Info("Starting SMC-SchedulingService...")

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

	// Без метрик обертка только пробрасывает транзакцию через контекст
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	storeRepository := storeRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB).WithLogger(log)

	// Redis для ключей идемпотентности (опционально)
	var (
		redisClient      *redis.Client
		idempotencyStore createAppointmentUC.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		opTimeout := time.Duration(cfg.Redis.OperationTimeout) * time.Second
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  opTimeout,
			ReadTimeout:  opTimeout,
			WriteTimeout: opTimeout,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), opTimeout)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		idempotencyStore = idempotency.NewStore(
			redisClient,
			time.Duration(cfg.Redis.IdempotencyTTL)*time.Second,
			time.Duration(cfg.Redis.PendingTTL)*time.Second,
		)
		log.Info("Idempotency store connected to redis (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn("Redis disabled, Idempotency-Key header will be ignored")
	}

	// Уведомления клиентам
	notifier := whatsapp.NewClient(whatsapp.Config{
		Enabled:       cfg.WhatsApp.Enabled,
		AccountSID:    cfg.WhatsApp.AccountSID,
		AuthToken:     cfg.WhatsApp.AuthToken,
		FromNumber:    cfg.WhatsApp.FromNumber,
		PublicBaseURL: cfg.WhatsApp.PublicBaseURL,
	}, metricsCollector, log)
	log.Info("WhatsApp notifications enabled=%t", notifier.Enabled())

	// Инициализируем сервисы
	resolver := reservation.NewResolver(
		storeRepository,
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		storeRepository,
		notifier,
		txManager,
		log,
	)
	settingsSvc := settingsService.NewService(storeRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		storeRepository,
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		resolver,
		appointmentRepository,
		txManager,
		idempotencyStore,
		notifier,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		resolver,
		appointmentRepository,
		storeRepository,
		txManager,
		notifier,
		metricsCollector,
		log,
	)

	// Воркер напоминаний
	var reminderWorker *reminders.Worker
	if cfg.Reminders.Enabled {
		reminderWorker = reminders.NewWorker(
			reminders.Config{Schedule: cfg.Reminders.Schedule, LeadDays: cfg.Reminders.LeadDays},
			appointmentRepository,
			storeRepository,
			notifier,
			log,
		)
		if err := reminderWorker.Start(); err != nil {
			log.Fatal("Failed to start reminder worker: %v", err)
		}
		log.Info("Reminder worker started (schedule=%q, lead_days=%d)", cfg.Reminders.Schedule, cfg.Reminders.LeadDays)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(resolver, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStoreAppointments := getStoreAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStoreSettings := getStoreSettingsHandler.NewHandler(settingsSvc, log)
	updateStoreSettings := updateStoreSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты и проверка конкретного слота
	api.HandleFunc("/stores/{storeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeId}/slots/check", checkSlot.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/stores/{storeId}/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Настройки записи магазина
	api.HandleFunc("/stores/{storeId}/settings", getStoreSettings.Handle).Methods(http.MethodGet)

	// Управление записью клиентом по публичному токену
	api.HandleFunc("/public/appointments/{token}", getAppointment.HandlePublic).Methods(http.MethodGet)
	api.HandleFunc("/public/appointments/{token}/slot", rescheduleAppointment.HandlePublic).Methods(http.MethodPatch)
	api.HandleFunc("/public/appointments/{token}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи (для владельца магазина) ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/slot", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/stores/{storeId}/appointments", getStoreAppointments.Handle).Methods(http.MethodGet)

	// --- Настройки магазина ---
	protected.HandleFunc("/stores/{storeId}/settings", updateStoreSettings.Handle).Methods(http.MethodPut)

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

	if reminderWorker != nil {
		if err := reminderWorker.Stop(shutdownCtx); err != nil {
			log.Error("Reminder worker did not stop in time: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

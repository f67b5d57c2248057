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

	cancelAppointmentHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/get_availability"
	getCalendarHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/get_calendar"
	getStatisticsHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/get_statistics"
	remindersHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/reminders"
	rescheduleAppointmentHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/reschedule_appointment"
	searchAppointmentsHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/search_appointments"
	updateStatusHandler "github.com/akaisui/car-repair-backend-sub000/internal/api/handlers/update_appointment_status"
	"github.com/akaisui/car-repair-backend-sub000/internal/api/middleware"
	"github.com/akaisui/car-repair-backend-sub000/internal/config"
	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	appointmentRepo "github.com/akaisui/car-repair-backend-sub000/internal/infra/storage/appointment"
	notifyClient "github.com/akaisui/car-repair-backend-sub000/internal/integrations/notifyservice"
	appointmentsService "github.com/akaisui/car-repair-backend-sub000/internal/service/appointments"
	calendarService "github.com/akaisui/car-repair-backend-sub000/internal/service/calendar"
	bookAppointmentUC "github.com/akaisui/car-repair-backend-sub000/internal/usecase/book_appointment"
	checkAvailabilityUC "github.com/akaisui/car-repair-backend-sub000/internal/usecase/check_availability"
	rescheduleAppointmentUC "github.com/akaisui/car-repair-backend-sub000/internal/usecase/reschedule_appointment"
	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
	"github.com/akaisui/car-repair-backend-sub000/pkg/logger"
	"github.com/akaisui/car-repair-backend-sub000/pkg/metrics"
	"github.com/akaisui/car-repair-backend-sub000/pkg/simpletxmanager"
	"github.com/akaisui/car-repair-backend-sub000/pkg/txmanager"
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

	log.Info("Starting appointment service...")
	log.Info("Configuration loaded from config.toml")

	// Собираем расписание работы мастерской
	businessHours, err := domain.NewBusinessHours(
		cfg.BusinessHours.OpenTime,
		cfg.BusinessHours.CloseTime,
		cfg.BusinessHours.BreakStart,
		cfg.BusinessHours.BreakEnd,
		cfg.BusinessHours.SlotMinutes,
		cfg.BusinessHours.WorkingDays,
	)
	if err != nil {
		log.Fatal("Invalid business hours configuration: %v", err)
	}
	log.Info("Business hours: %s-%s, break %s-%s, slot %d min",
		businessHours.OpenTime, businessHours.CloseTime,
		businessHours.BreakStart, businessHours.BreakEnd, businessHours.SlotMinutes)

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

	// Клиент сервиса уведомлений
	var eventPublisher interface {
		PublishEventAsync(event *notifyClient.AppointmentEvent)
	}
	if cfg.NotifyService.Enabled {
		eventPublisher = notifyClient.NewClient(
			cfg.NotifyService.URL,
			time.Duration(cfg.NotifyService.Timeout)*time.Second,
			log,
		)
		log.Info("Notify service client initialized (url=%s, timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	} else {
		eventPublisher = notifyClient.NoopPublisher{}
		log.Info("Notify service disabled, events will be dropped")
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var appointmentRepository *appointmentRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &bookAppointmentUC.RealTimeProvider{}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		eventPublisher,
		timeProvider,
		log,
	)
	calendarSvc := calendarService.NewService(
		appointmentRepository,
		businessHours,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		businessHours,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		eventPublisher,
		businessHours,
		timeProvider,
		&bookAppointmentUC.MathRandSource{},
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		businessHours,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	searchAppointments := searchAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(calendarSvc, log)
	reminders := remindersHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// Доступные слоты на дату
	api.HandleFunc("/appointments/available-slots", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по публичному коду
	api.HandleFunc("/appointments/code/{code}", getAppointment.HandleByCode).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Поиск записей с фильтрацией и пагинацией
	protected.HandleFunc("/appointments", searchAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи на другой слот
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPut)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPut)

	// Обновление статуса записи
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Календарное представление и статистика
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (для фоновых задач)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()

	// Записи, ожидающие напоминания
	internal.HandleFunc("/appointments/reminders", reminders.HandleList).Methods(http.MethodGet)

	// Пометка напоминания отправленным
	internal.HandleFunc("/appointments/{appointmentId:[0-9]+}/reminder-sent", reminders.HandleMarkSent).Methods(http.MethodPost)

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

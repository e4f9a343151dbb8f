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

	cancelBookingHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/get_booking"
	getSlotTemplatesHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/get_slot_templates"
	listBookingsHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/reschedule_booking"
	resolveSpecialHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/resolve_special_booking"
	submitSpecialHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/submit_special_booking"
	updateSlotTemplateHandler "github.com/m04kA/FTV-BookingService/internal/api/handlers/update_slot_template"
	"github.com/m04kA/FTV-BookingService/internal/api/middleware"
	"github.com/m04kA/FTV-BookingService/internal/config"
	bookingRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/booking"
	notifylogRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/notifylog"
	timeslotsRepo "github.com/m04kA/FTV-BookingService/internal/infra/storage/timeslots"
	calendarClient "github.com/m04kA/FTV-BookingService/internal/integrations/calendarservice"
	notifyClient "github.com/m04kA/FTV-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/FTV-BookingService/internal/notifier"
	bookingsService "github.com/m04kA/FTV-BookingService/internal/service/bookings"
	timeslotsService "github.com/m04kA/FTV-BookingService/internal/service/timeslots"
	createBookingUC "github.com/m04kA/FTV-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/FTV-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/FTV-BookingService/internal/usecase/reschedule_booking"
	resolveSpecialUC "github.com/m04kA/FTV-BookingService/internal/usecase/resolve_special_booking"
	submitSpecialUC "github.com/m04kA/FTV-BookingService/internal/usecase/submit_special_booking"
	"github.com/m04kA/FTV-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTV-BookingService/pkg/logger"
	"github.com/m04kA/FTV-BookingService/pkg/metrics"
	"github.com/m04kA/FTV-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FTV-BookingService/pkg/txmanager"
)

func main() {
	// .env для локальной разработки, в проде переменные приходят из окружения
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

	log.Info("Starting FTV-BookingService...")
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
	calendar := calendarClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	notify := notifyClient.NewClient(
		cfg.NotifyService.URL,
		cfg.Secrets.NotifyAPIToken,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CalendarService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.CalendarService.URL, cfg.CalendarService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		timeslotsRepository *timeslotsRepo.Repository
		notifylogRepository *notifylogRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		timeslotsRepository = timeslotsRepo.NewRepository(wrappedDB)
		notifylogRepository = notifylogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		timeslotsRepository = timeslotsRepo.NewRepository(db)
		notifylogRepository = notifylogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Запускаем фоновый диспетчер уведомлений
	var notifierMetrics notifier.Metrics
	if metricsCollector != nil {
		notifierMetrics = metricsCollector
	}
	dispatcher := notifier.NewDispatcher(
		notify,
		notifylogRepository,
		notifierMetrics,
		log,
		cfg.Notifications.QueueSize,
		cfg.Notifications.SMSMaxRetries,
	)
	dispatcher.Start()
	log.Info("Notification dispatcher started (queue=%d, sms_retries=%d)",
		cfg.Notifications.QueueSize, cfg.Notifications.SMSMaxRetries)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, dispatcher, log)
	timeslotSvc := timeslotsService.NewService(timeslotsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		calendar,
		dispatcher,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		calendar,
		log,
	)
	submitSpecialUseCase := submitSpecialUC.NewUseCase(
		bookingRepository,
		calendar,
		dispatcher,
		txMgr,
		log,
	)
	resolveSpecialUseCase := resolveSpecialUC.NewUseCase(
		bookingRepository,
		dispatcher,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		calendar,
		dispatcher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitSpecial := submitSpecialHandler.NewHandler(submitSpecialUseCase, log)
	resolveSpecial := resolveSpecialHandler.NewHandler(resolveSpecialUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getSlotTemplates := getSlotTemplatesHandler.NewHandler(timeslotSvc, log)
	updateSlotTemplate := updateSlotTemplateHandler.NewHandler(timeslotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (номер бронирования выступает ключом доступа)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание обычного бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по номеру
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	api.HandleFunc("/bookings/{reference}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Подача специальной заявки
	api.HandleFunc("/special-bookings", submitSpecial.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth)

	// Список бронирований с фильтрацией
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Рассмотрение специальной заявки
	admin.HandleFunc("/special-bookings/{reference}/resolve", resolveSpecial.Handle).Methods(http.MethodPost)

	// Шаблоны экскурсионных слотов
	admin.HandleFunc("/slot-templates", getSlotTemplates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slot-templates/{templateId}", updateSlotTemplate.Handle).Methods(http.MethodPut)

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

	// Дожидаемся отправки уведомлений из очереди
	dispatcher.Stop()
	log.Info("Notification dispatcher drained")

	log.Info("Server stopped gracefully")
}

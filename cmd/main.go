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

	confirmPaymentHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/get_booking"
	getTakenSlotsHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/get_taken_slots"
	listBookingsHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/list_bookings"
	manageAvailabilityHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/manage_availability"
	managePromocodesHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/manage_promocodes"
	manageTestimonialsHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/manage_testimonials"
	updateBookingHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/update_booking"
	validatePromoHandler "github.com/m04kA/ACS-ConsultationService/internal/api/handlers/validate_promo"
	"github.com/m04kA/ACS-ConsultationService/internal/api/middleware"
	"github.com/m04kA/ACS-ConsultationService/internal/config"
	availabilityRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/booking"
	promoRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/promo"
	testimonialRepo "github.com/m04kA/ACS-ConsultationService/internal/infra/storage/testimonial"
	notifyClient "github.com/m04kA/ACS-ConsultationService/internal/integrations/notify"
	paymentClient "github.com/m04kA/ACS-ConsultationService/internal/integrations/paymentgateway"
	availabilityService "github.com/m04kA/ACS-ConsultationService/internal/service/availability"
	bookingsService "github.com/m04kA/ACS-ConsultationService/internal/service/bookings"
	promocodesService "github.com/m04kA/ACS-ConsultationService/internal/service/promocodes"
	testimonialsService "github.com/m04kA/ACS-ConsultationService/internal/service/testimonials"
	confirmPaymentUC "github.com/m04kA/ACS-ConsultationService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/ACS-ConsultationService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/ACS-ConsultationService/internal/usecase/get_available_slots"
	"github.com/m04kA/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/ACS-ConsultationService/pkg/logger"
	"github.com/m04kA/ACS-ConsultationService/pkg/metrics"
	"github.com/m04kA/ACS-ConsultationService/pkg/simpletxmanager"
	"github.com/m04kA/ACS-ConsultationService/pkg/txmanager"
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

	log.Info("Starting ACS-ConsultationService...")
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
	payments := paymentClient.NewClient(
		cfg.Payments.URL,
		cfg.Payments.KeyID,
		cfg.Payments.KeySecret,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.Payments.URL, cfg.Payments.Timeout)

	var notifier *notifyClient.Client
	if cfg.Notifications.Enabled {
		notifier = notifyClient.NewClient(
			cfg.Notifications.WebhookURL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		log.Info("Notification client initialized (webhook=%s)", cfg.Notifications.WebhookURL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		promoRepository        *promoRepo.Repository
		testimonialRepository  *testimonialRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		promoRepository = promoRepo.NewRepository(wrappedDB)
		testimonialRepository = testimonialRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		promoRepository = promoRepo.NewRepository(db)
		testimonialRepository = testimonialRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)
	promoSvc := promocodesService.NewService(promoRepository, log)
	testimonialSvc := testimonialsService.NewService(testimonialRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		promoRepository,
		payments,
		txMgr,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		payments,
		notifierOrNil(notifier),
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getTakenSlots := getTakenSlotsHandler.NewHandler(bookingSvc, log)
	validatePromo := validatePromoHandler.NewHandler(promoSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	managePromocodes := managePromocodesHandler.NewHandler(promoSvc, log)
	manageAvailability := manageAvailabilityHandler.NewHandler(availabilitySvc, log)
	manageTestimonials := manageTestimonialsHandler.NewHandler(testimonialSvc, log)

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

	// Per-IP rate limiter
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		api.Use(rateLimiter.Middleware)
		log.Info("Rate limiter enabled (%d req/min, burst %d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Занятые слоты для календаря
	api.HandleFunc("/availability/taken", getTakenSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования с платёжной сессией
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Подтверждение оплаты
	api.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	// Проверка промокода (информационная, лимит не расходует)
	api.HandleFunc("/promocodes/validate", validatePromo.Handle).Methods(http.MethodPost)

	// Отзывы
	api.HandleFunc("/testimonials", manageTestimonials.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/testimonials", manageTestimonials.HandleListPublic).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", listBookings.HandleStats).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	admin.HandleFunc("/availability/templates", manageAvailability.HandleCreateTemplate).Methods(http.MethodPost)
	admin.HandleFunc("/availability/templates", manageAvailability.HandleListTemplates).Methods(http.MethodGet)
	admin.HandleFunc("/availability/templates/{templateId}", manageAvailability.HandleSetTemplateActive).Methods(http.MethodPatch)
	admin.HandleFunc("/availability/templates/{templateId}", manageAvailability.HandleDeleteTemplate).Methods(http.MethodDelete)
	admin.HandleFunc("/availability/blocked-dates", manageAvailability.HandleCreateBlockedDate).Methods(http.MethodPost)
	admin.HandleFunc("/availability/blocked-dates", manageAvailability.HandleListBlockedDates).Methods(http.MethodGet)
	admin.HandleFunc("/availability/blocked-dates/{blockedDateId}", manageAvailability.HandleDeleteBlockedDate).Methods(http.MethodDelete)

	// --- Промокоды ---
	admin.HandleFunc("/promocodes", managePromocodes.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/promocodes", managePromocodes.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/promocodes/{promoId}", managePromocodes.HandleSetActive).Methods(http.MethodPatch)
	admin.HandleFunc("/promocodes/{promoId}", managePromocodes.HandleDelete).Methods(http.MethodDelete)

	// --- Отзывы ---
	admin.HandleFunc("/testimonials", manageTestimonials.HandleListAll).Methods(http.MethodGet)
	admin.HandleFunc("/testimonials/{testimonialId}", manageTestimonials.HandleSetApproved).Methods(http.MethodPatch)
	admin.HandleFunc("/testimonials/{testimonialId}", manageTestimonials.HandleDelete).Methods(http.MethodDelete)

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

// notifierOrNil возвращает nil-интерфейс, если уведомления выключены
func notifierOrNil(c *notifyClient.Client) confirmPaymentUC.Notifier {
	if c == nil {
		return nil
	}
	return c
}

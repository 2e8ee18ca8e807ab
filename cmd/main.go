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

	confirmDepositHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/confirm_deposit"
	createBookingHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/create_booking"
	createReceptionHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/create_reception"
	getBookingHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_booking"
	getCenterHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_center"
	getCenterBookingsHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_center_bookings"
	getReceptionHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_reception"
	getSlotUsageHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_slot_usage"
	getUserBookingsHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/get_user_bookings"
	markReceivedHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/mark_received"
	partRequestsHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/part_requests"
	receptionStatusHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/reception_status"
	requestCancellationHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/request_cancellation"
	requestRescheduleHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/request_reschedule"
	resolveCancellationHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/resolve_cancellation"
	resolveRescheduleHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/resolve_reschedule"
	updateRecordStatusHandler "github.com/no-solace/ev-maintenance-system-sub001/internal/api/handlers/update_record_status"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/api/middleware"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/config"
	bookingRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/booking"
	catalogRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/catalog"
	centerRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/center"
	receptionRepo "github.com/no-solace/ev-maintenance-system-sub001/internal/infra/storage/reception"
	paymentClient "github.com/no-solace/ev-maintenance-system-sub001/internal/integrations/paymentgw"
	"github.com/no-solace/ev-maintenance-system-sub001/internal/jobs"
	bookingsService "github.com/no-solace/ev-maintenance-system-sub001/internal/service/bookings"
	centersService "github.com/no-solace/ev-maintenance-system-sub001/internal/service/centers"
	receptionsService "github.com/no-solace/ev-maintenance-system-sub001/internal/service/receptions"
	createBookingUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_booking"
	createReceptionUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/create_reception"
	getSlotUsageUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/get_slot_usage"
	rescheduleBookingUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/reschedule_booking"
	sweepExpiredUC "github.com/no-solace/ev-maintenance-system-sub001/internal/usecase/sweep_expired"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/dbmetrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/logger"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/metrics"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/simpletxmanager"
	"github.com/no-solace/ev-maintenance-system-sub001/pkg/txmanager"
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

	log.Info("Starting EV-MaintenanceService...")
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

	// Инициализируем клиента платёжного шлюза
	paymentGW := paymentClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		centerRepository    *centerRepo.Repository
		receptionRepository *receptionRepo.Repository
		catalogRepository   *catalogRepo.Repository
	)

	// Интерфейс transaction manager'а, общий для services и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		centerRepository = centerRepo.NewRepository(wrappedDB)
		receptionRepository = receptionRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		centerRepository = centerRepo.NewRepository(db)
		receptionRepository = receptionRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		centerRepository,
		txMgr,
		cfg.Booking.MinLeadMinutes,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		centerRepository,
		txMgr,
		log,
	)

	getSlotUsageUseCase := getSlotUsageUC.NewUseCase(
		bookingRepository,
		centerRepository,
		log,
	)

	createReceptionUseCase := createReceptionUC.NewUseCase(
		receptionRepository,
		bookingRepository,
		catalogRepository,
		txMgr,
		log,
	)

	var sweepMetrics sweepExpiredUC.Metrics
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}
	sweepExpiredUseCase := sweepExpiredUC.NewUseCase(
		bookingRepository,
		cfg.Booking.PaymentTimeoutMinutes,
		sweepMetrics,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		centerRepository,
		paymentGW,
		createReceptionUseCase,
		txMgr,
		cfg.Booking.ModifyLeadMinutes,
		cfg.Booking.ArrivalGraceMinutes,
		log,
	)
	receptionSvc := receptionsService.NewService(
		receptionRepository,
		bookingRepository,
		catalogRepository,
		txMgr,
		log,
	)
	centerSvc := centersService.NewService(centerRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmDeposit := confirmDepositHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCenterBookings := getCenterBookingsHandler.NewHandler(bookingSvc, log)
	getSlotUsage := getSlotUsageHandler.NewHandler(getSlotUsageUseCase, log)
	getCenter := getCenterHandler.NewHandler(centerSvc, log)
	requestCancellation := requestCancellationHandler.NewHandler(bookingSvc, log)
	resolveCancellation := resolveCancellationHandler.NewHandler(bookingSvc, log)
	requestReschedule := requestRescheduleHandler.NewHandler(bookingSvc, log)
	resolveReschedule := resolveRescheduleHandler.NewHandler(rescheduleBookingUseCase, bookingSvc, log)
	markReceived := markReceivedHandler.NewHandler(bookingSvc, log)
	createReception := createReceptionHandler.NewHandler(createReceptionUseCase, log)
	getReception := getReceptionHandler.NewHandler(receptionSvc, log)
	receptionStatus := receptionStatusHandler.NewHandler(receptionSvc, log)
	updateRecordStatus := updateRecordStatusHandler.NewHandler(receptionSvc, log)
	partRequests := partRequestsHandler.NewHandler(receptionSvc, log)

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

	// Справочник сервисных центров
	api.HandleFunc("/centers", getCenter.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/centers/{centerId}", getCenter.Handle).Methods(http.MethodGet)

	// Занятость слотов центра на дату
	api.HandleFunc("/centers/{centerId}/slot-usage", getSlotUsage.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (pending_payment до подтверждения депозита)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение депозита через платёжный шлюз
	protected.HandleFunc("/bookings/{bookingId}/confirm-deposit",
		confirmDeposit.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Запросы на отмену и перенос ---
	protected.HandleFunc("/bookings/{bookingId}/cancellation-request",
		requestCancellation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancellation-request/approve",
		resolveCancellation.HandleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancellation-request/reject",
		resolveCancellation.HandleReject).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule-request",
		requestReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule-request/approve",
		resolveReschedule.HandleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule-request/reject",
		resolveReschedule.HandleReject).Methods(http.MethodPost)

	// --- Для персонала центра ---
	// Список бронирований центра
	protected.HandleFunc("/centers/{centerId}/bookings",
		getCenterBookings.Handle).Methods(http.MethodGet)

	// Отметка прибытия клиента: бронирование переходит в received,
	// создаётся приёмка с развёрнутым пакетом ТО
	protected.HandleFunc("/bookings/{bookingId}/receive", markReceived.Handle).Methods(http.MethodPost)

	// --- Приёмки ---
	// Walk-in приёмка без предварительного бронирования
	protected.HandleFunc("/receptions", createReception.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/receptions/{receptionId}", getReception.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/receptions/{receptionId}/records",
		getReception.HandleRecords).Methods(http.MethodGet)
	protected.HandleFunc("/receptions/{receptionId}/records/recover",
		createReception.HandleRecover).Methods(http.MethodPost)

	// Жизненный цикл приёмки
	protected.HandleFunc("/receptions/{receptionId}/assign",
		receptionStatus.HandleAssign).Methods(http.MethodPost)
	protected.HandleFunc("/receptions/{receptionId}/start",
		receptionStatus.HandleStart).Methods(http.MethodPost)
	protected.HandleFunc("/receptions/{receptionId}/complete",
		receptionStatus.HandleComplete).Methods(http.MethodPost)
	protected.HandleFunc("/receptions/{receptionId}/pay",
		receptionStatus.HandlePaid).Methods(http.MethodPost)

	// --- Записи инспекции ---
	protected.HandleFunc("/records/{recordId}", updateRecordStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/records/batch", updateRecordStatus.HandleBatch).Methods(http.MethodPost)

	// --- Заявки на запчасти ---
	protected.HandleFunc("/receptions/{receptionId}/part-requests",
		partRequests.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/receptions/{receptionId}/part-requests",
		partRequests.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/part-requests/{requestId}/approve",
		partRequests.HandleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/part-requests/{requestId}/reject",
		partRequests.HandleReject).Methods(http.MethodPost)
	protected.HandleFunc("/part-requests/{requestId}/use",
		partRequests.HandleUse).Methods(http.MethodPost)

	// Запускаем sweeper просроченных бронирований
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	sweeper := jobs.NewSweeper(
		sweepExpiredUseCase,
		time.Duration(cfg.Booking.SweepIntervalMinutes)*time.Minute,
		log,
	)
	go sweeper.Run(sweeperCtx)

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

	// Останавливаем фоновый sweeper
	stopSweeper()

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

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

	cancelBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/confirm_booking"
	createBlockHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/create_block"
	createHoldHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/create_hold"
	deleteBlockHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/delete_block"
	getAvailabilityHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_day_schedule"
	getFreeSlotsHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_free_slots"
	getProfileHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_profile"
	getUserBookingsHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_user_bookings"
	getWaitlistHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/get_waitlist"
	noshowBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/noshow_booking"
	rejectBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/reject_booking"
	rescheduleBookingHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/reschedule_booking"
	subscribeWaitlistHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/subscribe_waitlist"
	unsubscribeWaitlistHandler "github.com/m04kA/SRC-BookingService/internal/api/handlers/unsubscribe_waitlist"
	"github.com/m04kA/SRC-BookingService/internal/api/middleware"
	"github.com/m04kA/SRC-BookingService/internal/config"
	"github.com/m04kA/SRC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/client"
	waitlistRepo "github.com/m04kA/SRC-BookingService/internal/infra/storage/waitlist"
	notifyClient "github.com/m04kA/SRC-BookingService/internal/integrations/notify"
	"github.com/m04kA/SRC-BookingService/internal/scheduler"
	availabilityService "github.com/m04kA/SRC-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SRC-BookingService/internal/service/bookings"
	loyaltyService "github.com/m04kA/SRC-BookingService/internal/service/loyalty"
	waitlistService "github.com/m04kA/SRC-BookingService/internal/service/waitlist"
	confirmBookingUC "github.com/m04kA/SRC-BookingService/internal/usecase/confirm_booking"
	createHoldUC "github.com/m04kA/SRC-BookingService/internal/usecase/create_hold"
	getFreeSlotsUC "github.com/m04kA/SRC-BookingService/internal/usecase/get_free_slots"
	rescheduleBookingUC "github.com/m04kA/SRC-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SRC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SRC-BookingService/pkg/logger"
	"github.com/m04kA/SRC-BookingService/pkg/metrics"
	"github.com/m04kA/SRC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SRC-BookingService/pkg/txmanager"
)

// Notifier общий интерфейс шлюза уведомлений; реализуется и настоящим
// клиентом, и заглушкой на случай notify.enabled = false
type Notifier interface {
	NotifyHoldCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string)
	NotifyBookingReminder(ctx context.Context, b *domain.Booking)
	NotifyWaitlistSlotFree(ctx context.Context, e *domain.WaitlistEntry, freeSims int)
}

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

	log.Info("Starting SRC-BookingService...")

	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	schedule := domain.Schedule{
		OpenHour:         cfg.Booking.OpenHour,
		OpenMinute:       cfg.Booking.OpenMinute,
		CloseHour:        cfg.Booking.CloseHour,
		CloseMinute:      cfg.Booking.CloseMinute,
		SlotStepMinutes:  cfg.Booking.SlotStepMinutes,
		SafetyGapMinutes: cfg.Booking.SafetyGapMinutes,
		Location:         location,
	}
	tariffs := domain.DefaultTariffs()

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Шлюз уведомлений: настоящий клиент или заглушка
	var notifier Notifier
	if cfg.Notify.Enabled {
		notifier = notifyClient.NewClient(cfg.Notify.URL, time.Duration(cfg.Notify.Timeout)*time.Second, log)
		log.Info("Notify gateway enabled at %s (timeout=%ds)", cfg.Notify.URL, cfg.Notify.Timeout)
	} else {
		notifier = notifyClient.NewNopClient()
		log.Info("Notify gateway disabled")
	}

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		clientRepository   *clientRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(bookingRepository, cfg.Booking.MaxSims, log)
	loyaltySvc := loyaltyService.NewService(clientRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		loyaltySvc,
		txMgr,
		notifier,
		schedule,
		cfg.Booking.MaxSims,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		schedule,
		tariffs,
		cfg.Booking.MaxSims,
		log,
	)

	// Инициализируем use cases
	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		loyaltySvc,
		schedule,
		tariffs,
		cfg.Booking.MaxSims,
		cfg.Booking.HoldDuration(),
		cfg.Booking.MaxActiveBookingsPerUser,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		cfg.Booking.MaxSims,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		schedule,
		cfg.Booking.MaxSims,
		cfg.Booking.HoldDuration(),
		log,
	)
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		bookingRepository,
		schedule,
		tariffs,
		cfg.Booking.MaxSims,
		log,
	)

	// Фоновые задачи
	jobs := scheduler.NewJobs(scheduler.JobsDeps{
		BookingRepo:  bookingRepository,
		WaitlistRepo: waitlistRepository,
		Confirm:      confirmBookingUseCase,
		Bookings:     bookingSvc,
		Availability: availabilitySvc,
		Notifier:     notifier,
		Logger:       log,
	}, scheduler.JobsConfig{
		Tick:              cfg.Scheduler.Tick(),
		AutoConfirmWindow: cfg.Scheduler.AutoConfirmWindow(),
		AutoCompleteDelay: cfg.Scheduler.AutoCompleteDelay(),
		RemindBefore:      cfg.Scheduler.RemindBefore(),
	})

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	sched := scheduler.New(jobs, log, schedulerMetrics(metricsCollector))
	sched.Start(schedulerCtx)

	// Инициализируем handlers
	createHold := createHoldHandler.NewHandler(createHoldUseCase, location, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, location, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, location, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, location, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, location, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, location, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, location, log)
	noshowBooking := noshowBookingHandler.NewHandler(bookingSvc, location, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(bookingSvc, location, log)
	createBlock := createBlockHandler.NewHandler(bookingSvc, location, log)
	deleteBlock := deleteBlockHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, location, log)
	subscribeWaitlist := subscribeWaitlistHandler.NewHandler(waitlistSvc, location, log)
	unsubscribeWaitlist := unsubscribeWaitlistHandler.NewHandler(waitlistSvc, log)
	getWaitlist := getWaitlistHandler.NewHandler(waitlistSvc, location, log)
	getProfile := getProfileHandler.NewHandler(loyaltySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// PUBLIC ROUTES (без аутентификации)
	api.HandleFunc("/slots", getFreeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// PROTECTED ROUTES (требуют X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.NewAuth(cfg.Booking.StaffIDs))

	// --- Заявки и брони ---
	protected.HandleFunc("/bookings", createHold.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	protected.HandleFunc("/waitlist", subscribeWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist", getWaitlist.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/waitlist/{entryId}", unsubscribeWaitlist.Handle).Methods(http.MethodDelete)

	// --- Профиль лояльности ---
	protected.HandleFunc("/profile", getProfile.Handle).Methods(http.MethodGet)

	// --- Администрирование (только для сотрудников) ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/done", completeBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/no-show", noshowBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()
	sched.Wait()
	log.Info("Scheduler stopped")

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

// schedulerMetrics адаптер метрик фоновых задач: при выключенных
// метриках тики никуда не пишутся
func schedulerMetrics(m *metrics.Metrics) scheduler.MetricsCollector {
	if m != nil {
		return m
	}
	return nopSchedulerMetrics{}
}

type nopSchedulerMetrics struct{}

func (nopSchedulerMetrics) ObserveSchedulerTick(job, status string) {}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/database"
	"github.com/gymwarriors/fitnesshub-backend/internal/handler"
	"github.com/gymwarriors/fitnesshub-backend/internal/logger"
	"github.com/gymwarriors/fitnesshub-backend/internal/middleware"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/gymwarriors/fitnesshub-backend/internal/router"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
	"github.com/gymwarriors/fitnesshub-backend/internal/validator"
	"github.com/gymwarriors/fitnesshub-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Dur("booking_timeout", cfg.BookingTimeout).
		Msg("Starting FitnessHub Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	bookingRepo := repository.NewBookingRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	trainerRepo := repository.NewTrainerRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	carouselRepo := repository.NewCarouselRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo, trainerRepo, log)
	classCache := service.NewRedisClassCache(rdb, cfg.ClassCacheTTL, log)
	slotNotifier := service.NewRedisSlotNotifier(rdb, classCache, log)
	bookingService := service.NewBookingService(bookingRepo, slotNotifier, cfg.BookingTimeout, log)
	classService := service.NewClassService(classRepo, bookingRepo, trainerRepo, classCache, log)
	userService := service.NewUserService(userRepo, log)
	trainerService := service.NewTrainerService(trainerRepo)
	staffService := service.NewStaffService(trainerRepo, userRepo, authService, classCache, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, log)
	carouselService := service.NewCarouselService(carouselRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Class:    handler.NewClassHandler(classService),
		Booking:  handler.NewBookingHandler(bookingService),
		Trainer:  handler.NewTrainerHandler(trainerService),
		User:     handler.NewUserHandler(userService),
		Staff:    handler.NewStaffHandler(staffService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Carousel: handler.NewCarouselHandler(carouselService),
		WS:       handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
		System:   handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	slotAudit := worker.NewSlotAuditWorker(bookingRepo, cfg.SlotAuditInterval, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		slotAudit.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	authLimiter := middleware.NewRateLimiter(rdb, "auth", cfg.AuthRatePerMinute, time.Minute, log)
	r := router.SetupRouter(authService, authLimiter, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout). In-flight bookings
	// either commit or roll back within BOOKING_TIMEOUT_MS.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

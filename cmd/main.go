// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/catalog"
	"github.com/slotbook/venue-booking/internal/config"
	"github.com/slotbook/venue-booking/internal/database"
	"github.com/slotbook/venue-booking/internal/events"
	"github.com/slotbook/venue-booking/internal/handler"
	"github.com/slotbook/venue-booking/internal/logging"
	"github.com/slotbook/venue-booking/internal/repository"
	"github.com/slotbook/venue-booking/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// ── 1. Connect to PostgreSQL and migrate ─────────────────────────────
	pool, err := database.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}
	logger.Info("connected to postgres, migrations applied")

	// ── 2. Event publisher (optional) ────────────────────────────────────
	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatal("amqp", zap.Error(err))
		}
		pub = amqpPub
		logger.Info("event publisher connected", zap.String("exchange", cfg.AMQPExchange))
	}
	defer func() { _ = pub.Close() }()

	// ── 3. Wire up layers ────────────────────────────────────────────────
	venueRepo := repository.NewVenueRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	sportRepo := repository.NewSportRepository(pool)

	sportSvc := service.NewSportService(catalog.NewHTTPClient(cfg.SportsAPIURL), sportRepo, logger)
	venueSvc := service.NewVenueService(venueRepo, sportSvc, logger)
	slotSvc := service.NewSlotService(venueRepo, slotRepo, pub, logger)
	bookingSvc := service.NewBookingService(bookingRepo, pub, logger)
	availabilitySvc := service.NewAvailabilityService(venueRepo)

	// Seed the sport catalog; a flaky catalog should not block startup.
	if err := sportSvc.Seed(ctx); err != nil {
		logger.Warn("sport catalog seeding failed", zap.Error(err))
	}

	h := handler.New(venueSvc, slotSvc, bookingSvc, availabilitySvc, sportSvc)

	// ── 4. Build the router ──────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(logger))
	r.Use(handler.CORS)
	r.Use(handler.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Get("/health", handler.HealthCheck)
	r.Get("/sports", h.ListSports)

	r.Route("/venues", func(r chi.Router) {
		r.Post("/", h.CreateVenue)
		r.Get("/", h.ListVenues)
		r.Get("/available", h.FindAvailableVenues)
		r.Get("/{id}", h.GetVenue)
		r.Delete("/{id}", h.DeleteVenue)
		r.Post("/{id}/slots", h.CreateSlot)
		r.Get("/{id}/slots", h.ListSlots)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Put("/{id}/cancel", h.CancelBooking)
	})

	// ── 5. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

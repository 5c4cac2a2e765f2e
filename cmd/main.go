// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/auth"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/cache"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/config"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/countries"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/database"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/events"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/handler"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/logging"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/repository"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/service"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logging.New(os.Stdout, cfg.Logger.Level, cfg.Logger.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Connect to PostgreSQL and migrate ──────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Postgres, log)
	if err != nil {
		log.Error("database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL")

	if err := database.Migrate(ctx, pool, log); err != nil {
		log.Error("migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. View cache and event publisher ─────────────────────────────────
	var views cache.Store = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis", slog.Any("error", err))
			os.Exit(1)
		}
		views = cache.NewRedis(rdb, cfg.Redis.ViewTTL)
		log.Info("view cache backed by redis", slog.String("addr", cfg.Redis.Addr))
	}

	var bookingEvents publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		bookingEvents = events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout)
		log.Info("publishing booking events", slog.String("topic", cfg.Kafka.Topic))
	}
	defer bookingEvents.Close()

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	cabinRepo := repository.NewCabinRepository(pool, log)
	guestRepo := repository.NewGuestRepository(pool, log)
	bookingRepo := repository.NewBookingRepository(pool, log)
	settingRepo := repository.NewSettingRepository(pool, log)
	countryClient := countries.NewClient(cfg.Countries.URL, cfg.Countries.Timeout, nil, log)

	cabinSvc := service.NewCabinService(cabinRepo, bookingRepo, settingRepo, log)
	accountSvc := service.NewAccountService(guestRepo, bookingRepo, countryClient, views, log)
	reservationSvc := service.NewReservationService(cabinRepo, bookingRepo, settingRepo, views, bookingEvents, log)

	bridge := auth.NewBridge(guestRepo, log)
	tokens := auth.NewTokens(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	google := auth.NewGoogle(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.BaseURL, nil)
	authHandler := auth.NewHandler(google, bridge, tokens, cfg.Auth.SecureCookie, log)

	h := handler.New(cabinSvc, accountSvc, reservationSvc, views, auth.FromContext, log)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS(cfg.Server.CORSOrigin))

	h.Routes(r, authHandler, auth.Middleware(tokens, bridge, log), auth.RequireSession)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("server error", slog.Any("error", err))
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("error", err))
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/biteswipe/backend/internal/config"
	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/biteswipe/backend/internal/notify"
	"github.com/biteswipe/backend/internal/places"
	"github.com/biteswipe/backend/internal/sqlite"
	"github.com/biteswipe/backend/internal/transport"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	restaurantRepo := sqlite.NewRestaurantRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	var placesClient restaurant.PlacesClient
	if cfg.Places.APIKey != "" {
		placesClient = places.NewGoogleClient(cfg.Places.APIKey, cfg.Places.BaseURL, logger)
	} else {
		logger.Warn("no places API key configured, restaurant discovery disabled")
		placesClient = &places.StaticClient{}
	}

	userSvc := user.NewService(userRepo, logger)
	restaurantSvc := restaurant.NewService(restaurantRepo, placesClient, logger)
	notifier := notify.NewLogNotifier(logger)
	scheduler := session.NewExpiryScheduler(sessionRepo, logger)
	sessionSvc := session.NewService(sessionRepo, userSvc, restaurantSvc, notifier, scheduler, logger)

	// Timers do not survive a restart; restore them from persisted deadlines.
	rearmCtx, cancelRearm := context.WithTimeout(context.Background(), 30*time.Second)
	if err := scheduler.Rearm(rearmCtx); err != nil {
		logger.Error("failed to rearm session expiries", "error", err)
	}
	cancelRearm()

	router := transport.NewRouter(transport.Services{
		Sessions: sessionSvc,
		Users:    userSvc,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDBDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

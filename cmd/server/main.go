package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fairwaylabs/clubfit/internal/auth"
	"github.com/fairwaylabs/clubfit/internal/storage/sqlite"
	"github.com/fairwaylabs/clubfit/internal/web"
	"github.com/fairwaylabs/clubfit/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()
	logging.Setup()

	addr := getEnv("ADDR", ":8080")
	dbPath := getEnv("DB_PATH", "./data/clubfit.db")
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		slog.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	sessionTTL := 24 * time.Hour
	if hours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "")); err == nil && hours > 0 {
		sessionTTL = time.Duration(hours) * time.Hour
	}

	// Initialize SQLite storage; the schema migration runs once here
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	sessions := auth.NewSessionManager(secret, sessionTTL)
	server := web.New(store, authenticator, sessions, slog.Default())

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	go func() {
		slog.Info("Server starting", "address", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

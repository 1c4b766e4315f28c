package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Agora/internal/api/handlers/stream"
	"Agora/internal/api/middleware"
	"Agora/internal/api/routes"
	"Agora/internal/config"
	"Agora/internal/core/events"
	"Agora/internal/core/platform"
	postgresRepo "Agora/internal/db/postgres"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	hub := stream.NewHub(cfg.EventBuffer)
	opts := []platform.Option{
		platform.WithLogger(logger),
		platform.WithObserver(hub),
	}

	var (
		journal         []events.Event
		journalObserver *events.JournalObserver
	)
	if cfg.JournalEnabled() {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer func() { _ = db.Close() }()

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database:", err)
		}
		log.Println("Connected to journal database")

		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect:", err)
		}
		if err := goose.Up(db, cfg.MigrationsDir); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		log.Println("Migrations completed successfully")

		eventRepo := postgresRepo.NewEventRepository(db)
		journal, err = eventRepo.List(context.Background())
		if err != nil {
			log.Fatal("Failed to read event journal:", err)
		}

		// Journal first so a committed event is persisted before it is streamed
		journalObserver = events.NewJournalObserver(eventRepo, logger)
		opts = append([]platform.Option{platform.WithObserver(journalObserver)}, opts...)
	} else {
		log.Println("DATABASE_URL not set, running without event journal (state is lost on restart)")
	}

	svc, err := platform.NewService(cfg.OwnerDID, opts...)
	if err != nil {
		log.Fatal("Failed to create platform:", err)
	}

	if len(journal) > 0 {
		if err := svc.Restore(context.Background(), journal); err != nil {
			log.Fatal("Failed to restore from journal:", err)
		}
		log.Printf("Restored %d events from journal", len(journal))
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	stopBackground := make(chan struct{})
	if journalObserver != nil {
		journalObserver.StartFlusher(10*time.Second, stopBackground)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, 1*time.Minute)
	if cfg.TrustProxy {
		rateLimiter.TrustForwardedHeaders()
	}
	rateLimiter.StartCleanup(stopBackground)
	r.Use(rateLimiter.Middleware)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.JWTSecret), cfg.JWTIssuer)

	routes.RegisterPostRoutes(r, svc, authMiddleware)
	routes.RegisterCommentRoutes(r, svc, authMiddleware)
	routes.RegisterModerationRoutes(r, svc, authMiddleware)
	routes.RegisterStreamRoutes(r, hub)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health response: %v", err)
		}
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Agora starting on port %s\n", cfg.Port)
		fmt.Printf("Owner: %s\n", cfg.OwnerDID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	close(stopBackground)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	hub.Close()
	if journalObserver != nil {
		if err := journalObserver.Flush(shutdownCtx); err != nil {
			log.Printf("Failed to flush event journal: %v", err)
		}
	}
}

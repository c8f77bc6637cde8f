package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/database"
	"github.com/mufradat/mufradat-backend/internal/handler"
	"github.com/mufradat/mufradat-backend/internal/logger"
	"github.com/mufradat/mufradat-backend/internal/repository"
	"github.com/mufradat/mufradat-backend/internal/router"
	"github.com/mufradat/mufradat-backend/internal/service"
	"github.com/mufradat/mufradat-backend/internal/store"
	"github.com/mufradat/mufradat-backend/internal/validator"
	"github.com/mufradat/mufradat-backend/internal/worker"
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
		Str("session_backend", cfg.SessionBackend).
		Msg("Starting Mufradat Backend")

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
	userRepo := repository.NewUserRepository(pool)
	wordRepo := repository.NewWordRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	resultRepo := repository.NewQuizResultRepository(pool)

	// ─── Quiz Session Store ────────────────────────────────────────────
	var sessions store.SessionStore
	if cfg.SessionBackend == "redis" {
		sessions = store.NewRedisSessionStore(rdb)
	} else {
		sessions = store.NewMemorySessionStore()
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo)
	wordService := service.NewWordService(wordRepo, log)
	tagService := service.NewTagService(tagRepo, log)
	quizService := service.NewQuizService(wordRepo, sessions, resultRepo, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Word: handler.NewWordHandler(wordService),
		Tag:  handler.NewTagHandler(tagService),
		Quiz: handler.NewQuizHandler(quizService),
	}

	// ─── Start Session Janitor ────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	janitor := worker.NewSessionJanitor(sessions, cfg.QuizSweepEvery, log)
	go janitor.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stop the janitor after the listener has drained.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

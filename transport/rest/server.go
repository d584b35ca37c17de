package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type engine interface {
	BestMove(board entity.Board, mark entity.Mark) (int, error)
	Cache() *tictactoe.ScoreCache
}

// NewRouter - routes of the engine API.
func NewRouter(logger *slog.Logger, engine engine) http.Handler {
	handlers := NewHandlers(logger, engine)
	ping := NewPingHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", ping.PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", handlers.Evaluate)
		r.Post("/best-move", handlers.BestMove)
		r.Get("/cache", handlers.CacheStatus)
	})

	return r
}

// Start - serves the API until ctx is done.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

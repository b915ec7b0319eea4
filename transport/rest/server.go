package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// NewServer - serves the game routes plus any extra routes on the same port.
func NewServer(logger *slog.Logger, port string, handlers Handlers, extra ...func(router *mux.Router)) *Server {
	router := NewRouter(handlers)
	for _, register := range extra {
		register(router)
	}

	return &Server{
		logger: logger.With("component", "http_server"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

func NewRouter(handlers Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", handlers.Ping).Methods(http.MethodGet)

	api := router.PathPrefix("/api/game").Subrouter()
	api.HandleFunc("", handlers.GetGame).Methods(http.MethodGet)
	api.HandleFunc("", handlers.EndGame).Methods(http.MethodDelete)
	api.HandleFunc("/cells/{index}", handlers.ApplyMove).Methods(http.MethodPost)
	api.HandleFunc("/reset", handlers.Reset).Methods(http.MethodPost)

	return router
}

// Start - serves until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)
		errCh <- that.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"notekeeper/config"
	"notekeeper/repository"
	"notekeeper/usecase"
)

const shutdownTimeout = 10 * time.Second

// Run opens the configured store and serves the API until ctx is cancelled,
// then drains in-flight requests and closes the store.
func Run(ctx context.Context, cfg config.Config) error {
	repo, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	router := SetupRouter(usecase.NewNotesService(repo), RouterOptions{
		Backend:      cfg.Store.Backend,
		StaticDir:    cfg.StaticDir,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on port %s (store: %s)", cfg.Port, cfg.Store.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server shutdown complete")
	return nil
}

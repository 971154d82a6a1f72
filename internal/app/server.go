package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BarzMap/ParksApp/internal/config"
	"github.com/BarzMap/ParksApp/internal/handler"
	"github.com/BarzMap/ParksApp/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер каталога и приема заявок
func runServer(
	cfg *config.Config,
	logger *slog.Logger,
	submissionUseCase usecase.SubmissionUseCase,
	catalogUseCase usecase.CatalogUseCase,
) error {
	submissionHandler := handler.NewSubmissionHandler(submissionUseCase, logger)
	catalogHandler := handler.NewCatalogHandler(catalogUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Post("/submissions", submissionHandler.SubmitPark)

	r.Route("/parks", func(r chi.Router) {
		r.Get("/", catalogHandler.ListParks)
		r.Get("/within", catalogHandler.ListParksInBounds)
		r.Get("/{parkID}", catalogHandler.GetPark)
		r.Get("/{parkID}/images", catalogHandler.ListParkImages)
		r.Get("/{parkID}/equipment", catalogHandler.ListParkEquipment)
		r.Get("/{parkID}/reviews", catalogHandler.ListParkReviews)
		r.Post("/{parkID}/reviews", catalogHandler.CreateReview)
	})

	r.Route("/equipment", func(r chi.Router) {
		r.Get("/", catalogHandler.ListEquipment)
		r.Post("/", catalogHandler.CreateEquipment)
		r.Delete("/{equipmentID}", catalogHandler.DeleteEquipment)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/parks/{parkID}/moderate", catalogHandler.ModeratePark)
		r.Post("/images/{imageID}/approve", catalogHandler.ApproveImage)
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-quit:
		logger.Info("shutdown signal received, stopping HTTP server")
	}

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped gracefully")
	return nil
}

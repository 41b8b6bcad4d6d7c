package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/api/handlers"
	"github.com/cinevault/cinevault/internal/api/middleware"
	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/controllers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// Controllers bundles the request-handling controllers the server needs.
type Controllers struct {
	Catalog   *controllers.CatalogController
	Review    *controllers.ReviewController
	Watchlist *controllers.WatchlistController
	Search    *controllers.SearchController
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, ctrls Controllers, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Metrics)
	s.setupRoutes(router, ctrls)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router chi.Router, ctrls Controllers) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	router.Get("/health", healthHandler.ServeHTTP)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	titleHandler := handlers.NewTitleHandler(ctrls.Catalog, s.logger)
	reviewHandler := handlers.NewReviewHandler(ctrls.Review, s.logger)
	watchlistHandler := handlers.NewWatchlistHandler(ctrls.Watchlist, s.logger)
	searchHandler := handlers.NewSearchHandler(ctrls.Search, s.logger)
	discoverHandler := handlers.NewDiscoverHandler(ctrls.Catalog, s.logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/movies", titleHandler.List)
		r.Get("/movies/{id}", titleHandler.Get)
		r.Get("/search", searchHandler.Search)
		r.Post("/reviews/{externalID}", reviewHandler.Submit)

		r.Post("/watchlist", watchlistHandler.Add)
		r.Get("/watchlist/{userID}", watchlistHandler.List)
		r.Get("/watchlist/{userID}/{externalID}", watchlistHandler.Contains)
		r.Delete("/watchlist/{userID}/{externalID}", watchlistHandler.Remove)

		r.Get("/trailer/{externalID}", discoverHandler.Trailer)
		r.Get("/person/{id}", discoverHandler.Person)
		r.Get("/tv/{id}/season/{season}", discoverHandler.Season)
		r.Get("/tv/{id}/season/{season}/episode/{episode}", discoverHandler.Episode)
	})
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

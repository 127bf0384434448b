package wire

import (
	"net/http"

	"seatmap-engine/internal/adaptor"
	"seatmap-engine/internal/data/repository"
	"seatmap-engine/internal/usecase"
	"seatmap-engine/pkg/broker"
	"seatmap-engine/pkg/cache"
	"seatmap-engine/pkg/middleware"
	"seatmap-engine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route
func Wiring(
	repo *repository.Repository,
	store cache.Service,
	publisher broker.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	service, err := usecase.NewService(repo, store, publisher, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, store, logger),
	}, nil
}

func setupRouter(handler *adaptor.Handler, store cache.Service, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	wireSeatmap(r, handler.Seatmap)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "cache unavailable", nil, nil)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

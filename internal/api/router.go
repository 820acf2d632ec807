package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/snoody/tft-tierlist/internal/api/handlers"
	"github.com/snoody/tft-tierlist/internal/api/middleware"
	"github.com/snoody/tft-tierlist/internal/config"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/websocket"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, m *metrics.Collector, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger.Named("http")))
	r.Use(middleware.Metrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", m.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	catalogHandler := handlers.NewCatalogHandler(services.Catalog, logger)
	compHandler := handlers.NewCompositionHandler(services.Composition, logger)
	videoHandler := handlers.NewVideoHandler(services.Video, logger)
	builderHandler := handlers.NewBuilderHandler(hub, services.Auth, services.Composition, logger)

	admin := middleware.Admin(services.Auth, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/units", catalogHandler.Units)
			r.Get("/traits", catalogHandler.Traits)
			r.Get("/items", catalogHandler.Items)
			r.Post("/synergies", catalogHandler.PreviewSynergies)
		})

		r.Get("/tierlist", compHandler.Tierlist)

		r.Route("/comps", func(r chi.Router) {
			r.Get("/", compHandler.List)
			r.Get("/{id}", compHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", compHandler.Create)
				r.Put("/{id}", compHandler.Replace)
				r.Patch("/{id}", compHandler.Patch)
				r.Delete("/{id}", compHandler.Delete)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videoHandler.List)
			r.With(admin).Delete("/cache", videoHandler.ClearCache)
		})

		// Token is checked inside the handler
		r.Get("/builder/ws", builderHandler.Handle)
	})

	return r
}

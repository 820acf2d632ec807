package service

import (
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/config"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth        *AuthService
	Catalog     *CatalogService
	Composition *CompositionService
	Video       *VideoService
}

// NewServices wires the services over one repository set. videos may be nil
// when no YouTube key is configured; handlers then report the feature as
// unavailable.
func NewServices(repos *repository.Repositories, cat *catalog.Catalog, videos *VideoService, cfg *config.Config, m *metrics.Collector, logger *zap.Logger) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg, logger.Named("auth")),
		Catalog:     NewCatalogService(cat, m),
		Composition: NewCompositionService(repos.Composition, cat, m, logger.Named("compositions")),
		Video:       videos,
	}
}

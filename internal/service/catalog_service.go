package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/config"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"go.uber.org/zap"
)

// LoadCatalog reads the game data once at startup: from CATALOG_PATH when set,
// otherwise from CATALOG_URL.
func LoadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		cat, err := catalog.LoadFile(cfg.CatalogPath, cfg.CatalogSet)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.CatalogPath, err)
		}
		logger.Info("catalog loaded from file",
			zap.String("path", cfg.CatalogPath),
			zap.String("set", cat.Set()),
			zap.Int("units", len(cat.Units())),
			zap.Int("traits", len(cat.Tags())),
			zap.Int("items", len(cat.Items())),
		)
		return cat, nil
	}

	return fetchCatalog(ctx, &http.Client{Timeout: 30 * time.Second}, cfg.CatalogURL, cfg.CatalogSet, logger)
}

func fetchCatalog(ctx context.Context, client *http.Client, url, set string, logger *zap.Logger) (*catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog: status %d", resp.StatusCode)
	}

	cat, err := catalog.Parse(resp.Body, set)
	if err != nil {
		return nil, err
	}

	logger.Info("catalog fetched",
		zap.String("url", url),
		zap.String("set", cat.Set()),
		zap.Int("units", len(cat.Units())),
	)
	return cat, nil
}

// CatalogService answers read-only catalog queries and synergy previews.
type CatalogService struct {
	cat     *catalog.Catalog
	calc    *synergy.Calculator
	metrics *metrics.Collector
}

func NewCatalogService(cat *catalog.Catalog, m *metrics.Collector) *CatalogService {
	return &CatalogService{
		cat:     cat,
		calc:    synergy.NewCalculator(cat.Tags()),
		metrics: m,
	}
}

func (s *CatalogService) Catalog() *catalog.Catalog {
	return s.cat
}

// Units returns playable units, optionally restricted to one cost (0 = all).
func (s *CatalogService) Units(cost int) []domain.UnitDefinition {
	if cost > 0 {
		return s.cat.UnitsByCost(cost)
	}
	return s.cat.PlayableUnits()
}

func (s *CatalogService) Traits() []domain.TagDefinition {
	return s.cat.Tags()
}

// Items filters by kind: "basic", "combined" or anything else for all.
func (s *CatalogService) Items(kind string) []domain.ItemDefinition {
	switch kind {
	case "basic":
		return s.cat.BasicItems()
	case "combined":
		return s.cat.CombinedItems()
	default:
		return s.cat.Items()
	}
}

// PreviewSynergies computes synergies for a list of unit keys without
// creating anything. Unknown keys and oversize lists are reported as
// domain.ValidationErrors.
func (s *CatalogService) PreviewSynergies(keys []string) ([]synergy.ActiveSynergy, error) {
	var errs domain.ValidationErrors
	if len(keys) > domain.MaxUnitsPerComp {
		errs.Add("units", fmt.Sprintf("must have at most %d entries", domain.MaxUnitsPerComp))
		return nil, errs
	}

	units := make([]*domain.SelectedUnit, 0, len(keys))
	for i, key := range keys {
		def, ok := s.cat.Unit(key)
		if !ok {
			errs.Add(fmt.Sprintf("units[%d]", i), fmt.Sprintf("unknown champion %q", key))
			continue
		}
		units = append(units, &domain.SelectedUnit{Unit: def, Stars: domain.DefaultStarLevel})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	s.metrics.SynergyComputations.Inc()
	return s.calc.Compute(units), nil
}

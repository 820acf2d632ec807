package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrCompositionNotFound = errors.New("composition not found")

type CompositionService struct {
	repo    repository.CompositionRepository
	cat     *catalog.Catalog
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewCompositionService(repo repository.CompositionRepository, cat *catalog.Catalog, m *metrics.Collector, logger *zap.Logger) *CompositionService {
	return &CompositionService{
		repo:    repo,
		cat:     cat,
		metrics: m,
		logger:  logger,
	}
}

// NewBuilder returns an empty builder over the service's catalog.
func (s *CompositionService) NewBuilder() *builder.Builder {
	return builder.New(s.cat)
}

// BuilderFor loads a stored composition into a new builder.
func (s *CompositionService) BuilderFor(ctx context.Context, id uuid.UUID) (*builder.Builder, error) {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return builder.FromDraft(s.cat, builder.DraftFromComposition(comp))
}

func (s *CompositionService) Get(ctx context.Context, id uuid.UUID) (*domain.Composition, error) {
	comp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return comp, nil
}

func (s *CompositionService) List(ctx context.Context, filter repository.CompositionFilter) ([]*domain.Composition, error) {
	return s.repo.Find(ctx, filter)
}

// Create replays the draft through a builder and persists the result.
func (s *CompositionService) Create(ctx context.Context, draft *builder.Draft) (*domain.Composition, error) {
	b, err := builder.FromDraft(s.cat, draft)
	if err != nil {
		s.recordFailures(err)
		return nil, err
	}
	return s.Save(ctx, uuid.Nil, b)
}

// Update fully replaces a stored composition with the draft.
func (s *CompositionService) Update(ctx context.Context, id uuid.UUID, draft *builder.Draft) (*domain.Composition, error) {
	b, err := builder.FromDraft(s.cat, draft)
	if err != nil {
		s.recordFailures(err)
		return nil, err
	}
	return s.Save(ctx, id, b)
}

// Save validates the builder and writes the record: a new row when id is
// uuid.Nil, otherwise a full replace of the existing row.
func (s *CompositionService) Save(ctx context.Context, id uuid.UUID, b *builder.Builder) (*domain.Composition, error) {
	record, err := b.ValidateForSave()
	if err != nil {
		s.recordFailures(err)
		return nil, err
	}
	if err := domain.ValidateRecord(record); err != nil {
		s.recordFailures(err)
		return nil, err
	}

	if id == uuid.Nil {
		if err := s.repo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create composition: %w", err)
		}
		s.metrics.CompositionsSaved.WithLabelValues("create").Inc()
		s.logger.Info("composition created",
			zap.String("id", record.ID.String()),
			zap.String("name", record.Name),
			zap.String("tier", record.Tier.String()),
		)
		return record, nil
	}

	if err := s.repo.Update(ctx, id, record.Columns()); err != nil {
		return nil, notFound(err)
	}
	s.metrics.CompositionsSaved.WithLabelValues("update").Inc()
	s.logger.Info("composition updated", zap.String("id", id.String()), zap.String("name", record.Name))

	return s.Get(ctx, id)
}

// Patch merges a partial update and re-validates the merged record.
func (s *CompositionService) Patch(ctx context.Context, id uuid.UUID, patch *domain.CompositionPatch) (*domain.Composition, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		s.recordFailures(err)
		return nil, err
	}

	comp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return comp, nil
	}

	patch.ApplyTo(comp)
	if err := domain.ValidateRecord(comp); err != nil {
		s.recordFailures(err)
		return nil, err
	}

	if err := s.repo.Update(ctx, id, comp.Columns()); err != nil {
		return nil, notFound(err)
	}
	s.metrics.CompositionsSaved.WithLabelValues("patch").Inc()

	return s.Get(ctx, id)
}

func (s *CompositionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.metrics.CompositionsSaved.WithLabelValues("delete").Inc()
	s.logger.Info("composition deleted", zap.String("id", id.String()))
	return nil
}

// Tierlist groups active compositions by rank after applying q.
func (s *CompositionService) Tierlist(ctx context.Context, q TierlistQuery) (*Tierlist, error) {
	active := true
	comps, err := s.repo.Find(ctx, repository.CompositionFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	return BuildTierlist(comps, q), nil
}

func (s *CompositionService) recordFailures(err error) {
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, e := range verrs {
		s.metrics.ValidationFailures.WithLabelValues(e.Field).Inc()
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCompositionNotFound
	}
	return err
}

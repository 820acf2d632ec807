package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/repository"
	"gorm.io/gorm"
)

const rankOrder = "array_position(ARRAY['S','A','B','C','D']::text[], tier::text)"

type compositionRepository struct {
	db *gorm.DB
}

func NewCompositionRepository(db *gorm.DB) *compositionRepository {
	return &compositionRepository{db: db}
}

func (r *compositionRepository) Create(ctx context.Context, comp *domain.Composition) error {
	if comp.ID == uuid.Nil {
		comp.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *compositionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Composition, error) {
	var comp domain.Composition
	err := r.db.WithContext(ctx).First(&comp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *compositionRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Composition{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *compositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Composition{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *compositionRepository) Find(ctx context.Context, filter repository.CompositionFilter) ([]*domain.Composition, error) {
	query := r.db.WithContext(ctx).Model(&domain.Composition{})

	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}
	if filter.Champion != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(champions) AS c WHERE c->>'name' ILIKE ?)",
			likePattern(filter.Champion),
		)
	}
	if filter.Synergy != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(synergies) AS s WHERE s->>'name' ILIKE ?)",
			likePattern(filter.Synergy),
		)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var comps []*domain.Composition
	err := query.Order(rankOrder).Order("created_at DESC").Find(&comps).Error
	if err != nil {
		return nil, err
	}
	return comps, nil
}

func likePattern(s string) string {
	escaped := make([]rune, 0, len(s)+2)
	escaped = append(escaped, '%')
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	escaped = append(escaped, '%')
	return string(escaped)
}

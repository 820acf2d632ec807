package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Replace(ctx context.Context, session *domain.UserSession) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// CompositionFilter narrows Find. Zero values mean "any".
// Champion and Synergy match names as case-insensitive substrings.
type CompositionFilter struct {
	Tier     domain.Rank
	Champion string
	Synergy  string
	IsActive *bool
}

type CompositionRepository interface {
	Create(ctx context.Context, comp *domain.Composition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Composition, error)
	// Update writes only the given columns and returns gorm.ErrRecordNotFound
	// when no row has the id.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Find orders by rank (S first) then newest first.
	Find(ctx context.Context, filter CompositionFilter) ([]*domain.Composition, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Composition CompositionRepository
}

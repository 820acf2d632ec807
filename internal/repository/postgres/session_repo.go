package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
	"gorm.io/gorm"
)

// sessionRepository keeps at most one refresh session per admin.
type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Replace drops every session the admin holds and stores the new one in a
// single transaction.
func (r *sessionRepository) Replace(ctx context.Context, session *domain.UserSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.UserSession{}, "user_id = ?", session.UserID).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

// GetActive returns the admin's unexpired session, or gorm.ErrRecordNotFound.
func (r *sessionRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error) {
	var session domain.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.UserSession{}, "user_id = ?", userID).Error
}

// DeleteExpired removes sessions that expired before cutoff and reports how many went.
func (r *sessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.UserSession{}, "expires_at <= ?", cutoff)
	return res.RowsAffected, res.Error
}

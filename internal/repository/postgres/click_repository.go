package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/repository"
)

// clickRepository implements the ClickRepository interface with GORM.
// Events are never updated; the only delete path is the cascade from
// short_links.
type clickRepository struct {
	db *gorm.DB
}

// NewClickRepository creates a new PostgreSQL click repository
func NewClickRepository(db *gorm.DB) repository.ClickRepository {
	return &clickRepository{db: db}
}

func (r *clickRepository) Create(ctx context.Context, event *domain.ClickEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

func (r *clickRepository) ListByLink(ctx context.Context, linkID uint) ([]domain.ClickEvent, error) {
	var events []domain.ClickEvent

	result := r.recentFirst(ctx).
		Where("link_id = ?", linkID).
		Find(&events)

	if result.Error != nil {
		return nil, domain.NewInternalError(result.Error)
	}

	return events, nil
}

func (r *clickRepository) ListByLinkSince(ctx context.Context, linkID uint, since time.Time) ([]domain.ClickEvent, error) {
	var events []domain.ClickEvent

	result := r.recentFirst(ctx).
		Where("link_id = ? AND clicked_at >= ?", linkID, since).
		Find(&events)

	if result.Error != nil {
		return nil, domain.NewInternalError(result.Error)
	}

	return events, nil
}

func (r *clickRepository) CountByLink(ctx context.Context, linkID uint) (int64, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&domain.ClickEvent{}).
		Where("link_id = ?", linkID).
		Count(&count)

	if result.Error != nil {
		return 0, domain.NewInternalError(result.Error)
	}

	return count, nil
}

// recentFirst orders by click time then id, so events inserted within the
// same clock tick keep a stable order
func (r *clickRepository) recentFirst(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("clicked_at DESC").Order("id DESC")
}

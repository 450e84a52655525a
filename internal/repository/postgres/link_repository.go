package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/repository"
)

// linkRepository implements the LinkRepository interface with GORM
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new PostgreSQL link repository
func NewLinkRepository(db *gorm.DB) repository.LinkRepository {
	return &linkRepository{db: db}
}

// Create inserts a new link record
func (r *linkRepository) Create(ctx context.Context, link *domain.Link) error {
	result := r.db.WithContext(ctx).Create(link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrShortCodeTaken
		}
		return domain.NewInternalError(result.Error)
	}
	return nil
}

// FindByShortCode does not filter on is_active: the redirect path needs
// inactive links to answer 410 rather than 404.
func (r *linkRepository) FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link

	result := r.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&link)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, domain.NewInternalError(result.Error)
	}

	return &link, nil
}

func (r *linkRepository) FindByID(ctx context.Context, id uint) (*domain.Link, error) {
	var link domain.Link

	result := r.db.WithContext(ctx).First(&link, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, domain.NewInternalError(result.Error)
	}

	return &link, nil
}

func (r *linkRepository) ListByOwner(ctx context.Context, userID uint) ([]domain.Link, error) {
	var links []domain.Link

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&links)

	if result.Error != nil {
		return nil, domain.NewInternalError(result.Error)
	}

	return links, nil
}

// IncrementClickCount uses a single UPDATE so concurrent clicks never lose
// an increment
func (r *linkRepository) IncrementClickCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Link{}).
		Where("id = ?", id).
		Update("click_count", gorm.Expr("click_count + ?", 1))

	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrLinkNotFound
	}

	return nil
}

func (r *linkRepository) SetClickCount(ctx context.Context, id uint, count int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Link{}).
		Where("id = ?", id).
		Update("click_count", count)

	if result.Error != nil {
		return domain.NewInternalError(result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrLinkNotFound
	}

	return nil
}

// ReconcileClickCounts runs one correlated UPDATE over all drifted links
func (r *linkRepository) ReconcileClickCounts(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Link{}).
		Where("click_count <> (?)", r.eventCount()).
		Update("click_count", gorm.Expr("(?)", r.eventCount()))

	if result.Error != nil {
		return 0, domain.NewInternalError(result.Error)
	}

	return result.RowsAffected, nil
}

// eventCount is the correlated subquery counting a link's click events
func (r *linkRepository) eventCount() *gorm.DB {
	return r.db.Model(&domain.ClickEvent{}).
		Select("COUNT(*)").
		Where("click_events.link_id = short_links.id")
}

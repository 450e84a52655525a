package repository

import (
	"context"
	"time"

	"shortener-analytics/internal/domain"
)

// LinkRepository defines the contract for link data access.
// Links are written by the link management collaborator; this service only
// reads them and maintains the cached click counter.
type LinkRepository interface {
	// Create stores a new link. It is the link store's write path; the
	// redirect and analytics code never calls it, fixtures and seeding do.
	// A duplicate short code yields domain.ErrShortCodeTaken.
	Create(ctx context.Context, link *domain.Link) error

	// FindByShortCode retrieves a link by its short code regardless of state
	FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)

	// FindByID retrieves a link by primary key
	FindByID(ctx context.Context, id uint) (*domain.Link, error)

	// ListByOwner returns every link owned by userID, newest first
	ListByOwner(ctx context.Context, userID uint) ([]domain.Link, error)

	// IncrementClickCount atomically adds one to the cached counter
	IncrementClickCount(ctx context.Context, id uint) error

	// SetClickCount overwrites the cached counter
	SetClickCount(ctx context.Context, id uint, count int64) error

	// ReconcileClickCounts resets every drifted counter to the number of
	// stored click events and returns how many links changed
	ReconcileClickCounts(ctx context.Context) (int64, error)
}

// ClickRepository defines the contract for the append-only click log
type ClickRepository interface {
	// Create inserts one click event
	Create(ctx context.Context, event *domain.ClickEvent) error

	// ListByLink returns all events of a link, most recent first
	ListByLink(ctx context.Context, linkID uint) ([]domain.ClickEvent, error)

	// ListByLinkSince returns events clicked at or after since, most recent first
	ListByLinkSince(ctx context.Context, linkID uint, since time.Time) ([]domain.ClickEvent, error)

	// CountByLink counts the events of a link. Summaries count the rows they
	// already load, so this serves verification in tests and tooling.
	CountByLink(ctx context.Context, linkID uint) (int64, error)
}

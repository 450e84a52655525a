// Package tracker records clicks off the redirect path: it derives device and
// location facts, appends the click event and bumps the link's counter.
package tracker

import (
	"context"
	"fmt"
	"time"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/events"
	"shortener-analytics/internal/repository"
	"shortener-analytics/internal/useragent"
	"shortener-analytics/pkg/logger"
)

// LocationResolver maps a client IP to a location. Implementations never fail.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string) domain.Location
}

// Recorder persists one click at a time
type Recorder struct {
	links     repository.LinkRepository
	clicks    repository.ClickRepository
	locations LocationResolver
	publisher events.Publisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewRecorder creates a recorder. publisher may be nil.
func NewRecorder(
	links repository.LinkRepository,
	clicks repository.ClickRepository,
	locations LocationResolver,
	publisher events.Publisher,
	log *logger.Logger,
) *Recorder {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Recorder{
		links:     links,
		clicks:    clicks,
		locations: locations,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a click for linkID. The counter is only incremented after the
// event row exists, so the counter never runs ahead of the log. A failed
// increment is logged and left for the next read-repair.
func (r *Recorder) Record(ctx context.Context, linkID uint, req domain.ClickRequest) (*domain.ClickEvent, error) {
	device := useragent.Classify(req.UserAgent)
	location := r.locations.Resolve(ctx, req.IP)

	event := domain.NewClickEvent(linkID, req, device, location, r.now())

	if err := r.clicks.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to store click for link %d: %w", linkID, err)
	}

	if err := r.links.IncrementClickCount(ctx, linkID); err != nil {
		r.logger.Warnw("Failed to increment click count",
			"link_id", linkID,
			"click_id", event.ID,
			"error", err,
		)
	}

	if err := r.publisher.PublishClick(ctx, event); err != nil {
		r.logger.Warnw("Failed to publish click event",
			"link_id", linkID,
			"click_id", event.ID,
			"error", err,
		)
	}

	return event, nil
}

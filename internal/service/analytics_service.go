package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/repository"
	"shortener-analytics/pkg/logger"
)

// Period bounds for PeriodAnalytics
const (
	DefaultPeriodDays = 7
	MinPeriodDays     = 1
	MaxPeriodDays     = 365
)

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	links  repository.LinkRepository
	clicks repository.ClickRepository
	logger *logger.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(links repository.LinkRepository, clicks repository.ClickRepository, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		links:  links,
		clicks: clicks,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *analyticsService) Summarize(ctx context.Context, linkID uint) (*domain.AnalyticsSummary, error) {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, link)
}

func (s *analyticsService) summarize(ctx context.Context, link *domain.Link) (*domain.AnalyticsSummary, error) {
	events, err := s.clicks.ListByLink(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clicks for link %d: %w", link.ID, err)
	}

	total := int64(len(events))
	if link.ClickCount != total {
		if err := s.links.SetClickCount(ctx, link.ID, total); err != nil {
			s.logger.Warnw("Failed to repair click count",
				"link_id", link.ID,
				"cached", link.ClickCount,
				"actual", total,
				"error", err,
			)
		} else {
			s.logger.Infow("Repaired click count", "link_id", link.ID, "cached", link.ClickCount, "actual", total)
		}
	}

	return &domain.AnalyticsSummary{
		LinkID:       link.ID,
		ShortCode:    link.ShortCode,
		URL:          link.URL,
		TotalClicks:  total,
		Analytics:    Aggregate(events),
		RecentClicks: recent(events),
	}, nil
}

func (s *analyticsService) SummarizeForUser(ctx context.Context, userID uint) ([]domain.AnalyticsSummary, error) {
	links, err := s.links.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.AnalyticsSummary, 0, len(links))
	for _, listed := range links {
		summary, err := s.Summarize(ctx, listed.ID)
		if errors.Is(err, domain.ErrLinkNotFound) {
			// deleted after listing
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	return summaries, nil
}

func (s *analyticsService) LinkAnalytics(ctx context.Context, userID, linkID uint) (*domain.AnalyticsSummary, error) {
	link, err := s.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, link)
}

func (s *analyticsService) PeriodAnalytics(ctx context.Context, userID, linkID uint, days int) (*domain.PeriodAnalytics, error) {
	if days < MinPeriodDays {
		days = MinPeriodDays
	}
	if days > MaxPeriodDays {
		days = MaxPeriodDays
	}

	link, err := s.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	events, err := s.clicks.ListByLinkSince(ctx, link.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load clicks for link %d: %w", link.ID, err)
	}

	return &domain.PeriodAnalytics{
		Period:      fmt.Sprintf("%d days", days),
		TotalClicks: int64(len(events)),
		Clicks:      events,
	}, nil
}

func (s *analyticsService) Rollup(ctx context.Context, userID uint) (*domain.OverallStats, error) {
	links, err := s.links.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.OverallStats{TotalLinks: len(links)}

	var top *domain.Link
	for i := range links {
		link := &links[i]

		stats.TotalClicks += link.ClickCount
		if link.IsActive {
			stats.ActiveLinks++
		}
		if top == nil || link.ClickCount > top.ClickCount {
			top = link
		}
	}
	stats.InactiveLinks = stats.TotalLinks - stats.ActiveLinks

	if top != nil {
		stats.MostClickedLink = &domain.LinkSummary{
			ID:        top.ID,
			ShortCode: top.ShortCode,
			URL:       top.URL,
			Clicks:    top.ClickCount,
		}
	}

	return stats, nil
}

func (s *analyticsService) ReconcileAll(ctx context.Context) (int64, error) {
	changed, err := s.links.ReconcileClickCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile click counts: %w", err)
	}

	if changed > 0 {
		s.logger.Infow("Reconciled click counts", "links_changed", changed)
	}
	return changed, nil
}

// ownedLink loads a link and checks it belongs to userID
func (s *analyticsService) ownedLink(ctx context.Context, userID, linkID uint) (*domain.Link, error) {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	if link.UserID != userID {
		s.logger.Warnw("Analytics access denied", "link_id", linkID, "user_id", userID)
		return nil, domain.ErrAccessDenied
	}

	return link, nil
}

package service

import (
	"context"

	"shortener-analytics/internal/domain"
)

// RedirectService resolves short codes on the public redirect path
type RedirectService interface {
	// Resolve returns the destination URL for an active link and schedules
	// the click for recording. Inactive and expired links yield errors
	// wrapping domain.ErrLinkUnavailable and record nothing.
	Resolve(ctx context.Context, shortCode string, req domain.ClickRequest) (string, error)

	// Invalidate drops the cached copy of a link. The link store calls it
	// after changing a link's state or destination.
	Invalidate(ctx context.Context, shortCode string) error
}

// AnalyticsService computes click analytics for link owners
type AnalyticsService interface {
	// Summarize aggregates every click of a link and repairs its counter
	Summarize(ctx context.Context, linkID uint) (*domain.AnalyticsSummary, error)

	// SummarizeForUser summarizes every link owned by userID
	SummarizeForUser(ctx context.Context, userID uint) ([]domain.AnalyticsSummary, error)

	// LinkAnalytics summarizes a link after checking userID owns it
	LinkAnalytics(ctx context.Context, userID, linkID uint) (*domain.AnalyticsSummary, error)

	// PeriodAnalytics lists the clicks of the last days days of an owned link
	PeriodAnalytics(ctx context.Context, userID, linkID uint, days int) (*domain.PeriodAnalytics, error)

	// Rollup computes overall stats from cached link counters
	Rollup(ctx context.Context, userID uint) (*domain.OverallStats, error)

	// ReconcileAll heals every drifted counter and returns how many changed
	ReconcileAll(ctx context.Context) (int64, error)
}

// ClickSubmitter hands clicks to background recording without blocking
type ClickSubmitter interface {
	Submit(linkID uint, req domain.ClickRequest) bool
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shortener-analytics/internal/cache"
	"shortener-analytics/internal/config"
	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/repository"
	"shortener-analytics/pkg/logger"
	"shortener-analytics/pkg/validator"
)

// linkSnapshot is the cached subset of a link the redirect path needs
type linkSnapshot struct {
	ID        uint       `json:"id"`
	URL       string     `json:"url"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func snapshotOf(link *domain.Link) linkSnapshot {
	return linkSnapshot{ID: link.ID, URL: link.URL, IsActive: link.IsActive, ExpiresAt: link.ExpiresAt}
}

func (s linkSnapshot) equal(o linkSnapshot) bool {
	if s.ID != o.ID || s.URL != o.URL || s.IsActive != o.IsActive {
		return false
	}
	if s.ExpiresAt == nil || o.ExpiresAt == nil {
		return s.ExpiresAt == o.ExpiresAt
	}
	return s.ExpiresAt.Equal(*o.ExpiresAt)
}

func (s linkSnapshot) link(shortCode string) *domain.Link {
	return &domain.Link{
		ID:        s.ID,
		ShortCode: shortCode,
		URL:       s.URL,
		IsActive:  s.IsActive,
		ExpiresAt: s.ExpiresAt,
	}
}

// redirectService implements the RedirectService interface
type redirectService struct {
	links  repository.LinkRepository
	cache  cache.Cache
	clicks ClickSubmitter
	cfg    *config.Config
	logger *logger.Logger
	now    func() time.Time
}

// NewRedirectService creates a redirect service. linkCache may be nil.
func NewRedirectService(
	links repository.LinkRepository,
	linkCache cache.Cache,
	clicks ClickSubmitter,
	cfg *config.Config,
	log *logger.Logger,
) RedirectService {
	return &redirectService{
		links:  links,
		cache:  linkCache,
		clicks: clicks,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

func (s *redirectService) Resolve(ctx context.Context, shortCode string, req domain.ClickRequest) (string, error) {
	if !validator.ValidateShortCode(shortCode) {
		return "", domain.ErrLinkNotFound
	}

	link, cached, err := s.lookup(ctx, shortCode)
	if err == nil && cached && link.State(s.now()) == domain.LinkActive {
		link, err = s.confirm(ctx, shortCode, link)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrLinkNotFound) {
			s.logger.Errorw("Failed to look up short code", "short_code", shortCode, "error", err)
		}
		return "", err
	}

	switch state := link.State(s.now()); state {
	case domain.LinkInactive:
		s.logger.Infow("Redirect refused", "short_code", shortCode, "state", state)
		return "", domain.ErrLinkInactive
	case domain.LinkExpired:
		s.logger.Infow("Redirect refused", "short_code", shortCode, "state", state)
		return "", domain.ErrLinkExpired
	}

	s.clicks.Submit(link.ID, req)

	s.logger.Debugw("Redirecting", "short_code", shortCode, "link_id", link.ID)
	return link.URL, nil
}

func (s *redirectService) Invalidate(ctx context.Context, shortCode string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, cacheKey(shortCode)); err != nil {
		return fmt.Errorf("invalidate %q: %w", shortCode, err)
	}
	return nil
}

// lookup reads through the cache and reports whether the link came from it.
// Cache failures only cost a database read.
func (s *redirectService) lookup(ctx context.Context, shortCode string) (*domain.Link, bool, error) {
	if s.cache != nil {
		key := cacheKey(shortCode)
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warnw("Cache read failed", "short_code", shortCode, "error", err)
		case cached != "":
			var snap linkSnapshot
			if err := json.Unmarshal([]byte(cached), &snap); err == nil {
				return snap.link(shortCode), true, nil
			}
			s.logger.Warnw("Discarding unreadable cache entry", "short_code", shortCode)
			_ = s.cache.Delete(ctx, key)
		}
	}

	link, err := s.links.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, false, err
	}

	s.store(ctx, shortCode, link)
	return link, false, nil
}

// confirm re-reads a cached active link by primary key so a deactivation
// made by the link store takes effect before the next click is recorded.
// The cache entry is refreshed when it no longer matches.
func (s *redirectService) confirm(ctx context.Context, shortCode string, cached *domain.Link) (*domain.Link, error) {
	fresh, err := s.links.FindByID(ctx, cached.ID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			if err := s.Invalidate(ctx, shortCode); err != nil {
				s.logger.Warnw("Failed to drop cached link", "short_code", shortCode, "error", err)
			}
		}
		return nil, err
	}

	if fresh.ShortCode != shortCode {
		// the link behind this id was renamed
		if err := s.Invalidate(ctx, shortCode); err != nil {
			s.logger.Warnw("Failed to drop cached link", "short_code", shortCode, "error", err)
		}
		return nil, domain.ErrLinkNotFound
	}

	if !snapshotOf(fresh).equal(snapshotOf(cached)) {
		s.logger.Infow("Cached link is stale, refreshing", "short_code", shortCode, "link_id", fresh.ID)
		s.store(ctx, shortCode, fresh)
	}
	return fresh, nil
}

func (s *redirectService) store(ctx context.Context, shortCode string, link *domain.Link) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(snapshotOf(link))
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(shortCode), string(payload), s.cfg.CacheTTL); err != nil {
		s.logger.Warnw("Failed to cache link", "short_code", shortCode, "error", err)
	}
}

func cacheKey(shortCode string) string {
	return "link:" + shortCode
}

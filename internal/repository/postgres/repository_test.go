package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"shortener-analytics/internal/domain"
	"shortener-analytics/internal/repository"
	"shortener-analytics/internal/repository/sqlitetest"
)

type RepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	links  repository.LinkRepository
	clicks repository.ClickRepository
	ctx    context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db = sqlitetest.Open(s.T())
	s.links = NewLinkRepository(s.db)
	s.clicks = NewClickRepository(s.db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) createLink(code string, userID uint, active bool) *domain.Link {
	link := &domain.Link{ShortCode: code, URL: "https://example.com/" + code, UserID: userID, IsActive: active}
	s.Require().NoError(s.links.Create(s.ctx, link))
	return link
}

func (s *RepositoryTestSuite) createClick(linkID uint, at time.Time) {
	event := domain.NewClickEvent(linkID, domain.ClickRequest{IP: "8.8.8.8"}, domain.DeviceInfo{DeviceType: "desktop"}, domain.Location{}, at)
	s.Require().NoError(s.clicks.Create(s.ctx, event))
}

func (s *RepositoryTestSuite) TestCreate_PersistsInactiveFlag() {
	link := s.createLink("off", 1, false)

	found, err := s.links.FindByID(s.ctx, link.ID)
	s.Require().NoError(err)
	s.False(found.IsActive)
}

func (s *RepositoryTestSuite) TestCreate_DuplicateShortCode() {
	s.createLink("dup", 1, true)

	err := s.links.Create(s.ctx, &domain.Link{ShortCode: "dup", URL: "https://x.test", UserID: 2, IsActive: true})
	s.ErrorIs(err, domain.ErrShortCodeTaken)
}

func (s *RepositoryTestSuite) TestFindByShortCode_ReturnsInactiveLinks() {
	s.createLink("sleepy", 1, false)

	link, err := s.links.FindByShortCode(s.ctx, "sleepy")
	s.Require().NoError(err)
	s.Equal("sleepy", link.ShortCode)

	_, err = s.links.FindByShortCode(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrLinkNotFound)
}

func (s *RepositoryTestSuite) TestIncrementClickCount() {
	link := s.createLink("inc", 1, true)

	s.Require().NoError(s.links.IncrementClickCount(s.ctx, link.ID))
	s.Require().NoError(s.links.IncrementClickCount(s.ctx, link.ID))

	found, err := s.links.FindByID(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), found.ClickCount)

	s.ErrorIs(s.links.IncrementClickCount(s.ctx, 9999), domain.ErrLinkNotFound)
}

func (s *RepositoryTestSuite) TestSetClickCount() {
	link := s.createLink("set", 1, true)

	s.Require().NoError(s.links.SetClickCount(s.ctx, link.ID, 42))

	found, err := s.links.FindByID(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Equal(int64(42), found.ClickCount)
}

func (s *RepositoryTestSuite) TestListByOwner() {
	s.createLink("a", 1, true)
	s.createLink("b", 1, false)
	s.createLink("c", 2, true)

	links, err := s.links.ListByOwner(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(links, 2)

	links, err = s.links.ListByOwner(s.ctx, 3)
	s.Require().NoError(err)
	s.Empty(links)
}

func (s *RepositoryTestSuite) TestClicks_OrderedMostRecentFirst() {
	link := s.createLink("ord", 1, true)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	s.createClick(link.ID, base)
	s.createClick(link.ID, base.Add(2*time.Hour))
	s.createClick(link.ID, base.Add(time.Hour))

	events, err := s.clicks.ListByLink(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.True(events[0].ClickedAt.Equal(base.Add(2 * time.Hour)))
	s.True(events[2].ClickedAt.Equal(base))

	count, err := s.clicks.CountByLink(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}

func (s *RepositoryTestSuite) TestListByLinkSince() {
	link := s.createLink("since", 1, true)
	now := time.Now().UTC()

	s.createClick(link.ID, now.Add(-10*24*time.Hour))
	s.createClick(link.ID, now.Add(-2*24*time.Hour))
	s.createClick(link.ID, now.Add(-time.Hour))

	events, err := s.clicks.ListByLinkSince(s.ctx, link.ID, now.Add(-7*24*time.Hour))
	s.Require().NoError(err)
	s.Len(events, 2)
}

func (s *RepositoryTestSuite) TestReconcileClickCounts() {
	drifted := s.createLink("drift", 1, true)
	accurate := s.createLink("ok", 1, true)
	empty := s.createLink("empty", 1, true)

	for i := 0; i < 3; i++ {
		s.createClick(drifted.ID, time.Now().UTC())
	}
	s.createClick(accurate.ID, time.Now().UTC())
	s.Require().NoError(s.links.SetClickCount(s.ctx, accurate.ID, 1))
	s.Require().NoError(s.links.SetClickCount(s.ctx, empty.ID, 5))

	changed, err := s.links.ReconcileClickCounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), changed)

	for id, want := range map[uint]int64{drifted.ID: 3, accurate.ID: 1, empty.ID: 0} {
		link, err := s.links.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(want, link.ClickCount)
	}
}

func (s *RepositoryTestSuite) TestDeletingLinkCascadesToClicks() {
	link := s.createLink("gone", 1, true)
	s.createClick(link.ID, time.Now().UTC())

	s.Require().NoError(s.db.Delete(&domain.Link{}, link.ID).Error)

	count, err := s.clicks.CountByLink(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestMigrate(t *testing.T) {
	db := sqlitetest.Open(t)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasIndex(&domain.ClickEvent{}, "idx_click_events_link_clicked"))
}

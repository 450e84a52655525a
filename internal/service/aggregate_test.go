package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shortener-analytics/internal/domain"
)

func click(at time.Time, device, browser, country, region, referer string) domain.ClickEvent {
	return domain.ClickEvent{
		DeviceType: domain.StringPtr(device),
		Browser:    domain.StringPtr(browser),
		Country:    domain.StringPtr(country),
		Region:     domain.StringPtr(region),
		Referer:    domain.StringPtr(referer),
		ClickedAt:  at,
	}
}

func TestAggregate_Empty(t *testing.T) {
	b := Aggregate(nil)

	assert.Zero(t, b.TotalClicks)
	assert.NotNil(t, b.DeviceBreakdown)
	assert.Empty(t, b.DeviceBreakdown)
	assert.Empty(t, b.ClicksByDate)
	assert.Empty(t, b.ReferrerBreakdown)
}

func TestAggregate_Breakdowns(t *testing.T) {
	day := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	events := []domain.ClickEvent{
		click(day, "mobile", "Safari", "India", "Maharashtra", "https://t.co/x"),
		click(day, "mobile", "Chrome", "India", "", ""),
		click(day, "desktop", "", "", "Bavaria", "https://t.co/x"),
		click(day.Add(24*time.Hour), "", "Chrome", "Local", "Local Network", ""),
	}

	b := Aggregate(events)

	assert.Equal(t, int64(4), b.TotalClicks)
	assert.Equal(t, map[string]int64{"mobile": 2, "desktop": 1, "Unknown": 1}, b.DeviceBreakdown)
	assert.Equal(t, map[string]int64{"Safari": 1, "Chrome": 2, "Unknown": 1}, b.BrowserBreakdown)
	assert.Equal(t, map[string]int64{"Unknown": 4}, b.OSBreakdown)
	assert.Equal(t, map[string]int64{"India": 2, "Unknown": 1, "Local": 1}, b.CountryBreakdown)
	assert.Equal(t, map[string]int64{
		"Maharashtra, India":   1,
		"Bavaria":              1,
		"Local Network, Local": 1,
	}, b.RegionBreakdown)
	assert.Equal(t, map[string]int64{"2026-10-14": 3, "2026-10-15": 1}, b.ClicksByDate)
	assert.Equal(t, map[string]int64{"https://t.co/x": 2}, b.ReferrerBreakdown)
}

func TestAggregate_DatesBucketInUTC(t *testing.T) {
	newYork := time.FixedZone("EST", -5*3600)
	lateEvening := time.Date(2026, 1, 31, 22, 30, 0, 0, newYork)

	b := Aggregate([]domain.ClickEvent{{ClickedAt: lateEvening}})

	assert.Equal(t, map[string]int64{"2026-02-01": 1}, b.ClicksByDate)
}

func TestAggregate_CountsSumToTotal(t *testing.T) {
	var events []domain.ClickEvent
	devices := []string{"mobile", "tablet", "desktop", ""}
	for i := 0; i < 37; i++ {
		events = append(events, click(time.Now().UTC(), devices[i%4], fmt.Sprintf("b%d", i%3), "", "", ""))
	}

	b := Aggregate(events)

	for name, breakdown := range map[string]map[string]int64{
		"device":  b.DeviceBreakdown,
		"browser": b.BrowserBreakdown,
		"os":      b.OSBreakdown,
		"country": b.CountryBreakdown,
		"date":    b.ClicksByDate,
	} {
		var sum int64
		for _, n := range breakdown {
			sum += n
		}
		assert.Equal(t, b.TotalClicks, sum, name)
	}
}

func TestRecent(t *testing.T) {
	events := make([]domain.ClickEvent, 15)
	for i := range events {
		events[i].ID = uint(i + 1)
	}

	got := recent(events)
	assert.Len(t, got, 10)
	assert.Equal(t, uint(1), got[0].ID)

	assert.Len(t, recent(events[:3]), 3)
}

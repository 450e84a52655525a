package service

import (
	"shortener-analytics/internal/domain"
)

const (
	unknownCategory   = "Unknown"
	recentClicksLimit = 10
	dateLayout        = "2006-01-02"
)

// Aggregate groups click events into the analytics breakdowns.
// Dates are bucketed by their UTC calendar day.
func Aggregate(events []domain.ClickEvent) domain.Breakdown {
	b := domain.Breakdown{
		TotalClicks:       int64(len(events)),
		DeviceBreakdown:   map[string]int64{},
		BrowserBreakdown:  map[string]int64{},
		OSBreakdown:       map[string]int64{},
		CountryBreakdown:  map[string]int64{},
		RegionBreakdown:   map[string]int64{},
		ClicksByDate:      map[string]int64{},
		ReferrerBreakdown: map[string]int64{},
	}

	for i := range events {
		e := &events[i]

		b.DeviceBreakdown[orUnknown(e.DeviceType)]++
		b.BrowserBreakdown[orUnknown(e.Browser)]++
		b.OSBreakdown[orUnknown(e.OS)]++
		b.CountryBreakdown[orUnknown(e.Country)]++
		b.ClicksByDate[e.ClickedAt.UTC().Format(dateLayout)]++

		if e.Region != nil {
			b.RegionBreakdown[regionKey(*e.Region, e.Country)]++
		}
		if e.Referer != nil && *e.Referer != "" {
			b.ReferrerBreakdown[*e.Referer]++
		}
	}

	return b
}

func orUnknown(v *string) string {
	if v == nil || *v == "" {
		return unknownCategory
	}
	return *v
}

func regionKey(region string, country *string) string {
	if country == nil || *country == "" {
		return region
	}
	return region + ", " + *country
}

// recent returns at most recentClicksLimit events; events are already newest first
func recent(events []domain.ClickEvent) []domain.ClickEvent {
	if len(events) > recentClicksLimit {
		return events[:recentClicksLimit]
	}
	return events
}

package domain

// Breakdown holds the grouped counts computed over a link's click events.
// Keys are category values; only the final counts are meaningful.
type Breakdown struct {
	TotalClicks       int64            `json:"totalClicks"`
	DeviceBreakdown   map[string]int64 `json:"deviceBreakdown"`
	BrowserBreakdown  map[string]int64 `json:"browserBreakdown"`
	OSBreakdown       map[string]int64 `json:"osBreakdown"`
	CountryBreakdown  map[string]int64 `json:"countryBreakdown"`
	RegionBreakdown   map[string]int64 `json:"regionBreakdown"`
	ClicksByDate      map[string]int64 `json:"clicksByDate"`
	ReferrerBreakdown map[string]int64 `json:"referrerBreakdown"`
}

// AnalyticsSummary is the analytics view of one link
type AnalyticsSummary struct {
	LinkID       uint         `json:"linkId"`
	ShortCode    string       `json:"shortCode"`
	URL          string       `json:"url"`
	TotalClicks  int64        `json:"totalClicks"`
	Analytics    Breakdown    `json:"analytics"`
	RecentClicks []ClickEvent `json:"recentClicks"`
}

// PeriodAnalytics lists the raw events of the last N days
type PeriodAnalytics struct {
	Period      string       `json:"period"`
	TotalClicks int64        `json:"totalClicks"`
	Clicks      []ClickEvent `json:"clicks"`
}

// OverallStats is the per-user roll-up computed from cached link counters
type OverallStats struct {
	TotalLinks      int          `json:"totalLinks"`
	TotalClicks     int64        `json:"totalClicks"`
	ActiveLinks     int          `json:"activeLinks"`
	InactiveLinks   int          `json:"inactiveLinks"`
	MostClickedLink *LinkSummary `json:"mostClickedLink"`
}

// APIResponse is the envelope returned by the analytics endpoints
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

package domain

import (
	"time"
)

// LinkState is the outcome of inspecting a link on the redirect path
type LinkState int

const (
	LinkNotFound LinkState = iota
	LinkActive
	LinkInactive
	LinkExpired
)

// String returns a log-friendly name for the state
func (s LinkState) String() string {
	switch s {
	case LinkActive:
		return "active"
	case LinkInactive:
		return "inactive"
	case LinkExpired:
		return "expired"
	default:
		return "not_found"
	}
}

// Link is a short code owned by one user that redirects to a destination URL.
// ClickCount caches the number of ClickEvent rows and may briefly lag it.
type Link struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ShortCode  string     `gorm:"uniqueIndex;not null;size:16" json:"shortCode"`
	URL        string     `gorm:"not null;size:2048" json:"url"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	ExpiresAt  *time.Time `gorm:"index" json:"expiresAt,omitempty"`
	ClickCount int64      `gorm:"not null;default:0" json:"clickCount"`
	IsActive   bool       `gorm:"not null" json:"isActive"`

	Clicks []ClickEvent `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Link) TableName() string {
	return "short_links"
}

// IsExpired reports whether the link has an expiry that lies before now
func (l *Link) IsExpired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return l.ExpiresAt.Before(now)
}

// State classifies the link for redirection. Inactive wins over expired.
func (l *Link) State(now time.Time) LinkState {
	switch {
	case l == nil:
		return LinkNotFound
	case !l.IsActive:
		return LinkInactive
	case l.IsExpired(now):
		return LinkExpired
	default:
		return LinkActive
	}
}

// LinkSummary is the compact link view used by the stats roll-up
type LinkSummary struct {
	ID        uint   `json:"id"`
	ShortCode string `json:"shortCode"`
	URL       string `json:"url"`
	Clicks    int64  `json:"clicks"`
}

package domain

import "time"

// ClickRequest carries the raw request metadata captured on a redirect
type ClickRequest struct {
	IP        string
	UserAgent string
	Referer   string
}

// DeviceInfo is what the user-agent classifier derives from a UA string.
// DeviceType is always one of mobile, tablet or desktop.
type DeviceInfo struct {
	DeviceType     string
	DeviceVendor   *string
	DeviceModel    *string
	Browser        *string
	BrowserVersion *string
	OS             *string
	OSVersion      *string
}

// Location is what the geo resolver derives from an IP address
type Location struct {
	Country  *string
	Region   *string
	City     *string
	Timezone *string
}

// ClickEvent is one immutable record of a redirect. It is inserted once and
// only ever removed through the cascade on its Link.
type ClickEvent struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	LinkID uint `gorm:"not null;index:idx_click_events_link_clicked,priority:1" json:"linkId"`

	IP        *string `gorm:"size:45" json:"ip"`
	UserAgent *string `gorm:"type:text" json:"userAgent"`
	Referer   *string `gorm:"size:1024" json:"referer"`

	DeviceType     *string `gorm:"size:50" json:"deviceType"`
	DeviceVendor   *string `gorm:"size:100" json:"deviceVendor"`
	DeviceModel    *string `gorm:"size:100" json:"deviceModel"`
	Browser        *string `gorm:"size:50" json:"browser"`
	BrowserVersion *string `gorm:"size:50" json:"browserVersion"`
	OS             *string `gorm:"size:50" json:"os"`
	OSVersion      *string `gorm:"size:50" json:"osVersion"`

	Country  *string `gorm:"size:100" json:"country"`
	Region   *string `gorm:"size:100" json:"region"`
	City     *string `gorm:"size:100" json:"city"`
	Timezone *string `gorm:"size:100" json:"timezone"`

	ClickedAt time.Time `gorm:"not null;index:idx_click_events_link_clicked,priority:2" json:"clickedAt"`
}

// TableName specifies the table name for GORM
func (ClickEvent) TableName() string {
	return "click_events"
}

// NewClickEvent assembles an event from raw request data and derived fields.
// Empty raw values are stored as NULL.
func NewClickEvent(linkID uint, req ClickRequest, device DeviceInfo, loc Location, clickedAt time.Time) *ClickEvent {
	return &ClickEvent{
		LinkID:         linkID,
		IP:             StringPtr(req.IP),
		UserAgent:      StringPtr(req.UserAgent),
		Referer:        StringPtr(req.Referer),
		DeviceType:     StringPtr(device.DeviceType),
		DeviceVendor:   device.DeviceVendor,
		DeviceModel:    device.DeviceModel,
		Browser:        device.Browser,
		BrowserVersion: device.BrowserVersion,
		OS:             device.OS,
		OSVersion:      device.OSVersion,
		Country:        loc.Country,
		Region:         loc.Region,
		City:           loc.City,
		Timezone:       loc.Timezone,
		ClickedAt:      clickedAt,
	}
}

// StringPtr returns nil for the empty string and a pointer otherwise
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

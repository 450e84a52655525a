// Package useragent turns raw User-Agent headers into device, browser and OS
// facts for click analytics.
package useragent

import (
	"strings"

	ua "github.com/mileusna/useragent"

	"shortener-analytics/internal/domain"
)

// Device type buckets reported for every click
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

var (
	tabletKeywords = []string{"tablet", "ipad", "kindle", "silk/", "playbook"}
	mobileKeywords = []string{"mobile", "iphone", "ipod", "android", "blackberry", "windows phone", "opera mini"}

	// vendorPrefixes maps device model prefixes to their manufacturer.
	// Matched case-insensitively against the parsed device model.
	vendorPrefixes = []struct {
		prefix string
		vendor string
	}{
		{"iphone", "Apple"},
		{"ipad", "Apple"},
		{"ipod", "Apple"},
		{"macintosh", "Apple"},
		{"sm-", "Samsung"},
		{"gt-", "Samsung"},
		{"galaxy", "Samsung"},
		{"pixel", "Google"},
		{"nexus", "Google"},
		{"redmi", "Xiaomi"},
		{"mi ", "Xiaomi"},
		{"poco", "Xiaomi"},
		{"huawei", "Huawei"},
		{"honor", "Huawei"},
		{"oneplus", "OnePlus"},
		{"moto", "Motorola"},
		{"nokia", "Nokia"},
		{"lm-", "LG"},
		{"lg-", "LG"},
		{"cph", "OPPO"},
		{"vivo", "Vivo"},
		{"kindle", "Amazon"},
	}
)

// Classify parses a user-agent string. It never fails: anything it cannot
// recognise comes back as nil, and the device type falls back to desktop.
func Classify(userAgent string) domain.DeviceInfo {
	parsed := ua.Parse(userAgent)

	info := domain.DeviceInfo{
		DeviceType:     deviceType(parsed, userAgent),
		DeviceModel:    clean(parsed.Device),
		Browser:        clean(parsed.Name),
		BrowserVersion: clean(parsed.Version),
		OS:             clean(parsed.OS),
		OSVersion:      clean(parsed.OSVersion),
	}
	info.DeviceVendor = vendorFor(parsed.Device)

	return info
}

func deviceType(parsed ua.UserAgent, raw string) string {
	switch {
	case parsed.Tablet:
		return DeviceTablet
	case parsed.Mobile:
		return DeviceMobile
	}

	lower := strings.ToLower(raw)
	for _, keyword := range tabletKeywords {
		if strings.Contains(lower, keyword) {
			return DeviceTablet
		}
	}
	for _, keyword := range mobileKeywords {
		if strings.Contains(lower, keyword) {
			return DeviceMobile
		}
	}

	return DeviceDesktop
}

func vendorFor(model string) *string {
	lower := strings.ToLower(strings.TrimSpace(model))
	if lower == "" {
		return nil
	}

	for _, v := range vendorPrefixes {
		if strings.HasPrefix(lower, v.prefix) {
			vendor := v.vendor
			return &vendor
		}
	}
	return nil
}

// clean trims the value and maps blanks to nil
func clean(s string) *string {
	return domain.StringPtr(strings.TrimSpace(s))
}

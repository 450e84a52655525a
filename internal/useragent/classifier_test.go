package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	iphoneSafari  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	ipadSafari    = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	windowsChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	samsungChrome = "Mozilla/5.0 (Linux; Android 13; SM-S911B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Mobile Safari/537.36"
)

func TestClassify_DeviceType(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"iphone", iphoneSafari, DeviceMobile},
		{"ipad", ipadSafari, DeviceTablet},
		{"windows desktop", windowsChrome, DeviceDesktop},
		{"android phone", samsungChrome, DeviceMobile},
		{"empty", "", DeviceDesktop},
		{"garbage", "%%%not-a-browser%%%", DeviceDesktop},
		{"keyword fallback tablet", "SomeReader/1.0 (Kindle Tablet)", DeviceTablet},
		{"keyword fallback mobile", "CustomClient/2.0 BlackBerry", DeviceMobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ua).DeviceType)
		})
	}
}

func TestClassify_IPhone(t *testing.T) {
	info := Classify(iphoneSafari)

	require.NotNil(t, info.Browser)
	assert.Equal(t, "Safari", *info.Browser)
	require.NotNil(t, info.OS)
	assert.Equal(t, "iOS", *info.OS)
	require.NotNil(t, info.DeviceVendor)
	assert.Equal(t, "Apple", *info.DeviceVendor)
}

func TestClassify_WindowsChrome(t *testing.T) {
	info := Classify(windowsChrome)

	require.NotNil(t, info.Browser)
	assert.Equal(t, "Chrome", *info.Browser)
	require.NotNil(t, info.BrowserVersion)
	assert.Contains(t, *info.BrowserVersion, "120")
	require.NotNil(t, info.OS)
	assert.Equal(t, "Windows", *info.OS)
	assert.Nil(t, info.DeviceVendor)
}

func TestClassify_EmptyYieldsNulls(t *testing.T) {
	info := Classify("")

	assert.Equal(t, DeviceDesktop, info.DeviceType)
	assert.Nil(t, info.Browser)
	assert.Nil(t, info.BrowserVersion)
	assert.Nil(t, info.OS)
	assert.Nil(t, info.OSVersion)
	assert.Nil(t, info.DeviceModel)
	assert.Nil(t, info.DeviceVendor)
}

func TestVendorFor(t *testing.T) {
	assert.Equal(t, "Samsung", *vendorFor("SM-S911B"))
	assert.Equal(t, "Google", *vendorFor("Pixel 8"))
	assert.Equal(t, "Apple", *vendorFor("iPad"))
	assert.Nil(t, vendorFor("K"))
	assert.Nil(t, vendorFor("  "))
}

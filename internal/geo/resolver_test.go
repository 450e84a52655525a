package geo

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

type fakeDB struct {
	records map[string]*Record
	err     error
	delay   time.Duration
	calls   int
}

func (f *fakeDB) Lookup(ip net.IP) (*Record, error) {
	f.calls++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records[ip.String()], nil
}

func newTestResolver(db Database) *Resolver {
	return NewResolver(db, logger.NewNop())
}

func TestResolve_LocalAddresses(t *testing.T) {
	db := &fakeDB{}
	r := newTestResolver(db)

	for _, ip := range []string{"", "::1", "127.0.0.1", "192.168.1.20", "10.0.0.8", "172.16.4.4", "::ffff:127.0.0.1", "::FFFF:10.1.1.1"} {
		t.Run(ip, func(t *testing.T) {
			loc := r.Resolve(context.Background(), ip)

			require.NotNil(t, loc.Country)
			assert.Equal(t, "Local", *loc.Country)
			assert.Equal(t, "Local Network", *loc.Region)
			assert.Equal(t, "Local", *loc.City)
			assert.Nil(t, loc.Timezone)
		})
	}
	assert.Zero(t, db.calls)
}

func TestResolve_MappedPrivateAddressIsLocal(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{
		"10.0.0.1": {CountryCode: "US", RegionCode: "CA"},
	}}
	r := newTestResolver(db)

	loc := r.Resolve(context.Background(), "::ffff:10.0.0.1")

	require.NotNil(t, loc.Country)
	assert.Equal(t, "Local", *loc.Country)
	assert.Equal(t, "Local Network", *loc.Region)
	assert.Zero(t, db.calls)
}

func TestResolve_ExpandsCodes(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{
		"8.8.8.8":      {CountryCode: "US", RegionCode: "CA", City: "Mountain View", TimeZone: "America/Los_Angeles"},
		"49.36.0.1":    {CountryCode: "IN", RegionCode: "MH", City: "Mumbai", TimeZone: "Asia/Kolkata"},
		"203.0.113.10": {CountryCode: "ZZ", RegionCode: "QQ"},
	}}
	r := newTestResolver(db)

	loc := r.Resolve(context.Background(), "8.8.8.8")
	assert.Equal(t, "United States", *loc.Country)
	assert.Equal(t, "California", *loc.Region)
	assert.Equal(t, "Mountain View", *loc.City)
	assert.Equal(t, "America/Los_Angeles", *loc.Timezone)

	loc = r.Resolve(context.Background(), "::ffff:49.36.0.1")
	assert.Equal(t, "India", *loc.Country)
	assert.Equal(t, "Maharashtra", *loc.Region)

	loc = r.Resolve(context.Background(), "203.0.113.10")
	assert.Equal(t, "ZZ", *loc.Country)
	assert.Equal(t, "QQ", *loc.Region)
	assert.Nil(t, loc.City)
	assert.Nil(t, loc.Timezone)
}

func TestResolve_DegradesToNil(t *testing.T) {
	tests := []struct {
		name string
		db   Database
		ip   string
	}{
		{"no database", nil, "8.8.8.8"},
		{"miss", &fakeDB{}, "8.8.4.4"},
		{"lookup error", &fakeDB{err: errors.New("corrupt")}, "8.8.8.8"},
		{"unparseable", &fakeDB{}, "not-an-ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := newTestResolver(tt.db).Resolve(context.Background(), tt.ip)
			assert.Equal(t, domain.Location{}, loc)
		})
	}
}

func TestResolve_RespectsDeadline(t *testing.T) {
	db := &fakeDB{
		records: map[string]*Record{"8.8.8.8": {CountryCode: "US"}},
		delay:   200 * time.Millisecond,
	}
	r := newTestResolver(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	loc := r.Resolve(ctx, "8.8.8.8")

	assert.Equal(t, domain.Location{}, loc)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestRegionName_OtherCountriesPassThrough(t *testing.T) {
	assert.Equal(t, "BY", RegionName("BY", "DE"))
	assert.Equal(t, "", RegionName("", "US"))
	assert.Equal(t, "Delhi", RegionName("DL", "IN"))
}

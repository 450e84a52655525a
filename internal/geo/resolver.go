// Package geo resolves client IP addresses to coarse locations using an
// offline database.
package geo

import (
	"context"
	"net"
	"strings"

	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

// Record is one database hit, still in code form
type Record struct {
	CountryCode string
	RegionCode  string
	City        string
	TimeZone    string
}

// Database is an offline IP location source.
// A nil Record with a nil error means the address is unknown.
type Database interface {
	Lookup(ip net.IP) (*Record, error)
}

// Resolver maps IP strings to domain locations. It never fails: every problem
// degrades to an empty Location.
type Resolver struct {
	db     Database
	logger *logger.Logger
}

// NewResolver creates a resolver. db may be nil, in which case only local
// addresses resolve.
func NewResolver(db Database, log *logger.Logger) *Resolver {
	return &Resolver{db: db, logger: log}
}

const mappedIPv4Prefix = "::ffff:"

var (
	localAddresses = map[string]bool{"": true, "::1": true, "127.0.0.1": true}
	localPrefixes  = []string{"192.168.", "10.", "172."}
)

// Resolve returns the location for ip, bounded by ctx
func (r *Resolver) Resolve(ctx context.Context, ip string) domain.Location {
	// unwrapped first so mapped private addresses count as local
	ip = stripMappedPrefix(strings.TrimSpace(ip))

	if isLocal(ip) {
		return localLocation()
	}

	if r.db == nil {
		return domain.Location{}
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		r.logger.Debugw("Unparseable client IP", "ip", ip)
		return domain.Location{}
	}

	type result struct {
		record *Record
		err    error
	}
	done := make(chan result, 1)

	go func() {
		record, err := r.db.Lookup(parsed)
		done <- result{record: record, err: err}
	}()

	select {
	case <-ctx.Done():
		r.logger.Warnw("Geo lookup timed out", "ip", ip, "error", ctx.Err())
		return domain.Location{}
	case res := <-done:
		if res.err != nil {
			r.logger.Warnw("Geo lookup failed", "ip", ip, "error", res.err)
			return domain.Location{}
		}
		if res.record == nil {
			return domain.Location{}
		}
		return toLocation(res.record)
	}
}

func stripMappedPrefix(ip string) string {
	if len(ip) >= len(mappedIPv4Prefix) && strings.EqualFold(ip[:len(mappedIPv4Prefix)], mappedIPv4Prefix) {
		return ip[len(mappedIPv4Prefix):]
	}
	return ip
}

// isLocal matches loopback and the private ranges by prefix
func isLocal(ip string) bool {
	if localAddresses[ip] {
		return true
	}
	for _, prefix := range localPrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

func localLocation() domain.Location {
	return domain.Location{
		Country: domain.StringPtr("Local"),
		Region:  domain.StringPtr("Local Network"),
		City:    domain.StringPtr("Local"),
	}
}

func toLocation(rec *Record) domain.Location {
	return domain.Location{
		Country:  domain.StringPtr(CountryName(rec.CountryCode)),
		Region:   domain.StringPtr(RegionName(rec.RegionCode, rec.CountryCode)),
		City:     domain.StringPtr(rec.City),
		Timezone: domain.StringPtr(rec.TimeZone),
	}
}

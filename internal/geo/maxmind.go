package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindDB reads a GeoLite2/GeoIP2 City database
type MaxMindDB struct {
	reader *geoip2.Reader
}

// OpenMaxMind opens the .mmdb file at path
func OpenMaxMind(path string) (*MaxMindDB, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}
	return &MaxMindDB{reader: reader}, nil
}

// Lookup implements Database
func (m *MaxMindDB) Lookup(ip net.IP) (*Record, error) {
	city, err := m.reader.City(ip)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		CountryCode: city.Country.IsoCode,
		City:        city.City.Names["en"],
		TimeZone:    city.Location.TimeZone,
	}
	if len(city.Subdivisions) > 0 {
		rec.RegionCode = city.Subdivisions[0].IsoCode
	}

	if rec.CountryCode == "" && rec.City == "" && rec.TimeZone == "" {
		return nil, nil
	}
	return rec, nil
}

// Close releases the memory-mapped database
func (m *MaxMindDB) Close() error {
	return m.reader.Close()
}

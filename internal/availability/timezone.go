package availability

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// TimeZoneConverter converts naive local date-times to and from UTC for an IANA zone
type TimeZoneConverter interface {
	// ToUTC interprets the wall clock of local (its own location is ignored) in zoneID
	ToUTC(local time.Time, zoneID string) (time.Time, error)
	// FromUTC returns utc expressed in zoneID
	FromUTC(utc time.Time, zoneID string) (time.Time, error)
	// Location loads zoneID
	Location(zoneID string) (*time.Location, error)
}

// IANAConverter is a TimeZoneConverter over the system tz database.
// Loaded locations are cached; the cache is safe for concurrent use.
type IANAConverter struct {
	cache       sync.Map // zone id -> *time.Location
	defaultZone string
}

// NewIANAConverter creates a converter
func NewIANAConverter() *IANAConverter {
	return &IANAConverter{}
}

// WithDefaultZone sets the zone an empty zone id resolves to
func (c *IANAConverter) WithDefaultZone(zoneID string) *IANAConverter {
	c.defaultZone = zoneID
	return c
}

// Location loads and caches a zone
func (c *IANAConverter) Location(zoneID string) (*time.Location, error) {
	if zoneID == "" {
		zoneID = c.defaultZone
	}
	if zoneID == "" {
		zoneID = domain.DefaultTimezone
	}
	if loc, ok := c.cache.Load(zoneID); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, zoneID, err)
	}
	c.cache.Store(zoneID, loc)
	return loc, nil
}

func (c *IANAConverter) ToUTC(local time.Time, zoneID string) (time.Time, error) {
	loc, err := c.Location(zoneID)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := local.Date()
	hh, mm, ss := local.Clock()
	return time.Date(y, m, d, hh, mm, ss, local.Nanosecond(), loc).UTC(), nil
}

func (c *IANAConverter) FromUTC(utc time.Time, zoneID string) (time.Time, error) {
	loc, err := c.Location(zoneID)
	if err != nil {
		return time.Time{}, err
	}
	return utc.In(loc), nil
}

// civilDate strips the time part, keeping the calendar date as written in t's own location
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateKey formats a calendar date as YYYY-MM-DD
func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// DateKey is the key format of per-date count maps
func DateKey(t time.Time) string {
	return dateKey(civilDate(t))
}

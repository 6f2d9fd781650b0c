package services

import (
	"fmt"
	"strings"
	"time"

	"eventflow/internal/domain"
)

// Layouts used for stored timestamps and event date/times.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateTimeLayout  = "2006-01-02 15:04"
)

// inputLayouts are accepted for user-supplied dates, most specific first.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Clock formats "now" in the configured zone. The zero value uses time.Now and Local.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a Clock for the named IANA zone, falling back to UTC when it is unknown.
func NewClock(zone string) Clock {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.loc())
}

func (c Clock) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// Timestamp returns now formatted as TimestampLayout.
func (c Clock) Timestamp() string {
	return c.now().Format(TimestampLayout)
}

// ParseDate accepts RFC3339 and the stored layouts. A space between date and time is
// treated like "T". Values without an offset are read in the clock's zone.
func (c Clock) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", domain.ErrValidation)
	}
	s = strings.Replace(s, " ", "T", 1)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc()); err == nil {
			return t.In(c.loc()), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: 날짜 파싱 실패: %s", domain.ErrValidation, s)
}

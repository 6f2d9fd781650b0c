package domain

import (
	"context"
	"io"
	"time"
)

// DefaultEventDuration is used for calendar entries; events carry no end time.
const DefaultEventDuration = 2 * time.Hour

// CalendarEntry is what the calendar renderer needs to describe one event.
type CalendarEntry struct {
	UID      string
	Title    string
	Location string
	Start    time.Time
	Duration time.Duration
	Created  time.Time
}

// CalendarRenderer writes an iCalendar document for one entry.
type CalendarRenderer interface {
	Render(w io.Writer, entry CalendarEntry) error
}

// CalendarService resolves the calendar entry of an event that has a calendar.
type CalendarService interface {
	Entry(ctx context.Context, eventID string) (*CalendarEntry, error)
}

package calendar

import (
	"fmt"
	"io"

	"github.com/emersion/go-ical"

	"eventflow/internal/domain"
)

const productID = "-//EventFlow//Event Dashboard//KO"

type icsRenderer struct{}

// NewICSRenderer returns a CalendarRenderer that writes iCalendar (RFC 5545) documents.
func NewICSRenderer() domain.CalendarRenderer {
	return &icsRenderer{}
}

func (r *icsRenderer) Render(w io.Writer, entry domain.CalendarEntry) error {
	if entry.UID == "" {
		return fmt.Errorf("calendar entry uid is required")
	}
	if entry.Start.IsZero() {
		return fmt.Errorf("calendar entry start is required")
	}
	duration := entry.Duration
	if duration <= 0 {
		duration = domain.DefaultEventDuration
	}
	stamp := entry.Created
	if stamp.IsZero() {
		stamp = entry.Start
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, entry.UID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, entry.Start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, entry.Start.Add(duration))
	event.Props.SetText(ical.PropSummary, entry.Title)
	if entry.Location != "" {
		event.Props.SetText(ical.PropLocation, entry.Location)
	}
	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

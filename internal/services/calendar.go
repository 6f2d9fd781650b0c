package services

import (
	"context"
	"fmt"
	"time"

	"eventflow/internal/domain"
)

type calendarService struct {
	store  domain.TableStore
	config domain.ConfigService
	clock  Clock
}

// NewCalendarService returns the CalendarService backing the .ics route.
func NewCalendarService(store domain.TableStore, config domain.ConfigService, clock Clock) domain.CalendarService {
	return &calendarService{store: store, config: config, clock: clock}
}

// Entry requires a calendar id on the event. The start is the confirmed date/time when
// CONFIG holds this event's calendar, else the event's first candidate date.
func (s *calendarService) Entry(ctx context.Context, eventID string) (*domain.CalendarEntry, error) {
	event, err := findEvent(ctx, s.store, eventID)
	if err != nil {
		return nil, err
	}
	if event.CalendarID == "" {
		return nil, fmt.Errorf("%w: event %s has no calendar", domain.ErrNotFound, event.ID)
	}
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	raw := event.FirstDate()
	if cfg.Get(domain.ConfigEventCalendarID, "") == event.CalendarID {
		raw = cfg.Get(domain.ConfigEventConfirmed, raw)
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: event %s has no confirmed date", domain.ErrNotFound, event.ID)
	}
	start, err := s.clock.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	created, err := time.ParseInLocation(TimestampLayout, event.CreatedAt, s.clock.loc())
	if err != nil {
		created = s.clock.now()
	}
	return &domain.CalendarEntry{
		UID:      event.CalendarID,
		Title:    event.Title,
		Location: event.Location,
		Start:    start,
		Duration: domain.DefaultEventDuration,
		Created:  created,
	}, nil
}

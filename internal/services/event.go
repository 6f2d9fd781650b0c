package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventflow/internal/domain"

	"github.com/google/uuid"
)

type eventService struct {
	store          domain.TableStore
	config         domain.ConfigService
	clock          Clock
	contextTimeout time.Duration
}

// NewEventService creates an EventService over the EVENTS and SPEAKERS tables.
func NewEventService(store domain.TableStore, config domain.ConfigService, clock Clock, timeout time.Duration) domain.EventService {
	return &eventService{
		store:          store,
		config:         config,
		clock:          clock,
		contextTimeout: timeout,
	}
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.NewEventInput) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	in.UserID = strings.TrimSpace(in.UserID)
	in.Title = strings.TrimSpace(in.Title)
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	dates := make([]string, 0, len(in.Dates))
	for _, d := range in.Dates {
		if strings.TrimSpace(d) == "" {
			continue
		}
		t, err := s.clock.ParseDate(d)
		if err != nil {
			return nil, err
		}
		dates = append(dates, t.Format(DateTimeLayout))
	}
	for _, sp := range in.InitialSpeakers {
		if strings.TrimSpace(sp.Email) == "" {
			return nil, fmt.Errorf("%w: speaker %q has no email", domain.ErrValidation, sp.Name)
		}
	}

	event := domain.NewEvent(uuid.NewString(), in.UserID, in.Title, strings.TrimSpace(in.Location), dates, s.clock.Timestamp())
	if err := s.store.Append(ctx, domain.TableEvents, event.Cells()); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	for _, sp := range in.InitialSpeakers {
		if err := s.appendSpeaker(ctx, event.ID, sp); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *eventService) ListUserEvents(ctx context.Context, userID string) ([]domain.EventListItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	rows, err := s.store.Read(ctx, domain.TableEvents)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	items := []domain.EventListItem{}
	for _, r := range rows {
		if r.Cell(domain.EventColUserID) != userID {
			continue
		}
		items = append(items, domain.EventListItem{
			ID:     r.Cell(domain.EventColID),
			Title:  r.Cell(domain.EventColTitle),
			Date:   r.Cell(domain.EventColDates),
			Status: r.Cell(domain.EventColStatus),
		})
	}
	return items, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return findEvent(ctx, s.store, eventID)
}

// SelectEvent makes the event current by copying its id, title and location into CONFIG.
func (s *eventService) SelectEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := findEvent(ctx, s.store, eventID)
	if err != nil {
		return nil, err
	}
	for _, kv := range [][2]string{
		{domain.ConfigEventID, event.ID},
		{domain.ConfigEventTitle, event.Title},
		{domain.ConfigEventLocation, event.Location},
	} {
		if err := s.config.Set(ctx, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *eventService) AddSpeaker(ctx context.Context, eventID string, in domain.SpeakerInput) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: speaker email is required", domain.ErrValidation)
	}
	event, err := findEvent(ctx, s.store, eventID)
	if err != nil {
		return err
	}
	return s.appendSpeaker(ctx, event.ID, in)
}

func (s *eventService) appendSpeaker(ctx context.Context, eventID string, in domain.SpeakerInput) error {
	sp := domain.NewSpeaker(eventID, strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), strings.TrimSpace(in.Topic))
	if err := s.store.Append(ctx, domain.TableSpeakers, sp.Cells()); err != nil {
		return fmt.Errorf("append speaker: %w", err)
	}
	return nil
}

// findEvent returns the first EVENTS row with the id, or ErrNotFound.
func findEvent(ctx context.Context, store domain.TableStore, eventID string) (*domain.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", domain.ErrValidation)
	}
	rows, err := store.Read(ctx, domain.TableEvents)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	for _, r := range rows {
		if strings.TrimSpace(r.Cell(domain.EventColID)) == eventID {
			return domain.EventFromRow(r)
		}
	}
	return nil, fmt.Errorf("%w: event %s", domain.ErrNotFound, eventID)
}

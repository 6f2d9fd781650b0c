package domain

import (
	"context"
	"strings"
)

// Event status values.
const (
	EventStatusSetupComplete   = "SETUP_COMPLETE"
	EventStatusCalendarCreated = "CALENDAR_CREATED"
	EventStatusCompleted       = "COMPLETED"
)

// Column positions in the EVENTS table.
const (
	EventColID = iota
	EventColUserID
	EventColTitle
	EventColLocation
	EventColDates
	EventColStatus
	EventColCalendarID
	EventColDriveID
	EventColCreatedAt
	eventColumns
)

// DateSeparator joins candidate date/times in the DATES cell.
const DateSeparator = ";"

// Event represents one managed event.
// swagger:model Event
type Event struct {
	RowNum     int64    `json:"-"`
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Title      string   `json:"title"`
	Location   string   `json:"location"`
	Dates      []string `json:"dates"`
	Status     string   `json:"status"`
	CalendarID string   `json:"calendar_id,omitempty"`
	DriveID    string   `json:"drive_id,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// NewEvent returns a new Event in SETUP_COMPLETE status.
func NewEvent(id, userID, title, location string, dates []string, createdAt string) *Event {
	return &Event{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Location:  location,
		Dates:     dates,
		Status:    EventStatusSetupComplete,
		CreatedAt: createdAt,
	}
}

// EventFromRow decodes an EVENTS row.
func EventFromRow(r Row) (*Event, error) {
	if err := requireWidth(TableEvents, r, eventColumns); err != nil {
		return nil, err
	}
	return &Event{
		RowNum:     r.Num,
		ID:         r.Cells[EventColID],
		UserID:     r.Cells[EventColUserID],
		Title:      r.Cells[EventColTitle],
		Location:   r.Cells[EventColLocation],
		Dates:      SplitDates(r.Cells[EventColDates]),
		Status:     r.Cells[EventColStatus],
		CalendarID: r.Cells[EventColCalendarID],
		DriveID:    r.Cells[EventColDriveID],
		CreatedAt:  r.Cells[EventColCreatedAt],
	}, nil
}

// Cells encodes the event as an EVENTS row.
func (e *Event) Cells() []string {
	return []string{
		e.ID, e.UserID, e.Title, e.Location, strings.Join(e.Dates, DateSeparator),
		e.Status, e.CalendarID, e.DriveID, e.CreatedAt,
	}
}

// FirstDate returns the first candidate date, or "".
func (e *Event) FirstDate() string {
	if len(e.Dates) == 0 {
		return ""
	}
	return e.Dates[0]
}

// SplitDates parses a DATES cell into its non-empty parts.
func SplitDates(s string) []string {
	out := []string{}
	for _, d := range strings.Split(s, DateSeparator) {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// EventListItem is the projection returned by get_events.
type EventListItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// NewEventInput holds the fields accepted when creating an event.
type NewEventInput struct {
	UserID          string
	Title           string
	Location        string
	Dates           []string
	InitialSpeakers []SpeakerInput
}

// SpeakerInput is a speaker pre-registered at event creation or added later.
type SpeakerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Topic string `json:"topic"`
}

// EventService defines event creation, listing and selection.
type EventService interface {
	CreateEvent(ctx context.Context, in NewEventInput) (*Event, error)
	ListUserEvents(ctx context.Context, userID string) ([]EventListItem, error)
	SelectEvent(ctx context.Context, eventID string) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	AddSpeaker(ctx context.Context, eventID string, in SpeakerInput) error
}

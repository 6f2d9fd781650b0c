package domain

// Attendee status values.
const (
	AttendeeStatusRegistered = "REGISTERED"
	AttendeeStatusInvited    = "INVITED"
)

// Column positions in the ATTENDEES table.
const (
	AttendeeColEventID = iota
	AttendeeColName
	AttendeeColEmail
	AttendeeColStatus
	AttendeeColRSVP
	AttendeeColFormURL
	AttendeeColRespondedAt
	AttendeeColCheckIn
	attendeeColumns
)

// Attendee is a registered participant of an event.
type Attendee struct {
	RowNum      int64
	EventID     string
	Name        string
	Email       string
	Status      string
	RSVP        string
	FormURL     string
	RespondedAt string
	CheckIn     string
}

// NewAttendee returns a REGISTERED attendee for the event.
func NewAttendee(eventID, name, email string) *Attendee {
	return &Attendee{
		EventID: eventID,
		Name:    name,
		Email:   email,
		Status:  AttendeeStatusRegistered,
	}
}

// AttendeeFromRow decodes an ATTENDEES row.
func AttendeeFromRow(r Row) (*Attendee, error) {
	if err := requireWidth(TableAttendees, r, attendeeColumns); err != nil {
		return nil, err
	}
	return &Attendee{
		RowNum:      r.Num,
		EventID:     r.Cells[AttendeeColEventID],
		Name:        r.Cells[AttendeeColName],
		Email:       r.Cells[AttendeeColEmail],
		Status:      r.Cells[AttendeeColStatus],
		RSVP:        r.Cells[AttendeeColRSVP],
		FormURL:     r.Cells[AttendeeColFormURL],
		RespondedAt: r.Cells[AttendeeColRespondedAt],
		CheckIn:     r.Cells[AttendeeColCheckIn],
	}, nil
}

// Cells encodes the attendee as an ATTENDEES row.
func (a *Attendee) Cells() []string {
	return []string{
		a.EventID, a.Name, a.Email, a.Status, a.RSVP,
		a.FormURL, a.RespondedAt, a.CheckIn,
	}
}

// Attending reports whether the RSVP text reads as attending.
func (a *Attendee) Attending() bool {
	return IsAttending(a.RSVP)
}

// Summary projects the attendee into the snapshot shape.
func (a *Attendee) Summary() AttendeeSummary {
	return AttendeeSummary{
		Name:   a.Name,
		Email:  a.Email,
		Status: a.Status,
		RSVP:   a.RSVP,
	}
}

package domain

import "context"

// UntitledEvent is shown when no event title is configured.
const UntitledEvent = "(제목없음)"

// DefaultSummaryLogLimit is the number of log entries included in a snapshot.
const DefaultSummaryLogLimit = 50

// SnapshotConfig carries the configured event header.
type SnapshotConfig struct {
	Title             string `json:"title"`
	Location          string `json:"location"`
	ConfirmedDatetime string `json:"confirmedDatetime"`
}

// Counts are derived on every read. TasksOpen never exceeds TasksTotal;
// Attending may exceed what a strict RSVP reading would give.
type Counts struct {
	Invited    int `json:"invited"`
	Registered int `json:"registered"`
	Attending  int `json:"attending"`
	TasksTotal int `json:"tasksTotal"`
	TasksOpen  int `json:"tasksOpen"`
}

// SpeakerSummary is a speaker as shown on the dashboard.
type SpeakerSummary struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Confirmed string `json:"confirmed"`
	Topic     string `json:"topic"`
}

// AttendeeSummary is an attendee as shown on the dashboard.
type AttendeeSummary struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	RSVP   string `json:"rsvp"`
}

// TaskSummary is a task as shown on the dashboard.
type TaskSummary struct {
	Task     string `json:"task"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// Snapshot is the aggregated, read-only view of event state.
// swagger:model Snapshot
type Snapshot struct {
	Config    SnapshotConfig    `json:"config"`
	Counts    Counts            `json:"counts"`
	Speakers  []SpeakerSummary  `json:"speakers"`
	Attendees []AttendeeSummary `json:"attendees"`
	Tasks     []TaskSummary     `json:"tasks"`
	Logs      []LogEntry        `json:"logs"`
}

// NewSnapshot returns an empty snapshot with defaults applied and non-nil lists.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Config:    SnapshotConfig{Title: UntitledEvent},
		Speakers:  []SpeakerSummary{},
		Attendees: []AttendeeSummary{},
		Tasks:     []TaskSummary{},
		Logs:      []LogEntry{},
	}
}

// SummaryService produces snapshots.
type SummaryService interface {
	GetSummary(ctx context.Context) (*Snapshot, error)
}

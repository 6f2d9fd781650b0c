package domain

import (
	"context"
	"strconv"
)

// Log status values.
const (
	LogStatusOK    = "OK"
	LogStatusError = "ERROR"
)

// NoEventID marks log entries that are not scoped to an event.
const NoEventID = "-"

// Column positions in the LOGS table.
const (
	LogColEventID = iota
	LogColTimestamp
	LogColAction
	LogColStatus
	LogColMessage
	LogColCount
	LogColUser
	logColumns
)

// LogEntry is one append-only audit record.
// swagger:model LogEntry
type LogEntry struct {
	EventID string `json:"event_id"`
	TS      string `json:"ts"`
	Action  string `json:"action"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Count   *int   `json:"count"`
	User    string `json:"user"`
}

// LogEntryFromRow decodes a LOGS row. A non-numeric COUNT cell decodes as nil.
func LogEntryFromRow(r Row) (*LogEntry, error) {
	if err := requireWidth(TableLogs, r, logColumns); err != nil {
		return nil, err
	}
	e := &LogEntry{
		EventID: r.Cells[LogColEventID],
		TS:      r.Cells[LogColTimestamp],
		Action:  r.Cells[LogColAction],
		Status:  r.Cells[LogColStatus],
		Message: r.Cells[LogColMessage],
		User:    r.Cells[LogColUser],
	}
	if n, err := strconv.Atoi(r.Cells[LogColCount]); err == nil {
		e.Count = &n
	}
	return e, nil
}

// Cells encodes the entry as a LOGS row.
func (e *LogEntry) Cells() []string {
	eventID := e.EventID
	if eventID == "" {
		eventID = NoEventID
	}
	count := ""
	if e.Count != nil {
		count = strconv.Itoa(*e.Count)
	}
	return []string{eventID, e.TS, e.Action, e.Status, e.Message, count, e.User}
}

// ActivityLog appends and reads the audit trail.
type ActivityLog interface {
	Record(ctx context.Context, entry LogEntry) error
	Recent(ctx context.Context, limit int) ([]LogEntry, error)
}

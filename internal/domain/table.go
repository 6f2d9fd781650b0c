package domain

import (
	"context"
	"fmt"
	"strings"
)

// Table names. Each table mirrors one sheet of the original workbook.
const (
	TableConfig    = "CONFIG"
	TableUsers     = "USERS"
	TableEvents    = "EVENTS"
	TableSpeakers  = "SPEAKERS"
	TableAttendees = "ATTENDEES"
	TableTasks     = "TASKS"
	TableEmails    = "EMAILS"
	TableLogs      = "LOGS"
)

// AllTables lists every table the application expects to exist.
var AllTables = []string{
	TableConfig, TableUsers, TableEvents, TableSpeakers,
	TableAttendees, TableTasks, TableEmails, TableLogs,
}

// Row is one stored record: an ordered list of cells plus the store-assigned row number.
// Num is stable for the lifetime of the row and is what UpdateRow addresses.
type Row struct {
	Num   int64
	Cells []string
}

// Cell returns the i-th cell, or "" when the row is too short.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// TableStore is the storage port. Tables are ordered collections of string rows.
// Implementations return ErrTableNotFound for unknown tables.
type TableStore interface {
	// Read returns all rows of the table in insertion order.
	Read(ctx context.Context, table string) ([]Row, error)
	// Append adds a row at the end of the table.
	Append(ctx context.Context, table string, cells []string) error
	// UpsertByKey replaces the row whose trimmed first cell equals key, or appends cells.
	UpsertByKey(ctx context.Context, table, key string, cells []string) error
	// UpdateRow replaces the cells of an existing row. Returns ErrRowNotFound if it is gone.
	UpdateRow(ctx context.Context, table string, rowNum int64, cells []string) error
}

// requireWidth reports ErrMalformedRow when a row has fewer cells than the table defines.
func requireWidth(table string, r Row, width int) error {
	if len(r.Cells) < width {
		return fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrMalformedRow, table, r.Num, len(r.Cells), width)
	}
	return nil
}

// MatchesEvent reports whether a row's event id is in scope. An empty scope matches every row.
func MatchesEvent(rowEventID, scope string) bool {
	return scope == "" || strings.TrimSpace(rowEventID) == scope
}

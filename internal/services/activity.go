package services

import (
	"context"
	"fmt"

	"eventflow/internal/domain"
)

type activityLog struct {
	store domain.TableStore
	clock Clock
}

// NewActivityLog returns an ActivityLog that appends to and reads from the LOGS table.
func NewActivityLog(store domain.TableStore, clock Clock) domain.ActivityLog {
	return &activityLog{store: store, clock: clock}
}

// Record appends the entry, stamping TS when empty.
func (l *activityLog) Record(ctx context.Context, entry domain.LogEntry) error {
	if entry.TS == "" {
		entry.TS = l.clock.Timestamp()
	}
	if err := l.store.Append(ctx, domain.TableLogs, entry.Cells()); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit means the default.
func (l *activityLog) Recent(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultSummaryLogLimit
	}
	rows, err := l.store.Read(ctx, domain.TableLogs)
	if err != nil {
		return nil, fmt.Errorf("read logs: %w", err)
	}
	out := make([]domain.LogEntry, 0, min(limit, len(rows)))
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		e, err := domain.LogEntryFromRow(rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

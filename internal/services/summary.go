package services

import (
	"context"
	"fmt"
	"time"

	"eventflow/internal/domain"
)

type summaryService struct {
	store          domain.TableStore
	logs           domain.ActivityLog
	logLimit       int
	contextTimeout time.Duration
}

// NewSummaryService returns the snapshot aggregator. It only reads.
func NewSummaryService(store domain.TableStore, logs domain.ActivityLog, logLimit int, timeout time.Duration) domain.SummaryService {
	if logLimit <= 0 {
		logLimit = domain.DefaultSummaryLogLimit
	}
	return &summaryService{
		store:          store,
		logs:           logs,
		logLimit:       logLimit,
		contextTimeout: timeout,
	}
}

// GetSummary builds a full snapshot or fails; it never returns a partial one.
// A panic during aggregation is converted to an error.
func (s *summaryService) GetSummary(ctx context.Context) (snap *domain.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("summary aggregation panicked: %v", r)
		}
	}()
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	configRows, err := s.store.Read(ctx, domain.TableConfig)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	speakerRows, err := s.store.Read(ctx, domain.TableSpeakers)
	if err != nil {
		return nil, fmt.Errorf("read speakers: %w", err)
	}
	attendeeRows, err := s.store.Read(ctx, domain.TableAttendees)
	if err != nil {
		return nil, fmt.Errorf("read attendees: %w", err)
	}
	taskRows, err := s.store.Read(ctx, domain.TableTasks)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	snap = domain.NewSnapshot()
	cfg := domain.ConfigMapFromRows(configRows)
	snap.Config = domain.SnapshotConfig{
		Title:             cfg.Get(domain.ConfigEventTitle, domain.UntitledEvent),
		Location:          cfg.Get(domain.ConfigEventLocation, ""),
		ConfirmedDatetime: cfg.Get(domain.ConfigEventConfirmed, ""),
	}

	for _, r := range speakerRows {
		sp, err := domain.SpeakerFromRow(r)
		if err != nil {
			return nil, err
		}
		if sp.Status == domain.SpeakerStatusInvited {
			snap.Counts.Invited++
		}
		snap.Speakers = append(snap.Speakers, sp.Summary())
	}
	for _, r := range attendeeRows {
		a, err := domain.AttendeeFromRow(r)
		if err != nil {
			return nil, err
		}
		if a.Attending() {
			snap.Counts.Attending++
		}
		snap.Attendees = append(snap.Attendees, a.Summary())
	}
	snap.Counts.Registered = len(snap.Attendees)
	for _, r := range taskRows {
		t, err := domain.TaskFromRow(r)
		if err != nil {
			return nil, err
		}
		if t.Open() {
			snap.Counts.TasksOpen++
		}
		snap.Tasks = append(snap.Tasks, t.Summary())
	}
	snap.Counts.TasksTotal = len(snap.Tasks)

	logs, err := s.logs.Recent(ctx, s.logLimit)
	if err != nil {
		return nil, err
	}
	snap.Logs = logs
	return snap, nil
}

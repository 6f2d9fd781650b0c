package services

import (
	"context"
	"fmt"
	"strings"

	"eventflow/internal/domain"
)

type participantService struct {
	store domain.TableStore
	clock Clock
}

// NewParticipantService returns the row-level editor for speakers, attendees and tasks.
func NewParticipantService(store domain.TableStore, clock Clock) domain.ParticipantService {
	return &participantService{store: store, clock: clock}
}

// updateFirst rewrites the first row of table accepted by match. Rows are matched in order.
func (s *participantService) updateFirst(ctx context.Context, table, what string, match func(domain.Row) bool, edit func(domain.Row) ([]string, error)) error {
	rows, err := s.store.Read(ctx, table)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(table), err)
	}
	for _, r := range rows {
		if !match(r) {
			continue
		}
		cells, err := edit(r)
		if err != nil {
			return err
		}
		if err := s.store.UpdateRow(ctx, table, r.Num, cells); err != nil {
			return fmt.Errorf("update %s: %w", strings.ToLower(table), err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}

func emailMatcher(col int, email string) func(domain.Row) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	return func(r domain.Row) bool {
		return strings.ToLower(strings.TrimSpace(r.Cell(col))) == email
	}
}

func requireEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return nil
}

// RecordSpeakerResponse marks the speaker RESPONDED and stores the topic when one is given.
func (s *participantService) RecordSpeakerResponse(ctx context.Context, email, topic string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.updateFirst(ctx, domain.TableSpeakers, "speaker "+email,
		emailMatcher(domain.SpeakerColEmail, email),
		func(r domain.Row) ([]string, error) {
			sp, err := domain.SpeakerFromRow(r)
			if err != nil {
				return nil, err
			}
			sp.Status = domain.SpeakerStatusResponded
			sp.RespondedAt = s.clock.Timestamp()
			if topic = strings.TrimSpace(topic); topic != "" {
				sp.Topic = topic
			}
			return sp.Cells(), nil
		})
}

func (s *participantService) RegisterAttendee(ctx context.Context, eventID, name, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	if strings.TrimSpace(eventID) == "" {
		return fmt.Errorf("%w: event_id is required", domain.ErrValidation)
	}
	a := domain.NewAttendee(strings.TrimSpace(eventID), strings.TrimSpace(name), strings.TrimSpace(email))
	if err := s.store.Append(ctx, domain.TableAttendees, a.Cells()); err != nil {
		return fmt.Errorf("append attendee: %w", err)
	}
	return nil
}

func (s *participantService) RecordRSVP(ctx context.Context, email, rsvp string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.updateFirst(ctx, domain.TableAttendees, "attendee "+email,
		emailMatcher(domain.AttendeeColEmail, email),
		func(r domain.Row) ([]string, error) {
			a, err := domain.AttendeeFromRow(r)
			if err != nil {
				return nil, err
			}
			a.RSVP = strings.TrimSpace(rsvp)
			a.RespondedAt = s.clock.Timestamp()
			return a.Cells(), nil
		})
}

func (s *participantService) CheckInAttendee(ctx context.Context, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.updateFirst(ctx, domain.TableAttendees, "attendee "+email,
		emailMatcher(domain.AttendeeColEmail, email),
		func(r domain.Row) ([]string, error) {
			a, err := domain.AttendeeFromRow(r)
			if err != nil {
				return nil, err
			}
			a.CheckIn = s.clock.Timestamp()
			return a.Cells(), nil
		})
}

func (s *participantService) AddTask(ctx context.Context, task domain.Task) error {
	task.Task = strings.TrimSpace(task.Task)
	if task.Task == "" {
		return fmt.Errorf("%w: task is required", domain.ErrValidation)
	}
	if err := s.store.Append(ctx, domain.TableTasks, task.Cells()); err != nil {
		return fmt.Errorf("append task: %w", err)
	}
	return nil
}

// UpdateTaskStatus sets the status of the first task with the given name.
func (s *participantService) UpdateTaskStatus(ctx context.Context, task, status string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return fmt.Errorf("%w: task is required", domain.ErrValidation)
	}
	return s.updateFirst(ctx, domain.TableTasks, "task "+task,
		func(r domain.Row) bool { return strings.TrimSpace(r.Cell(domain.TaskColTask)) == task },
		func(r domain.Row) ([]string, error) {
			t, err := domain.TaskFromRow(r)
			if err != nil {
				return nil, err
			}
			t.Status = strings.TrimSpace(status)
			return t.Cells(), nil
		})
}

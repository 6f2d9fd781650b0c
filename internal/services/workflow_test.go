package services

import (
	"context"
	"errors"
	"testing"

	"eventflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowFixture struct {
	store  domain.TableStore
	mailer *fakeMailer
	svc    domain.WorkflowService
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	store := newTestStore()
	mailer := &fakeMailer{failTo: map[string]bool{}}
	emails := NewEmailService(mailer, fakeRenderer{}, testLogger)
	return &workflowFixture{
		store:  store,
		mailer: mailer,
		svc:    NewWorkflowService(store, NewConfigService(store), emails, testClock(), testLogger, 0),
	}
}

// seedEvent appends an event row and returns its id.
func (f *workflowFixture) seedEvent(t *testing.T, id string, dates ...string) string {
	t.Helper()
	e := domain.NewEvent(id, "u-1", "Meetup "+id, "Seoul", dates, "2025-01-01 00:00:00")
	appendRows(t, f.store, domain.TableEvents, e.Cells())
	return id
}

func (f *workflowFixture) cell(t *testing.T, table string, row, col int) string {
	t.Helper()
	return readRows(t, f.store, table)[row].Cells[col]
}

func TestWorkflow_SendSpeakerInvites(t *testing.T) {
	f := newWorkflowFixture(t)
	appendRows(t, f.store, domain.TableSpeakers,
		speakerRow("ev-1", "Kim", "kim@example.com", domain.SpeakerStatusPending),
		speakerRow("ev-1", "Lee", "lee@example.com", ""),
		speakerRow("ev-1", "Park", "park@example.com", domain.SpeakerStatusConfirmed),
		speakerRow("ev-1", "Choi", "choi@example.com", domain.SpeakerStatusPending),
		speakerRow("ev-2", "Other", "other@example.com", domain.SpeakerStatusPending),
	)
	f.mailer.failTo["choi@example.com"] = true

	res, err := f.svc.SendSpeakerInvites(context.Background(), domain.WorkflowRequest{EventID: "ev-1"})
	require.NoError(t, err)
	require.NotNil(t, res.Count)
	assert.Equal(t, 2, *res.Count)
	assert.Contains(t, res.Message, "choi@example.com")
	assert.Equal(t, []string{"kim@example.com", "lee@example.com"}, f.mailer.sent)

	assert.Equal(t, domain.SpeakerStatusInvited, f.cell(t, domain.TableSpeakers, 0, domain.SpeakerColStatus))
	assert.Equal(t, domain.SpeakerStatusInvited, f.cell(t, domain.TableSpeakers, 1, domain.SpeakerColStatus))
	assert.Equal(t, domain.SpeakerStatusConfirmed, f.cell(t, domain.TableSpeakers, 2, domain.SpeakerColStatus))
	assert.Equal(t, domain.SpeakerStatusPending, f.cell(t, domain.TableSpeakers, 3, domain.SpeakerColStatus))
	assert.Equal(t, domain.SpeakerStatusPending, f.cell(t, domain.TableSpeakers, 4, domain.SpeakerColStatus))
}

func TestWorkflow_ScopeFallsBackToConfigThenAll(t *testing.T) {
	f := newWorkflowFixture(t)
	appendRows(t, f.store, domain.TableSpeakers,
		speakerRow("ev-1", "Kim", "kim@example.com", domain.SpeakerStatusPending),
		speakerRow("ev-2", "Lee", "lee@example.com", domain.SpeakerStatusPending),
	)
	ctx := context.Background()

	appendRows(t, f.store, domain.TableConfig, []string{domain.ConfigEventID, "ev-2"})
	res, err := f.svc.SendSpeakerInvites(ctx, domain.WorkflowRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, *res.Count)
	assert.Equal(t, "ev-2", res.EventID)
	assert.Equal(t, []string{"lee@example.com"}, f.mailer.sent)

	require.NoError(t, NewConfigService(f.store).Set(ctx, domain.ConfigEventID, ""))
	res, err = f.svc.SendSpeakerInvites(ctx, domain.WorkflowRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, *res.Count)
	assert.Equal(t, []string{"lee@example.com", "kim@example.com"}, f.mailer.sent)
}

func TestWorkflow_ConfirmFirstSpeaker(t *testing.T) {
	f := newWorkflowFixture(t)
	appendRows(t, f.store, domain.TableSpeakers,
		speakerRow("ev-1", "Kim", "kim@example.com", domain.SpeakerStatusInvited),
		speakerRow("ev-1", "Lee", "lee@example.com", domain.SpeakerStatusResponded),
		speakerRow("ev-1", "Park", "park@example.com", domain.SpeakerStatusResponded),
	)
	ctx := context.Background()

	res, err := f.svc.ConfirmFirstSpeaker(ctx, domain.WorkflowRequest{EventID: "ev-1"})
	require.NoError(t, err)
	assert.True(t, res.ConfirmationRequired)
	assert.Equal(t, domain.SpeakerStatusResponded, f.cell(t, domain.TableSpeakers, 1, domain.SpeakerColStatus))

	res, err = f.svc.ConfirmFirstSpeaker(ctx, domain.WorkflowRequest{EventID: "ev-1", Confirm: true})
	require.NoError(t, err)
	assert.False(t, res.ConfirmationRequired)
	assert.Contains(t, res.Message, "Lee")
	assert.Equal(t, domain.SpeakerStatusConfirmed, f.cell(t, domain.TableSpeakers, 1, domain.SpeakerColStatus))
	assert.Equal(t, "2025-01-02 03:04:05", f.cell(t, domain.TableSpeakers, 1, domain.SpeakerColConfirmed))
	assert.Equal(t, domain.SpeakerStatusResponded, f.cell(t, domain.TableSpeakers, 2, domain.SpeakerColStatus))
	assert.Empty(t, readRows(t, f.store, domain.TableConfig))

	_, err = f.svc.ConfirmFirstSpeaker(ctx, domain.WorkflowRequest{EventID: "ev-9", Confirm: true})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestWorkflow_CreateCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("uses first candidate date", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedEvent(t, "ev-1", "2025-03-01 19:00", "2025-03-08 19:00")

		res, err := f.svc.CreateCalendar(ctx, domain.WorkflowRequest{EventID: "ev-1", Confirm: true})
		require.NoError(t, err)
		assert.NotEmpty(t, res.CalendarID)

		cfg := domain.ConfigMapFromRows(readRows(t, f.store, domain.TableConfig))
		assert.Equal(t, "2025-03-01 19:00", cfg[domain.ConfigEventConfirmed])
		assert.Equal(t, res.CalendarID, cfg[domain.ConfigEventCalendarID])
		assert.Equal(t, res.CalendarID, f.cell(t, domain.TableEvents, 0, domain.EventColCalendarID))
		assert.Equal(t, domain.EventStatusCalendarCreated, f.cell(t, domain.TableEvents, 0, domain.EventColStatus))
	})

	t.Run("request datetime wins and upsert does not duplicate", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedEvent(t, "ev-1", "2025-03-01 19:00")
		_, err := f.svc.CreateCalendar(ctx, domain.WorkflowRequest{EventID: "ev-1", Confirm: true})
		require.NoError(t, err)
		_, err = f.svc.CreateCalendar(ctx, domain.WorkflowRequest{EventID: "ev-1", Datetime: "2025-04-05T18:30", Confirm: true})
		require.NoError(t, err)

		rows := readRows(t, f.store, domain.TableConfig)
		assert.Len(t, rows, 2)
		assert.Equal(t, "2025-04-05 18:30", domain.ConfigMapFromRows(rows)[domain.ConfigEventConfirmed])
	})

	t.Run("without confirm writes nothing", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedEvent(t, "ev-1", "2025-03-01 19:00")
		res, err := f.svc.CreateCalendar(ctx, domain.WorkflowRequest{EventID: "ev-1"})
		require.NoError(t, err)
		assert.True(t, res.ConfirmationRequired)
		assert.Empty(t, readRows(t, f.store, domain.TableConfig))
		assert.Equal(t, domain.EventStatusSetupComplete, f.cell(t, domain.TableEvents, 0, domain.EventColStatus))
	})

	t.Run("no date available", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedEvent(t, "ev-1")
		_, err := f.svc.CreateCalendar(ctx, domain.WorkflowRequest{EventID: "ev-1", Confirm: true})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestWorkflow_SendAttendeeInvites(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	appendRows(t, f.store, domain.TableAttendees,
		attendeeRow("ev-1", "A", "a@example.com", domain.AttendeeStatusRegistered, ""),
		attendeeRow("ev-1", "B", "b@example.com", domain.AttendeeStatusInvited, ""),
	)

	_, err := f.svc.SendAttendeeInvites(ctx, domain.WorkflowRequest{EventID: "ev-1"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, f.mailer.sent)

	appendRows(t, f.store, domain.TableConfig, []string{domain.ConfigEventConfirmed, "2025-03-01 19:00"})
	res, err := f.svc.SendAttendeeInvites(ctx, domain.WorkflowRequest{EventID: "ev-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, *res.Count)
	assert.Equal(t, []string{"a@example.com"}, f.mailer.sent)
	assert.Equal(t, domain.AttendeeStatusInvited, f.cell(t, domain.TableAttendees, 0, domain.AttendeeColStatus))
}

func TestWorkflow_RemindD1(t *testing.T) {
	f := newWorkflowFixture(t)
	appendRows(t, f.store, domain.TableAttendees,
		attendeeRow("ev-1", "A", "a@example.com", domain.AttendeeStatusInvited, "Yes"),
		attendeeRow("ev-1", "B", "b@example.com", domain.AttendeeStatusInvited, "불참"),
		attendeeRow("ev-1", "C", "c@example.com", domain.AttendeeStatusInvited, "참 석"),
		attendeeRow("ev-1", "D", "d@example.com", domain.AttendeeStatusInvited, "yes"),
	)
	f.mailer.failTo["d@example.com"] = true

	res, err := f.svc.RemindD1(context.Background(), domain.WorkflowRequest{EventID: "ev-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, *res.Count)
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, f.mailer.sent)
	assert.Contains(t, res.Message, "실패 1건")
}

func TestWorkflow_SendThanks(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	f.seedEvent(t, "ev-1")
	appendRows(t, f.store, domain.TableAttendees,
		attendeeRow("ev-1", "A", "a@example.com", domain.AttendeeStatusInvited, "참가"),
		attendeeRow("ev-1", "B", "b@example.com", domain.AttendeeStatusInvited, "no"),
	)
	appendRows(t, f.store, domain.TableSpeakers,
		speakerRow("ev-1", "Kim", "kim@example.com", domain.SpeakerStatusConfirmed),
		speakerRow("ev-1", "Lee", "lee@example.com", domain.SpeakerStatusInvited),
	)

	res, err := f.svc.SendThanks(ctx, domain.WorkflowRequest{EventID: "ev-1"})
	require.NoError(t, err)
	assert.True(t, res.ConfirmationRequired)
	assert.Empty(t, f.mailer.sent)

	res, err = f.svc.SendThanks(ctx, domain.WorkflowRequest{EventID: "ev-1", Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 2, *res.Count)
	assert.Equal(t, []string{"a@example.com", "kim@example.com"}, f.mailer.sent)
	assert.Equal(t, domain.EventStatusCompleted, f.cell(t, domain.TableEvents, 0, domain.EventColStatus))
}

func TestWorkflow_StorageErrorsPropagate(t *testing.T) {
	f := newWorkflowFixture(t)
	store := &failingStore{TableStore: f.store, failTable: domain.TableSpeakers, err: domain.ErrTableNotFound}
	emails := NewEmailService(f.mailer, fakeRenderer{}, testLogger)
	svc := NewWorkflowService(store, NewConfigService(store), emails, testClock(), testLogger, 0)

	_, err := svc.SendSpeakerInvites(context.Background(), domain.WorkflowRequest{})
	assert.True(t, errors.Is(err, domain.ErrTableNotFound))
}

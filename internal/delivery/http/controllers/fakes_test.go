package controllers

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventflow/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeActivityLog implements domain.ActivityLog in memory.
type fakeActivityLog struct {
	mu        sync.Mutex
	entries   []domain.LogEntry
	recordErr error
	lastLimit int
}

func (f *fakeActivityLog) Record(_ context.Context, e domain.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeActivityLog) Recent(_ context.Context, limit int) ([]domain.LogEntry, error) {
	f.lastLimit = limit
	out := []domain.LogEntry{}
	for i := len(f.entries) - 1; i >= 0; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

// fakeUserService implements domain.UserService.
type fakeUserService struct {
	lastIdentity string
	lastName     string
	err          error
}

func (f *fakeUserService) Login(_ context.Context, identity, name string) (string, *domain.User, error) {
	f.lastIdentity, f.lastName = identity, name
	if f.err != nil {
		return "", nil, f.err
	}
	return "jwt-token", &domain.User{ID: "u-1", Email: identity, Name: name}, nil
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	lastCreate     domain.NewEventInput
	lastListUserID string
	lastSelectID   string
	lastSpeaker    domain.SpeakerInput
	createErr      error
	selectErr      error
	events         []domain.EventListItem
}

func (f *fakeEventService) CreateEvent(_ context.Context, in domain.NewEventInput) (*domain.Event, error) {
	f.lastCreate = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return domain.NewEvent("ev-new", in.UserID, in.Title, in.Location, in.Dates, ""), nil
}

func (f *fakeEventService) ListUserEvents(_ context.Context, userID string) ([]domain.EventListItem, error) {
	f.lastListUserID = userID
	return f.events, nil
}

func (f *fakeEventService) SelectEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.lastSelectID = eventID
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return &domain.Event{ID: eventID, Title: "Selected"}, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, eventID string) (*domain.Event, error) {
	return &domain.Event{ID: eventID}, nil
}

func (f *fakeEventService) AddSpeaker(_ context.Context, _ string, in domain.SpeakerInput) error {
	f.lastSpeaker = in
	return nil
}

// fakeSummaryService implements domain.SummaryService.
type fakeSummaryService struct {
	snap  *domain.Snapshot
	err   error
	panic bool
}

func (f *fakeSummaryService) GetSummary(context.Context) (*domain.Snapshot, error) {
	if f.panic {
		panic("sheet exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.snap == nil {
		return domain.NewSnapshot(), nil
	}
	return f.snap, nil
}

// fakeWorkflowService implements domain.WorkflowService, returning result for every step.
type fakeWorkflowService struct {
	lastStep string
	lastReq  domain.WorkflowRequest
	result   *domain.WorkflowResult
	err      error
}

func (f *fakeWorkflowService) step(name string, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	f.lastStep, f.lastReq = name, req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.WorkflowResult{Message: name + " done"}, nil
}

func (f *fakeWorkflowService) SendSpeakerInvites(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("SendSpeakerInvites", r)
}
func (f *fakeWorkflowService) ConfirmFirstSpeaker(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("ConfirmFirstSpeaker", r)
}
func (f *fakeWorkflowService) CreateCalendar(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("CreateCalendar", r)
}
func (f *fakeWorkflowService) SendAttendeeInvites(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("SendAttendeeInvites", r)
}
func (f *fakeWorkflowService) RemindD1(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("RemindD1", r)
}
func (f *fakeWorkflowService) SendThanks(_ context.Context, r domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	return f.step("SendThanks", r)
}

// fakeParticipantService implements domain.ParticipantService.
type fakeParticipantService struct {
	lastCall string
	lastTask domain.Task
	err      error
}

func (f *fakeParticipantService) call(name string) error {
	f.lastCall = name
	return f.err
}

func (f *fakeParticipantService) RecordSpeakerResponse(context.Context, string, string) error {
	return f.call("RecordSpeakerResponse")
}
func (f *fakeParticipantService) RegisterAttendee(context.Context, string, string, string) error {
	return f.call("RegisterAttendee")
}
func (f *fakeParticipantService) RecordRSVP(context.Context, string, string) error {
	return f.call("RecordRSVP")
}
func (f *fakeParticipantService) CheckInAttendee(context.Context, string) error {
	return f.call("CheckInAttendee")
}
func (f *fakeParticipantService) AddTask(_ context.Context, t domain.Task) error {
	f.lastTask = t
	return f.call("AddTask")
}
func (f *fakeParticipantService) UpdateTaskStatus(context.Context, string, string) error {
	return f.call("UpdateTaskStatus")
}

// fakeConfigService implements domain.ConfigService.
type fakeConfigService struct {
	values domain.ConfigMap
}

func (f *fakeConfigService) Load(context.Context) (domain.ConfigMap, error) { return f.values, nil }
func (f *fakeConfigService) Set(_ context.Context, key, value string) error {
	if f.values == nil {
		f.values = domain.ConfigMap{}
	}
	f.values[key] = value
	return nil
}

// fakeCalendarService implements domain.CalendarService.
type fakeCalendarService struct {
	entry *domain.CalendarEntry
	err   error
}

func (f *fakeCalendarService) Entry(context.Context, string) (*domain.CalendarEntry, error) {
	return f.entry, f.err
}

var calendarStart = time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

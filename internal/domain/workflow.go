package domain

import "context"

// WorkflowRequest carries the optional inputs of a workflow action.
type WorkflowRequest struct {
	// EventID scopes the action. Empty means the configured current event, or every row.
	EventID string
	// Datetime overrides the event's first candidate date for create_calendar.
	Datetime string
	// Confirm must be true for actions that require confirmation.
	Confirm bool
}

// WorkflowResult is the outcome of a workflow action.
type WorkflowResult struct {
	Message              string
	Count                *int
	ConfirmationRequired bool
	CalendarID           string
	EventID              string
}

// WorkflowService runs the event workflow steps.
type WorkflowService interface {
	SendSpeakerInvites(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	ConfirmFirstSpeaker(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	CreateCalendar(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	SendAttendeeInvites(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	RemindD1(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
	SendThanks(ctx context.Context, req WorkflowRequest) (*WorkflowResult, error)
}

// ParticipantService covers the row-level edits the dashboard makes between workflow steps.
type ParticipantService interface {
	RecordSpeakerResponse(ctx context.Context, email, topic string) error
	RegisterAttendee(ctx context.Context, eventID, name, email string) error
	RecordRSVP(ctx context.Context, email, rsvp string) error
	CheckInAttendee(ctx context.Context, email string) error
	AddTask(ctx context.Context, task Task) error
	UpdateTaskStatus(ctx context.Context, task, status string) error
}

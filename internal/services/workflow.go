package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventflow/internal/domain"

	"github.com/google/uuid"
)

type workflowService struct {
	store          domain.TableStore
	config         domain.ConfigService
	emails         domain.EmailService
	clock          Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewWorkflowService creates the WorkflowService that drives speaker, calendar and attendee steps.
func NewWorkflowService(store domain.TableStore, config domain.ConfigService, emails domain.EmailService, clock Clock, logger *slog.Logger, timeout time.Duration) domain.WorkflowService {
	return &workflowService{
		store:          store,
		config:         config,
		emails:         emails,
		clock:          clock,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// scope is the event a workflow step applies to.
type scope struct {
	eventID   string
	event     *domain.Event
	title     string
	location  string
	confirmed string
}

func (s *workflowService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

// resolveScope picks the request event, else the configured current event, else none (all rows).
func (s *workflowService) resolveScope(ctx context.Context, req domain.WorkflowRequest) (*scope, error) {
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	sc := &scope{
		eventID:   strings.TrimSpace(req.EventID),
		title:     cfg.Get(domain.ConfigEventTitle, ""),
		location:  cfg.Get(domain.ConfigEventLocation, ""),
		confirmed: cfg.Get(domain.ConfigEventConfirmed, ""),
	}
	if sc.eventID == "" {
		sc.eventID = cfg.Get(domain.ConfigEventID, "")
	}
	if sc.eventID == "" {
		return sc, nil
	}
	event, err := findEvent(ctx, s.store, sc.eventID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return sc, nil
	case err != nil:
		return nil, err
	}
	sc.event = event
	if sc.eventID != cfg.Get(domain.ConfigEventID, "") || sc.title == "" {
		sc.title = event.Title
		sc.location = event.Location
	}
	return sc, nil
}

func (sc *scope) emailData(email, name string) *domain.WorkflowEmailData {
	return &domain.WorkflowEmailData{
		Email:             strings.TrimSpace(email),
		Name:              name,
		EventTitle:        sc.title,
		EventLocation:     sc.location,
		ConfirmedDatetime: sc.confirmed,
	}
}

// batch tallies a fan-out of emails. Failures are collected, never fatal.
type batch struct {
	sent   int
	failed []string
}

func (b *batch) result(label string) *domain.WorkflowResult {
	msg := fmt.Sprintf("%s %d건 발송", label, b.sent)
	if len(b.failed) > 0 {
		msg += fmt.Sprintf(" (실패 %d건: %s)", len(b.failed), strings.Join(b.failed, ", "))
	}
	count := b.sent
	return &domain.WorkflowResult{Message: msg, Count: &count}
}

func (s *workflowService) deliver(ctx context.Context, b *batch, send func(context.Context, *domain.WorkflowEmailData) error, data *domain.WorkflowEmailData) bool {
	if err := send(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "workflow email failed", "to", data.Email, "err", err)
		b.failed = append(b.failed, data.Email)
		return false
	}
	b.sent++
	return true
}

func confirmationRequired(message string) *domain.WorkflowResult {
	return &domain.WorkflowResult{Message: message, ConfirmationRequired: true}
}

func (s *workflowService) speakers(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	rows, err := s.store.Read(ctx, domain.TableSpeakers)
	if err != nil {
		return nil, fmt.Errorf("read speakers: %w", err)
	}
	var out []*domain.Speaker
	for _, r := range rows {
		if !domain.MatchesEvent(r.Cell(domain.SpeakerColEventID), eventID) {
			continue
		}
		sp, err := domain.SpeakerFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *workflowService) attendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	rows, err := s.store.Read(ctx, domain.TableAttendees)
	if err != nil {
		return nil, fmt.Errorf("read attendees: %w", err)
	}
	var out []*domain.Attendee
	for _, r := range rows {
		if !domain.MatchesEvent(r.Cell(domain.AttendeeColEventID), eventID) {
			continue
		}
		a, err := domain.AttendeeFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// SendSpeakerInvites mails every PENDING (or status-less) speaker and marks them INVITED.
func (s *workflowService) SendSpeakerInvites(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	speakers, err := s.speakers(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	b := &batch{}
	for _, sp := range speakers {
		if st := strings.TrimSpace(sp.Status); st != "" && st != domain.SpeakerStatusPending {
			continue
		}
		data := sc.emailData(sp.Email, sp.Name)
		data.Topic = sp.Topic
		data.FormURL = sp.FormURL
		if !s.deliver(ctx, b, s.emails.SendSpeakerInvite, data) {
			continue
		}
		sp.Status = domain.SpeakerStatusInvited
		if err := s.store.UpdateRow(ctx, domain.TableSpeakers, sp.RowNum, sp.Cells()); err != nil {
			return nil, fmt.Errorf("mark speaker invited: %w", err)
		}
	}
	res := b.result("연사 초대 메일")
	res.EventID = sc.eventID
	return res, nil
}

// ConfirmFirstSpeaker confirms the first RESPONDED speaker in row order.
func (s *workflowService) ConfirmFirstSpeaker(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	if !req.Confirm {
		return confirmationRequired("첫 번째로 응답한 연사를 확정합니다. 계속하려면 confirm=true 로 다시 요청하세요."), nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	speakers, err := s.speakers(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	for _, sp := range speakers {
		if sp.Status != domain.SpeakerStatusResponded {
			continue
		}
		sp.Status = domain.SpeakerStatusConfirmed
		sp.ConfirmedAt = s.clock.Timestamp()
		if err := s.store.UpdateRow(ctx, domain.TableSpeakers, sp.RowNum, sp.Cells()); err != nil {
			return nil, fmt.Errorf("confirm speaker: %w", err)
		}
		return &domain.WorkflowResult{
			Message: fmt.Sprintf("연사 [%s] 확정 완료", sp.Name),
			EventID: sc.eventID,
		}, nil
	}
	return nil, fmt.Errorf("%w: 응답한 연사가 없습니다", domain.ErrValidation)
}

// CreateCalendar fixes the event date/time and records a new calendar id.
func (s *workflowService) CreateCalendar(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	if !req.Confirm {
		return confirmationRequired("행사 일시를 확정하고 캘린더를 생성합니다. 계속하려면 confirm=true 로 다시 요청하세요."), nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(req.Datetime)
	if raw == "" && sc.event != nil {
		raw = sc.event.FirstDate()
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: 확정할 행사 일시가 없습니다", domain.ErrValidation)
	}
	start, err := s.clock.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	datetime := start.Format(DateTimeLayout)
	calendarID := uuid.NewString()

	if err := s.config.Set(ctx, domain.ConfigEventConfirmed, datetime); err != nil {
		return nil, err
	}
	if err := s.config.Set(ctx, domain.ConfigEventCalendarID, calendarID); err != nil {
		return nil, err
	}
	if sc.event != nil {
		sc.event.CalendarID = calendarID
		sc.event.Status = domain.EventStatusCalendarCreated
		if err := s.store.UpdateRow(ctx, domain.TableEvents, sc.event.RowNum, sc.event.Cells()); err != nil {
			return nil, fmt.Errorf("update event calendar: %w", err)
		}
	}
	return &domain.WorkflowResult{
		Message:    fmt.Sprintf("캘린더 생성 완료 (%s)", datetime),
		CalendarID: calendarID,
		EventID:    sc.eventID,
	}, nil
}

// SendAttendeeInvites mails REGISTERED attendees once the date/time is confirmed.
func (s *workflowService) SendAttendeeInvites(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	if sc.confirmed == "" {
		return nil, fmt.Errorf("%w: 행사 일시가 확정되지 않았습니다", domain.ErrValidation)
	}
	attendees, err := s.attendees(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	b := &batch{}
	for _, a := range attendees {
		if a.Status != domain.AttendeeStatusRegistered {
			continue
		}
		data := sc.emailData(a.Email, a.Name)
		data.FormURL = a.FormURL
		if !s.deliver(ctx, b, s.emails.SendAttendeeInvite, data) {
			continue
		}
		a.Status = domain.AttendeeStatusInvited
		if err := s.store.UpdateRow(ctx, domain.TableAttendees, a.RowNum, a.Cells()); err != nil {
			return nil, fmt.Errorf("mark attendee invited: %w", err)
		}
	}
	res := b.result("참석자 초대 메일")
	res.EventID = sc.eventID
	return res, nil
}

// RemindD1 mails the day-before reminder to attending attendees.
func (s *workflowService) RemindD1(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	attendees, err := s.attendees(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	b := &batch{}
	for _, a := range attendees {
		if a.Attending() {
			s.deliver(ctx, b, s.emails.SendReminder, sc.emailData(a.Email, a.Name))
		}
	}
	res := b.result("D-1 리마인더")
	res.EventID = sc.eventID
	return res, nil
}

// SendThanks mails attending attendees and confirmed speakers, then closes the event.
func (s *workflowService) SendThanks(ctx context.Context, req domain.WorkflowRequest) (*domain.WorkflowResult, error) {
	if !req.Confirm {
		return confirmationRequired("감사 메일을 발송하고 행사를 종료합니다. 계속하려면 confirm=true 로 다시 요청하세요."), nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sc, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}
	attendees, err := s.attendees(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	speakers, err := s.speakers(ctx, sc.eventID)
	if err != nil {
		return nil, err
	}
	b := &batch{}
	for _, a := range attendees {
		if a.Attending() {
			s.deliver(ctx, b, s.emails.SendThanks, sc.emailData(a.Email, a.Name))
		}
	}
	for _, sp := range speakers {
		if sp.Status == domain.SpeakerStatusConfirmed {
			data := sc.emailData(sp.Email, sp.Name)
			data.Topic = sp.Topic
			s.deliver(ctx, b, s.emails.SendThanks, data)
		}
	}
	if sc.event != nil {
		sc.event.Status = domain.EventStatusCompleted
		if err := s.store.UpdateRow(ctx, domain.TableEvents, sc.event.RowNum, sc.event.Cells()); err != nil {
			return nil, fmt.Errorf("complete event: %w", err)
		}
	}
	res := b.result("감사 메일")
	res.EventID = sc.eventID
	return res, nil
}

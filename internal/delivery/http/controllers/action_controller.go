package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventflow/internal/delivery/http/helpers"
	"eventflow/internal/delivery/http/middleware"
	"eventflow/internal/domain"
)

// Canonical action names.
const (
	ActionLogin                 = "login"
	ActionCreateEvent           = "create_event"
	ActionGetSummary            = "get_summary"
	ActionGetEvents             = "get_events"
	ActionSelectEvent           = "select_event"
	ActionSendSpeakerInvites    = "send_speaker_invites"
	ActionConfirmFirstSpeaker   = "confirm_first_speaker"
	ActionCreateCalendar        = "create_calendar"
	ActionSendAttendeeInvites   = "send_attendee_invites"
	ActionRemindD1              = "remind_d1"
	ActionSendThanks            = "send_thanks"
	ActionAddSpeaker            = "add_speaker"
	ActionRecordSpeakerResponse = "record_speaker_response"
	ActionRegisterAttendee      = "register_attendee"
	ActionRecordRSVP            = "record_rsvp"
	ActionCheckInAttendee       = "check_in_attendee"
	ActionAddTask               = "add_task"
	ActionUpdateTaskStatus      = "update_task_status"
	ActionSetConfig             = "set_config"
	ActionGetLogs               = "get_logs"
)

// actionAliases maps legacy client names to canonical ones.
var actionAliases = map[string]string{
	"create_new_event":          ActionCreateEvent,
	"get_summary_data":          ActionGetSummary,
	"getSummary":                ActionGetSummary,
	"getEvents":                 ActionGetEvents,
	"sendSpeakerInvites":        ActionSendSpeakerInvites,
	"confirmFirstSpeaker":       ActionConfirmFirstSpeaker,
	"lockOnFirstSpeakerConfirm": ActionConfirmFirstSpeaker,
	"createCalendar":            ActionCreateCalendar,
	"sendAttendeeInvites":       ActionSendAttendeeInvites,
	"remindD1":                  ActionRemindD1,
	"sendThanks":                ActionSendThanks,
}

// CanonicalAction resolves an alias. Unknown names are returned trimmed and unchanged.
func CanonicalAction(name string) string {
	name = strings.TrimSpace(name)
	if c, ok := actionAliases[name]; ok {
		return c
	}
	return name
}

// ActionServices groups the services the action endpoint dispatches to.
type ActionServices struct {
	Users        domain.UserService
	Events       domain.EventService
	Summary      domain.SummaryService
	Workflow     domain.WorkflowService
	Participants domain.ParticipantService
	Config       domain.ConfigService
	Activity     domain.ActivityLog
}

// outcome is what an action handler hands back for the response and the log row.
type outcome struct {
	payload helpers.Payload
	message string
	count   *int
	eventID string
}

type actionFunc func(ctx context.Context, req *helpers.ActionRequest) (*outcome, error)

type ActionController struct {
	Logger   *slog.Logger
	Services ActionServices
	actions  map[string]actionFunc
}

func NewActionController(logger *slog.Logger, svc ActionServices) *ActionController {
	c := &ActionController{Logger: logger, Services: svc}
	c.actions = map[string]actionFunc{
		ActionLogin:                 c.login,
		ActionCreateEvent:           c.createEvent,
		ActionGetSummary:            c.getSummary,
		ActionGetEvents:             c.getEvents,
		ActionSelectEvent:           c.selectEvent,
		ActionSendSpeakerInvites:    c.workflow(svc.Workflow.SendSpeakerInvites),
		ActionConfirmFirstSpeaker:   c.workflow(svc.Workflow.ConfirmFirstSpeaker),
		ActionCreateCalendar:        c.workflow(svc.Workflow.CreateCalendar),
		ActionSendAttendeeInvites:   c.workflow(svc.Workflow.SendAttendeeInvites),
		ActionRemindD1:              c.workflow(svc.Workflow.RemindD1),
		ActionSendThanks:            c.workflow(svc.Workflow.SendThanks),
		ActionAddSpeaker:            c.addSpeaker,
		ActionRecordSpeakerResponse: c.recordSpeakerResponse,
		ActionRegisterAttendee:      c.registerAttendee,
		ActionRecordRSVP:            c.recordRSVP,
		ActionCheckInAttendee:       c.checkInAttendee,
		ActionAddTask:               c.addTask,
		ActionUpdateTaskStatus:      c.updateTaskStatus,
		ActionSetConfig:             c.setConfig,
		ActionGetLogs:               c.getLogs,
	}
	return c
}

// Exec godoc
// @Summary Run a dashboard action
// @Description Single entry point for every dashboard action. Accepts a JSON body, a form body, or query parameters. Failures are reported as ok=false with HTTP 200. Every call is recorded in the activity log.
// @Tags actions
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body helpers.ActionRequest false "Action name and its inputs"
// @Param action query string false "Action name when no body is sent"
// @Success 200 {object} helpers.ActionResponse "ok=true plus action-specific fields, or ok=false with error"
// @Router /exec [post]
// @Router /exec [get]
func (c *ActionController) Exec(w http.ResponseWriter, r *http.Request) {
	req, err := helpers.DecodeActionRequest(r)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "malformed action request", "path", r.URL.Path, "method", r.Method, "err", err)
		c.record(r.Context(), "", "", "", domain.LogStatusError, helpers.MalformedBodyMessage, nil)
		helpers.WriteActionError(w, helpers.MalformedBodyMessage)
		return
	}

	name := CanonicalAction(req.Action)
	user := actingUser(r.Context(), req)
	action, ok := c.actions[name]
	if !ok {
		msg := fmt.Sprintf("Unknown action: %s", req.Action)
		c.record(r.Context(), name, req.EventID, user, domain.LogStatusError, msg, nil)
		helpers.WriteActionError(w, msg)
		return
	}

	out, err := c.run(r.Context(), action, req)
	if err != nil {
		msg := userMessage(err)
		if !isBusinessError(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "action", name, "err", err)
		}
		c.record(r.Context(), name, req.EventID, user, domain.LogStatusError, msg, nil)
		helpers.WriteActionError(w, msg)
		return
	}

	eventID := req.EventID
	if out.eventID != "" {
		eventID = out.eventID
	}
	c.record(r.Context(), name, eventID, user, domain.LogStatusOK, out.message, out.count)
	helpers.WriteActionOK(w, out.payload)
}

// run invokes the action, converting a panic into an error.
func (c *ActionController) run(ctx context.Context, action actionFunc, req *helpers.ActionRequest) (out *outcome, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, fmt.Errorf("action panicked: %v", v)
		}
	}()
	return action(ctx, req)
}

// record appends the invocation to the activity log. A failed write is logged, not returned.
func (c *ActionController) record(ctx context.Context, action, eventID, user, status, message string, count *int) {
	entry := domain.LogEntry{
		EventID: strings.TrimSpace(eventID),
		Action:  action,
		Status:  status,
		Message: message,
		Count:   count,
		User:    user,
	}
	if err := c.Services.Activity.Record(ctx, entry); err != nil {
		c.Logger.ErrorContext(ctx, "activity log write failed", "action", action, "err", err)
	}
}

// actingUser prefers the verified token subject, then the user fields of the request.
func actingUser(ctx context.Context, req *helpers.ActionRequest) string {
	if id, ok := middleware.UserIDFromContext(ctx); ok {
		return id
	}
	if req.UserID != "" {
		return req.UserID
	}
	return req.Email
}

var businessErrors = []error{domain.ErrValidation, domain.ErrNotFound}

func isBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userMessage strips a leading sentinel prefix such as "validation failed: ".
func userMessage(err error) string {
	msg := err.Error()
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return strings.TrimPrefix(msg, target.Error()+": ")
		}
	}
	return msg
}

func messageOnly(msg string) *outcome {
	return &outcome{payload: helpers.Payload{"message": msg}, message: msg}
}

func (c *ActionController) login(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	identity := req.IDToken
	if strings.TrimSpace(identity) == "" {
		identity = req.Email
	}
	token, user, err := c.Services.Users.Login(ctx, identity, req.Name)
	if err != nil {
		return nil, err
	}
	out := messageOnly("로그인 성공")
	out.payload["user"] = user
	out.payload["token"] = token
	return out, nil
}

func (c *ActionController) createEvent(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	userID := req.UserID
	if id, ok := middleware.UserIDFromContext(ctx); ok && userID == "" {
		userID = id
	}
	event, err := c.Services.Events.CreateEvent(ctx, domain.NewEventInput{
		UserID:          userID,
		Title:           req.Title,
		Location:        req.Location,
		Dates:           req.Dates,
		InitialSpeakers: req.InitialSpeakers,
	})
	if err != nil {
		return nil, err
	}
	out := messageOnly(fmt.Sprintf("행사 [%s] 생성 완료", event.Title))
	out.payload["event_id"] = event.ID
	out.eventID = event.ID
	return out, nil
}

// getSummary answers the snapshot fields at the top level, plus the derived stage.
func (c *ActionController) getSummary(ctx context.Context, _ *helpers.ActionRequest) (*outcome, error) {
	snap, err := c.Services.Summary.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	stage := domain.ResolveStage(snap)
	return &outcome{payload: helpers.Payload{
		"config":     snap.Config,
		"counts":     snap.Counts,
		"speakers":   snap.Speakers,
		"attendees":  snap.Attendees,
		"tasks":      snap.Tasks,
		"logs":       snap.Logs,
		"stage":      stage,
		"stageIndex": stage.Index(),
	}}, nil
}

func (c *ActionController) getEvents(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	userID := req.UserID
	if id, ok := middleware.UserIDFromContext(ctx); ok && userID == "" {
		userID = id
	}
	events, err := c.Services.Events.ListUserEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	n := len(events)
	return &outcome{payload: helpers.Payload{"events": events}, count: &n}, nil
}

func (c *ActionController) selectEvent(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	event, err := c.Services.Events.SelectEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("행사 [%s] 선택 완료", event.Title)), nil
}

// workflow adapts a WorkflowService step to an action.
func (c *ActionController) workflow(step func(context.Context, domain.WorkflowRequest) (*domain.WorkflowResult, error)) actionFunc {
	return func(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
		res, err := step(ctx, domain.WorkflowRequest{
			EventID:  req.EventID,
			Datetime: req.Datetime,
			Confirm:  bool(req.Confirm),
		})
		if err != nil {
			return nil, err
		}
		out := messageOnly(res.Message)
		out.count = res.Count
		out.eventID = res.EventID
		if res.Count != nil {
			out.payload["count"] = *res.Count
		}
		if res.ConfirmationRequired {
			out.payload["confirmation_required"] = true
		}
		if res.CalendarID != "" {
			out.payload["calendar_id"] = res.CalendarID
		}
		return out, nil
	}
}

func (c *ActionController) addSpeaker(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	err := c.Services.Events.AddSpeaker(ctx, req.EventID, domain.SpeakerInput{Name: req.Name, Email: req.Email, Topic: req.Topic})
	if err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("연사 [%s] 추가 완료", req.Name)), nil
}

func (c *ActionController) recordSpeakerResponse(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Participants.RecordSpeakerResponse(ctx, req.Email, req.Topic); err != nil {
		return nil, err
	}
	return messageOnly("연사 응답 기록 완료"), nil
}

func (c *ActionController) registerAttendee(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Participants.RegisterAttendee(ctx, req.EventID, req.Name, req.Email); err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("참석자 [%s] 등록 완료", req.Name)), nil
}

func (c *ActionController) recordRSVP(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Participants.RecordRSVP(ctx, req.Email, req.RSVP); err != nil {
		return nil, err
	}
	return messageOnly("RSVP 기록 완료"), nil
}

func (c *ActionController) checkInAttendee(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Participants.CheckInAttendee(ctx, req.Email); err != nil {
		return nil, err
	}
	return messageOnly("체크인 완료"), nil
}

func (c *ActionController) addTask(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	err := c.Services.Participants.AddTask(ctx, domain.Task{
		EventID:  req.EventID,
		Task:     req.Task,
		Owner:    req.Owner,
		Deadline: req.Deadline,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("할 일 [%s] 추가 완료", req.Task)), nil
}

func (c *ActionController) updateTaskStatus(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Participants.UpdateTaskStatus(ctx, req.Task, req.Status); err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("할 일 [%s] 상태 변경 완료", req.Task)), nil
}

func (c *ActionController) setConfig(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	if err := c.Services.Config.Set(ctx, req.Key, req.Value); err != nil {
		return nil, err
	}
	return messageOnly(fmt.Sprintf("설정 [%s] 저장 완료", strings.TrimSpace(req.Key))), nil
}

func (c *ActionController) getLogs(ctx context.Context, req *helpers.ActionRequest) (*outcome, error) {
	logs, err := c.Services.Activity.Recent(ctx, int(req.Limit))
	if err != nil {
		return nil, err
	}
	return &outcome{payload: helpers.Payload{"logs": logs}}, nil
}

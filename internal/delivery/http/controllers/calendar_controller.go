package controllers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"eventflow/internal/delivery/http/helpers"
	"eventflow/internal/domain"
)

type CalendarController struct {
	Logger   *slog.Logger
	Service  domain.CalendarService
	Renderer domain.CalendarRenderer
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService, renderer domain.CalendarRenderer) *CalendarController {
	return &CalendarController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
	}
}

// GetEventCalendar godoc
// @Summary Download an event calendar
// @Description Renders the event as an iCalendar document. The event must have a calendar created and a confirmed date/time.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar.ics [get]
func (c *CalendarController) GetEventCalendar(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	entry, err := c.Service.Entry(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, userMessage(err))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := c.Renderer.Render(&buf, *entry); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

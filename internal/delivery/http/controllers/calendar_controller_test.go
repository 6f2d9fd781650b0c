package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendarRenderer writes a fixed body naming the entry UID.
type fakeCalendarRenderer struct {
	err error
}

func (f *fakeCalendarRenderer) Render(w io.Writer, entry domain.CalendarEntry) error {
	if f.err != nil {
		return f.err
	}
	_, err := fmt.Fprintf(w, "BEGIN:VCALENDAR\nUID:%s\nEND:VCALENDAR\n", entry.UID)
	return err
}

func TestCalendarController_GetEventCalendar(t *testing.T) {
	entry := &domain.CalendarEntry{UID: "cal-1", Title: "Meetup", Start: calendarStart, Duration: domain.DefaultEventDuration}

	tests := []struct {
		name       string
		service    *fakeCalendarService
		renderer   *fakeCalendarRenderer
		wantStatus int
		wantBody   string
	}{
		{"ok", &fakeCalendarService{entry: entry}, &fakeCalendarRenderer{}, http.StatusOK, "UID:cal-1"},
		{"no calendar", &fakeCalendarService{err: fmt.Errorf("%w: event ev-1 has no calendar", domain.ErrNotFound)}, &fakeCalendarRenderer{}, http.StatusNotFound, "event ev-1 has no calendar"},
		{"storage error", &fakeCalendarService{err: errors.New("db down")}, &fakeCalendarRenderer{}, http.StatusInternalServerError, "internal_error"},
		{"render error", &fakeCalendarService{entry: entry}, &fakeCalendarRenderer{err: errors.New("bad prop")}, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalendarController(testLogger, tt.service, tt.renderer)
			mux := http.NewServeMux()
			mux.HandleFunc("GET /events/{eventID}/calendar.ics", c.GetEventCalendar)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/ev-1/calendar.ics", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
				assert.Contains(t, rr.Header().Get("Content-Disposition"), "ev-1.ics")
			}
		})
	}
}

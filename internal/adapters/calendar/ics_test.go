package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventflow/internal/domain"
)

func TestICSRenderer_Render(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := NewICSRenderer().Render(&buf, domain.CalendarEntry{
		UID:      "cal-1",
		Title:    "Go Meetup",
		Location: "Seoul",
		Start:    start,
		Created:  start.Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	uid, err := ev.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "cal-1", uid)
	summary, err := ev.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup", summary)

	gotStart, err := ev.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(gotStart))
	gotEnd, err := ev.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEventDuration, gotEnd.Sub(gotStart))
}

func TestICSRenderer_Validation(t *testing.T) {
	r := NewICSRenderer()
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, domain.CalendarEntry{Start: time.Now()}))
	assert.Error(t, r.Render(&buf, domain.CalendarEntry{UID: "x"}))
}

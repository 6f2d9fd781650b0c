package dashboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"eventflow/internal/domain"
)

const (
	maxLogLines  = 10
	clearScreen  = "\033[H\033[2J"
	timeLayout   = "15:04:05"
	emptyMessage = "불러오는 중..."
)

// stageLabels are the progress-bar captions, in Stages order.
var stageLabels = map[domain.Stage]string{
	domain.StageSetup:           "설정",
	domain.StageSpeakerInvite:   "연사 섭외",
	domain.StageScheduleConfirm: "일정 확정",
	domain.StageAttendeeInvite:  "참석자 초대",
	domain.StageReminderReady:   "리마인드",
	domain.StageComplete:        "완료",
}

// errorText hides transport details behind the generic connection message.
func errorText(err error) string {
	if errors.Is(err, ErrConnection) {
		return ErrConnection.Error()
	}
	return err.Error()
}

// Render writes one full screen for the state. Without data an error fills the
// screen; with stale data it is shown as a banner above the snapshot.
func Render(w io.Writer, s State, clear bool) error {
	var b strings.Builder
	if clear {
		b.WriteString(clearScreen)
	}

	switch {
	case s.Snapshot == nil && s.Err != nil:
		fmt.Fprintf(&b, "\n  오류: %s\n\n  다음 갱신 때 다시 시도합니다.\n", errorText(s.Err))
		_, err := io.WriteString(w, b.String())
		return err
	case s.Snapshot == nil:
		fmt.Fprintf(&b, "\n  %s\n", emptyMessage)
		_, err := io.WriteString(w, b.String())
		return err
	}

	if s.Err != nil {
		fmt.Fprintf(&b, "[!] %s (마지막 갱신 %s)\n\n", errorText(s.Err), s.UpdatedAt.Format(timeLayout))
	}
	snap := s.Snapshot
	fmt.Fprintf(&b, "%s\n", snap.Config.Title)
	if snap.Config.Location != "" {
		fmt.Fprintf(&b, "장소: %s\n", snap.Config.Location)
	}
	if snap.Config.ConfirmedDatetime != "" {
		fmt.Fprintf(&b, "일시: %s\n", snap.Config.ConfirmedDatetime)
	}
	b.WriteString("\n")
	writeProgress(&b, s.Stage)

	c := snap.Counts
	fmt.Fprintf(&b, "\n초대 연사 %d | 등록 %d | 참석 %d | 할 일 %d/%d\n\n",
		c.Invited, c.Registered, c.Attending, c.TasksOpen, c.TasksTotal)

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	if len(snap.Speakers) > 0 {
		fmt.Fprintln(tw, "연사\t이메일\t상태\t주제")
		for _, sp := range snap.Speakers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sp.Name, sp.Email, sp.Status, sp.Topic)
		}
		fmt.Fprintln(tw)
	}
	if len(snap.Tasks) > 0 {
		fmt.Fprintln(tw, "할 일\t담당\t마감\t상태")
		for _, t := range snap.Tasks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Task, t.Owner, t.Deadline, t.Status)
		}
		fmt.Fprintln(tw)
	}
	if len(snap.Logs) > 0 {
		fmt.Fprintln(tw, "시각\t작업\t결과\t메시지")
		for i, l := range snap.Logs {
			if i == maxLogLines {
				break
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.TS, l.Action, l.Status, l.Message)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeProgress draws the stage bar, marking done, current and pending steps.
func writeProgress(b *strings.Builder, current domain.Stage) {
	idx := current.Index()
	parts := make([]string, 0, len(domain.Stages))
	for i, st := range domain.Stages {
		mark := " "
		switch {
		case i < idx:
			mark = "x"
		case i == idx:
			mark = ">"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, stageLabels[st]))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")
}

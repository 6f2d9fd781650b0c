package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"eventflow/internal/domain"
	"eventflow/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestStore() domain.TableStore {
	return memory.NewTableStore(domain.AllTables...)
}

func appendRows(t *testing.T, store domain.TableStore, table string, rows ...[]string) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, store.Append(context.Background(), table, r))
	}
}

func readRows(t *testing.T, store domain.TableStore, table string) []domain.Row {
	t.Helper()
	rows, err := store.Read(context.Background(), table)
	require.NoError(t, err)
	return rows
}

func speakerRow(eventID, name, email, status string) []string {
	return (&domain.Speaker{EventID: eventID, Name: name, Email: email, Status: status}).Cells()
}

func attendeeRow(eventID, name, email, status, rsvp string) []string {
	return (&domain.Attendee{EventID: eventID, Name: name, Email: email, Status: status, RSVP: rsvp}).Cells()
}

func taskRow(eventID, task, status string) []string {
	return (&domain.Task{EventID: eventID, Task: task, Status: status}).Cells()
}

// failingStore fails reads of one table and delegates everything else.
type failingStore struct {
	domain.TableStore
	failTable string
	err       error
}

func (f *failingStore) Read(ctx context.Context, table string) ([]domain.Row, error) {
	if table == f.failTable {
		return nil, f.err
	}
	return f.TableStore.Read(ctx, table)
}

func (f *failingStore) Append(ctx context.Context, table string, cells []string) error {
	if table == f.failTable {
		return f.err
	}
	return f.TableStore.Append(ctx, table, cells)
}

// fakeMailer records sent mail and fails for listed recipients.
type fakeMailer struct {
	sent   []string
	failTo map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, msg domain.Message) error {
	if f.failTo[msg.To] {
		return io.ErrUnexpectedEOF
	}
	f.sent = append(f.sent, msg.To)
	return nil
}

// fakeRenderer renders "<template>:<name>" as the subject.
type fakeRenderer struct{}

func (fakeRenderer) Render(_ context.Context, name string, data any) (string, string, string, error) {
	d, _ := data.(*domain.WorkflowEmailData)
	who := ""
	if d != nil {
		who = d.Name
	}
	return name + ":" + who, "", "body", nil
}

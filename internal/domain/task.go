package domain

import "strings"

// TaskStatusDone closes a task when matched case-insensitively.
const TaskStatusDone = "done"

// Column positions in the TASKS table.
const (
	TaskColEventID = iota
	TaskColTask
	TaskColOwner
	TaskColDeadline
	TaskColStatus
	TaskColNotes
	taskColumns
)

// Task is a checklist item for an event.
type Task struct {
	RowNum   int64
	EventID  string
	Task     string
	Owner    string
	Deadline string
	Status   string
	Notes    string
}

// TaskFromRow decodes a TASKS row.
func TaskFromRow(r Row) (*Task, error) {
	if err := requireWidth(TableTasks, r, taskColumns); err != nil {
		return nil, err
	}
	return &Task{
		RowNum:   r.Num,
		EventID:  r.Cells[TaskColEventID],
		Task:     r.Cells[TaskColTask],
		Owner:    r.Cells[TaskColOwner],
		Deadline: r.Cells[TaskColDeadline],
		Status:   r.Cells[TaskColStatus],
		Notes:    r.Cells[TaskColNotes],
	}, nil
}

// Cells encodes the task as a TASKS row.
func (t *Task) Cells() []string {
	return []string{t.EventID, t.Task, t.Owner, t.Deadline, t.Status, t.Notes}
}

// Open reports whether the task is not done. Only an exact "done" (any case) closes it.
func (t *Task) Open() bool {
	return strings.ToLower(t.Status) != TaskStatusDone
}

// Summary projects the task into the snapshot shape.
func (t *Task) Summary() TaskSummary {
	return TaskSummary{
		Task:     t.Task,
		Owner:    t.Owner,
		Deadline: t.Deadline,
		Status:   t.Status,
		Notes:    t.Notes,
	}
}

package services

import (
	"context"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/domain"
)

// CreationMethod identifies which backend object type a created task ended
// up as.
type CreationMethod string

const (
	MethodPlannerNote   CreationMethod = "planner_note"
	MethodCalendarEvent CreationMethod = "calendar_event"
)

// Display returns the human-readable label for the creation method.
func (m CreationMethod) Display() string {
	switch m {
	case MethodPlannerNote:
		return "Planner Note"
	case MethodCalendarEvent:
		return "Calendar Event"
	default:
		return string(m)
	}
}

// CreationResult reports a successful task creation and which fallback
// strategy produced it. Exactly one of PlannerNote and CalendarEvent is set,
// matching Method.
type CreationResult struct {
	Method        CreationMethod
	PlannerNote   *canvas.PlannerNote
	CalendarEvent *canvas.CalendarEvent
}

// RefreshResult is one complete, immutable aggregation snapshot. Consumers
// always see either the previous complete snapshot or the next one, never a
// mix.
type RefreshResult struct {
	// Tasks is the filtered task list, sorted ascending by due date.
	Tasks []domain.Task
	// Index maps row identifiers to positions in Tasks. It is rebuilt from
	// scratch for this snapshot; identifiers from earlier snapshots do not
	// resolve.
	Index *domain.SelectionIndex
	// Now is the reference "now" every comparison in this refresh used.
	Now domain.LocalTime
	// Courses is the active course set fetched for this cycle.
	Courses []canvas.Course
	// Partial is true when one or more non-fatal fetches failed and their
	// records were skipped.
	Partial bool
	// Errors holds the skipped fetch failures, for reporting.
	Errors []error
}

// Aggregator orchestrates fetching, normalization and filtering into an
// ordered task list. Refreshes are serialized: a refresh requested while one
// is in flight waits for it, and snapshots are replaced wholesale.
type Aggregator interface {
	// Refresh fetches everything, rebuilds the snapshot and publishes it.
	// It fails only when identity validation or the initial course fetch
	// fails; downstream fetch failures mark the snapshot partial instead.
	Refresh(ctx context.Context) (*RefreshResult, error)

	// Current returns the most recently published snapshot, or nil before
	// the first successful refresh.
	Current() *RefreshResult
}

// Creator accepts a validated task draft and creates it through an ordered
// fallback strategy.
type Creator interface {
	// Create tries each creation method in order and returns on the first
	// success. When every attempt fails the returned error carries all of
	// the underlying failures.
	Create(ctx context.Context, draft domain.TaskDraft) (*CreationResult, error)
}

package domain

// TaskType identifies which backend record type a task was normalized from.
type TaskType string

const (
	TaskTypeAssignment    TaskType = "assignment"
	TaskTypePlannerNote   TaskType = "planner_note"
	TaskTypeCalendarEvent TaskType = "calendar_event"
)

// Display returns the human-readable label for the task type.
func (tt TaskType) Display() string {
	switch tt {
	case TaskTypeAssignment:
		return "Assignment"
	case TaskTypePlannerNote:
		return "Planner Note"
	case TaskTypeCalendarEvent:
		return "Calendar Event"
	default:
		return string(tt)
	}
}

// Status classifies a task for display relative to "now".
type Status string

const (
	StatusToday    Status = "Today"
	StatusUpcoming Status = "Upcoming"
)

// Task is the normalized shape shared by all record types. DueDate is always
// a naive civil datetime in the reference timezone.
type Task struct {
	// ID is a synthetic identifier assigned at normalization time. It is
	// stable for the lifetime of one refresh snapshot and keys the
	// selection index.
	ID       string
	Title    string
	DueDate  LocalTime
	Course   string // empty for personal items
	Type     TaskType
	URL      string // empty when the backend provides no web link
	Raw      interface{}
}

// IsPersonal reports whether the task is tied to no course.
func (t Task) IsPersonal() bool {
	return t.Course == ""
}

// Status classifies the task as due today or upcoming, relative to the
// given reference "now".
func (t Task) Status(now LocalTime) Status {
	if t.DueDate.SameDay(now) {
		return StatusToday
	}
	return StatusUpcoming
}

// TaskDraft is the validated input for creating a new task. A nil CourseID
// means a personal task.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     LocalTime
	CourseID    *int64
}

// IsPersonal reports whether the draft targets no course.
func (d TaskDraft) IsPersonal() bool {
	return d.CourseID == nil
}

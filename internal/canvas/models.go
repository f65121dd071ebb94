package canvas

// Raw wire models for the Canvas REST API. Timestamps stay as the strings
// Canvas sent them in; parsing and timezone normalization happen in the
// domain layer, not here.

// User is the authenticated user returned by the identity endpoint.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course is a course the user is actively enrolled in.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Submission carries the submission state attached to an assignment.
type Submission struct {
	WorkflowState string `json:"workflow_state"`
}

// Assignment is a raw course assignment record.
type Assignment struct {
	ID                      int64       `json:"id"`
	Name                    string      `json:"name"`
	DueAt                   string      `json:"due_at"`
	CourseID                int64       `json:"course_id"`
	HTMLURL                 string      `json:"html_url"`
	HasSubmittedSubmissions bool        `json:"has_submitted_submissions"`
	Submission              *Submission `json:"submission"`
}

// PlannerNote is a raw planner note record, the backend's native
// representation of a personal to-do item.
type PlannerNote struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Details       string `json:"details"`
	TodoDate      string `json:"todo_date"`
	CourseID      *int64 `json:"course_id"`
	WorkflowState string `json:"workflow_state"`
}

// CalendarEvent is a raw calendar event record.
type CalendarEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	AllDay      bool   `json:"all_day"`
	AllDayDate  string `json:"all_day_date"`
	ContextName string `json:"context_name"`
	ContextCode string `json:"context_code"`
	HTMLURL     string `json:"html_url"`
}

// NewPlannerNote is the creation payload for POST /api/v1/planner_notes.
type NewPlannerNote struct {
	Title    string `json:"title"`
	Details  string `json:"details"`
	TodoDate string `json:"todo_date"`
	CourseID *int64 `json:"course_id,omitempty"`
}

// NewCalendarEvent is the creation input for POST /api/v1/calendar_events.
// The client decorates it into the nested wire payload Canvas expects.
type NewCalendarEvent struct {
	Title       string
	Description string
	StartAt     string
	CourseID    *int64
}

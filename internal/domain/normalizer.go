package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/logging"
)

// Normalizer converts raw Canvas records into normalized Tasks with a
// timezone-normalized due date. Each From* method returns false when the
// record does not become a task: a missing or unparseable timestamp, or a
// record state that excludes it. Dropping is always silent at this level;
// one bad record must never abort a refresh.
type Normalizer struct {
	reference *time.Location
	baseURL   string
	courses   map[int64]string
}

// NewNormalizer creates a Normalizer for one refresh cycle. The course set
// is captured once and immutable for the cycle.
func NewNormalizer(reference *time.Location, baseURL string, courses []canvas.Course) *Normalizer {
	names := make(map[int64]string, len(courses))
	for _, course := range courses {
		names[course.ID] = course.Name
	}
	return &Normalizer{
		reference: reference,
		baseURL:   baseURL,
		courses:   names,
	}
}

// FromAssignment converts a raw assignment. Assignments without a due date
// and assignments already submitted or graded are dropped.
func (n *Normalizer) FromAssignment(a canvas.Assignment) (Task, bool) {
	if a.HasSubmittedSubmissions {
		return Task{}, false
	}
	if a.Submission != nil {
		switch a.Submission.WorkflowState {
		case "submitted", "graded", "complete":
			return Task{}, false
		}
	}

	due, err := ParseLocalTime(a.DueAt, n.reference)
	if err != nil {
		logging.Debugf("normalize: dropping assignment %d: %v", a.ID, err)
		return Task{}, false
	}

	course, ok := n.courses[a.CourseID]
	if !ok {
		course = "Unknown"
	}

	var url string
	if a.CourseID != 0 && a.ID != 0 {
		url = fmt.Sprintf("%s/courses/%d/assignments/%d", n.baseURL, a.CourseID, a.ID)
	}

	return Task{
		ID:      uuid.NewString(),
		Title:   a.Name,
		DueDate: due,
		Course:  course,
		Type:    TaskTypeAssignment,
		URL:     url,
		Raw:     a,
	}, true
}

// FromPlannerNote converts a raw planner note. Resolved or otherwise
// inactive notes and notes without a todo date are dropped.
func (n *Normalizer) FromPlannerNote(p canvas.PlannerNote) (Task, bool) {
	if p.WorkflowState != "" && p.WorkflowState != "active" {
		return Task{}, false
	}

	due, err := ParseLocalTime(p.TodoDate, n.reference)
	if err != nil {
		logging.Debugf("normalize: dropping planner note %d: %v", p.ID, err)
		return Task{}, false
	}

	var course, url string
	if p.CourseID != nil {
		course = n.courses[*p.CourseID]
		url = fmt.Sprintf("%s/courses/%d/planner_items?filter=planner_note_%d",
			n.baseURL, *p.CourseID, p.ID)
	}

	return Task{
		ID:      uuid.NewString(),
		Title:   p.Title,
		DueDate: due,
		Course:  course,
		Type:    TaskTypePlannerNote,
		URL:     url,
		Raw:     p,
	}, true
}

// FromCalendarEvent converts a raw calendar event. The start time is taken
// from start_at, falling back to the all-day date; events with neither are
// dropped.
func (n *Normalizer) FromCalendarEvent(e canvas.CalendarEvent) (Task, bool) {
	timestamp := e.StartAt
	if timestamp == "" {
		timestamp = e.AllDayDate
	}
	if timestamp == "" {
		return Task{}, false
	}

	due, err := ParseLocalTime(timestamp, n.reference)
	if err != nil {
		logging.Debugf("normalize: dropping calendar event %d: %v", e.ID, err)
		return Task{}, false
	}

	course := e.ContextName
	if course == "" {
		course = e.ContextCode
	}
	if course == "" {
		course = "Calendar"
	}

	title := e.Title
	if title == "" {
		title = "Untitled Event"
	}

	return Task{
		ID:      uuid.NewString(),
		Title:   title,
		DueDate: due,
		Course:  course,
		Type:    TaskTypeCalendarEvent,
		URL:     e.HTMLURL,
		Raw:     e,
	}, true
}

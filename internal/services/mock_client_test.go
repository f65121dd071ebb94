package services

import (
	"context"
	"time"

	"canvas-tasks/internal/canvas"
)

// mockCanvasClient implements canvas.Client for testing, with per-endpoint
// error injection and call counting.
type mockCanvasClient struct {
	user        *canvas.User
	courses     []canvas.Course
	notes       []canvas.PlannerNote
	events      []canvas.CalendarEvent
	assignments map[int64][]canvas.Assignment

	validateErr    error
	coursesErr     error
	notesErr       error
	eventsErr      error
	assignmentErrs map[int64]error
	createNoteErr  error
	createEventErr error

	calls map[string]int

	lastNote  canvas.NewPlannerNote
	lastEvent canvas.NewCalendarEvent
}

// newMockCanvasClient creates a mock client with a valid user and no data.
func newMockCanvasClient() *mockCanvasClient {
	return &mockCanvasClient{
		user:           &canvas.User{ID: 42, Name: "Student"},
		assignments:    make(map[int64][]canvas.Assignment),
		assignmentErrs: make(map[int64]error),
		calls:          make(map[string]int),
	}
}

func (m *mockCanvasClient) ValidateToken(ctx context.Context) (*canvas.User, error) {
	m.calls["ValidateToken"]++
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.user, nil
}

func (m *mockCanvasClient) ListActiveCourses(ctx context.Context) ([]canvas.Course, error) {
	m.calls["ListActiveCourses"]++
	if m.coursesErr != nil {
		return nil, m.coursesErr
	}
	return m.courses, nil
}

func (m *mockCanvasClient) ListAssignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error) {
	m.calls["ListAssignments"]++
	if err := m.assignmentErrs[courseID]; err != nil {
		return nil, err
	}
	return m.assignments[courseID], nil
}

func (m *mockCanvasClient) ListPlannerNotes(ctx context.Context, start, end time.Time) ([]canvas.PlannerNote, error) {
	m.calls["ListPlannerNotes"]++
	if m.notesErr != nil {
		return nil, m.notesErr
	}
	return m.notes, nil
}

func (m *mockCanvasClient) ListCalendarEvents(ctx context.Context, start, end time.Time) ([]canvas.CalendarEvent, error) {
	m.calls["ListCalendarEvents"]++
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	return m.events, nil
}

func (m *mockCanvasClient) CreatePlannerNote(ctx context.Context, note canvas.NewPlannerNote) (*canvas.PlannerNote, error) {
	m.calls["CreatePlannerNote"]++
	m.lastNote = note
	if m.createNoteErr != nil {
		return nil, m.createNoteErr
	}
	return &canvas.PlannerNote{ID: 1000, Title: note.Title, TodoDate: note.TodoDate, CourseID: note.CourseID}, nil
}

func (m *mockCanvasClient) CreateCalendarEvent(ctx context.Context, event canvas.NewCalendarEvent) (*canvas.CalendarEvent, error) {
	m.calls["CreateCalendarEvent"]++
	m.lastEvent = event
	if m.createEventErr != nil {
		return nil, m.createEventErr
	}
	return &canvas.CalendarEvent{ID: 2000, Title: "📋 " + event.Title, StartAt: event.StartAt}, nil
}

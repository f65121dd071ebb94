package cli

import (
	"bytes"
	"context"
	"time"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/config"
	"canvas-tasks/internal/domain"
	"canvas-tasks/internal/services"
)

// mockAggregator implements the services.Aggregator interface for testing
type mockAggregator struct {
	result       *services.RefreshResult
	err          error
	refreshCalls int
}

func (m *mockAggregator) Refresh(ctx context.Context) (*services.RefreshResult, error) {
	m.refreshCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAggregator) Current() *services.RefreshResult {
	return m.result
}

// mockCreator implements the services.Creator interface for testing
type mockCreator struct {
	result      *services.CreationResult
	err         error
	createCalls int
	lastDraft   domain.TaskDraft
}

func (m *mockCreator) Create(ctx context.Context, draft domain.TaskDraft) (*services.CreationResult, error) {
	m.createCalls++
	m.lastDraft = draft
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockClient implements the canvas.Client interface for testing. Only the
// endpoints the CLI calls directly are backed by data.
type mockClient struct {
	user       *canvas.User
	courses    []canvas.Course
	userErr    error
	coursesErr error
}

func (m *mockClient) ValidateToken(ctx context.Context) (*canvas.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.user, nil
}

func (m *mockClient) ListActiveCourses(ctx context.Context) ([]canvas.Course, error) {
	if m.coursesErr != nil {
		return nil, m.coursesErr
	}
	return m.courses, nil
}

func (m *mockClient) ListAssignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error) {
	return nil, nil
}

func (m *mockClient) ListPlannerNotes(ctx context.Context, start, end time.Time) ([]canvas.PlannerNote, error) {
	return nil, nil
}

func (m *mockClient) ListCalendarEvents(ctx context.Context, start, end time.Time) ([]canvas.CalendarEvent, error) {
	return nil, nil
}

func (m *mockClient) CreatePlannerNote(ctx context.Context, note canvas.NewPlannerNote) (*canvas.PlannerNote, error) {
	return &canvas.PlannerNote{ID: 1, Title: note.Title}, nil
}

func (m *mockClient) CreateCalendarEvent(ctx context.Context, event canvas.NewCalendarEvent) (*canvas.CalendarEvent, error) {
	return &canvas.CalendarEvent{ID: 1}, nil
}

// testApp bundles an App wired to mocks with the buffer capturing its output.
type testApp struct {
	app        *App
	aggregator *mockAggregator
	creator    *mockCreator
	client     *mockClient
	out        *bytes.Buffer
}

func newTestApp() *testApp {
	aggregator := &mockAggregator{}
	creator := &mockCreator{}
	client := &mockClient{user: &canvas.User{ID: 42, Name: "Student"}}

	cfg := config.NewConfig()
	cfg.Canvas.BaseURL = "https://canvas.test"
	cfg.Canvas.Token = "test-token"
	cfg.Time.ReferenceZone = "Asia/Manila"

	app := NewApp(aggregator, creator, client, cfg)
	out := &bytes.Buffer{}
	app.SetOutput(out)

	return &testApp{
		app:        app,
		aggregator: aggregator,
		creator:    creator,
		client:     client,
		out:        out,
	}
}

// snapshotOf builds a RefreshResult from tasks, with "now" fixed to
// 2024-03-10 09:00 in the reference zone.
func snapshotOf(tasks ...domain.Task) *services.RefreshResult {
	return &services.RefreshResult{
		Tasks: tasks,
		Index: domain.NewSelectionIndex(tasks),
		Now:   domain.NewLocalTime(2024, time.March, 10, 9, 0),
	}
}

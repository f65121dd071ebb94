package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"canvas-tasks/internal/errors"
	"canvas-tasks/internal/logging"
)

// perPage is the single-page fetch size; there is no pagination beyond it.
const perPage = "50"

// wireTimeLayout is the naive civil datetime layout used in creation
// payloads (todo_date, start_at).
const wireTimeLayout = "2006-01-02T15:04:05"

// Client performs authenticated calls against the Canvas API. Each call is
// single-shot: no retries, and any non-success response is a hard failure
// for that call.
type Client interface {
	// ValidateToken calls the identity endpoint and returns the
	// authenticated user. Fails with an auth error on any non-2xx response.
	ValidateToken(ctx context.Context) (*User, error)

	// ListActiveCourses returns the courses the user is actively enrolled
	// in. Enrollment filtering happens server-side.
	ListActiveCourses(ctx context.Context) ([]Course, error)

	// ListAssignments returns one page of assignments for a course.
	ListAssignments(ctx context.Context, courseID int64) ([]Assignment, error)

	// ListPlannerNotes returns planner notes due between start and end.
	ListPlannerNotes(ctx context.Context, start, end time.Time) ([]PlannerNote, error)

	// ListCalendarEvents returns calendar events between start and end.
	ListCalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error)

	// CreatePlannerNote creates a planner note and returns the created
	// record.
	CreatePlannerNote(ctx context.Context, note NewPlannerNote) (*PlannerNote, error)

	// CreateCalendarEvent creates a calendar event and returns the created
	// record.
	CreateCalendarEvent(ctx context.Context, event NewCalendarEvent) (*CalendarEvent, error)
}

// httpClient implements Client over net/http with a bearer-token transport.
type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Canvas API client. The token is attached to every
// request as an Authorization bearer header by the oauth2 transport.
func NewClient(baseURL, token string, timeout time.Duration) Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), source)
	client.Timeout = timeout

	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (c *httpClient) ValidateToken(ctx context.Context) (*User, error) {
	var user User
	err := c.get(ctx, "/api/v1/users/self", nil, &user)
	if err != nil {
		return nil, errors.NewAuthError("token validation failed", err)
	}
	return &user, nil
}

func (c *httpClient) ListActiveCourses(ctx context.Context) ([]Course, error) {
	params := url.Values{
		"enrollment_state": {"active"},
		"per_page":         {perPage},
	}
	var courses []Course
	if err := c.get(ctx, "/api/v1/courses", params, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *httpClient) ListAssignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	params := url.Values{
		"per_page": {perPage},
		"order_by": {"due_at"},
	}
	path := fmt.Sprintf("/api/v1/courses/%d/assignments", courseID)
	var assignments []Assignment
	if err := c.get(ctx, path, params, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (c *httpClient) ListPlannerNotes(ctx context.Context, start, end time.Time) ([]PlannerNote, error) {
	params := url.Values{
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
		"per_page":   {perPage},
	}
	var notes []PlannerNote
	if err := c.get(ctx, "/api/v1/planner_notes", params, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *httpClient) ListCalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error) {
	params := url.Values{
		"type":       {"event"},
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
		"per_page":   {perPage},
	}
	var events []CalendarEvent
	if err := c.get(ctx, "/api/v1/calendar_events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *httpClient) CreatePlannerNote(ctx context.Context, note NewPlannerNote) (*PlannerNote, error) {
	var created PlannerNote
	if err := c.post(ctx, "/api/v1/planner_notes", note, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) CreateCalendarEvent(ctx context.Context, event NewCalendarEvent) (*CalendarEvent, error) {
	start, err := time.Parse(wireTimeLayout, event.StartAt)
	if err != nil {
		return nil, errors.NewParseError("start_at", event.StartAt, err)
	}

	// Calendar events need an end time; created tasks get a one hour slot.
	inner := map[string]interface{}{
		"title":       "📋 " + event.Title,
		"description": fmt.Sprintf("Task: %s\n\n%s", event.Title, event.Description),
		"start_at":    event.StartAt,
		"end_at":      start.Add(time.Hour).Format(wireTimeLayout),
		"all_day":     false,
	}
	if event.CourseID != nil {
		inner["context_code"] = fmt.Sprintf("course_%d", *event.CourseID)
	}
	payload := map[string]interface{}{"calendar_event": inner}

	var created CalendarEvent
	if err := c.post(ctx, "/api/v1/calendar_events", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// get performs a single GET request and decodes the JSON response into out.
func (c *httpClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewRemoteError(0, "GET "+path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

// post performs a single POST request with a JSON body and decodes the JSON
// response into out.
func (c *httpClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return errors.NewRemoteError(0, "POST "+path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return errors.NewRemoteError(0, "POST "+path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

// do executes the request, treating any non-2xx status as a hard failure.
func (c *httpClient) do(req *http.Request, path string, out interface{}) error {
	logging.Debugf("canvas: %s %s", req.Method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewRemoteError(0, req.Method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewRemoteError(resp.StatusCode, req.Method+" "+path,
			fmt.Errorf("%s", strings.TrimSpace(string(snippet))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewRemoteError(resp.StatusCode, req.Method+" "+path, err)
	}
	return nil
}

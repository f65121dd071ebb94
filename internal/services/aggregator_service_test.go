package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/config"
	"canvas-tasks/internal/domain"
	"canvas-tasks/internal/errors"
)

// fixedNow is 09:00 on 2024-03-10 in Asia/Manila (01:00 UTC).
var fixedNow = time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)

func withFixedNow(t *testing.T, fixed time.Time) {
	previous := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = previous })
}

func testAggregatorConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Canvas.BaseURL = "https://canvas.test"
	cfg.Canvas.Token = "test-token"
	cfg.Time.ReferenceZone = "Asia/Manila"
	return cfg
}

func newTestAggregator(t *testing.T, client canvas.Client) Aggregator {
	aggregator, err := NewAggregator(client, testAggregatorConfig())
	require.NoError(t, err)
	return aggregator
}

// populatedMock returns a client with one planner note, one calendar event
// and one assignment per course, all inside the refresh window.
func populatedMock() *mockCanvasClient {
	mock := newMockCanvasClient()
	mock.courses = []canvas.Course{
		{ID: 1, Name: "Mathematics"},
		{ID: 2, Name: "History"},
	}
	mock.notes = []canvas.PlannerNote{
		{ID: 10, Title: "Read chapter 4", TodoDate: "2024-03-12T10:00:00", WorkflowState: "active"},
	}
	mock.events = []canvas.CalendarEvent{
		{ID: 20, Title: "Lab session", StartAt: "2024-03-11T02:00:00Z", ContextName: "Physics", HTMLURL: "https://canvas.test/calendar?event_id=20"},
	}
	mock.assignments[1] = []canvas.Assignment{
		{ID: 30, Name: "Problem set 3", DueAt: "2024-03-10T13:00:00Z", CourseID: 1},
	}
	mock.assignments[2] = []canvas.Assignment{
		{ID: 31, Name: "Essay draft", DueAt: "2024-03-13T08:00:00Z", CourseID: 2},
	}
	return mock
}

func TestAggregatorRefresh(t *testing.T) {
	t.Run("should aggregate all sources sorted ascending by due date", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Tasks, 4)
		assert.Equal(t, "Problem set 3", result.Tasks[0].Title)
		assert.Equal(t, "Lab session", result.Tasks[1].Title)
		assert.Equal(t, "Read chapter 4", result.Tasks[2].Title)
		assert.Equal(t, "Essay draft", result.Tasks[3].Title)
		assert.False(t, result.Partial)
		assert.Empty(t, result.Errors)
	})

	t.Run("should convert aware timestamps into the reference zone", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert: 13:00 UTC is 21:00 in Asia/Manila, same calendar day.
		require.NoError(t, err)
		assert.True(t, result.Tasks[0].DueDate.Equal(domain.NewLocalTime(2024, time.March, 10, 21, 0)))
		assert.Equal(t, domain.StatusToday, result.Tasks[0].Status(result.Now))
		assert.Equal(t, domain.StatusUpcoming, result.Tasks[1].Status(result.Now))
	})

	t.Run("should drop tasks due before the reference now", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := newMockCanvasClient()
		mock.courses = []canvas.Course{{ID: 1, Name: "Mathematics"}}
		mock.assignments[1] = []canvas.Assignment{
			{ID: 1, Name: "Already due", DueAt: "2024-03-09T13:00:00Z", CourseID: 1},
			{ID: 2, Name: "Still due", DueAt: "2024-03-10T13:00:00Z", CourseID: 1},
		}
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Tasks, 1)
		assert.Equal(t, "Still due", result.Tasks[0].Title)
	})

	t.Run("should drop tasks beyond the future edge of the window", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := newMockCanvasClient()
		mock.notes = []canvas.PlannerNote{
			{ID: 1, Title: "Far away", TodoDate: "2024-06-01T09:00:00"},
			{ID: 2, Title: "On the edge", TodoDate: "2024-04-09T09:00:00"},
		}
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert: the window is 30 days, so 2024-04-09 09:00 is the edge.
		require.NoError(t, err)
		require.Len(t, result.Tasks, 1)
		assert.Equal(t, "On the edge", result.Tasks[0].Title)
	})

	t.Run("should fail and keep the previous snapshot when token validation fails", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)
		first, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)

		mock.validateErr = errors.NewAuthError("token rejected", nil)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAggregation))
		assert.Same(t, first, aggregator.Current())
	})

	t.Run("should fail when the course fetch fails", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		mock.coursesErr = errors.NewRemoteError(500, "list courses", nil)
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAggregation))
		assert.Nil(t, aggregator.Current())
	})

	t.Run("should mark the snapshot partial when a source fetch fails", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		mock.notesErr = errors.NewRemoteError(503, "list planner notes", nil)
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert: the notes are missing but everything else survives.
		require.NoError(t, err)
		assert.True(t, result.Partial)
		require.Len(t, result.Errors, 1)
		require.Len(t, result.Tasks, 3)
		assert.Equal(t, "Problem set 3", result.Tasks[0].Title)
	})

	t.Run("should skip a failing course and keep the rest", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		mock.assignmentErrs[1] = errors.NewRemoteError(502, "list assignments", nil)
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Partial)
		require.Len(t, result.Tasks, 3)
		for _, task := range result.Tasks {
			assert.NotEqual(t, "Problem set 3", task.Title)
		}
	})

	t.Run("should drop records with unparseable due dates without failing", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := newMockCanvasClient()
		mock.notes = []canvas.PlannerNote{
			{ID: 1, Title: "Garbage date", TodoDate: "not-a-timestamp"},
			{ID: 2, Title: "Good date", TodoDate: "2024-03-11T09:00:00"},
		}
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())

		// Assert: a bad record is not a fetch failure.
		require.NoError(t, err)
		assert.False(t, result.Partial)
		require.Len(t, result.Tasks, 1)
		assert.Equal(t, "Good date", result.Tasks[0].Title)
	})

	t.Run("should produce the same ordering on repeated refreshes", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)

		// Act
		first, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)
		second, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)

		// Assert
		require.Equal(t, len(first.Tasks), len(second.Tasks))
		for i := range first.Tasks {
			assert.Equal(t, first.Tasks[i].Title, second.Tasks[i].Title)
		}
	})

	t.Run("should rebuild the selection index for every snapshot", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)
		first, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)
		staleID := first.Tasks[0].ID

		// Act
		second, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)

		// Assert: row identifiers are minted per snapshot.
		_, ok := second.Index.Resolve(staleID)
		assert.False(t, ok)
		position, ok := second.Index.Resolve(second.Tasks[0].ID)
		require.True(t, ok)
		assert.Equal(t, 0, position)
	})
}

func TestAggregatorCurrent(t *testing.T) {
	t.Run("should return nil before the first refresh", func(t *testing.T) {
		// Arrange
		aggregator := newTestAggregator(t, newMockCanvasClient())

		// Act & Assert
		assert.Nil(t, aggregator.Current())
	})

	t.Run("should return the latest published snapshot", func(t *testing.T) {
		// Arrange
		withFixedNow(t, fixedNow)
		mock := populatedMock()
		aggregator := newTestAggregator(t, mock)

		// Act
		result, err := aggregator.Refresh(context.Background())
		require.NoError(t, err)

		// Assert
		assert.Same(t, result, aggregator.Current())
	})
}

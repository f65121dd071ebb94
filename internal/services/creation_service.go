package services

import (
	"context"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/domain"
	"canvas-tasks/internal/errors"
	"canvas-tasks/internal/logging"
)

// creatorServiceImpl implements the Creator interface
type creatorServiceImpl struct {
	client canvas.Client
}

// NewCreator creates a new Creator instance
func NewCreator(client canvas.Client) Creator {
	return &creatorServiceImpl{client: client}
}

// Create attempts creation as a planner note first, falling back to a
// calendar event. Planner notes are the backend's native representation of a
// personal task, so the order is policy, not an optimization: it decides
// which object type new tasks end up as.
func (c *creatorServiceImpl) Create(ctx context.Context, draft domain.TaskDraft) (*CreationResult, error) {
	note, noteErr := c.client.CreatePlannerNote(ctx, canvas.NewPlannerNote{
		Title:    draft.Title,
		Details:  draft.Description,
		TodoDate: draft.DueDate.Wire(),
		CourseID: draft.CourseID,
	})
	if noteErr == nil {
		return &CreationResult{Method: MethodPlannerNote, PlannerNote: note}, nil
	}
	logging.Debugf("create: planner note attempt failed, falling back: %v", noteErr)

	event, eventErr := c.client.CreateCalendarEvent(ctx, canvas.NewCalendarEvent{
		Title:       draft.Title,
		Description: draft.Description,
		StartAt:     draft.DueDate.Wire(),
		CourseID:    draft.CourseID,
	})
	if eventErr == nil {
		return &CreationResult{Method: MethodCalendarEvent, CalendarEvent: event}, nil
	}

	// The caller must be able to report why both attempts failed.
	return nil, errors.NewCreationError(noteErr, eventErr)
}

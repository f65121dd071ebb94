package cli

import (
	"context"
	"fmt"
	"io"

	"canvas-tasks/internal/canvas"
)

// CoursesCommand handles the courses command
type CoursesCommand struct {
	client       canvas.Client
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewCoursesCommand creates a new courses command handler
func NewCoursesCommand(app *App) *CoursesCommand {
	return &CoursesCommand{
		client:       app.client,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the courses command
func (c *CoursesCommand) Execute(ctx context.Context, args []string) error {
	courses, err := c.client.ListActiveCourses(ctx)
	if err != nil {
		return c.errorHandler.Handle("list courses", err)
	}

	if len(courses) == 0 {
		fmt.Fprintln(c.out, "No active courses")
		return nil
	}

	for _, course := range courses {
		fmt.Fprintf(c.out, "%d: %s\n", course.ID, course.Name)
	}
	return nil
}

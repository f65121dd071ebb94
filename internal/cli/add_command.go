package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"canvas-tasks/internal/config"
	"canvas-tasks/internal/services"
	"canvas-tasks/internal/validation"
)

// AddCommand handles the add command
type AddCommand struct {
	creator      services.Creator
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		creator:      app.creator,
		config:       app.config,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string, due, description string, courseID int64) error {
	title := strings.Join(args, " ")

	reference, err := c.config.ReferenceLocation()
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	var course *int64
	if courseID != 0 {
		course = &courseID
	}

	draft, err := validation.NewDraftValidator(reference).ValidateDraft(title, description, due, course)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	result, err := c.creator.Create(ctx, *draft)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	fmt.Fprintf(c.out, "Created task as %s: %s (due %s)\n",
		result.Method.Display(),
		draft.Title,
		draft.DueDate.Format(c.config.Time.DisplayFormat),
	)
	return nil
}

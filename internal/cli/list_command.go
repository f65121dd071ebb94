package cli

import (
	"context"
	"fmt"
	"io"

	"canvas-tasks/internal/config"
	"canvas-tasks/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	aggregator   services.Aggregator
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		aggregator:   app.aggregator,
		config:       app.config,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	result, err := c.aggregator.Refresh(ctx)
	if err != nil {
		return c.errorHandler.Handle("refresh tasks", err)
	}

	c.printTasks(result)
	return nil
}

// printTasks prints one numbered line per task in the format:
// row. dueDate  status    course: title (type)
// Row numbers match what "cvt open" accepts for this refresh.
func (c *ListCommand) printTasks(result *services.RefreshResult) {
	if result.Partial {
		fmt.Fprintf(c.out, "Warning: some sources could not be fetched, showing partial results (%d errors)\n", len(result.Errors))
	}

	if len(result.Tasks) == 0 {
		fmt.Fprintln(c.out, "No upcoming tasks")
		return
	}

	for i, task := range result.Tasks {
		course := task.Course
		if task.IsPersonal() {
			course = "Personal"
		}
		fmt.Fprintf(c.out, "%3d. %s  %-8s  %s: %s (%s)\n",
			i+1,
			task.DueDate.Format(c.config.Time.DisplayFormat),
			task.Status(result.Now),
			course,
			task.Title,
			task.Type.Display(),
		)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"

	"canvas-tasks/internal/errors"
	"canvas-tasks/internal/services"
)

// launchBrowser is a variable that can be replaced in tests
var launchBrowser = func(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// OpenCommand handles the open command
type OpenCommand struct {
	aggregator   services.Aggregator
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewOpenCommand creates a new open command handler
func NewOpenCommand(app *App) *OpenCommand {
	return &OpenCommand{
		aggregator:   app.aggregator,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the open command. Row numbers are resolved against a fresh
// snapshot, never a stale one, so the task opened is the task listed.
func (c *OpenCommand) Execute(ctx context.Context, args []string, printOnly bool) error {
	row, err := strconv.Atoi(args[0])
	if err != nil || row < 1 {
		return errors.NewValidationError(fmt.Sprintf("invalid row number: %s", args[0]), err)
	}

	result, err := c.aggregator.Refresh(ctx)
	if err != nil {
		return c.errorHandler.Handle("refresh tasks", err)
	}

	rowID, ok := result.Index.At(row - 1)
	if !ok {
		return errors.NewValidationError(fmt.Sprintf("row %d is out of range, %d tasks listed", row, len(result.Tasks)), nil)
	}
	position, _ := result.Index.Resolve(rowID)
	task := result.Tasks[position]

	if task.URL == "" {
		return errors.NewValidationError(fmt.Sprintf("task %q has no URL to open", task.Title), nil)
	}

	if printOnly {
		fmt.Fprintln(c.out, task.URL)
		return nil
	}

	if err := launchBrowser(task.URL); err != nil {
		return c.errorHandler.Handle("open browser", err)
	}
	fmt.Fprintf(c.out, "Opening %s\n", task.URL)
	return nil
}

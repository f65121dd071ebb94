package cli

import (
	"context"
	"fmt"
	"io"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/config"
)

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	client       canvas.Client
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{
		client:       app.client,
		config:       app.config,
		out:          app.out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.client.ValidateToken(ctx)
	if err != nil {
		return c.errorHandler.Handle("validate token", err)
	}

	fmt.Fprintf(c.out, "%s (user %d) on %s\n", user.Name, user.ID, c.config.Canvas.BaseURL)
	return nil
}

package cli

import (
	"io"
	"os"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/config"
	"canvas-tasks/internal/services"
)

// App represents the main CLI application
type App struct {
	aggregator services.Aggregator
	creator    services.Creator
	client     canvas.Client
	config     *config.Config
	out        io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(aggregator services.Aggregator, creator services.Creator, client canvas.Client, cfg *config.Config) *App {
	return &App{
		aggregator: aggregator,
		creator:    creator,
		client:     client,
		config:     cfg,
		out:        os.Stdout,
	}
}

// NewDefaultApp creates a CLI application wired to a live Canvas client.
// This is the production constructor; tests inject mocks through NewApp.
func NewDefaultApp(cfg *config.Config) (*App, error) {
	client := canvas.NewClient(cfg.Canvas.BaseURL, cfg.Canvas.Token, cfg.Canvas.RequestTimeout)

	aggregator, err := services.NewAggregator(client, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		aggregator: aggregator,
		creator:    services.NewCreator(client),
		client:     client,
		config:     cfg,
		out:        os.Stdout,
	}, nil
}

// SetOutput redirects command output, used by tests to capture it
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

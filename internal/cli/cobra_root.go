package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"canvas-tasks/internal/config"
	"canvas-tasks/internal/errors"
	"canvas-tasks/internal/logging"
)

// AppFactory builds the application once the effective configuration is
// known. Flag overrides are only resolved after cobra has parsed the command
// line, so the app cannot be constructed before then.
type AppFactory func(cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	newApp  AppFactory
	app     *App
	timeout time.Duration
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, newApp AppFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		newApp:  newApp,
		timeout: 60 * time.Second,
	}

	root.cmd = &cobra.Command{
		Use:   "cvt",
		Short: "A command-line Canvas task viewer",
		Long: `Canvas Tasks (cvt) aggregates your upcoming Canvas work into one list.

It pulls assignments, planner notes and calendar events from the Canvas
API, converts every due date into your reference timezone and shows only
what is due between now and the end of the lookahead window.

EXAMPLES:
  cvt list                                 # Show upcoming tasks
  cvt add "Read chapter 4" --due "2024-03-15 18:30"
  cvt add "Problem set" --due "2024-03-20 23:59" --course 1234
  cvt open 3                               # Open task 3 in the browser
  cvt courses                              # List active courses
  cvt whoami                               # Verify the configured token

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  The config file lives at ~/.config/canvas-tasks/config.json:
    {"canvas_base_url": "https://school.instructure.com", "canvas_token": "..."}

  Environment variables:
    CVT_CANVAS_BASE_URL                    Canvas instance base URL
    CVT_CANVAS_TOKEN                       Canvas API access token
    CVT_CANVAS_REQUEST_TIMEOUT             Per-request timeout (default: 10s)
    CVT_WINDOW_PAST_DAYS                   Fetch window, days back (default: 30)
    CVT_WINDOW_FUTURE_DAYS                 Display window, days ahead (default: 30)
    CVT_REFERENCE_ZONE                     Reference timezone (default: Asia/Manila)
    CVT_TIME_DISPLAY_FORMAT                Due date display format (default: 01/02 15:04)
    CVT_APP_TIMEOUT                        Application timeout (default: 60s)
    CVT_APP_VERBOSE                        Enable verbose output (default: false)

GETTING HELP:
  cvt [command] --help                     # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.initialize()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetApp injects a pre-built application, bypassing config loading. Used by
// tests.
func (r *RootCommand) SetApp(app *App) {
	r.app = app
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("base-url", "", "Canvas instance base URL (overrides CVT_CANVAS_BASE_URL)")
	flags.String("token", "", "Canvas API access token (overrides CVT_CANVAS_TOKEN)")
	flags.Duration("request-timeout", 0, "Per-request timeout (overrides CVT_CANVAS_REQUEST_TIMEOUT)")
	flags.Int("past-days", 0, "Fetch window in days back (overrides CVT_WINDOW_PAST_DAYS)")
	flags.Int("future-days", 0, "Display window in days ahead (overrides CVT_WINDOW_FUTURE_DAYS)")
	flags.String("timezone", "", "Reference timezone (overrides CVT_REFERENCE_ZONE)")
	flags.String("display-format", "", "Due date display format (overrides CVT_TIME_DISPLAY_FORMAT)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides CVT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides CVT_APP_VERBOSE)")
}

// initialize loads the effective configuration and builds the application.
// A pre-injected app skips this entirely.
func (r *RootCommand) initialize() error {
	if r.app != nil {
		return nil
	}

	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	if !cfg.IsConfigured() {
		return errors.NewConfigError("canvas", "base URL and token must be set, see cvt --help for options")
	}

	logging.SetVerbose(cfg.Application.Verbose)
	r.timeout = cfg.Application.Timeout

	app, err := r.newApp(cfg)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// overridesFromFlags collects configuration overrides from flags the user
// actually set.
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("base-url") {
		value, _ := flags.GetString("base-url")
		overrides.BaseURL = &value
	}
	if flags.Changed("token") {
		value, _ := flags.GetString("token")
		overrides.Token = &value
	}
	if flags.Changed("request-timeout") {
		value, _ := flags.GetDuration("request-timeout")
		overrides.RequestTimeout = &value
	}
	if flags.Changed("past-days") {
		value, _ := flags.GetInt("past-days")
		overrides.PastDays = &value
	}
	if flags.Changed("future-days") {
		value, _ := flags.GetInt("future-days")
		overrides.FutureDays = &value
	}
	if flags.Changed("timezone") {
		value, _ := flags.GetString("timezone")
		overrides.ReferenceZone = &value
	}
	if flags.Changed("display-format") {
		value, _ := flags.GetString("display-format")
		overrides.DisplayFormat = &value
	}
	if flags.Changed("app-timeout") {
		value, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &value
	}
	if flags.Changed("verbose") {
		value, _ := flags.GetBool("verbose")
		overrides.Verbose = &value
	}

	return overrides
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming tasks",
		Long: `Fetch everything due between now and the end of the lookahead window
and print it sorted by due date. Row numbers are stable until the next
refresh and can be passed to "cvt open".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			return NewListCommand(r.app).Execute(ctx, args)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new task",
		Long: `Create a new task on Canvas. Creation is tried as a planner note
first and falls back to a calendar event when the planner API rejects it.

The due date uses the reference timezone and the format "2006-01-02 15:04".

Examples:
  cvt add "Read chapter 4" --due "2024-03-15 18:30"
  cvt add "Problem set" --due "2024-03-20 23:59" --course 1234 --desc "Sections 3.1-3.4"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			due, _ := cmd.Flags().GetString("due")
			description, _ := cmd.Flags().GetString("desc")
			courseID, _ := cmd.Flags().GetInt64("course")

			handler := NewAddCommand(r.app)
			return handler.Execute(ctx, args, due, description, courseID)
		},
	}
	addCmd.Flags().String("due", "", "Due date in the reference timezone, format \"2006-01-02 15:04\" (required)")
	addCmd.Flags().String("desc", "", "Task description")
	addCmd.Flags().Int64("course", 0, "Course ID to attach the task to (omit for a personal task)")
	_ = addCmd.MarkFlagRequired("due")

	openCmd := &cobra.Command{
		Use:   "open [row]",
		Short: "Open a task in the browser",
		Long: `Refresh the task list and open the task at the given row number in the
default browser. Use --print to print the URL instead of launching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			printOnly, _ := cmd.Flags().GetBool("print")

			handler := NewOpenCommand(r.app)
			return handler.Execute(ctx, args, printOnly)
		},
	}
	openCmd.Flags().Bool("print", false, "Print the URL instead of opening the browser")

	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "List active courses",
		Long:  "List the courses you are actively enrolled in, with the IDs \"cvt add --course\" accepts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			return NewCoursesCommand(r.app).Execute(ctx, args)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Long:  "Validate the configured token against the Canvas API and show who it belongs to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()

			return NewWhoamiCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		openCmd,
		coursesCmd,
		whoamiCmd,
	)
}

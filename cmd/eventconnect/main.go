package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect"
	"github.com/vango-dev/eventconnect/internal/config"
	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/internal/prompt"
	"github.com/vango-dev/eventconnect/pkg/toast"
)

// Version information set at build time.
var (
	commit = "none"
	date   = "unknown"
)

const banner = `
  ╔═╗┬  ┬┌─┐┌┐┌┌┬┐╔═╗┌─┐┌┐┌┌┐┌┌─┐┌─┐┌┬┐
  ║╣ └┐┌┘├┤ │││ │ ║  │ │││││││├┤ │   │
  ╚═╝ └┘ └─┘┘└┘ ┴ ╚═╝└─┘┘└┘┘└┘└─┘└─┘ ┴
`

func main() {
	c := newCLI()
	if err := c.root().Execute(); err != nil {
		if _, ok := err.(*errors.Error); ok {
			errors.Fprint(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.FgRed.Sprint("Error:"), err)
		}
		os.Exit(1)
	}
}

// cli holds the state shared by every command of one invocation.
type cli struct {
	configDir string
	logLevel  string
	noColor   bool

	// driver answers --interactive prompts.
	driver prompt.Driver
	// clock overrides the wall clock in tests.
	clock func() time.Time
	// stderr receives logs and toasts. Default: the command's error stream.
	stderr io.Writer

	app *eventconnect.App
}

func newCLI() *cli {
	return &cli{driver: prompt.NewSurveyDriver()}
}

func (c *cli) root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eventconnect",
		Short: "Events, posts and connections from the terminal",
		Long: `EventConnect is a social networking app for events.

Browse and post to the feed, create and explore events, chat with
connections and book event services. Features include:

  • Create-post dialogs with event, hashtag or new-event tagging
  • Create-event dialog with category, country and city selection
  • Interactive prompts with --interactive
  • Prometheus metrics on a debug server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.noColor {
				color.Enable = false
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configDir, "config-dir", ".", "Directory to search for eventconnect.json")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable coloured output")

	// Add commands
	rootCmd.AddCommand(
		c.postsCmd(),
		c.eventsCmd(),
		c.chatCmd(),
		c.connectionsCmd(),
		c.servicesCmd(),
		c.navCmd(),
		c.serveMetricsCmd(),
		c.configCmd(),
		versionCmd(),
	)

	return rootCmd
}

// load resolves configuration and builds the app once per invocation.
func (c *cli) load(cmd *cobra.Command) (*eventconnect.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Resolve(c.configDir)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if c.logLevel != "" {
		if _, err := eventconnect.ParseLevel(c.logLevel); err != nil {
			return nil, err
		}
		level = c.logLevel
	}

	stderr := c.stderr
	if stderr == nil {
		stderr = cmd.ErrOrStderr()
	}

	opts := []eventconnect.Option{
		eventconnect.WithLogger(eventconnect.NewLogger(stderr, level)),
		eventconnect.WithToasts(toast.NewWriter(stderr)),
	}
	if c.clock != nil {
		opts = append(opts, eventconnect.WithClock(c.clock))
	}

	app, err := eventconnect.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// printBanner prints the EventConnect ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.FgGreen.Sprint("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.FgYellow.Sprint("⚠"), fmt.Sprintf(format, args...))
}

package eventconnect

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/eventconnect/internal/config"
	"github.com/vango-dev/eventconnect/internal/debugserver"
	"github.com/vango-dev/eventconnect/internal/i18n"
	"github.com/vango-dev/eventconnect/internal/telemetry"
	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/chat"
	"github.com/vango-dev/eventconnect/pkg/connections"
	"github.com/vango-dev/eventconnect/pkg/events"
	"github.com/vango-dev/eventconnect/pkg/feed"
	"github.com/vango-dev/eventconnect/pkg/form"
	"github.com/vango-dev/eventconnect/pkg/nav"
	"github.com/vango-dev/eventconnect/pkg/services"
	"github.com/vango-dev/eventconnect/pkg/toast"
	"github.com/vango-dev/eventconnect/pkg/upload"
)

// =============================================================================
// App Type
// =============================================================================

// App holds every screen of one signed-in user session.
type App struct {
	Feed        *feed.Feed
	PostDialog  *feed.PostDialog
	Events      *events.Catalog
	EventDialog *events.Dialog
	Chat        *chat.Screen
	Connections *connections.Directory
	Services    *services.Screen
	Shell       *nav.Shell
	Uploads     *upload.Decoder

	// Configuration
	config *config.Config
	logger *slog.Logger
	clock  func() time.Time

	translator *i18n.Translator
	telemetry  *telemetry.Telemetry
	registry   *prometheus.Registry
	toasts     toast.Emitter

	// Each dialog owns its photo loader; closing a dialog cancels it.
	postLoader  *upload.Loader
	eventLoader *upload.Loader
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	logger         *slog.Logger
	clock          func() time.Time
	toasts         toast.Emitter
	router         nav.Navigator
	registry       *prometheus.Registry
	tracerProvider trace.TracerProvider
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithClock sets the clock used for ids, tabs and the countdown.
func WithClock(now func() time.Time) Option {
	return func(o *appOptions) {
		o.clock = now
	}
}

// WithToasts sets where toasts are emitted.
func WithToasts(e toast.Emitter) Option {
	return func(o *appOptions) {
		o.toasts = e
	}
}

// WithRouter sets the callback invoked on every page change.
func WithRouter(r nav.Navigator) Option {
	return func(o *appOptions) {
		o.router = r
	}
}

// WithRegistry sets the Prometheus registry. Default: a fresh registry per
// App.
func WithRegistry(r *prometheus.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *appOptions) {
		o.tracerProvider = tp
	}
}

// New builds the application from cfg. A nil cfg means config.New().
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	o := appOptions{
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	tr, err := i18n.New(cfg.Locale, o.logger)
	if err != nil {
		return nil, err
	}

	telOpts := []telemetry.Option{
		telemetry.WithRegistry(o.registry),
		telemetry.WithLogger(o.logger),
	}
	if o.tracerProvider != nil {
		telOpts = append(telOpts, telemetry.WithTracerProvider(o.tracerProvider))
	}
	tel := telemetry.New(telOpts...)

	a := &App{
		config:     cfg,
		logger:     o.logger,
		clock:      o.clock,
		translator: tr,
		telemetry:  tel,
		registry:   o.registry,
		toasts:     o.toasts,
	}

	a.Uploads = upload.NewDecoder(&upload.Config{
		MaxImageBytes: cfg.Upload.MaxImageBytes,
		AllowedTypes:  cfg.Upload.AllowedTypes,
	}, upload.WithLogger(o.logger), upload.WithReporter(tel))
	a.postLoader = upload.NewLoader(a.Uploads)
	a.eventLoader = upload.NewLoader(a.Uploads)

	formOpts := []form.Option{
		form.WithLogger(o.logger),
		form.WithTranslator(tr),
		form.WithObserver(tel),
	}

	a.Events = events.NewCatalog(
		events.WithClock(o.clock),
		events.WithLogger(o.logger),
	)
	a.EventDialog = events.NewDialog(a.Events, o.clock,
		append(formOpts, form.WithResetHook(a.eventLoader.Cancel))...)

	a.Feed = feed.New(nil, o.logger)
	a.PostDialog, err = feed.NewPostDialog(feed.DialogConfig{
		Variant: feed.Variant(cfg.PostDialog),
		Author: feed.Author{
			ID:       cfg.User.ID,
			Name:     cfg.User.Name,
			Initials: cfg.User.Initials,
		},
		Clock:          o.clock,
		OnEventCreated: a.addCreatedEvent,
	}, a.Feed, append(formOpts, form.WithResetHook(a.postLoader.Cancel))...)
	if err != nil {
		return nil, err
	}

	a.Shell = nav.NewShell(
		nav.WithRouter(o.router),
		nav.WithLogout(a.closeDialogs),
		nav.WithLogger(o.logger),
	)
	a.Chat = chat.NewScreen(
		chat.WithNarrowWidth(cfg.Layout.NarrowWidth),
		chat.WithClock(o.clock),
		chat.WithLogger(o.logger),
	)
	a.Connections = connections.NewDirectory(a.Shell, func() { a.Shell.Back() })
	a.Services = services.NewScreen(o.toasts, o.logger, services.WithMessages(tr))

	a.logger.Debug("app ready",
		"locale", cfg.Locale,
		"post_dialog", cfg.PostDialog,
		"user", cfg.User.ID,
	)
	return a, nil
}

// =============================================================================
// Accessors
// =============================================================================

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Translator returns the message translator.
func (a *App) Translator() *i18n.Translator {
	return a.translator
}

// Gatherer returns the metrics registry.
func (a *App) Gatherer() prometheus.Gatherer {
	return a.registry
}

// =============================================================================
// Cross-screen behaviour
// =============================================================================

// addCreatedEvent lists an event created from the post dialog in the
// events catalog.
func (a *App) addCreatedEvent(ev feed.NewEvent) {
	a.Events.Add(events.Event{
		ID:       ev.ID,
		Title:    ev.Title,
		Date:     ev.Date,
		Time:     ev.Time,
		Location: ev.Location,
		Type:     events.TypeInPerson,
	})
	a.logger.Info("event created from post", "event", ev.ID)
}

// closeDialogs discards both dialogs on logout. Their reset hooks cancel
// pending photo loads.
func (a *App) closeDialogs() {
	a.PostDialog.Close()
	a.EventDialog.Close()
}

// FilteredPosts returns the feed posts whose event matches filters. Posts
// are located through the events catalog.
func (a *App) FilteredPosts(filters catalog.Filters) []feed.Post {
	return a.Feed.Filter(filters, func(p feed.Post) (string, string, string) {
		return a.Events.Locate(p.EventID)
	})
}

// LoadPostPhoto decodes r in the background and attaches it to the post
// dialog, unless the dialog was closed or submitted in the meantime.
// Failures are reported as error toasts.
func (a *App) LoadPostPhoto(ctx context.Context, r io.Reader) {
	a.loadPhoto(ctx, r, a.postLoader, a.PostDialog.Generation(), a.PostDialog.SetTextIf)
}

// LoadEventPhoto is LoadPostPhoto for the create-event dialog.
func (a *App) LoadEventPhoto(ctx context.Context, r io.Reader) {
	a.loadPhoto(ctx, r, a.eventLoader, a.EventDialog.Generation(), a.EventDialog.SetTextIf)
}

func (a *App) loadPhoto(ctx context.Context, r io.Reader, l *upload.Loader, gen uint64, set func(gen uint64, name, value string) bool) {
	l.Load(ctx, r, func(uri string) {
		set(gen, "photo", uri)
	}, func(err error) {
		a.logger.Warn("photo rejected", "error", err)
		toast.Error(a.toasts, err.Error())
	})
}

// WaitUploads blocks until background photo loads finish.
func (a *App) WaitUploads() {
	a.postLoader.Wait()
	a.eventLoader.Wait()
}

// RunCountdown calls fn with the countdown to the next saved event until
// ctx is done, at the configured interval.
func (a *App) RunCountdown(ctx context.Context, fn func(feed.Countdown)) {
	feed.RunCountdown(ctx, a.config.CountdownInterval(), a.clock, fn)
}

// Countdown returns the current countdown to the next saved event.
func (a *App) Countdown() feed.Countdown {
	return feed.ComputeCountdown(feed.SavedEvents(), a.clock())
}

// =============================================================================
// Debugging
// =============================================================================

// State is a summary of the app used by the debug server.
type State struct {
	Page             nav.Request `json:"page"`
	Posts            int         `json:"posts"`
	Events           int         `json:"events"`
	PostDialog       bool        `json:"postDialogOpen"`
	EventDialog      bool        `json:"eventDialogOpen"`
	SelectedChat     string      `json:"selectedChat,omitempty"`
	ServicesSelected []string    `json:"servicesSelected"`
}

// Snapshot returns the current State.
func (a *App) Snapshot() State {
	st := State{
		Page:             a.Shell.Current(),
		Posts:            a.Feed.Len(),
		Events:           len(a.Events.List()),
		PostDialog:       a.PostDialog.IsOpen(),
		EventDialog:      a.EventDialog.IsOpen(),
		ServicesSelected: a.Services.Selected(),
	}
	if c, ok := a.Chat.Selected(); ok {
		st.SelectedChat = c.ID
	}
	return st
}

// DebugServer returns a server exposing the app's metrics and state on
// addr. It is not started.
func (a *App) DebugServer(addr string) *debugserver.Server {
	return debugserver.New(addr,
		debugserver.WithGatherer(a.registry),
		debugserver.WithState(func() any { return a.Snapshot() }),
		debugserver.WithLogger(a.logger),
	)
}

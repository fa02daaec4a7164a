// Package nav is the navigation shell: the page registry, the nav bar items
// and the current page. Screens never route themselves; they call a
// Navigator and the shell decides.
package nav

import (
	"errors"
	"log/slog"
	"sync"

	apperr "github.com/vango-dev/eventconnect/internal/errors"
)

// ErrUnknownPage is returned when navigating to a page that is not
// registered.
var ErrUnknownPage = errors.New("nav: unknown page")

// Page ids.
const (
	PagePosts                 = "posts"
	PageEvents                = "events"
	PageServices              = "services"
	PageChat                  = "chat"
	PageProfile               = "profile"
	PageEventCalendar         = "event-calendar"
	PageEventDetail           = "event-detail"
	PageConnectionMatchmaking = "connection-matchmaking"
	PageMyConnections         = "my-connections"
)

// Navigator receives navigation requests. entityID is "" when the page
// needs none.
type Navigator interface {
	Navigate(page, entityID string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(page, entityID string)

func (f NavigatorFunc) Navigate(page, entityID string) {
	f(page, entityID)
}

// Request is one navigation.
type Request struct {
	Page     string `json:"page"`
	EntityID string `json:"entityId,omitempty"`
}

// Item is a nav bar entry.
type Item struct {
	ID    string
	Label string
	Badge int
}

// Items returns the nav bar entries in display order.
func Items() []Item {
	return []Item{
		{ID: PagePosts, Label: "Home"},
		{ID: PageEvents, Label: "Events"},
		{ID: PageServices, Label: "Services"},
		{ID: PageChat, Label: "Chat", Badge: 3},
		{ID: PageProfile, Label: "Profile"},
	}
}

var extraPages = []string{
	PageEventCalendar,
	PageEventDetail,
	PageConnectionMatchmaking,
	PageMyConnections,
}

// Pages returns every routable page id.
func Pages() []string {
	var out []string
	for _, it := range Items() {
		out = append(out, it.ID)
	}
	return append(out, extraPages...)
}

// IsPage reports whether id is routable.
func IsPage(id string) bool {
	for _, p := range Pages() {
		if p == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Shell
// =============================================================================

// Option configures a Shell.
type Option func(*Shell)

// WithRouter sets the callback invoked after every accepted navigation.
func WithRouter(r Navigator) Option {
	return func(s *Shell) {
		s.router = r
	}
}

// WithLogout sets the logout callback.
func WithLogout(fn func()) Option {
	return func(s *Shell) {
		s.onLogout = fn
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

// Shell tracks the current page. It is safe for concurrent use.
type Shell struct {
	mu       sync.Mutex
	current  Request
	history  []Request
	router   Navigator
	onLogout func()
	logger   *slog.Logger
}

// NewShell creates a shell showing the home page.
func NewShell(opts ...Option) *Shell {
	s := &Shell{
		current: Request{Page: PagePosts},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Go switches to page. Unknown pages are rejected with ErrUnknownPage and
// leave the shell unchanged.
func (s *Shell) Go(page, entityID string) error {
	if !IsPage(page) {
		return apperr.New("E400").WithDetailf("page %q", page).Wrap(ErrUnknownPage)
	}

	s.mu.Lock()
	s.history = append(s.history, s.current)
	s.current = Request{Page: page, EntityID: entityID}
	router := s.router
	s.mu.Unlock()

	s.logger.Debug("navigate", "page", page, "entity", entityID)
	if router != nil {
		router.Navigate(page, entityID)
	}
	return nil
}

// Navigate implements Navigator for screens. Rejected pages are logged.
func (s *Shell) Navigate(page, entityID string) {
	if err := s.Go(page, entityID); err != nil {
		s.logger.Warn("navigation rejected", "page", page, "error", err)
	}
}

// Back returns to the previous page. It reports false when there is no
// history.
func (s *Shell) Back() bool {
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.current = prev
	router := s.router
	s.mu.Unlock()

	if router != nil {
		router.Navigate(prev.Page, prev.EntityID)
	}
	return true
}

// Current returns the page being shown.
func (s *Shell) Current() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Active reports whether the nav item id is the current page.
func (s *Shell) Active(id string) bool {
	return s.Current().Page == id
}

// Logout resets the shell to the home page and calls the logout callback.
func (s *Shell) Logout() {
	s.mu.Lock()
	s.current = Request{Page: PagePosts}
	s.history = nil
	fn := s.onLogout
	s.mu.Unlock()

	s.logger.Info("logged out")
	if fn != nil {
		fn()
	}
}

package events

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/nav"
)

// Tab is an events screen tab.
type Tab string

const (
	TabAll      Tab = "all"
	TabTrending Tab = "trending"
	TabUpcoming Tab = "upcoming"
	TabSaved    Tab = "saved"
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabAll, TabTrending, TabUpcoming, TabSaved}
}

// UpcomingWindow is how far ahead the upcoming tab looks.
const UpcomingWindow = 30 * 24 * time.Hour

// Option configures a Catalog.
type Option func(*Catalog)

// WithEvents replaces the seed events.
func WithEvents(evs []Event) Option {
	return func(c *Catalog) {
		c.events = append([]Event(nil), evs...)
	}
}

// WithClock sets the clock used by the upcoming tab. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// Catalog is the event list, newest additions first. It is safe for
// concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	events []Event
	saved  map[string]bool
	now    func() time.Time
	logger *slog.Logger
}

// NewCatalog creates a catalog holding SeedEvents.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		events: SeedEvents(),
		saved:  make(map[string]bool),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "events")
	return c
}

// Add puts ev at the top of the catalog.
func (c *Catalog) Add(ev Event) {
	c.mu.Lock()
	c.events = append([]Event{ev}, c.events...)
	c.mu.Unlock()
	c.logger.Info("event added", "id", ev.ID, "title", ev.Title)
}

// Lookup returns the event with id.
func (c *Catalog) Lookup(id string) (Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.events, func(e Event) bool { return e.ID == id })
}

// List returns every event.
func (c *Catalog) List() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Event(nil), c.events...)
}

// Save marks an event as saved. It reports false for unknown ids.
func (c *Catalog) Save(id string) bool {
	if _, ok := c.Lookup(id); !ok {
		return false
	}
	c.mu.Lock()
	c.saved[id] = true
	c.mu.Unlock()
	return true
}

// Unsave removes an event from the saved tab.
func (c *Catalog) Unsave(id string) {
	c.mu.Lock()
	delete(c.saved, id)
	c.mu.Unlock()
}

// IsSaved reports whether id is saved.
func (c *Catalog) IsSaved(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saved[id]
}

// Tab returns the events shown on tab.
func (c *Catalog) Tab(tab Tab) ([]Event, error) {
	all := c.List()
	switch tab {
	case TabAll:
		return all, nil
	case TabTrending:
		return lo.Filter(all, func(e Event, _ int) bool {
			return lo.Contains(trendingIDs, e.ID)
		}), nil
	case TabUpcoming:
		now := c.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return lo.Filter(all, func(e Event, _ int) bool {
			day, ok := e.Day(now.Location())
			return ok && !day.Before(today) && day.Sub(today) <= UpcomingWindow
		}), nil
	case TabSaved:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return lo.Filter(all, func(e Event, _ int) bool { return c.saved[e.ID] }), nil
	}
	return nil, fmt.Errorf("events: unknown tab %q", tab)
}

// Filter returns the events passing filters.
func (c *Catalog) Filter(filters catalog.Filters) []Event {
	all := c.List()
	if !filters.Active() {
		return all
	}
	return lo.Filter(all, func(e Event, _ int) bool {
		if filters.Category != "" && !e.InCategory(filters.Category) {
			return false
		}
		return filters.Match(filters.Category, e.Country, e.City)
	})
}

// Search returns the events whose title, category or tags contain term,
// ignoring case.
func (c *Catalog) Search(term string) []Event {
	term = strings.ToLower(strings.TrimSpace(term))
	all := c.List()
	if term == "" {
		return all
	}
	return lo.Filter(all, func(e Event, _ int) bool {
		if strings.Contains(strings.ToLower(e.Title), term) || strings.Contains(strings.ToLower(e.Category), term) {
			return true
		}
		return lo.SomeBy(e.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), term)
		})
	})
}

// Locate returns the category and place of the event with id. It is a
// feed.Locator once adapted to a post's event id.
func (c *Catalog) Locate(id string) (category, country, city string) {
	ev, ok := c.Lookup(id)
	if !ok {
		return "", "", ""
	}
	return ev.Category, ev.Country, ev.City
}

// HeroTargets are the pages linked from the events hero banner.
func HeroTargets() []string {
	return []string{nav.PageEvents, nav.PageEventCalendar, nav.PageConnectionMatchmaking}
}

// ViewEvent shows the detail page of an event.
func ViewEvent(n nav.Navigator, id string) {
	if n == nil {
		return
	}
	n.Navigate(nav.PageEventDetail, id)
}

// Package services implements the event services catalog and booking.
package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/toast"
)

// ErrNothingSelected is returned when booking with no service selected.
var ErrNothingSelected = errors.New("services: nothing selected")

// NothingSelectedMessage is shown to the user for ErrNothingSelected.
const NothingSelectedMessage = "Please select at least one service"

// Service is a bookable extra.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
}

// Catalog returns the bookable services.
func Catalog() []Service {
	return []Service{
		{ID: "translator", Name: "Translator Services", Description: "Professional translation services in multiple languages", Price: "$50/hour", Available: true},
		{ID: "transfer", Name: "Transfer & Shuttle", Description: "Private or shared transportation to and from the venue", Price: "$30", Available: true},
		{ID: "vip", Name: "VIP Access", Description: "Exclusive seating, networking lounge, and premium perks", Price: "$200", Available: true},
		{ID: "assistant", Name: "Personal Assistant", Description: "Dedicated support throughout the event", Price: "$100/day", Available: true},
		{ID: "accessibility", Name: "Accessibility Services", Description: "Wheelchair access, sign language, and special accommodations", Price: "Free", Available: true},
		{ID: "accommodation", Name: "Accommodation Suggestions", Description: "Curated hotel recommendations near the venue", Price: "From $120/night", Available: true},
	}
}

// Messages localises the booking toasts.
type Messages interface {
	Translate(id, fallback string) string
	Plural(id string, count int, fallback string) string
}

// Option configures a Screen.
type Option func(*Screen)

// WithMessages sets the toast message source.
func WithMessages(m Messages) Option {
	return func(s *Screen) {
		s.messages = m
	}
}

// Screen holds the service selection. It is safe for concurrent use.
type Screen struct {
	mu       sync.Mutex
	services []Service
	selected []string
	toasts   toast.Emitter
	messages Messages
	logger   *slog.Logger
}

// NewScreen creates a screen. toasts and logger may be nil.
func NewScreen(toasts toast.Emitter, logger *slog.Logger, opts ...Option) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Screen{
		services: Catalog(),
		toasts:   toasts,
		logger:   logger.With("component", "services"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Services returns the catalog.
func (s *Screen) Services() []Service {
	return append([]Service(nil), s.services...)
}

// Toggle selects or deselects a service and reports whether it is now
// selected. Unknown ids are ignored.
func (s *Screen) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.ContainsBy(s.services, func(sv Service) bool { return sv.ID == id }) {
		s.logger.Warn("unknown service", "id", id)
		return false
	}
	if lo.Contains(s.selected, id) {
		s.selected = lo.Without(s.selected, id)
		return false
	}
	s.selected = append(s.selected, id)
	return true
}

// Selected returns the selected service ids in selection order.
func (s *Screen) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// Book books the selected services and returns the confirmation message.
// The outcome is also emitted as a toast.
func (s *Screen) Book() (string, error) {
	n := len(s.Selected())
	if n == 0 {
		msg := NothingSelectedMessage
		if s.messages != nil {
			msg = s.messages.Translate("services_none_selected", msg)
		}
		toast.Error(s.toasts, msg)
		return "", ErrNothingSelected
	}
	msg := fmt.Sprintf("Booking %d service(s)...", n)
	if s.messages != nil {
		msg = s.messages.Plural("services_booking", n, msg)
	}
	s.logger.Info("services booked", "count", n)
	toast.Success(s.toasts, msg)
	return msg, nil
}

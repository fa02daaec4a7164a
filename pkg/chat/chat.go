// Package chat implements the messages screen: the conversation list with
// its tabs and search, the selected thread and its composer, and the system
// notifications.
package chat

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Tab filters the conversation list.
type Tab string

const (
	TabAll    Tab = "all"
	TabDirect Tab = "direct"
	TabClubs  Tab = "clubs"
)

// DefaultNarrowWidth is the viewport width under which selecting a chat
// hides the list.
const DefaultNarrowWidth = 1024

// Option configures a Screen.
type Option func(*Screen)

// WithNarrowWidth sets the narrow layout breakpoint.
func WithNarrowWidth(w int) Option {
	return func(s *Screen) {
		if w > 0 {
			s.narrowWidth = w
		}
	}
}

// WithClock sets the clock stamping sent messages. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Screen) {
		s.now = now
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		s.logger = l
	}
}

// Screen holds the chat screen state. It is safe for concurrent use.
type Screen struct {
	mu            sync.Mutex
	conversations []Conversation
	threads       map[string][]Message
	notifications []Notification

	tab      Tab
	search   string
	selected string
	showList bool
	draft    string

	narrowWidth int
	now         func() time.Time
	logger      *slog.Logger
}

// NewScreen creates a screen with the seed data, showing the list.
func NewScreen(opts ...Option) *Screen {
	s := &Screen{
		conversations: SeedConversations(),
		threads:       SeedThreads(),
		notifications: SeedNotifications(),
		tab:           TabAll,
		showList:      true,
		narrowWidth:   DefaultNarrowWidth,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "chat")
	return s
}

// SetTab switches the list tab. Unknown tabs are rejected.
func (s *Screen) SetTab(tab Tab) error {
	switch tab {
	case TabAll, TabDirect, TabClubs:
	default:
		return fmt.Errorf("chat: unknown tab %q", tab)
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	return nil
}

// SetSearch sets the list search term.
func (s *Screen) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

// Conversations returns the list for the current tab and search term.
// The search matches names and last messages, ignoring case.
func (s *Screen) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(s.search))
	return lo.Filter(s.conversations, func(c Conversation, _ int) bool {
		switch s.tab {
		case TabDirect:
			if c.Kind != KindDirect {
				return false
			}
		case TabClubs:
			if c.Kind != KindGroup {
				return false
			}
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.LastMessage), term)
	})
}

// Select opens a conversation. Under the narrow breakpoint the list is
// hidden. Unknown ids are ignored.
func (s *Screen) Select(id string, width int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.ContainsBy(s.conversations, func(c Conversation) bool { return c.ID == id }) {
		s.logger.Warn("unknown conversation", "id", id)
		return false
	}
	s.selected = id
	if width < s.narrowWidth {
		s.showList = false
	}
	return true
}

// Back closes the conversation and shows the list again.
func (s *Screen) Back() {
	s.mu.Lock()
	s.selected = ""
	s.showList = true
	s.mu.Unlock()
}

// Selected returns the open conversation.
func (s *Screen) Selected() (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation(s.selected)
}

// ListVisible reports whether the conversation list is shown.
func (s *Screen) ListVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showList
}

// Thread returns the messages of a conversation.
func (s *Screen) Thread(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.threads[id]...)
}

// Notifications returns the system messages.
func (s *Screen) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// SetDraft replaces the composer text.
func (s *Screen) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Draft returns the composer text.
func (s *Screen) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Send appends the draft to the open conversation and clears it. Blank
// drafts, or sending with no conversation open, do nothing.
func (s *Screen) Send() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(s.draft)
	if text == "" || s.selected == "" {
		return Message{}, false
	}
	msg := Message{
		ID:     uuid.NewString(),
		Sender: "Me",
		Text:   text,
		Time:   s.now().Format("3:04 PM"),
		IsMe:   true,
	}
	s.threads[s.selected] = append(s.threads[s.selected], msg)
	for i := range s.conversations {
		if s.conversations[i].ID == s.selected {
			s.conversations[i].LastMessage = text
			s.conversations[i].Time = "Just now"
		}
	}
	s.draft = ""
	s.logger.Debug("message sent", "conversation", s.selected)
	return msg, true
}

func (s *Screen) conversation(id string) (Conversation, bool) {
	if id == "" {
		return Conversation{}, false
	}
	return lo.Find(s.conversations, func(c Conversation) bool { return c.ID == id })
}

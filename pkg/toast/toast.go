package toast

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"
)

// EventName is the event name dispatched for toasts.
const EventName = "eventconnect:toast"

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Emitter receives named events.
type Emitter interface {
	Emit(name string, data any)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(name string, data any)

func (f EmitterFunc) Emit(name string, data any) {
	f(name, data)
}

// Show emits a toast notification.
//
// The payload is a map with:
//   - "level": "success|error|warning|info"
//   - "message": the text
func Show(e Emitter, level Type, message string) {
	if e == nil {
		return
	}
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"message": message,
	})
}

// Success shows a success toast.
//
//	toast.Success(e, "Post created")
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Error shows an error toast.
func Error(e Emitter, message string) {
	Show(e, TypeError, message)
}

// Warning shows a warning toast.
func Warning(e Emitter, message string) {
	Show(e, TypeWarning, message)
}

// Info shows an info toast.
func Info(e Emitter, message string) {
	Show(e, TypeInfo, message)
}

// WithTitle shows a toast with a title and message.
func WithTitle(e Emitter, level Type, title, message string) {
	if e == nil {
		return
	}
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"title":   title,
		"message": message,
	})
}

// =============================================================================
// Emitters
// =============================================================================

// Toast is a decoded toast payload.
type Toast struct {
	Level   Type
	Title   string
	Message string
}

func decode(data any) (Toast, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return Toast{}, false
	}
	var t Toast
	if s, ok := m["level"].(string); ok {
		t.Level = Type(s)
	}
	t.Title, _ = m["title"].(string)
	t.Message, _ = m["message"].(string)
	return t, true
}

// Recorder stores toasts in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Emit(name string, data any) {
	if name != EventName {
		return
	}
	t, ok := decode(data)
	if !ok {
		return
	}
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Toasts returns the toasts received so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Writer prints toasts as coloured lines.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

var levelColor = map[Type]color.Color{
	TypeSuccess: color.FgGreen,
	TypeError:   color.FgRed,
	TypeWarning: color.FgYellow,
	TypeInfo:    color.FgCyan,
}

func (w *Writer) Emit(name string, data any) {
	if name != EventName {
		return
	}
	t, ok := decode(data)
	if !ok {
		return
	}
	c, ok := levelColor[t.Level]
	if !ok {
		c = color.FgDefault
	}
	if t.Title != "" {
		fmt.Fprintf(w.w, "%s %s: %s\n", c.Sprint("●"), color.Bold.Sprint(t.Title), t.Message)
		return
	}
	fmt.Fprintf(w.w, "%s %s\n", c.Sprint("●"), t.Message)
}

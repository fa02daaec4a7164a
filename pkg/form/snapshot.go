package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func stripMarkup(s string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	// StrictPolicy escapes what it keeps; records hold plain text.
	return html.UnescapeString(textPolicy.Sanitize(s))
}

// Snapshot is the read-only view of a valid dialog handed to a Builder.
type Snapshot struct {
	Mode Mode

	schema *Schema
	fields map[string]Value
}

// Text returns a scalar field. Fields declared with sanitize have markup
// stripped.
func (s Snapshot) Text(name string) string {
	v := s.fields[name].text
	if spec, ok := s.schema.fields[name]; ok && spec.Sanitize {
		return stripMarkup(v)
	}
	return v
}

// Items returns a copy of a list field.
func (s Snapshot) Items(name string) []string {
	return s.fields[name].Items()
}

// Filled returns the non-blank items of a list field, trimmed.
func (s Snapshot) Filled(name string) []string {
	return s.fields[name].Filled()
}

// Joined returns the non-blank items of a list field joined by sep.
func (s Snapshot) Joined(name, sep string) string {
	return strings.Join(s.Filled(name), sep)
}

package form

import "strings"

// Value is a single field value: scalar text (free text, a selected option
// id, an image data URI) or an ordered list of items (tuple slots, multi
// selections).
type Value struct {
	text  string
	items []string
}

// Text returns a scalar value.
func Text(s string) Value {
	return Value{text: s}
}

// Items returns a list value.
func Items(items ...string) Value {
	return Value{items: append([]string(nil), items...)}
}

// String returns the scalar text.
func (v Value) String() string {
	return v.text
}

// Items returns a copy of the list items.
func (v Value) Items() []string {
	if v.items == nil {
		return nil
	}
	return append([]string(nil), v.items...)
}

// Filled returns the list items that are non-blank, trimmed.
func (v Value) Filled() []string {
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsZero reports whether the value holds neither text nor items.
func (v Value) IsZero() bool {
	return v.text == "" && len(v.items) == 0
}

func (v Value) clone() Value {
	return Value{text: v.text, items: v.Items()}
}

// zeroValue returns the initial value for a field: tuples start with
// Size empty slots, everything else empty.
func zeroValue(spec *FieldSpec) Value {
	if spec.Kind == KindTuple {
		return Value{items: make([]string, spec.Size)}
	}
	return Value{}
}

package form

import (
	"strings"
)

// Validator checks a single field value.
type Validator interface {
	// Validate returns nil if the value is acceptable, or a ValidationError.
	Validate(value Value) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value Value) error

func (f ValidatorFunc) Validate(value Value) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ----------------------------------------------------------------------------
// Emptiness rules
// ----------------------------------------------------------------------------

// satisfied is the authoritative per-kind completeness rule used by the
// full validation pass. Sanitized text is judged after markup is
// stripped, as the record builder will read it.
func satisfied(spec *FieldSpec, v Value) bool {
	switch spec.Kind {
	case KindText:
		text := v.text
		if spec.Sanitize {
			text = stripMarkup(text)
		}
		return strings.TrimSpace(text) != ""
	case KindImage, KindSelect:
		return v.text != ""
	case KindMulti:
		return len(v.items) > 0
	case KindTuple:
		return len(v.Filled()) == spec.Size && len(v.items) == spec.Size
	}
	return false
}

// started reports whether a value is non-empty enough to clear an error
// optimistically. It agrees with satisfied for every scalar kind; for
// tuples a single filled slot is enough, matching what a user sees while
// typing into the first of several inputs.
func started(spec *FieldSpec, v Value) bool {
	if spec.Kind == KindTuple {
		return len(v.Filled()) > 0
	}
	return satisfied(spec, v)
}

// ----------------------------------------------------------------------------
// Validators
// ----------------------------------------------------------------------------

// Required validates that the value is complete for its kind.
func Required(spec *FieldSpec, msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value Value) error {
		if !satisfied(spec, value) {
			return ValidationError{Field: spec.Name, Message: msg}
		}
		return nil
	})
}

// Custom creates a validator from a custom function.
func Custom(fn func(value Value) error) Validator {
	return ValidatorFunc(fn)
}

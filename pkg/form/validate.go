package form

// Errors maps a field name or group key to its message. An empty message
// means "no error".
type Errors map[string]string

// Valid reports whether every message is empty.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Failed returns the keys holding a message.
func (e Errors) Failed() []string {
	var out []string
	for k, msg := range e {
		if msg != "" {
			out = append(out, k)
		}
	}
	return out
}

// Clone returns a copy of the map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

func blankErrors(s *Schema) Errors {
	errs := make(Errors, len(s.keys))
	for _, k := range s.keys {
		errs[k] = ""
	}
	return errs
}

// Validate is the authoritative validation pass. It is a pure function of
// the schema, the active mode and the field values; the returned map holds
// every error key of the schema, rebuilt from scratch.
//
// Fields outside mode groups are checked when Required. A dependent field
// (Parent set) is only checked while its parent is complete, so an empty
// parent is reported alone. Only the active mode's group is checked.
func Validate(s *Schema, mode Mode, fields map[string]Value, tr Translator) (Errors, bool) {
	errs := blankErrors(s)

	for i := range s.Fields {
		spec := &s.Fields[i]
		if _, owned := s.owner[spec.Name]; owned || !spec.Required {
			continue
		}
		if spec.Parent != "" {
			parent := s.fields[spec.Parent]
			if !satisfied(parent, fields[spec.Parent]) {
				continue
			}
		}
		if err := Required(spec, spec.Message.text(tr)).Validate(fields[spec.Name]); err != nil {
			errs[spec.Name] = err.Error()
		}
	}

	if m, ok := s.modes[mode]; ok {
		for _, name := range m.Fields {
			spec := s.fields[name]
			msg := spec.Message.text(tr)
			if m.ErrorKey != "" {
				msg = m.Message.text(tr)
			}
			err := Required(spec, msg).Validate(fields[name])
			if err == nil {
				continue
			}
			if m.ErrorKey != "" {
				errs[m.ErrorKey] = err.Error()
				break
			}
			errs[name] = err.Error()
		}
	}

	return errs, errs.Valid()
}

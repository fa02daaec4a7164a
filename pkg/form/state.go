package form

// State is a copy of a dialog's state at one point in time.
type State struct {
	Mode   Mode
	Fields map[string]Value
	Errors Errors
	Open   bool
}

// initialState returns the state a dialog has before any input: default
// mode, zero fields, every error key present and empty, closed.
func initialState(s *Schema) State {
	fields := make(map[string]Value, len(s.Fields))
	for i := range s.Fields {
		spec := &s.Fields[i]
		fields[spec.Name] = zeroValue(spec)
	}
	return State{
		Mode:   s.DefaultMode,
		Fields: fields,
		Errors: blankErrors(s),
	}
}

func (st State) clone() State {
	fields := make(map[string]Value, len(st.Fields))
	for k, v := range st.Fields {
		fields[k] = v.clone()
	}
	return State{
		Mode:   st.Mode,
		Fields: fields,
		Errors: st.Errors.Clone(),
		Open:   st.Open,
	}
}

// IsEmpty reports whether every field holds its zero value and no error is
// set.
func (st State) IsEmpty() bool {
	for _, v := range st.Fields {
		if len(v.Filled()) > 0 || v.text != "" {
			return false
		}
	}
	return st.Errors.Valid()
}

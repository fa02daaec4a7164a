package form

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/eventconnect/internal/errors"
)

// Kind determines how a field's emptiness is judged.
type Kind string

const (
	// KindText is free text; empty after trimming whitespace.
	KindText Kind = "text"
	// KindImage is an image data URI; empty when "".
	KindImage Kind = "image"
	// KindSelect is a selected option id; empty when "".
	KindSelect Kind = "select"
	// KindMulti is a multi-selection; empty when nothing is selected.
	KindMulti Kind = "multi"
	// KindTuple is a fixed number of slots; complete only when every slot
	// is non-blank.
	KindTuple Kind = "tuple"
)

// Mode names a mutually exclusive completion strategy.
type Mode string

// Message is a translatable message: ID is looked up through the
// Translator, Default is used when no translation exists.
type Message struct {
	ID      string `yaml:"id"`
	Default string `yaml:"default"`
}

// FieldSpec declares a single field.
type FieldSpec struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	// Required applies to fields outside any mode group.
	Required bool `yaml:"required"`

	// Size is the slot count of a tuple.
	Size int `yaml:"size"`

	// Prefix is stripped from the start of tuple slot input ("#").
	Prefix string `yaml:"prefix"`

	// Parent makes this a dependent selector: it is cleared whenever the
	// parent is set, and only required while the parent has a value.
	Parent string `yaml:"parent"`

	// Sanitize strips markup when the value is read from a Snapshot.
	Sanitize bool `yaml:"sanitize"`

	Message Message `yaml:"message"`
}

// ModeSpec declares a completion group.
type ModeSpec struct {
	Name Mode `yaml:"name"`

	// ErrorKey reports any failure in the group as one composite error.
	// When empty, each failing field reports its own message.
	ErrorKey string `yaml:"error_key"`

	Message Message  `yaml:"message"`
	Fields  []string `yaml:"fields"`

	// Optional fields belong to the group (they are reset when another
	// mode is chosen) but are never required.
	Optional []string `yaml:"optional"`
}

// members returns the required then optional fields of the group.
func (m *ModeSpec) members() []string {
	out := make([]string, 0, len(m.Fields)+len(m.Optional))
	out = append(out, m.Fields...)
	return append(out, m.Optional...)
}

// Schema is a compiled dialog rule set.
type Schema struct {
	Name        string      `yaml:"name"`
	DefaultMode Mode        `yaml:"default_mode"`
	Fields      []FieldSpec `yaml:"fields"`
	Modes       []ModeSpec  `yaml:"modes"`

	fields   map[string]*FieldSpec
	modes    map[Mode]*ModeSpec
	owner    map[string]*ModeSpec
	children map[string][]string
	keys     []string
}

// Rules is a set of schemas keyed by form name.
type Rules map[string]*Schema

// Get returns the named schema.
func (r Rules) Get(name string) (*Schema, error) {
	s, ok := r[name]
	if !ok {
		return nil, errors.New("E204").WithDetailf("form %q", name)
	}
	return s, nil
}

// MustGet is like Get but panics when the form is missing.
func (r Rules) MustGet(name string) *Schema {
	s, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseRules parses and compiles a YAML rule set.
func ParseRules(data []byte) (Rules, error) {
	var doc struct {
		Forms []*Schema `yaml:"forms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E200").Wrap(err)
	}

	rules := make(Rules, len(doc.Forms))
	for _, s := range doc.Forms {
		if _, dup := rules[s.Name]; dup {
			return nil, errors.New("E203").WithDetailf("form %q declared twice", s.Name)
		}
		if err := s.compile(); err != nil {
			return nil, err
		}
		rules[s.Name] = s
	}
	return rules, nil
}

// MustParseRules is like ParseRules but panics on error. It is meant for
// rule sets embedded in the binary.
func MustParseRules(data []byte) Rules {
	rules, err := ParseRules(data)
	if err != nil {
		panic(err)
	}
	return rules
}

func (s *Schema) compile() error {
	s.fields = make(map[string]*FieldSpec, len(s.Fields))
	s.modes = make(map[Mode]*ModeSpec, len(s.Modes))
	s.owner = make(map[string]*ModeSpec)
	s.children = make(map[string][]string)
	s.keys = nil

	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			return errors.New("E203").WithDetailf("form %q: field #%d has no name", s.Name, i)
		}
		if _, dup := s.fields[f.Name]; dup {
			return errors.New("E203").WithDetailf("form %q: field %q declared twice", s.Name, f.Name)
		}
		switch f.Kind {
		case KindText, KindImage, KindSelect, KindMulti:
		case KindTuple:
			if f.Size <= 0 {
				return errors.New("E203").WithDetailf("form %q: tuple %q needs a positive size", s.Name, f.Name)
			}
		default:
			return errors.New("E203").WithDetailf("form %q: field %q has unknown kind %q", s.Name, f.Name, f.Kind)
		}
		s.fields[f.Name] = f
	}

	for _, f := range s.Fields {
		if f.Parent == "" {
			continue
		}
		if _, ok := s.fields[f.Parent]; !ok {
			return errors.New("E201").WithDetailf("form %q: %q depends on unknown field %q", s.Name, f.Name, f.Parent)
		}
		s.children[f.Parent] = append(s.children[f.Parent], f.Name)
	}

	for i := range s.Modes {
		m := &s.Modes[i]
		if _, dup := s.modes[m.Name]; dup {
			return errors.New("E202").WithDetailf("form %q: mode %q declared twice", s.Name, m.Name)
		}
		for _, name := range m.members() {
			if _, ok := s.fields[name]; !ok {
				return errors.New("E201").WithDetailf("form %q: mode %q lists unknown field %q", s.Name, m.Name, name)
			}
			if prev, taken := s.owner[name]; taken {
				return errors.New("E202").WithDetailf("form %q: field %q belongs to modes %q and %q", s.Name, name, prev.Name, m.Name)
			}
			s.owner[name] = m
		}
		s.modes[m.Name] = m
	}

	if len(s.Modes) > 0 {
		if s.DefaultMode == "" {
			s.DefaultMode = s.Modes[0].Name
		}
		if _, ok := s.modes[s.DefaultMode]; !ok {
			return errors.New("E202").WithDetailf("form %q: default mode %q is not declared", s.Name, s.DefaultMode)
		}
	} else if s.DefaultMode != "" {
		return errors.New("E202").WithDetailf("form %q: default mode %q without modes", s.Name, s.DefaultMode)
	}

	seen := make(map[string]bool)
	addKey := func(k string) {
		if !seen[k] {
			seen[k] = true
			s.keys = append(s.keys, k)
		}
	}
	for _, f := range s.Fields {
		if _, owned := s.owner[f.Name]; !owned && f.Required {
			addKey(f.Name)
		}
	}
	for _, m := range s.Modes {
		if m.ErrorKey != "" {
			addKey(m.ErrorKey)
			continue
		}
		for _, name := range m.Fields {
			addKey(name)
		}
	}
	return nil
}

// Field returns the spec of the named field.
func (s *Schema) Field(name string) (*FieldSpec, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// HasMode reports whether m is declared.
func (s *Schema) HasMode(m Mode) bool {
	_, ok := s.modes[m]
	return ok
}

// ModeNames returns the declared modes in declaration order.
func (s *Schema) ModeNames() []Mode {
	out := make([]Mode, 0, len(s.Modes))
	for _, m := range s.Modes {
		out = append(out, m.Name)
	}
	return out
}

// ErrorKeys returns every key the error map can hold, in declaration order.
func (s *Schema) ErrorKeys() []string {
	return append([]string(nil), s.keys...)
}

// errorKey returns the key under which a field's error is reported.
func (s *Schema) errorKey(field string) string {
	if m, ok := s.owner[field]; ok && m.ErrorKey != "" {
		return m.ErrorKey
	}
	return field
}

func (s *Schema) String() string {
	return fmt.Sprintf("form(%s)", s.Name)
}

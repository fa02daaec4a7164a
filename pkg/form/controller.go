package form

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Builder turns a validated snapshot into a record. Returning false aborts
// the submit without resetting the dialog (e.g. a selected id that no
// longer resolves).
type Builder[R any] func(Snapshot) (R, bool)

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	translator Translator
	observer   Observer
	onReset    func()
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTranslator sets the message translator. Default: Untranslated.
func WithTranslator(tr Translator) Option {
	return func(o *options) {
		o.translator = tr
	}
}

// WithObserver sets the submit observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithResetHook sets fn to run after every reset: Close and each
// successful Submit. It runs outside the dialog lock.
func WithResetHook(fn func()) Option {
	return func(o *options) {
		o.onReset = fn
	}
}

// Controller owns the state of one dialog instance.
type Controller[R any] struct {
	schema *Schema
	build  Builder[R]
	commit func(R)

	id         string
	logger     *slog.Logger
	translator Translator
	observer   Observer
	onReset    func()

	mu    sync.Mutex
	state State
	// gen counts resets. Asynchronous writers capture it with Generation
	// and lose their write once the dialog has been reset.
	gen uint64
}

// NewController creates a closed dialog for schema. build turns a valid
// dialog into a record; commit (optional) receives every record created.
func NewController[R any](schema *Schema, build Builder[R], commit func(R), opts ...Option) *Controller[R] {
	o := options{
		logger:     slog.Default(),
		translator: Untranslated,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.translator == nil {
		o.translator = Untranslated
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	id := uuid.NewString()
	return &Controller[R]{
		schema:     schema,
		build:      build,
		commit:     commit,
		id:         id,
		logger:     o.logger.With("form", schema.Name, "dialog", id),
		translator: o.translator,
		observer:   o.observer,
		onReset:    o.onReset,
		state:      initialState(schema),
	}
}

// Schema returns the dialog's rule set.
func (c *Controller[R]) Schema() *Schema {
	return c.schema
}

// ID returns the dialog instance id used in logs.
func (c *Controller[R]) ID() string {
	return c.id
}

// =============================================================================
// Visibility
// =============================================================================

// Open shows the dialog.
func (c *Controller[R]) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Open = true
}

// Close hides the dialog and discards everything entered.
func (c *Controller[R]) Close() {
	c.mu.Lock()
	c.state = initialState(c.schema)
	c.gen++
	c.mu.Unlock()

	c.logger.Debug("dialog closed")
	if c.onReset != nil {
		c.onReset()
	}
}

// SetOpen mirrors a dialog library's open-change callback.
func (c *Controller[R]) SetOpen(open bool) {
	if open {
		c.Open()
		return
	}
	c.Close()
}

// IsOpen reports whether the dialog is shown.
func (c *Controller[R]) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Open
}

// =============================================================================
// Reads
// =============================================================================

// State returns a copy of the current state.
func (c *Controller[R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Mode returns the active mode.
func (c *Controller[R]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Mode
}

// Value returns a field value.
func (c *Controller[R]) Value(name string) Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Fields[name].clone()
}

// Errors returns a copy of the error map.
func (c *Controller[R]) Errors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Errors.Clone()
}

// Generation identifies the current dialog session. It changes on every
// Close and every successful Submit.
func (c *Controller[R]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Error returns the message stored under key, or "".
func (c *Controller[R]) Error(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Errors[key]
}

// =============================================================================
// Mutations
// =============================================================================

// SetMode activates m. Fields owned by every other mode are reset, and all
// mode group errors are cleared; fields shared across modes keep their
// values and errors. Switching never reports an error.
func (c *Controller[R]) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.schema.HasMode(m) {
		c.logger.Warn("unknown mode ignored", "mode", m)
		return
	}

	for i := range c.schema.Modes {
		spec := &c.schema.Modes[i]
		if spec.ErrorKey != "" {
			c.state.Errors[spec.ErrorKey] = ""
		}
		for _, name := range spec.members() {
			if _, tracked := c.state.Errors[name]; tracked && spec.ErrorKey == "" {
				c.state.Errors[name] = ""
			}
			if spec.Name != m {
				c.state.Fields[name] = zeroValue(c.schema.fields[name])
			}
		}
	}

	if c.state.Mode != m {
		c.logger.Debug("mode switched", "from", c.state.Mode, "to", m)
	}
	c.state.Mode = m
}

// SetField replaces a field value. A non-empty value clears the field's
// error key; setting a parent selector resets its dependents.
func (c *Controller[R]) SetField(name string, v Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setField(name, v)
}

// SetTextIf is SetText for a value computed in the background: it applies
// only while the dialog is still in generation gen and reports whether it
// did.
func (c *Controller[R]) SetTextIf(gen uint64, name, s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("stale write dropped", "field", name)
		return false
	}
	c.setField(name, Text(s))
	return true
}

// setField is SetField with c.mu held.
func (c *Controller[R]) setField(name string, v Value) {
	spec, ok := c.schema.fields[name]
	if !ok {
		c.logger.Warn("unknown field ignored", "field", name)
		return
	}

	if spec.Kind == KindTuple {
		v = normalizeSlots(spec, v.items)
	}
	c.state.Fields[name] = v.clone()

	for _, child := range c.schema.children[name] {
		c.state.Fields[child] = zeroValue(c.schema.fields[child])
	}

	c.clearSatisfied(spec, v)
}

// SetText is SetField with a scalar value.
func (c *Controller[R]) SetText(name, s string) {
	c.SetField(name, Text(s))
}

// SetSlot updates one slot of a tuple. The configured prefix is stripped
// from the start of the input.
func (c *Controller[R]) SetSlot(name string, index int, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spec, ok := c.schema.fields[name]
	if !ok || spec.Kind != KindTuple || index < 0 || index >= spec.Size {
		c.logger.Warn("invalid slot ignored", "field", name, "index", index)
		return
	}

	slots := c.state.Fields[name].Items()
	if len(slots) != spec.Size {
		slots = normalizeSlots(spec, slots).items
	}
	clean := stripPrefix(s, spec.Prefix)
	slots[index] = clean
	c.state.Fields[name] = Value{items: slots}

	if strings.TrimSpace(clean) != "" {
		c.state.Errors[c.schema.errorKey(name)] = ""
	}
}

// BlurSlot normalises a tuple slot when its input loses focus: the prefix
// and surrounding whitespace are removed. Blank slots are left untouched.
func (c *Controller[R]) BlurSlot(name string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spec, ok := c.schema.fields[name]
	if !ok || spec.Kind != KindTuple || index < 0 || index >= spec.Size {
		return
	}
	slots := c.state.Fields[name].Items()
	if index >= len(slots) {
		return
	}
	if formatted := strings.TrimSpace(stripPrefix(slots[index], spec.Prefix)); formatted != "" {
		slots[index] = formatted
		c.state.Fields[name] = Value{items: slots}
	}
}

// ToggleItem adds item to a multi-selection, or removes it if present.
// Blank items are ignored.
func (c *Controller[R]) ToggleItem(name, item string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(item) == "" {
		c.logger.Warn("blank item ignored", "field", name)
		return
	}

	spec, ok := c.schema.fields[name]
	if !ok || spec.Kind != KindMulti {
		c.logger.Warn("toggle on non multi field ignored", "field", name)
		return
	}

	current := c.state.Fields[name].items
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, it := range current {
		if it == item {
			removed = true
			continue
		}
		next = append(next, it)
	}
	if !removed {
		next = append(next, item)
	}

	v := Value{items: next}
	c.state.Fields[name] = v
	c.clearSatisfied(spec, v)
}

// RemoveField resets a field to empty and clears its error, as when a user
// removes an attached photo.
func (c *Controller[R]) RemoveField(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spec, ok := c.schema.fields[name]
	if !ok {
		return
	}
	c.state.Fields[name] = zeroValue(spec)
	for _, child := range c.schema.children[name] {
		c.state.Fields[child] = zeroValue(c.schema.fields[child])
	}
	c.state.Errors[c.schema.errorKey(name)] = ""
}

// clearSatisfied is the optimistic partial validation step: it clears the
// error key of a field that just became non-empty and never sets one.
// Callers hold c.mu.
func (c *Controller[R]) clearSatisfied(spec *FieldSpec, v Value) {
	if !started(spec, v) {
		return
	}
	key := c.schema.errorKey(spec.Name)
	if _, tracked := c.state.Errors[key]; tracked {
		c.state.Errors[key] = ""
	}
}

// =============================================================================
// Validation & submission
// =============================================================================

// Validate runs the full validation pass, replaces the error map and
// reports whether the dialog is valid.
func (c *Controller[R]) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller[R]) validateLocked() bool {
	errs, ok := Validate(c.schema, c.state.Mode, c.state.Fields, c.translator)
	c.state.Errors = errs
	return ok
}

// Submit validates the dialog. When valid, it builds the record, resets and
// closes the dialog, then hands the record to the commit callback. When
// invalid, the only effect is the refreshed error map.
func (c *Controller[R]) Submit(ctx context.Context) (R, bool) {
	var zero R

	c.mu.Lock()
	mode := c.state.Mode
	_, done := c.observer.SubmitStarted(ctx, c.schema.Name, mode)

	if !c.validateLocked() {
		errs := c.state.Errors.Clone()
		c.mu.Unlock()
		c.logger.Debug("submit rejected", "mode", mode, "errors", errs.Failed())
		done(Outcome{Form: c.schema.Name, Mode: mode, Errors: errs})
		return zero, false
	}

	snap := Snapshot{Mode: mode, schema: c.schema, fields: c.state.clone().Fields}
	record, ok := c.build(snap)
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("submit aborted by builder", "mode", mode)
		done(Outcome{Form: c.schema.Name, Mode: mode, Aborted: true, Errors: Errors{}})
		return zero, false
	}

	c.state = initialState(c.schema)
	c.gen++
	c.mu.Unlock()

	if c.onReset != nil {
		c.onReset()
	}
	if c.commit != nil {
		c.commit(record)
	}
	c.logger.Info("record created", "mode", mode)
	done(Outcome{Form: c.schema.Name, Mode: mode, Accepted: true, Errors: Errors{}})
	return record, true
}

// =============================================================================
// Helpers
// =============================================================================

func stripPrefix(s, prefix string) string {
	if prefix == "" {
		return s
	}
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

func normalizeSlots(spec *FieldSpec, items []string) Value {
	slots := make([]string, spec.Size)
	for i := 0; i < spec.Size && i < len(items); i++ {
		slots[i] = stripPrefix(items[i], spec.Prefix)
	}
	return Value{items: slots}
}

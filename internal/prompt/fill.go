// Package prompt fills form dialogs interactively.
//
// Fill walks a dialog's rule set and asks for every field of the active
// mode, feeding answers through the dialog's own mutation methods so the
// same clearing and reset rules apply as in any other frontend. Run adds
// the submit and retry loop.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/form"
)

// Dialog is the subset of form.Controller that prompting needs.
type Dialog interface {
	Schema() *form.Schema
	Mode() form.Mode
	SetMode(m form.Mode)
	Value(name string) form.Value
	SetText(name, s string)
	SetSlot(name string, index int, s string)
	ToggleItem(name, item string)
	RemoveField(name string)
	Errors() form.Errors
}

// Choice is one selectable option.
type Choice struct {
	Value string
	Label string
}

// Options supplies the data a rule set does not carry.
type Options struct {
	// Choices lists the options of a select or multi field. It is called
	// after the field's parent has been answered.
	Choices func(field string, d Dialog) []Choice

	// LoadImage turns a file path into an image data URI.
	LoadImage func(path string) (string, error)

	// Labels overrides the prompt text per field name. Modes are looked
	// up as "mode:<name>" and the mode question itself as "mode".
	Labels map[string]string
}

func (o Options) modeLabel(m form.Mode) string {
	if l, ok := o.Labels["mode:"+string(m)]; ok {
		return l
	}
	return o.label(string(m))
}

func (o Options) label(name string) string {
	if l, ok := o.Labels[name]; ok {
		return l
	}
	return strings.ToUpper(name[:1]) + strings.ReplaceAll(name[1:], "_", " ")
}

// Fill asks for the mode, then every field the active mode needs.
func Fill(ctx context.Context, drv Driver, d Dialog, opts Options) error {
	schema := d.Schema()

	if modes := schema.ModeNames(); len(modes) > 1 {
		labels := lo.Map(modes, func(m form.Mode, _ int) string { return opts.modeLabel(m) })
		idx, err := drv.Select(ctx, SelectConfig{
			Message:      opts.label("mode"),
			Options:      labels,
			DefaultIndex: lo.IndexOf(modes, d.Mode()),
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			d.SetMode(modes[idx])
		}
	}

	owner := make(map[string]form.Mode)
	for _, m := range schema.Modes {
		for _, name := range m.Fields {
			owner[name] = m.Name
		}
		for _, name := range m.Optional {
			owner[name] = m.Name
		}
	}

	active := d.Mode()
	for _, spec := range schema.Fields {
		if m, owned := owner[spec.Name]; owned && m != active {
			continue
		}
		if err := ask(ctx, drv, d, spec, opts); err != nil {
			return err
		}
	}
	return nil
}

func ask(ctx context.Context, drv Driver, d Dialog, spec form.FieldSpec, opts Options) error {
	msg := opts.label(spec.Name)
	current := d.Value(spec.Name)

	switch spec.Kind {
	case form.KindImage:
		path, err := drv.Input(ctx, InputConfig{Message: msg, Help: "Path to an image file"})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" || opts.LoadImage == nil {
			return nil
		}
		uri, err := opts.LoadImage(path)
		if err != nil {
			return drv.Info(ctx, err.Error())
		}
		d.SetText(spec.Name, uri)

	case form.KindTuple:
		slots := current.Items()
		for i := 0; i < spec.Size; i++ {
			def := ""
			if i < len(slots) {
				def = slots[i]
			}
			s, err := drv.Input(ctx, InputConfig{
				Message: fmt.Sprintf("%s %d/%d", msg, i+1, spec.Size),
				Default: def,
			})
			if err != nil {
				return err
			}
			d.SetSlot(spec.Name, i, s)
		}

	case form.KindSelect:
		choices := choicesFor(spec.Name, d, opts)
		if len(choices) == 0 {
			if spec.Parent != "" {
				return nil
			}
			s, err := drv.Input(ctx, InputConfig{Message: msg, Default: current.String()})
			if err != nil {
				return err
			}
			d.SetText(spec.Name, s)
			return nil
		}
		idx, err := drv.Select(ctx, SelectConfig{
			Message:      msg,
			Options:      labelsOf(choices),
			DefaultIndex: lo.IndexOf(valuesOf(choices), current.String()),
			PageSize:     10,
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			d.SetText(spec.Name, choices[idx].Value)
		}

	case form.KindMulti:
		choices := choicesFor(spec.Name, d, opts)
		if len(choices) == 0 {
			return nil
		}
		values := valuesOf(choices)
		selected := current.Items()
		defaults := lo.FilterMap(selected, func(v string, _ int) (int, bool) {
			i := lo.IndexOf(values, v)
			return i, i >= 0
		})
		picked, err := drv.MultiSelect(ctx, SelectConfig{
			Message:  msg,
			Options:  labelsOf(choices),
			Defaults: defaults,
			PageSize: 10,
		})
		if err != nil {
			return err
		}
		want := lo.Map(picked, func(i int, _ int) string { return values[i] })
		add, drop := lo.Difference(want, selected)
		for _, v := range append(drop, add...) {
			d.ToggleItem(spec.Name, v)
		}

	default:
		s, err := drv.Input(ctx, InputConfig{Message: msg, Default: current.String()})
		if err != nil {
			return err
		}
		d.SetText(spec.Name, s)
	}
	return nil
}

// Run fills the dialog and submits it, offering another pass after every
// rejected submit. It reports whether a record was created.
func Run(ctx context.Context, drv Driver, d Dialog, submit func(context.Context) bool, opts Options) (bool, error) {
	for {
		if err := Fill(ctx, drv, d, opts); err != nil {
			return false, err
		}
		if submit(ctx) {
			return true, nil
		}

		errs := d.Errors()
		failed := errs.Failed()
		if len(failed) == 0 {
			return false, drv.Info(ctx, "The dialog could not be submitted.")
		}
		for _, key := range d.Schema().ErrorKeys() {
			if msg := errs[key]; msg != "" {
				if err := drv.Info(ctx, "  - "+msg); err != nil {
					return false, err
				}
			}
		}

		again, err := drv.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return false, err
		}
		if !again {
			return false, nil
		}
	}
}

func choicesFor(field string, d Dialog, opts Options) []Choice {
	if opts.Choices == nil {
		return nil
	}
	return opts.Choices(field, d)
}

func labelsOf(choices []Choice) []string {
	return lo.Map(choices, func(c Choice, _ int) string {
		if c.Label != "" {
			return c.Label
		}
		return c.Value
	})
}

func valuesOf(choices []Choice) []string {
	return lo.Map(choices, func(c Choice, _ int) string { return c.Value })
}

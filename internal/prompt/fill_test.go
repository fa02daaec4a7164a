package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/form"
)

const testRules = `
forms:
  - name: post
    default_mode: select-event
    fields:
      - {name: photo, kind: image, required: true, message: {default: "Photo is required"}}
      - {name: caption, kind: text, required: true, message: {default: "Caption is required"}}
      - {name: event, kind: select}
      - {name: hashtags, kind: tuple, size: 3, prefix: "#"}
    modes:
      - name: select-event
        error_key: eventOrHashtags
        fields: [event]
        message: {default: "Please select an event or enter three hashtags"}
      - name: hashtags
        error_key: eventOrHashtags
        fields: [hashtags]
        message: {default: "All three hashtags are required"}

  - name: event
    fields:
      - {name: title, kind: text, required: true, message: {default: "Title is required"}}
      - {name: categories, kind: multi, required: true, message: {default: "At least one category is required"}}
      - {name: country, kind: select, required: true, message: {default: "Country is required"}}
      - {name: city, kind: select, required: true, parent: country, message: {default: "City is required"}}
`

// scripted answers prompts from a queue and records every question.
type scripted struct {
	answers []any
	asked   []string
	info    []string
}

func (s *scripted) next(msg string) (any, error) {
	s.asked = append(s.asked, msg)
	if len(s.answers) == 0 {
		return nil, fmt.Errorf("no answer scripted for %q", msg)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scripted) Input(_ context.Context, cfg InputConfig) (string, error) {
	a, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	return a.(string), nil
}

func (s *scripted) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	a, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	return a.(bool), nil
}

func (s *scripted) Select(_ context.Context, cfg SelectConfig) (int, error) {
	a, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	return indexOf(cfg.Options, a.(string)), nil
}

func (s *scripted) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	a, err := s.next(cfg.Message)
	if err != nil {
		return nil, err
	}
	return indicesOf(cfg.Options, a.([]string)), nil
}

func (s *scripted) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func newDialog(t *testing.T, name string) *form.Controller[form.Snapshot] {
	t.Helper()
	rules, err := form.ParseRules([]byte(testRules))
	if err != nil {
		t.Fatalf("ParseRules() error: %v", err)
	}
	return form.NewController(rules.MustGet(name), func(s form.Snapshot) (form.Snapshot, bool) {
		return s, true
	}, nil)
}

func loadImage(path string) (string, error) {
	if path == "missing.png" {
		return "", errors.New("open missing.png: no such file")
	}
	return "data:image/png;base64,AAAA", nil
}

func TestFillHashtagMode(t *testing.T) {
	d := newDialog(t, "post")
	drv := &scripted{answers: []any{
		"Hashtags",
		"photo.png",
		"Hello",
		"#go", "tech", "#meetup",
	}}

	err := Fill(context.Background(), drv, d, Options{LoadImage: loadImage})
	if err != nil {
		t.Fatalf("Fill() error: %v", err)
	}

	if d.Mode() != "hashtags" {
		t.Errorf("Expected mode hashtags, got %q", d.Mode())
	}
	if diff := cmp.Diff([]string{"go", "tech", "meetup"}, d.Value("hashtags").Items()); diff != "" {
		t.Errorf("hashtags mismatch (-want +got):\n%s", diff)
	}
	for _, q := range drv.asked {
		if q == "Event" {
			t.Error("event should not be asked in hashtags mode")
		}
	}

	snap, ok := d.Submit(context.Background())
	if !ok {
		t.Fatalf("Expected submit to succeed, errors: %v", d.Errors())
	}
	if snap.Text("caption") != "Hello" {
		t.Errorf("Expected caption Hello, got %q", snap.Text("caption"))
	}
}

func TestFillDependentSelect(t *testing.T) {
	d := newDialog(t, "event")
	choices := func(field string, d Dialog) []Choice {
		var values []string
		switch field {
		case "categories":
			values = catalog.Categories
		case "country":
			values = catalog.Countries
		case "city":
			values = catalog.Cities(d.Value("country").String())
		}
		out := make([]Choice, len(values))
		for i, v := range values {
			out[i] = Choice{Value: v}
		}
		return out
	}

	drv := &scripted{answers: []any{
		"Go Night",
		[]string{"Technology", "Networking"},
		"United States",
		"New York",
	}}

	if err := Fill(context.Background(), drv, d, Options{Choices: choices}); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}

	if got := d.Value("city").String(); got != "New York" {
		t.Errorf("Expected city New York, got %q", got)
	}
	if diff := cmp.Diff([]string{"Technology", "Networking"}, d.Value("categories").Items()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if !d.Validate() {
		t.Errorf("Expected valid dialog, got %v", d.Errors())
	}
}

func TestFillMultiDeselects(t *testing.T) {
	d := newDialog(t, "event")
	d.ToggleItem("categories", "Music")
	choices := func(field string, _ Dialog) []Choice {
		if field == "categories" {
			return []Choice{{Value: "Music"}, {Value: "Art"}}
		}
		return nil
	}

	drv := &scripted{answers: []any{"T", []string{"Art"}, "US"}}
	if err := Fill(context.Background(), drv, d, Options{Choices: choices}); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}
	if diff := cmp.Diff([]string{"Art"}, d.Value("categories").Items()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	// city has a parent and no choices, so it is skipped.
	if len(drv.answers) != 0 {
		t.Errorf("Expected all answers consumed, %d left", len(drv.answers))
	}
}

func TestFillImageLoadFailure(t *testing.T) {
	d := newDialog(t, "post")
	drv := &scripted{answers: []any{"Select-event", "missing.png", "Hi", ""}}

	if err := Fill(context.Background(), drv, d, Options{LoadImage: loadImage}); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}
	if !d.Value("photo").IsZero() {
		t.Error("Expected photo to stay empty")
	}
	if len(drv.info) != 1 || !strings.Contains(drv.info[0], "missing.png") {
		t.Errorf("Expected load error to be shown, got %v", drv.info)
	}
}

func TestFillAbort(t *testing.T) {
	d := newDialog(t, "post")
	drv := &scripted{answers: []any{ErrAborted}}

	if err := Fill(context.Background(), drv, d, Options{}); !errors.Is(err, ErrAborted) {
		t.Errorf("Expected ErrAborted, got %v", err)
	}
}

func TestRunGivesUp(t *testing.T) {
	d := newDialog(t, "event")
	drv := &scripted{answers: []any{"", "X", false}}

	created, err := Run(context.Background(), drv, d, func(ctx context.Context) bool {
		_, ok := d.Submit(ctx)
		return ok
	}, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if created {
		t.Error("Expected no record")
	}
	if len(drv.info) == 0 || drv.info[0] != "  - Title is required" {
		t.Errorf("Expected title error first, got %v", drv.info)
	}
}

func TestRunSucceeds(t *testing.T) {
	d := newDialog(t, "post")
	drv := &scripted{answers: []any{"Select-event", "photo.png", "Hello", "e1"}}

	created, err := Run(context.Background(), drv, d, func(ctx context.Context) bool {
		_, ok := d.Submit(ctx)
		return ok
	}, Options{LoadImage: loadImage})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !created {
		t.Errorf("Expected record, errors: %v", d.Errors())
	}
}

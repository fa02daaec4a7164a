package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/eventconnect"
	"github.com/vango-dev/eventconnect/internal/config"
	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/internal/prompt"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type result struct {
	out string
	err string
}

type harness struct {
	t      *testing.T
	dir    string
	driver prompt.Driver
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) writeConfig(body string) {
	h.t.Helper()
	require.NoError(h.t, os.WriteFile(filepath.Join(h.dir, config.ConfigFileName), []byte(body), 0644))
}

func (h *harness) photo() string {
	h.t.Helper()
	path := filepath.Join(h.dir, "photo.png")
	require.NoError(h.t, os.WriteFile(path, pngHeader, 0644))
	return path
}

func (h *harness) run(args ...string) (result, error) {
	h.t.Helper()
	var out, errb bytes.Buffer

	c := newCLI()
	c.clock = func() time.Time { return time.Date(2025, time.November, 15, 10, 0, 0, 0, time.Local) }
	c.stderr = &errb
	if h.driver != nil {
		c.driver = h.driver
	}

	root := c.root()
	root.SetOut(&out)
	root.SetErr(&errb)
	root.SetArgs(append([]string{"--no-color", "--config-dir", h.dir}, args...))
	err := root.ExecuteContext(context.Background())
	return result{out: out.String(), err: errb.String()}, err
}

func TestVersion(t *testing.T) {
	res, err := newHarness(t).run("version", "--short")
	require.NoError(t, err)
	assert.Equal(t, eventconnect.Version+"\n", res.out)
}

func TestPostsList(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "list")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Sarah Johnson")
	assert.Contains(t, res.out, "Michael Chen")

	res, err = h.run("posts", "list", "--category", "Networking")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Michael Chen")
	assert.NotContains(t, res.out, "Sarah Johnson")
}

func TestPostsCreateWithEvent(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "create", "--photo", h.photo(), "--caption", "Hi <b>all</b>", "--event", "2")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "created for Digital Marketing Conference")
	assert.Contains(t, res.out, "Hi all")
}

func TestPostsCreateWithHashtags(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "create", "--photo", h.photo(), "--caption", "Tags", "--hashtags", "#go,cloud,#infra")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "created for go, cloud, infra")
}

func TestPostsCreateRejected(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "create", "--caption", "No photo", "--hashtags", "a,b")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E411"))
	assert.Contains(t, res.err, "Photo is required")
	assert.Contains(t, res.err, "All three hashtags are required")
}

func TestPostsCreateUnknownEvent(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "create", "--photo", h.photo(), "--caption", "Hi", "--event", "42")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E412"))
	assert.Contains(t, err.Error(), `event "42"`)
	assert.NotContains(t, res.err, "✗")
}

func TestPostsCreateTooManyHashtags(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("posts", "create", "--photo", h.photo(), "--caption", "Tags", "--hashtags", "a,b,c,d")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E410"))
	assert.Contains(t, err.Error(), "at most 3 hashtags")
}

func TestPostsCreateNewEvent(t *testing.T) {
	h := newHarness(t)
	h.writeConfig(`{"postDialog": "create-event"}`)

	res, err := h.run("posts", "create", "--photo", h.photo(), "--caption", "Join us",
		"--title", "Go Night", "--date", "Dec 3, 2025")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "created for Go Night")
	assert.Contains(t, res.out, "New event created-")
}

func TestPostsCreateModeNotInVariant(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("posts", "create", "--title", "Go Night")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support create-event")
}

func TestPostsCreateInteractive(t *testing.T) {
	h := newHarness(t)
	h.driver = &answers{queue: []any{
		"Use three hashtags",
		h.photo(),
		"From the prompt",
		"go", "#cli", "survey",
	}}

	res, err := h.run("posts", "create", "--interactive")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "created for go, cli, survey")
}

func TestPostsDelete(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("posts", "delete", "2")
	require.NoError(t, err)
	assert.NotContains(t, res.out, "Sarah Johnson")

	_, err = h.run("posts", "delete", "99")
	assert.True(t, errors.HasCode(err, "E412"))
}

func TestEventsList(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("events", "list", "--tab", "trending")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Deep Learning")
	assert.NotContains(t, res.out, "Jazz")

	res, err = h.run("events", "list", "--country", "United States", "--city", "New York", "--search", "jazz")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Jazz & Blues Music Festival")
	assert.NotContains(t, res.out, "Startup Founders")

	_, err = h.run("events", "list", "--tab", "popular")
	assert.Error(t, err)
}

func TestEventsCreate(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("events", "create", "--photo", h.photo(), "--title", "Go Night",
		"--description", "Talks", "--category", "Technology", "--category", "Networking",
		"--country", "Germany", "--city", "Berlin")
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "Event created-")
	assert.Contains(t, res.out, "Berlin, Germany")
}

func TestEventsCreateErrors(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("events", "create", "--title", "Go Night", "--country", "Germany")
	require.Error(t, err)
	assert.Contains(t, res.err, "Photo is required")
	assert.Contains(t, res.err, "City is required")

	_, err = h.run("events", "create", "--photo", h.photo(), "--title", "T", "--description", "D",
		"--category", "Design", "--country", "Germany", "--city", "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a city of")
}

func TestEventsCountdown(t *testing.T) {
	res, err := newHarness(t).run("events", "countdown")
	require.NoError(t, err)
	assert.Contains(t, res.out, "4 days 23 hours 0 minutes until your next saved event")
}

func TestChat(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("chat", "list", "--tab", "direct")
	require.NoError(t, err)
	assert.NotEmpty(t, res.out)

	res, err = h.run("chat", "send", "1", "see", "you", "there")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Me: see you there")

	_, err = h.run("chat", "show", "nope")
	assert.True(t, errors.HasCode(err, "E412"))

	_, err = h.run("chat", "list", "--tab", "groups")
	assert.Error(t, err)
}

func TestServices(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("services", "book", "vip", "transfer")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Booking 2 services...")

	res, err = h.run("services", "book")
	require.Error(t, err)
	assert.Contains(t, res.err, "Please select at least one service")
}

func TestNav(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("nav", "--go", "event-detail", "--id", "3")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Current: event-detail/3")

	_, err = h.run("nav", "--go", "nowhere")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E400"))
}

func TestConnectionsMessage(t *testing.T) {
	res, err := newHarness(t).run("connections", "--message", "1")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Opening chat")
}

func TestConfigInitAndShow(t *testing.T) {
	h := newHarness(t)

	res, err := h.run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Created")
	assert.True(t, config.Exists(h.dir))

	res, err = h.run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, res.out, "already exists")

	t.Setenv("EVENTCONNECT_LOCALE", "es")
	res, err = h.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, res.out, `"locale": "es"`)
}

func TestBadLogLevel(t *testing.T) {
	_, err := newHarness(t).run("--log-level", "loud", "posts", "list")
	assert.Error(t, err)
}

// answers is a prompt.Driver replaying canned answers.
type answers struct {
	queue []any
}

func (a *answers) pop() (any, error) {
	if len(a.queue) == 0 {
		return nil, fmt.Errorf("no answer left")
	}
	v := a.queue[0]
	a.queue = a.queue[1:]
	return v, nil
}

func (a *answers) Input(context.Context, prompt.InputConfig) (string, error) {
	v, err := a.pop()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (a *answers) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	v, err := a.pop()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (a *answers) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	v, err := a.pop()
	if err != nil {
		return 0, err
	}
	for i, o := range cfg.Options {
		if o == v.(string) {
			return i, nil
		}
	}
	return -1, nil
}

func (a *answers) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	v, err := a.pop()
	if err != nil {
		return nil, err
	}
	var out []int
	for i, o := range cfg.Options {
		for _, want := range v.([]string) {
			if o == want {
				out = append(out, i)
			}
		}
	}
	return out, nil
}

func (a *answers) Info(context.Context, string) error { return nil }

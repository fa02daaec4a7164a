package eventconnect

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/eventconnect/internal/config"
	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/chat"
	"github.com/vango-dev/eventconnect/pkg/feed"
	"github.com/vango-dev/eventconnect/pkg/nav"
	"github.com/vango-dev/eventconnect/pkg/toast"
)

const photo = "data:image/png;base64,iVBORw0KGgo="

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fixedClock() time.Time {
	return time.Date(2025, time.November, 15, 10, 0, 0, 0, time.Local)
}

func newTestApp(t *testing.T, mutate func(*config.Config), opts ...Option) *App {
	t.Helper()
	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	app, err := New(cfg, opts...)
	require.NoError(t, err)
	return app
}

func TestNewDefaults(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, "post-hashtags", app.PostDialog.Schema().Name)
	assert.Equal(t, "create-event", app.EventDialog.Schema().Name)
	assert.Equal(t, 4, app.Feed.Len())
	assert.Equal(t, nav.PagePosts, app.Shell.Current().Page)
	assert.Equal(t, int64(config.DefaultMaxImageBytes), app.Uploads.MaxBytes())
}

func TestNewRejectsUnknownLocale(t *testing.T) {
	cfg := config.New()
	cfg.Locale = "fr"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	cfg := config.New()
	cfg.PostDialog = "wizard"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestPostCreatesEventInCatalog(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) {
		c.PostDialog = string(feed.VariantCreateEvent)
		c.User = config.UserConfig{ID: "9", Name: "Ana Lopez", Initials: "AL"}
	})

	d := app.PostDialog
	d.Open()
	d.SetText("photo", photo)
	d.SetText("caption", "See you there")
	d.SetMode(feed.ModeCreateEvent)
	d.SetText("title", "Go Night")
	d.SetText("date", "Dec 3, 2025")

	sub, ok := d.Submit(context.Background())
	require.True(t, ok, "errors: %v", d.Errors())

	assert.Equal(t, "AL", sub.Post.UserInitials)
	ev, found := app.Events.Lookup(sub.Post.EventID)
	require.True(t, found, "created event should be listed")
	assert.Equal(t, "Go Night", ev.Title)
	assert.Equal(t, sub.Post.EventID, app.Events.List()[0].ID)
	assert.Equal(t, 5, app.Feed.Len())
}

func TestSpanishMessages(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Locale = "es" })

	app.EventDialog.Open()
	_, ok := app.EventDialog.Submit(context.Background())
	require.False(t, ok)

	assert.Equal(t, "La foto es obligatoria", app.EventDialog.Error("photo"))
	assert.Equal(t, "El título es obligatorio", app.EventDialog.Error("title"))
}

func TestSubmitMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	app.PostDialog.Submit(context.Background())

	families, err := app.Gatherer().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["eventconnect_form_submissions_total"])
	assert.True(t, names["eventconnect_form_validation_errors_total"])
}

func TestLoadPostPhoto(t *testing.T) {
	app := newTestApp(t, nil)

	app.LoadPostPhoto(context.Background(), bytes.NewReader(pngHeader))
	app.WaitUploads()

	got := app.PostDialog.Value("photo").String()
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("Expected png data URI, got %q", got)
	}
}

// gatedReader blocks reads until gate is closed.
type gatedReader struct {
	gate chan struct{}
	data *bytes.Reader
}

func newGatedPNG() *gatedReader {
	return &gatedReader{gate: make(chan struct{}), data: bytes.NewReader(pngHeader)}
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.gate
	return g.data.Read(p)
}

func TestLoadPhotoDroppedAfterClose(t *testing.T) {
	app := newTestApp(t, nil)
	app.PostDialog.Open()

	slow := newGatedPNG()
	app.LoadPostPhoto(context.Background(), slow)
	app.PostDialog.Close()
	close(slow.gate)
	app.WaitUploads()

	app.PostDialog.Open()
	assert.True(t, app.PostDialog.Value("photo").IsZero(), "photo from a closed dialog must not survive reopen")
	assert.True(t, app.PostDialog.State().IsEmpty())
}

func TestLoadPhotoDroppedAfterLogout(t *testing.T) {
	app := newTestApp(t, nil)

	slow := newGatedPNG()
	app.LoadEventPhoto(context.Background(), slow)
	app.Shell.Logout()
	close(slow.gate)
	app.WaitUploads()

	assert.True(t, app.EventDialog.Value("photo").IsZero())
}

func TestLoadPhotoPerDialog(t *testing.T) {
	app := newTestApp(t, nil)

	slow := newGatedPNG()
	app.LoadPostPhoto(context.Background(), slow)
	app.LoadEventPhoto(context.Background(), bytes.NewReader(pngHeader))
	close(slow.gate)
	app.WaitUploads()

	assert.True(t, strings.HasPrefix(app.PostDialog.Value("photo").String(), "data:image/png;base64,"),
		"an event photo must not supersede a pending post photo")
	assert.True(t, strings.HasPrefix(app.EventDialog.Value("photo").String(), "data:image/png;base64,"))
}

func TestLoadPhotoRejected(t *testing.T) {
	rec := &toast.Recorder{}
	app := newTestApp(t, nil, WithToasts(rec))

	app.LoadEventPhoto(context.Background(), strings.NewReader("plain text, not an image"))
	app.WaitUploads()

	if !app.EventDialog.Value("photo").IsZero() {
		t.Error("Expected photo to stay empty")
	}
	last, ok := rec.Last()
	if !ok || last.Level != toast.TypeError {
		t.Errorf("Expected an error toast, got %+v", last)
	}
}

func TestFilteredPosts(t *testing.T) {
	app := newTestApp(t, nil)

	got := app.FilteredPosts(catalog.Filters{Category: "Networking"})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Len(t, app.FilteredPosts(catalog.Filters{}), 4)
}

func TestLogoutClosesDialogs(t *testing.T) {
	var pages []string
	app := newTestApp(t, nil, WithRouter(nav.NavigatorFunc(func(page, _ string) {
		pages = append(pages, page)
	})))

	app.PostDialog.Open()
	app.PostDialog.SetText("caption", "draft")
	app.EventDialog.Open()
	require.NoError(t, app.Shell.Go(nav.PageEvents, ""))

	app.Shell.Logout()

	assert.False(t, app.PostDialog.IsOpen())
	assert.False(t, app.EventDialog.IsOpen())
	assert.Empty(t, app.PostDialog.Value("caption").String())
	assert.Equal(t, []string{nav.PageEvents}, pages)
}

func TestConnectionsMessageOpensChat(t *testing.T) {
	app := newTestApp(t, nil)

	first := app.Connections.All()[0]
	require.True(t, app.Connections.Message(first.ID))
	assert.Equal(t, nav.PageChat, app.Shell.Current().Page)

	app.Connections.Back()
	assert.Equal(t, nav.PagePosts, app.Shell.Current().Page)
}

func TestServicesToastsAreLocalised(t *testing.T) {
	rec := &toast.Recorder{}
	app := newTestApp(t, func(c *config.Config) { c.Locale = "es" }, WithToasts(rec))

	app.Services.Toggle("vip")
	msg, err := app.Services.Book()
	require.NoError(t, err)
	assert.Equal(t, "Reservando 1 servicio...", msg)
}

func TestChatNarrowWidthFromConfig(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Layout.NarrowWidth = 600 })

	require.NoError(t, app.Chat.SetTab(chat.TabAll))
	require.True(t, app.Chat.Select("1", 800))
	assert.True(t, app.Chat.ListVisible(), "800 is wide with a 600 breakpoint")
}

func TestCountdown(t *testing.T) {
	app := newTestApp(t, nil)
	// Nov 15 10:00 to the first saved event.
	assert.False(t, app.Countdown().IsZero())
}

func TestSnapshot(t *testing.T) {
	app := newTestApp(t, nil)
	app.PostDialog.Open()
	app.Services.Toggle("vip")

	st := app.Snapshot()
	assert.Equal(t, 4, st.Posts)
	assert.Equal(t, 10, st.Events)
	assert.True(t, st.PostDialog)
	assert.Equal(t, []string{"vip"}, st.ServicesSelected)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"", false},
		{"verbose", true},
	}
	for _, tt := range tests {
		_, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

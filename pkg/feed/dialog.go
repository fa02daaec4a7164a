package feed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/form"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rules holds the compiled create-post rule sets.
var Rules = form.MustParseRules(rulesYAML)

// Variant selects the create-post dialog.
type Variant string

const (
	// VariantHashtags ties a post to an event or to three hashtags.
	VariantHashtags Variant = "hashtags"
	// VariantCreateEvent ties a post to an event or to a new event.
	VariantCreateEvent Variant = "create-event"
)

// Modes of the create-post dialogs.
const (
	ModeSelectEvent form.Mode = "select-event"
	ModeHashtags    form.Mode = "hashtags"
	ModeCreateEvent form.Mode = "create-event"
)

// HashtagEventID is the event id of posts tagged with hashtags.
const HashtagEventID = "hashtags"

// CreatedEventPrefix starts the id of events created from a post.
const CreatedEventPrefix = "created-"

// Schema returns the rule set of v.
func (v Variant) Schema() (*form.Schema, error) {
	switch v {
	case VariantHashtags:
		return Rules.Get("post-hashtags")
	case VariantCreateEvent:
		return Rules.Get("post-new-event")
	}
	return nil, fmt.Errorf("feed: unknown dialog variant %q", v)
}

// NewEvent is an event announced from the create-post dialog.
type NewEvent struct {
	ID       string
	Title    string
	Date     string
	Time     string
	Location string
}

// Submission is the record produced by a create-post dialog.
type Submission struct {
	Post Post
	// Event is set when the post created a new event.
	Event *NewEvent
}

// DialogConfig configures a create-post dialog.
type DialogConfig struct {
	Variant Variant
	Author  Author

	// Events are the choices of the select-event mode. Default:
	// RecentEvents().
	Events []RecentEvent

	// Clock drives post and event ids. Default: time.Now.
	Clock func() time.Time

	// OnEventCreated receives events created from a post.
	OnEventCreated func(NewEvent)
}

// PostDialog is a create-post dialog controller.
type PostDialog = form.Controller[Submission]

// NewPostDialog creates a closed create-post dialog whose posts are
// prepended to f.
func NewPostDialog(cfg DialogConfig, f *Feed, opts ...form.Option) (*PostDialog, error) {
	schema, err := cfg.Variant.Schema()
	if err != nil {
		return nil, err
	}
	if cfg.Author == (Author{}) {
		cfg.Author = DefaultAuthor
	}
	if cfg.Events == nil {
		cfg.Events = RecentEvents()
	}
	seq := form.NewSequence(cfg.Clock)

	build := func(s form.Snapshot) (Submission, bool) {
		post := Post{
			ID:           seq.Next(),
			UserID:       cfg.Author.ID,
			UserName:     cfg.Author.Name,
			UserInitials: cfg.Author.Initials,
			Caption:      s.Text("caption"),
			Image:        s.Text("photo"),
			Timestamp:    "Just now",
			IsOwnPost:    true,
		}
		var sub Submission

		switch s.Mode {
		case ModeHashtags:
			post.EventName = s.Joined("hashtags", ", ")
			post.EventID = HashtagEventID
		case ModeCreateEvent:
			ev := NewEvent{
				ID:       CreatedEventPrefix + seq.Next(),
				Title:    s.Text("title"),
				Date:     s.Text("date"),
				Time:     s.Text("time"),
				Location: s.Text("location"),
			}
			post.EventName = ev.Title
			post.EventID = ev.ID
			sub.Event = &ev
		default:
			id := s.Text("event")
			ev, ok := lo.Find(cfg.Events, func(e RecentEvent) bool { return e.ID == id })
			if !ok {
				return Submission{}, false
			}
			post.EventName = ev.Name
			post.EventID = ev.ID
		}

		sub.Post = post
		return sub, true
	}

	commit := func(sub Submission) {
		if f != nil {
			f.Prepend(sub.Post)
		}
		if sub.Event != nil && cfg.OnEventCreated != nil {
			cfg.OnEventCreated(*sub.Event)
		}
	}

	return form.NewController(schema, build, commit, opts...), nil
}

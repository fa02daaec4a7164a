package events

import (
	_ "embed"
	"time"

	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/form"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rules holds the compiled create-event rule set.
var Rules = form.MustParseRules(rulesYAML)

// CreatedPrefix starts the id of user created events.
const CreatedPrefix = "created-"

// Dialog is a create-event dialog controller.
type Dialog = form.Controller[Event]

// NewDialog creates a closed create-event dialog whose events are added to
// c. A nil clock means time.Now.
func NewDialog(c *Catalog, clock func() time.Time, opts ...form.Option) *Dialog {
	seq := form.NewSequence(clock)

	build := func(s form.Snapshot) (Event, bool) {
		country, city := s.Text("country"), s.Text("city")
		if !catalog.IsCity(country, city) {
			return Event{}, false
		}
		categories := s.Items("categories")
		return Event{
			ID:          CreatedPrefix + seq.Next(),
			Title:       s.Text("title"),
			Description: s.Text("description"),
			Location:    city + ", " + country,
			Country:     country,
			City:        city,
			Type:        TypeInPerson,
			Category:    categories[0],
			Categories:  categories,
			Image:       s.Text("photo"),
		}, true
	}

	var commit func(Event)
	if c != nil {
		commit = c.Add
	}
	return form.NewController(Rules.MustGet("create-event"), build, commit, opts...)
}

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/internal/prompt"
	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/events"
	"github.com/vango-dev/eventconnect/pkg/feed"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and create events",
	}
	cmd.AddCommand(c.eventsListCmd(), c.eventsCreateCmd(), c.eventsCountdownCmd())
	return cmd
}

func (c *cli) eventsListCmd() *cobra.Command {
	var (
		tab     string
		search  string
		filters catalog.Filters
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List the events of a tab (all, trending, upcoming or saved),
optionally narrowed by a search term and category/country/city filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			shown, err := app.Events.Tab(events.Tab(tab))
			if err != nil {
				return err
			}

			var f catalog.Filters
			f.SetCategory(filters.Category)
			f.SetCountry(filters.Country)
			f.SetCity(filters.City)
			shown = intersect(shown, app.Events.Filter(f))
			shown = intersect(shown, app.Events.Search(search))

			printEvents(cmd.OutOrStdout(), shown, app.Events.IsSaved)
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(events.TabAll), "Tab: all, trending, upcoming or saved")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search titles, categories and tags")
	cmd.Flags().StringVar(&filters.Category, "category", "", "Only events in this category")
	cmd.Flags().StringVar(&filters.Country, "country", "", "Only events in this country")
	cmd.Flags().StringVar(&filters.City, "city", "", "Only events in this city (needs --country)")

	return cmd
}

// intersect keeps the events of a that are also in b, in a's order.
func intersect(a, b []events.Event) []events.Event {
	ids := lo.Map(b, func(e events.Event, _ int) string { return e.ID })
	return lo.Filter(a, func(e events.Event, _ int) bool { return lo.Contains(ids, e.ID) })
}

type eventFlags struct {
	photo       string
	title       string
	description string
	categories  []string
	country     string
	city        string
	interactive bool
}

func (c *cli) eventsCreateCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			d := app.EventDialog
			d.Open()
			defer d.Close()

			var ev events.Event
			var created bool
			submit := func(ctx context.Context) bool {
				ev, created = d.Submit(ctx)
				return created
			}

			if flags.interactive {
				opts := prompt.Options{
					Choices:   eventChoices,
					LoadImage: app.Uploads.DecodeFile,
					Labels:    promptLabels,
				}
				ok, err := prompt.Run(cmd.Context(), c.driver, d, submit, opts)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("E411").WithDetail("The event was not created.")
				}
			} else {
				if flags.photo != "" {
					uri, err := app.Uploads.DecodeFile(flags.photo)
					if err != nil {
						return err
					}
					d.SetText("photo", uri)
				}
				d.SetText("title", flags.title)
				d.SetText("description", flags.description)
				for _, cat := range lo.Uniq(flags.categories) {
					d.ToggleItem("categories", cat)
				}
				d.SetText("country", flags.country)
				d.SetText("city", flags.city)

				if !submit(cmd.Context()) {
					if d.Errors().Valid() {
						return errors.New("E410").WithDetailf("%q is not a city of %q", flags.city, flags.country)
					}
					printErrors(cmd.ErrOrStderr(), d.Schema(), d.Errors())
					return errors.New("E411").WithDetail("The event was not created.")
				}
			}

			out := cmd.OutOrStdout()
			success(out, "Event %s created: %s", ev.ID, ev.Title)
			printEvents(out, app.Events.List(), app.Events.IsSaved)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.photo, "photo", "", "Image file to attach")
	cmd.Flags().StringVar(&flags.title, "title", "", "Event title")
	cmd.Flags().StringVar(&flags.description, "description", "", "Event description")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil, "Category (repeatable)")
	cmd.Flags().StringVar(&flags.country, "country", "", "Country")
	cmd.Flags().StringVar(&flags.city, "city", "", "City in --country")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for every field")

	return cmd
}

func eventChoices(field string, d prompt.Dialog) []prompt.Choice {
	var values []string
	switch field {
	case "categories":
		values = catalog.Categories
	case "country":
		values = catalog.Countries
	case "city":
		values = catalog.Cities(d.Value("country").String())
	}
	return lo.Map(values, func(v string, _ int) prompt.Choice {
		return prompt.Choice{Value: v}
	})
}

func (c *cli) eventsCountdownCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left until the next saved event",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !watch {
				printCountdown(out, app.Countdown())
				return nil
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			app.RunCountdown(ctx, func(cd feed.Countdown) {
				printCountdown(out, cd)
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep updating until interrupted")

	return cmd
}

func printCountdown(w io.Writer, cd feed.Countdown) {
	if cd.IsZero() {
		fmt.Fprintln(w, "No upcoming saved events")
		return
	}
	fmt.Fprintf(w, "%s %s until your next saved event\n", color.FgCyan.Sprint("⏱"), cd)
}

func printEvents(w io.Writer, evs []events.Event, saved func(string) bool) {
	table := newTable(w, "ID", "Title", "Date", "Time", "Location", "Category", "Type", "Attendees", "Saved")
	for _, e := range evs {
		table.Append([]string{
			e.ID,
			truncate(e.Title, 40),
			e.Date,
			e.Time,
			truncate(e.Location, 32),
			e.Category,
			string(e.Type),
			strconv.Itoa(e.Attendees),
			yesNo(saved(e.ID)),
		})
	}
	table.Render()
}

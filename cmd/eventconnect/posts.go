package main

import (
	"context"
	"io"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect"
	"github.com/vango-dev/eventconnect/internal/config"
	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/internal/prompt"
	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/feed"
)

func (c *cli) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, create and delete feed posts",
	}
	cmd.AddCommand(c.postsListCmd(), c.postsCreateCmd(), c.postsDeleteCmd())
	return cmd
}

func (c *cli) postsListCmd() *cobra.Command {
	var filters catalog.Filters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			var f catalog.Filters
			f.SetCategory(filters.Category)
			f.SetCountry(filters.Country)
			f.SetCity(filters.City)
			printPosts(cmd.OutOrStdout(), app.FilteredPosts(f))
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Category, "category", "", "Only posts about events in this category")
	cmd.Flags().StringVar(&filters.Country, "country", "", "Only posts about events in this country")
	cmd.Flags().StringVar(&filters.City, "city", "", "Only posts about events in this city (needs --country)")

	return cmd
}

type postFlags struct {
	photo       string
	caption     string
	event       string
	hashtags    []string
	title       string
	date        string
	time        string
	location    string
	interactive bool
}

func (c *cli) postsCreateCmd() *cobra.Command {
	var flags postFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long: `Create a post tagged with an existing event, three hashtags or a
new event. The available tags depend on the configured post dialog:

  hashtags       --event ID or --hashtags a,b,c
  create-event   --event ID or --title and --date (with optional --time
                 and --location)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			d := app.PostDialog
			d.Open()
			defer d.Close()

			var created bool
			var sub feed.Submission
			submit := func(ctx context.Context) bool {
				sub, created = d.Submit(ctx)
				return created
			}

			if flags.interactive {
				opts := prompt.Options{
					Choices:   postChoices,
					LoadImage: app.Uploads.DecodeFile,
					Labels:    promptLabels,
				}
				ok, err := prompt.Run(cmd.Context(), c.driver, d, submit, opts)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("E411").WithDetail("The post was not created.")
				}
			} else {
				if err := fillPost(app, d, flags); err != nil {
					return err
				}
				if !submit(cmd.Context()) {
					if d.Errors().Valid() {
						return errors.New("E412").WithDetailf("event %q", flags.event).
							WithSuggestion("Run 'eventconnect posts create -i' to pick from the recent events")
					}
					printErrors(cmd.ErrOrStderr(), d.Schema(), d.Errors())
					return errors.New("E411").WithDetail("The post was not created.")
				}
			}

			out := cmd.OutOrStdout()
			success(out, "Post %s created for %s", sub.Post.ID, sub.Post.EventName)
			if sub.Event != nil {
				info(out, "New event %s listed on the events screen", sub.Event.ID)
			}
			printPosts(out, app.Feed.List())
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.photo, "photo", "", "Image file to attach")
	cmd.Flags().StringVar(&flags.caption, "caption", "", "Post caption")
	cmd.Flags().StringVar(&flags.event, "event", "", "Id of the event to tag")
	cmd.Flags().StringSliceVar(&flags.hashtags, "hashtags", nil, "Three hashtags instead of an event")
	cmd.Flags().StringVar(&flags.title, "title", "", "Title of a new event")
	cmd.Flags().StringVar(&flags.date, "date", "", "Date of a new event")
	cmd.Flags().StringVar(&flags.time, "time", "", "Time of a new event")
	cmd.Flags().StringVar(&flags.location, "location", "", "Location of a new event")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for every field")

	return cmd
}

// fillPost copies flags into the dialog. The mode follows the flags given.
func fillPost(app *eventconnect.App, d *feed.PostDialog, flags postFlags) error {
	mode := feed.ModeSelectEvent
	switch {
	case len(flags.hashtags) > 0:
		mode = feed.ModeHashtags
	case flags.title != "" || flags.date != "":
		mode = feed.ModeCreateEvent
	}
	if !d.Schema().HasMode(mode) {
		return errors.New("E410").
			WithDetailf("the %q post dialog does not support %s", app.Config().PostDialog, mode).
			WithSuggestion("Set postDialog in " + config.ConfigFileName)
	}
	d.SetMode(mode)

	if flags.photo != "" {
		uri, err := app.Uploads.DecodeFile(flags.photo)
		if err != nil {
			return err
		}
		d.SetText("photo", uri)
	}
	d.SetText("caption", flags.caption)

	switch mode {
	case feed.ModeHashtags:
		if spec, ok := d.Schema().Field("hashtags"); ok && len(flags.hashtags) > spec.Size {
			return errors.New("E410").WithDetailf("at most %d hashtags, got %d", spec.Size, len(flags.hashtags))
		}
		for i, tag := range flags.hashtags {
			d.SetSlot("hashtags", i, tag)
			d.BlurSlot("hashtags", i)
		}
	case feed.ModeCreateEvent:
		d.SetText("title", flags.title)
		d.SetText("date", flags.date)
		d.SetText("time", flags.time)
		d.SetText("location", flags.location)
	default:
		d.SetText("event", flags.event)
	}
	return nil
}

func (c *cli) postsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			if !app.Feed.Delete(args[0]) {
				return errors.New("E412").WithDetailf("post %q", args[0])
			}
			success(cmd.OutOrStdout(), "Post %s deleted", args[0])
			printPosts(cmd.OutOrStdout(), app.Feed.List())
			return nil
		},
	}
}

func printPosts(w io.Writer, posts []feed.Post) {
	table := newTable(w, "ID", "Author", "Event", "Caption", "Likes", "Comments", "When")
	for _, p := range posts {
		table.Append([]string{
			p.ID,
			p.UserName,
			truncate(p.EventName, 32),
			truncate(p.Caption, 48),
			strconv.Itoa(p.Likes),
			strconv.Itoa(p.Comments),
			p.Timestamp,
		})
	}
	table.Render()
}

var promptLabels = map[string]string{
	"mode":              "How do you want to tag this post?",
	"mode:select-event": "Pick an existing event",
	"mode:hashtags":     "Use three hashtags",
	"mode:create-event": "Create a new event",
	"photo":             "Photo (path to an image file)",
	"caption":           "Caption",
	"event":             "Event",
	"hashtags":          "Hashtag",
	"title":             "Title",
	"date":              "Date",
	"time":              "Time",
	"location":          "Location",
	"description":       "Description",
	"categories":        "Categories",
	"country":           "Country",
	"city":              "City",
}

func postChoices(field string, _ prompt.Dialog) []prompt.Choice {
	if field != "event" {
		return nil
	}
	return lo.Map(feed.RecentEvents(), func(e feed.RecentEvent, _ int) prompt.Choice {
		return prompt.Choice{Value: e.ID, Label: e.Name}
	})
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/pkg/nav"
)

func (c *cli) connectionsCmd() *cobra.Command {
	var search, message string

	cmd := &cobra.Command{
		Use:   "connections",
		Short: "List your connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if message != "" {
				if !app.Connections.Message(message) {
					return errors.New("E412").WithDetailf("connection %q", message)
				}
				info(out, "Opening %s", app.Shell.Current().Page)
				return nil
			}

			table := newTable(out, "ID", "Name", "Role", "Company", "Location", "Match", "Mutual", "Last interaction")
			for _, p := range app.Connections.Search(search) {
				table.Append([]string{
					p.ID,
					p.Name,
					p.Role,
					p.Company,
					p.Location,
					strconv.Itoa(p.Match) + "%",
					strconv.Itoa(p.MutualConnections),
					p.LastInteraction,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Search names, roles and companies")
	cmd.Flags().StringVar(&message, "message", "", "Open a chat with the connection with this id")

	return cmd
}

func (c *cli) servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List and book event services",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookable services",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Name", "Price", "Description")
			for _, s := range app.Services.Services() {
				table.Append([]string{s.ID, s.Name, s.Price, s.Description})
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "book [ID...]",
		Short: "Book services",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			for _, id := range args {
				if !app.Services.Toggle(id) {
					return errors.New("E410").WithDetailf("unknown or duplicate service %q", id)
				}
			}
			msg, err := app.Services.Book()
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s", msg)
			return nil
		},
	})

	return cmd
}

func (c *cli) navCmd() *cobra.Command {
	var page, entity string

	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Show the navigation bar and routable pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if page != "" {
				if err := app.Shell.Go(page, entity); err != nil {
					return err
				}
			}

			table := newTable(out, "ID", "Label", "Badge", "Active")
			for _, item := range nav.Items() {
				badge := ""
				if item.Badge > 0 {
					badge = strconv.Itoa(item.Badge)
				}
				table.Append([]string{item.ID, item.Label, badge, yesNo(app.Shell.Active(item.ID))})
			}
			table.Render()

			fmt.Fprintln(out)
			info(out, "Pages: %s", strings.Join(nav.Pages(), ", "))
			cur := app.Shell.Current()
			info(out, "Current: %s", joinNonEmpty("/", cur.Page, cur.EntityID))
			return nil
		},
	}

	cmd.Flags().StringVar(&page, "go", "", "Navigate to this page first")
	cmd.Flags().StringVar(&entity, "id", "", "Entity id for --go (event-detail)")

	return cmd
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect/internal/errors"
	"github.com/vango-dev/eventconnect/pkg/chat"
)

// wideWidth keeps the conversation list visible when selecting from the
// terminal.
const wideWidth = 1 << 16

func (c *cli) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Read and send chat messages",
	}
	cmd.AddCommand(c.chatListCmd(), c.chatShowCmd(), c.chatSendCmd(), c.chatNotificationsCmd())
	return cmd
}

func (c *cli) chatListCmd() *cobra.Command {
	var tab, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			if err := app.Chat.SetTab(chat.Tab(tab)); err != nil {
				return err
			}
			app.Chat.SetSearch(search)

			table := newTable(cmd.OutOrStdout(), "ID", "Name", "Type", "Last message", "Time", "Unread")
			for _, conv := range app.Chat.Conversations() {
				unread := ""
				if conv.Unread > 0 {
					unread = color.FgCyan.Sprint(strconv.Itoa(conv.Unread))
				}
				table.Append([]string{
					conv.ID,
					conv.Name,
					string(conv.Kind),
					truncate(conv.LastMessage, 40),
					conv.Time,
					unread,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(chat.TabAll), "Tab: all, direct or clubs")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search names and last messages")

	return cmd
}

func (c *cli) chatShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			if !app.Chat.Select(args[0], wideWidth) {
				return errors.New("E412").WithDetailf("conversation %q", args[0])
			}
			conv, _ := app.Chat.Selected()
			printThread(cmd.OutOrStdout(), conv, app.Chat.Thread(conv.ID))
			return nil
		},
	}
}

func (c *cli) chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send ID MESSAGE...",
		Short: "Send a message to a conversation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			if !app.Chat.Select(args[0], wideWidth) {
				return errors.New("E412").WithDetailf("conversation %q", args[0])
			}
			app.Chat.SetDraft(strings.Join(args[1:], " "))
			if _, ok := app.Chat.Send(); !ok {
				return errors.New("E410").WithDetail("The message is empty.")
			}
			conv, _ := app.Chat.Selected()
			printThread(cmd.OutOrStdout(), conv, app.Chat.Thread(conv.ID))
			return nil
		},
	}
}

func (c *cli) chatNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List system notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Type", "Title", "Message", "Time")
			for _, n := range app.Chat.Notifications() {
				table.Append([]string{n.Kind, n.Title, truncate(n.Message, 56), n.Time})
			}
			table.Render()
			return nil
		},
	}
}

func printThread(w io.Writer, conv chat.Conversation, msgs []chat.Message) {
	fmt.Fprintln(w, color.Bold.Sprint(conv.Name))
	for _, m := range msgs {
		sender := m.Sender
		if m.IsMe {
			sender = color.FgGreen.Sprint(sender)
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", m.Time, sender, m.Text)
	}
}

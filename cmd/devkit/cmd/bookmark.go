package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

func newBookmarkCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bookmarks", "b"},
		Short:   "Manage terminal command bookmarks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List bookmarks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				bookmarks, err := c.toolkit().Bookmarks.List(cmd.Context())
				if err != nil {
					return err
				}
				if c.jsonOutput {
					return printJSON(cmd, bookmarks)
				}
				tw := newTable(cmd, "ID", "LABEL", "COMMAND", "CREATED")
				for _, b := range bookmarks {
					row(tw, b.RecordID(), b.Label, oneLine(b.Command, listPreviewLen), formatTime(b.CreatedAt))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:     "add <label> [command...]",
			Short:   "Bookmark a command (read from stdin when omitted)",
			Example: `  devkit bookmark add "List files" -- ls -la`,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				command, err := textArg(cmd, args, 1)
				if err != nil {
					return err
				}
				b, err := c.toolkit().Bookmarks.Create(cmd.Context(), toolkit.BookmarkInput{Label: args[0], Command: command})
				if err != nil {
					return err
				}
				return c.printBookmark(cmd, b, "✅ bookmark added")
			},
		},
		newBookmarkEditCmd(c),
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := c.toolkit().Bookmarks.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deleted(cmd, "bookmark", args[0], ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "copy <id>",
			Short: "Copy the command to the clipboard",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.toolkit().Bookmarks.Copy(cmd.Context(), args[0]); err != nil {
					return err
				}
				printf(cmd, "📋 copied\n")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := c.toolkit().Bookmarks.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printBookmark(cmd, b, "")
			},
		},
	)
	return cmd
}

func newBookmarkEditCmd(c *cli) *cobra.Command {
	var label, command string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the label and/or command of a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks := c.toolkit().Bookmarks
			current, err := bookmarks.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := toolkit.BookmarkInput{Label: current.Label, Command: current.Command}
			if cmd.Flags().Changed("label") {
				in.Label = label
			}
			if cmd.Flags().Changed("command") {
				in.Command = command
			}

			b, err := bookmarks.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return c.printBookmark(cmd, b, "✅ bookmark updated")
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "new label")
	cmd.Flags().StringVar(&command, "command", "", "new command")
	return cmd
}

func (c *cli) printBookmark(cmd *cobra.Command, b domain.Bookmark, status string) error {
	if c.jsonOutput {
		return printJSON(cmd, b)
	}
	if status != "" {
		printf(cmd, "%s (%s)\n", status, b.RecordID())
	}
	printf(cmd, "%s\n  $ %s\n", b.Label, b.Command)
	return nil
}

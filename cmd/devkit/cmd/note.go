package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

func newNoteCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Manage notes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List notes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := c.toolkit().Notes.List(cmd.Context())
				if err != nil {
					return err
				}
				if c.jsonOutput {
					return printJSON(cmd, notes)
				}
				tw := newTable(cmd, "ID", "PREVIEW", "CREATED", "UPDATED")
				for _, n := range notes {
					row(tw, n.RecordID(), oneLine(n.Content, domain.NotePreviewLen), formatTime(n.CreatedAt), formatUpdated(n.UpdatedAt))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "add [content...]",
			Short: "Add a note (read from stdin when omitted)",
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := textArg(cmd, args, 0)
				if err != nil {
					return err
				}
				n, err := c.toolkit().Notes.Create(cmd.Context(), toolkit.NoteInput{Content: content})
				if err != nil {
					return err
				}
				return c.printNote(cmd, n, "✅ note added")
			},
		},
		&cobra.Command{
			Use:   "edit <id> [content...]",
			Short: "Replace the content of a note (read from stdin when omitted)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := textArg(cmd, args, 1)
				if err != nil {
					return err
				}
				n, err := c.toolkit().Notes.Update(cmd.Context(), args[0], toolkit.NoteInput{Content: content})
				if err != nil {
					return err
				}
				return c.printNote(cmd, n, "✅ note updated")
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a note",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := c.toolkit().Notes.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deleted(cmd, "note", args[0], ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a note",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := c.toolkit().Notes.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printNote(cmd, n, "")
			},
		},
	)
	return cmd
}

func (c *cli) printNote(cmd *cobra.Command, n domain.Note, status string) error {
	if c.jsonOutput {
		return printJSON(cmd, n)
	}
	if status != "" {
		printf(cmd, "%s (%s)\n", status, n.RecordID())
	}
	printf(cmd, "%s\n", n.Content)
	return nil
}

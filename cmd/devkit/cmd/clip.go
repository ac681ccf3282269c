package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

func newClipCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clip",
		Aliases: []string{"clips", "c"},
		Short:   "Manage the clipboard history",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List clips, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				clips, err := c.toolkit().Clips.List(cmd.Context())
				if err != nil {
					return err
				}
				if c.jsonOutput {
					return printJSON(cmd, clips)
				}
				tw := newTable(cmd, "ID", "CONTENT", "CREATED")
				for _, clip := range clips {
					row(tw, clip.RecordID(), oneLine(clip.Content, domain.ClipPreviewLen), formatTime(clip.CreatedAt))
				}
				return tw.Flush()
			},
		},
		newClipAddCmd(c),
		&cobra.Command{
			Use:   "paste",
			Short: "Save the current clipboard content as a clip",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				text := c.toolkit().Clips.Paste()
				if text == "" {
					printf(cmd, "clipboard is empty or unreadable, nothing saved\n")
					return nil
				}
				return c.addClip(cmd, text)
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a clip",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := c.toolkit().Clips.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deleted(cmd, "clip", args[0], ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "copy <id>",
			Short: "Copy a clip back to the clipboard",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.toolkit().Clips.Copy(cmd.Context(), args[0]); err != nil {
					return err
				}
				printf(cmd, "📋 copied\n")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a clip",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				clip, err := c.toolkit().Clips.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printClip(cmd, clip, "")
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the whole clipboard history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.toolkit().Clips.ClearAll(cmd.Context()); err != nil {
					return err
				}
				printf(cmd, "🗑  clipboard history cleared\n")
				return nil
			},
		},
	)
	return cmd
}

func newClipAddCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "add [content...]",
		Short: "Add a clip (read from stdin when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := textArg(cmd, args, 0)
			if err != nil {
				return err
			}
			return c.addClip(cmd, content)
		},
	}
}

func (c *cli) addClip(cmd *cobra.Command, content string) error {
	clip, err := c.toolkit().Clips.Create(cmd.Context(), toolkit.ClipInput{Content: content})
	if errors.Is(err, toolkit.ErrDuplicate) {
		printf(cmd, "already in the history, nothing saved\n")
		return nil
	}
	if err != nil {
		return err
	}
	return c.printClip(cmd, clip, "✅ clip added")
}

func (c *cli) printClip(cmd *cobra.Command, clip domain.Clip, status string) error {
	if c.jsonOutput {
		return printJSON(cmd, clip)
	}
	if status != "" {
		printf(cmd, "%s (%s)\n", status, clip.RecordID())
	}
	printf(cmd, "%s\n", clip.Content)
	return nil
}

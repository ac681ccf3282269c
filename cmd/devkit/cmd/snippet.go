package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

func newSnippetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snippet",
		Aliases: []string{"snippets", "s"},
		Short:   "Manage code snippets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List snippets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				snippets, err := c.toolkit().Snippets.List(cmd.Context())
				if err != nil {
					return err
				}
				if c.jsonOutput {
					return printJSON(cmd, snippets)
				}
				tw := newTable(cmd, "ID", "TITLE", "CODE", "CREATED", "UPDATED")
				for _, s := range snippets {
					row(tw, s.RecordID(), s.Title, oneLine(s.Code, listPreviewLen), formatTime(s.CreatedAt), formatUpdated(s.UpdatedAt))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "add <title> [code...]",
			Short: "Add a snippet (code is read from stdin when omitted)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code, err := textArg(cmd, args, 1)
				if err != nil {
					return err
				}
				s, err := c.toolkit().Snippets.Create(cmd.Context(), toolkit.SnippetInput{Title: args[0], Code: code})
				if err != nil {
					return err
				}
				return c.printSnippet(cmd, s, "✅ snippet added")
			},
		},
		newSnippetEditCmd(c),
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a snippet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := c.toolkit().Snippets.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deleted(cmd, "snippet", args[0], ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "copy <id>",
			Short: "Copy the snippet code to the clipboard",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.toolkit().Snippets.Copy(cmd.Context(), args[0]); err != nil {
					return err
				}
				printf(cmd, "📋 copied\n")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a snippet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := c.toolkit().Snippets.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printSnippet(cmd, s, "")
			},
		},
	)
	return cmd
}

func newSnippetEditCmd(c *cli) *cobra.Command {
	var title, code string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title and/or code of a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snippets := c.toolkit().Snippets
			current, err := snippets.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := toolkit.SnippetInput{Title: current.Title, Code: current.Code}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("code") {
				in.Code = code
			}

			s, err := snippets.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return c.printSnippet(cmd, s, "✅ snippet updated")
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&code, "code", "", "new code")
	return cmd
}

func (c *cli) printSnippet(cmd *cobra.Command, s domain.Snippet, status string) error {
	if c.jsonOutput {
		return printJSON(cmd, s)
	}
	if status != "" {
		printf(cmd, "%s (%s)\n", status, s.RecordID())
	}
	printf(cmd, "# %s\n%s\n", s.Title, s.Code)
	return nil
}

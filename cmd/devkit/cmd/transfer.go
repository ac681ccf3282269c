package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/transfer"
)

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every panel as YAML to file, or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := transfer.Export(cmd.Context(), c.toolkit(), time.Now())
			if err != nil {
				return err
			}
			for _, panel := range doc.Unavailable {
				cmd.PrintErrf("⚠️  %s are corrupt and were not exported\n", panel)
			}
			if len(args) == 0 {
				return transfer.Encode(cmd.OutOrStdout(), doc)
			}
			if err := transfer.WriteFile(args[0], doc); err != nil {
				return err
			}
			printf(cmd, "✅ exported %d snippets, %d bookmarks, %d notes, %d clips to %s\n",
				len(doc.Snippets), len(doc.Bookmarks), len(doc.Notes), len(doc.Clips), args[0])
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add the records of a YAML export",
		Long: `Adds every record of a YAML export to the current data. Records get
new ids. Blank records and clips already in the history are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := transfer.ReadFile(args[0])
			if err != nil {
				return err
			}
			sum, err := transfer.Import(cmd.Context(), c.toolkit(), doc)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(cmd, sum)
			}

			tw := newTable(cmd, "PANEL", "IMPORTED", "SKIPPED")
			for _, p := range []struct {
				name  string
				count transfer.Count
			}{
				{"snippets", sum.Snippets},
				{"bookmarks", sum.Bookmarks},
				{"notes", sum.Notes},
				{"clips", sum.Clips},
			} {
				row(tw, p.name, strconv.Itoa(p.count.Imported), strconv.Itoa(p.count.Skipped))
			}
			return tw.Flush()
		},
	}
}

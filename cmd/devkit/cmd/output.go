package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/domain"
)

// listPreviewLen caps single-line previews in tables.
const listPreviewLen = 60

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(cmd *cobra.Command, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	_, _ = fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

// oneLine flattens text for a table cell.
func oneLine(text string, limit int) string {
	return domain.Preview(strings.Join(strings.Fields(text), " "), limit)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func formatUpdated(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

// textArg joins args[from:], or reads stdin when there are none.
func textArg(cmd *cobra.Command, args []string, from int) (string, error) {
	if len(args) > from {
		return strings.Join(args[from:], " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// deleted reports a delete result.
func deleted(cmd *cobra.Command, kind, id string, ok bool) {
	if ok {
		printf(cmd, "🗑  %s %s deleted\n", kind, id)
		return
	}
	printf(cmd, "%s %s not found, nothing to delete\n", kind, id)
}

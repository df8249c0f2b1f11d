package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/models"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// printJSON renders v as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatMillis renders an epoch-millisecond timestamp in local time.
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

// shortID trims a UUID down to its first block for table display. Commands
// that take ids accept such prefixes back, see resolveTaskID.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// truncate shortens s to at most n runes, appending "…" when it had to cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// printMergeSummary renders the per-entity merge breakdown, skipping entity
// types the merge never touched.
func printMergeSummary(out io.Writer, summary models.MergeSummary) {
	for _, entityType := range models.BackupEntityTypes() {
		counts, ok := summary.PerEntity[entityType]
		if !ok || (counts == models.MergeCounts{}) {
			continue
		}
		fmt.Fprintf(out, "  %-12s new %d, remote wins %d, local wins %d, equal %d\n",
			entityType, counts.NewRecords, counts.RemoteWins, counts.LocalWins, counts.Equal)
	}
	for _, failure := range summary.Failed {
		fmt.Fprintf(out, "  %s %s: %s\n", red("✗"), failure.EntityType, failure.Error)
	}
}

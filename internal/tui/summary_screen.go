package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-balance-sync/models"
)

type summaryModel struct {
	result  *models.SyncResult
	failure string
}

func (m summaryModel) View() string {
	if m.failure != "" {
		body := errorStyle.Render("Sync failed") + "\n\n" + m.failure
		return renderPage("SYNC FAILED", body, "enter/q: close")
	}
	if m.result == nil {
		return renderPage("SYNC", "-", "enter/q: close")
	}

	var b strings.Builder
	took := time.Duration(m.result.FinishedAt-m.result.StartedAt) * time.Millisecond
	b.WriteString(fmt.Sprintf("Synced with %s in %s\n\n", m.result.PeerDeviceID, took))
	b.WriteString(fmt.Sprintf("sent      %d\n", m.result.TotalSent))
	b.WriteString(fmt.Sprintf("received  %d\n", m.result.TotalReceived))
	b.WriteString(fmt.Sprintf("upserted  %d\n", m.result.TotalUpserted))

	perEntity := renderMergeBreakdown(m.result.Merge)
	if perEntity != "" {
		b.WriteString("\n")
		b.WriteString(perEntity)
	}

	return renderPage("SYNC COMPLETE", b.String(), "enter/q: close")
}

func renderMergeBreakdown(summary models.MergeSummary) string {
	var b strings.Builder
	for _, entityType := range models.BackupEntityTypes() {
		counts, ok := summary.PerEntity[entityType]
		if !ok || (counts == models.MergeCounts{}) {
			continue
		}
		b.WriteString(fmt.Sprintf("%-12s new %d, remote wins %d, local wins %d\n",
			entityType, counts.NewRecords, counts.RemoteWins, counts.LocalWins))
	}
	for _, failure := range summary.Failed {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s: %s", failure.EntityType, failure.Error)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

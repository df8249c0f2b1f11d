package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-balance-sync/models"
)

type progressModel struct {
	spinner spinner.Model
	status  models.SyncStatus
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return progressModel{spinner: s}
}

func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(phaseLabel(m.status))
	b.WriteString("\n\n")
	if m.status.Message != "" {
		b.WriteString(m.status.Message)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("sent %d │ received %d", m.status.RecordsSent, m.status.RecordsReceived))

	return renderPage("SYNCING", b.String(), "q: abort")
}

func phaseLabel(status models.SyncStatus) string {
	switch status.Phase {
	case models.PhaseConnecting:
		return "Connecting to peer..."
	case models.PhaseHandshake:
		return "Exchanging watermarks..."
	case models.PhaseSending:
		return "Sending records..."
	case models.PhaseMerging:
		return "Merging records..."
	case models.PhaseFinalizing:
		return "Finalizing..."
	case models.PhaseDone:
		return "Done"
	case models.PhaseFailed:
		return "Failed"
	default:
		return "Waiting for the other device..."
	}
}

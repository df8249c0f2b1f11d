package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
)

// inputModel collects pasted chunk codes, one per line. Pressing enter on an
// empty last line submits.
type inputModel struct {
	prompt string
	area   textarea.Model
	status string
}

func newInputModel(prompt string) inputModel {
	area := textarea.New()
	area.Placeholder = "BSC|v1|1|4|..."
	area.ShowLineNumbers = false
	area.SetWidth(72)
	area.SetHeight(8)
	area.Focus()

	return inputModel{prompt: prompt, area: area}
}

func (m inputModel) View() string {
	var b strings.Builder

	b.WriteString(m.prompt)
	b.WriteString("\n\n")
	b.WriteString(m.area.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage("ENTER CODES", b.String(), "enter on empty line: submit │ ctrl+p: paste clipboard │ esc: back")
}

// codeLines splits pasted text into trimmed, non-empty code lines.
func codeLines(value string) []string {
	var codes []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			codes = append(codes, line)
		}
	}
	return codes
}

// readyToSubmit reports whether the textarea holds at least one code and the
// cursor sits on an empty last line, the signal that the paste is complete.
func (m inputModel) readyToSubmit() bool {
	value := m.area.Value()
	lines := strings.Split(value, "\n")
	return strings.TrimSpace(lines[len(lines)-1]) == "" && len(codeLines(value)) > 0
}

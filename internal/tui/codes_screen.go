package tui

import "strings"

// codesModel shows the chunk codes this device produced, either the offer
// or the answer depending on the role.
type codesModel struct {
	title  string
	codes  []string
	next   string
	status string
}

func (m codesModel) View() string {
	var b strings.Builder

	b.WriteString("Enter these codes on the other device, in any order:\n\n")
	for _, code := range m.codes {
		b.WriteString(code)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.next)
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.status))
	}

	return renderPage(m.title, b.String(), "c: copy codes │ enter: continue │ esc: abort")
}

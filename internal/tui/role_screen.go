package tui

type roleModel struct {
	items []string
	idx   int
}

func newRoleModel() roleModel {
	return roleModel{items: []string{
		"Start a new sync (this device shows the first codes)",
		"Join a sync (the other device already shows codes)",
	}}
}

func (m roleModel) View() string {
	out := "Choose how to pair this device:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	return renderPage("PAIR DEVICES", out, "enter: select │ ↑/↓: move │ q: quit")
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	esc   key.Binding
	quit  key.Binding
	copy  key.Binding
	paste key.Binding
	yes   key.Binding
	no    key.Binding
}

var keys = keyMap{
	up:    key.NewBinding(key.WithKeys("up", "k")),
	down:  key.NewBinding(key.WithKeys("down", "j")),
	enter: key.NewBinding(key.WithKeys("enter")),
	esc:   key.NewBinding(key.WithKeys("esc")),
	quit:  key.NewBinding(key.WithKeys("q", "ctrl+c")),
	copy:  key.NewBinding(key.WithKeys("c")),
	paste: key.NewBinding(key.WithKeys("ctrl+p")),
	yes:   key.NewBinding(key.WithKeys("y")),
	no:    key.NewBinding(key.WithKeys("n")),
}

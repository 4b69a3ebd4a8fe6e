package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	esc         key.Binding
	tab         key.Binding
	backtab     key.Binding
	quit        key.Binding
	newItem     key.Binding
	delete      key.Binding
	copy        key.Binding
	reassign    key.Binding
	maintenance key.Binding
	filter      key.Binding
	reserveAll  key.Binding
	reserveNext key.Binding
	advance     key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	tab:         key.NewBinding(key.WithKeys("tab")),
	backtab:     key.NewBinding(key.WithKeys("shift+tab")),
	quit:        key.NewBinding(key.WithKeys("q")),
	newItem:     key.NewBinding(key.WithKeys("n")),
	delete:      key.NewBinding(key.WithKeys("d")),
	copy:        key.NewBinding(key.WithKeys("c")),
	reassign:    key.NewBinding(key.WithKeys("r")),
	maintenance: key.NewBinding(key.WithKeys("m")),
	filter:      key.NewBinding(key.WithKeys("f")),
	reserveAll:  key.NewBinding(key.WithKeys("a")),
	reserveNext: key.NewBinding(key.WithKeys("n")),
	advance:     key.NewBinding(key.WithKeys("u")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n", "esc")),
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Logout     key.Binding
	NextField  key.Binding
	ToggleMode key.Binding
	ToggleAI   key.Binding
	Predict    key.Binding
	Restart    key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "login/sign up")),
	ToggleAI:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI analysis")),
	Predict:    key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "predict")),
	Restart:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new prediction")),
}

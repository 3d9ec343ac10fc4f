package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor's key bindings.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Prev       key.Binding
	Next       key.Binding
	MoreWashes key.Binding
	LessWashes key.Binding
	BigMore    key.Binding
	BigLess    key.Binding
	SetWashes  key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous stage")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next stage")),
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous option")),
		Next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		MoreWashes: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "one more wash")),
		LessWashes: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "one less wash")),
		BigMore:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "+10 washes")),
		BigLess:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "-10 washes")),
		SetWashes:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "type wash count")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.MoreWashes, k.LessWashes, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.MoreWashes, k.LessWashes, k.BigMore, k.BigLess, k.SetWashes},
		{k.Reset, k.Help, k.Quit},
	}
}

package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextTier    key.Binding
	PrevTier    key.Binding
	Search      key.Binding
	PrevExample key.Binding
	NextExample key.Binding
	Copy        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextTier: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "tier"),
		),
		PrevTier: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab", "prev tier"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		PrevExample: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "example"),
		),
		NextExample: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "example"),
		),
		Copy: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "copy"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("shift+up", "ctrl+u"),
			key.WithHelp("^u", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("shift+down", "ctrl+d"),
			key.WithHelp("^d", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpBindings are the bindings listed in the help bar, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTier, k.Search, k.NextExample, k.Copy, k.Clear, k.Quit}
}

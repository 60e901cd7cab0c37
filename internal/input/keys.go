package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the browse-mode key bindings.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Goto          key.Binding
	Search        key.Binding
	ColumnsFilter key.Binding
	Reset         key.Binding
	Quit          key.Binding
}

// NewKeyMap returns the default bindings.
func NewKeyMap() KeyMap {
	return KeyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "move")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "move")),
		PageUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("ctrl+u", "page up")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("ctrl+d", "page down")),
		Top:           key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Goto:          key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to line")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ColumnsFilter: key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "filter columns")),
		Reset:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "reset filters")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Search, k.ColumnsFilter, k.Goto, k.Quit}
}

// FullHelp lists all bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Goto},
		{k.Search, k.ColumnsFilter, k.Reset, k.Quit},
	}
}

// Decode maps a key press to a Control. The second return is false
// when the key is unbound.
func (k KeyMap) Decode(msg tea.KeyMsg) (Control, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return ScrollUp{}, true
	case key.Matches(msg, k.Down):
		return ScrollDown{}, true
	case key.Matches(msg, k.PageUp):
		return ScrollPageUp{}, true
	case key.Matches(msg, k.PageDown):
		return ScrollPageDown{}, true
	case key.Matches(msg, k.Top):
		return ScrollTop{}, true
	case key.Matches(msg, k.Bottom):
		return ScrollBottom{}, true
	case key.Matches(msg, k.Goto):
		return StartGoto{}, true
	case key.Matches(msg, k.Search):
		return StartSearch{}, true
	case key.Matches(msg, k.ColumnsFilter):
		return StartColumnsFilter{}, true
	case key.Matches(msg, k.Reset):
		return ResetFilters{}, true
	case key.Matches(msg, k.Quit):
		return Quit{}, true
	}
	return nil, false
}

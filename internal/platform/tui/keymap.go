package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ai2048/internal/core"
)

// KeyMap holds the play screen bindings. It doubles as the help.KeyMap for
// the footer.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Autoplay    key.Binding
	AIOnce      key.Binding
	Backup      key.Binding
	Restart     key.Binding
	Smarter     key.Binding
	Dumber      key.Binding
	ValueUp     key.Binding
	ValueDown   key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Place       key.Binding
	Slower      key.Binding
	Faster      key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),

		Autoplay: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "autoplay")),
		AIOnce:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "AI once")),
		Backup:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backup")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Smarter:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "intelligence")),
		Dumber:   key.NewBinding(key.WithKeys("-", "_")),

		ValueUp:     key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "tile value")),
		ValueDown:   key.NewBinding(key.WithKeys("[")),
		CursorUp:    key.NewBinding(key.WithKeys("i"), key.WithHelp("ijkl", "cursor")),
		CursorDown:  key.NewBinding(key.WithKeys("k")),
		CursorLeft:  key.NewBinding(key.WithKeys("j")),
		CursorRight: key.NewBinding(key.WithKeys("l")),
		Place:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place tile")),

		Slower: key.NewBinding(key.WithKeys(">", "."), key.WithHelp("</>", "delay")),
		Faster: key.NewBinding(key.WithKeys("<", ",")),

		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "screenshot")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Autoplay, k.AIOnce, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Autoplay, k.AIOnce, k.Smarter, k.Slower},
		{k.Backup, k.Restart, k.Screenshot},
		{k.CursorUp, k.ValueUp, k.Place},
		{k.Help, k.Quit},
	}
}

// actionBindings pairs each binding with the session action it triggers.
func (k KeyMap) actionBindings() []struct {
	binding key.Binding
	action  core.Action
} {
	return []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Up, core.ActionMoveUp},
		{k.Down, core.ActionMoveDown},
		{k.Left, core.ActionMoveLeft},
		{k.Right, core.ActionMoveRight},
		{k.Autoplay, core.ActionToggleAutoplay},
		{k.AIOnce, core.ActionAIOnce},
		{k.Backup, core.ActionBackup},
		{k.Restart, core.ActionRestart},
		{k.Smarter, core.ActionSmarter},
		{k.Dumber, core.ActionDumber},
		{k.ValueUp, core.ActionValueUp},
		{k.ValueDown, core.ActionValueDown},
		{k.CursorUp, core.ActionCursorUp},
		{k.CursorDown, core.ActionCursorDown},
		{k.CursorLeft, core.ActionCursorLeft},
		{k.CursorRight, core.ActionCursorRight},
		{k.Place, core.ActionPlace},
		{k.Slower, core.ActionSlower},
		{k.Faster, core.ActionFaster},
	}
}

// MapKey translates a key message to a session action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range k.actionBindings() {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

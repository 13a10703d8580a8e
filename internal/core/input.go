package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone           Action = iota
	ActionMoveUp                // W, Up arrow
	ActionMoveDown              // S, Down arrow
	ActionMoveLeft              // A, Left arrow
	ActionMoveRight             // D, Right arrow
	ActionToggleAutoplay        // Space
	ActionAIOnce                // O - one AI move without spawning
	ActionBackup                // B - remember the current board
	ActionRestart               // R - reset, restoring the backup if any
	ActionSmarter               // + - raise intelligence
	ActionDumber                // - - lower intelligence
	ActionValueUp               // ] - larger placement value
	ActionValueDown             // [ - smaller placement value
	ActionCursorUp              // I
	ActionCursorDown            // K
	ActionCursorLeft            // J
	ActionCursorRight           // L
	ActionPlace                 // Enter - place a tile at the cursor
	ActionSlower                // < - longer autoplay delay
	ActionFaster                // > - shorter autoplay delay
	ActionQuit                  // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:           "None",
	ActionMoveUp:         "MoveUp",
	ActionMoveDown:       "MoveDown",
	ActionMoveLeft:       "MoveLeft",
	ActionMoveRight:      "MoveRight",
	ActionToggleAutoplay: "ToggleAutoplay",
	ActionAIOnce:         "AIOnce",
	ActionBackup:         "Backup",
	ActionRestart:        "Restart",
	ActionSmarter:        "Smarter",
	ActionDumber:         "Dumber",
	ActionValueUp:        "ValueUp",
	ActionValueDown:      "ValueDown",
	ActionCursorUp:       "CursorUp",
	ActionCursorDown:     "CursorDown",
	ActionCursorLeft:     "CursorLeft",
	ActionCursorRight:    "CursorRight",
	ActionPlace:          "Place",
	ActionSlower:         "Slower",
	ActionFaster:         "Faster",
	ActionQuit:           "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one update.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

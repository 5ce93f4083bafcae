package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - paddle up, cursor up
	ActionDown           // S, Down arrow - paddle down, cursor down
	ActionLeft           // Left arrow - cursor/snake left
	ActionRight          // Right arrow - cursor/snake right
	ActionJump           // Space - primary action
	ActionConfirm        // Enter - select piece / confirm
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game
	ActionQuit           // Q, Ctrl+C - exit game
	ActionPause          // P - pause/unpause game
	ActionMute           // M - toggle sound
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes pointer gestures.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerRelease
	PointerDrag
)

// PointerEvent is a mouse gesture in screen cell coordinates.
// Games translate it to their own grid and drop positions outside it.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer holds mouse gestures in arrival order.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
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

// AddPointer appends a mouse gesture to the frame.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointer) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append(clone.Pointer, f.Pointer...)
	return clone
}

// PlayerID identifies one of the local players sharing the keyboard.
type PlayerID int

const (
	Player1 PlayerID = 1 // left side, W/S
	Player2 PlayerID = 2 // right side, arrow keys
)

// MultiInputFrame contains input from all local players for a single tick.
// The platform splits the keyboard between players; games consume this
// without knowing which keys were pressed.
type MultiInputFrame struct {
	// ByPlayer maps player IDs to their input frames.
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Player1 returns the input frame for Player 1 (convenience method).
func (m MultiInputFrame) Player1() InputFrame {
	return m.Player(Player1)
}

// Player2 returns the input frame for Player 2 (convenience method).
func (m MultiInputFrame) Player2() InputFrame {
	return m.Player(Player2)
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/beep-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a single-player action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "m":
		return core.ActionMute, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMultiFrame updates a two-player frame for a shared keyboard:
// W/S drive Player1, the arrow keys drive Player2 and every other key
// belongs to Player1.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player := core.Player1
	switch msg.String() {
	case "up", "down", "left", "right":
		player = core.Player2
	}

	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		f := frame.Player(player)
		f.Set(action)
		frame.SetPlayer(player, f)
	}
	return isQuit
}

// MapMouse translates a left-button mouse message into a pointer event.
// ok is false for other buttons and for motion without a held button.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (ev core.PointerEvent, ok bool) {
	ev = core.PointerEvent{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = core.PointerPress
	case tea.MouseActionRelease:
		ev.Kind = core.PointerRelease
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = core.PointerDrag
	default:
		return ev, false
	}
	return ev, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skillrun/quizrunner/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
//
// Bindings are mode dependent: while a question overlay is up, letter keys
// type into the answer field instead of steering the runner, and only Ctrl+C
// quits (so "q" can be typed).
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToFrame updates an input frame based on a key message.
// inQuestion selects the question-overlay bindings.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, inQuestion bool) bool {
	if inQuestion {
		return km.mapQuestionKey(msg, frame)
	}
	return km.mapRunKey(msg, frame)
}

// mapRunKey handles bindings while the runner world is active.
func (km *KeyMapper) mapRunKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		frame.Set(core.ActionQuit)
		return true
	case " ", "up", "w":
		frame.Set(core.ActionJump)
	case "down", "s":
		frame.Set(core.ActionDuck)
	case "p", "esc":
		frame.Set(core.ActionPause)
	case "r":
		frame.Set(core.ActionRestart)
	case "b":
		frame.Set(core.ActionBack)
	}
	return false
}

// mapQuestionKey handles bindings while a question or feedback overlay is up.
func (km *KeyMapper) mapQuestionKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch msg.String() {
	case "ctrl+c":
		frame.Set(core.ActionQuit)
		return true
	case "up":
		frame.Set(core.ActionUp)
		return false
	case "down":
		frame.Set(core.ActionDown)
		return false
	case "enter":
		frame.Set(core.ActionConfirm)
		return false
	case "backspace":
		frame.Set(core.ActionErase)
		return false
	case "esc":
		return false // Swallowed; a question cannot be dismissed
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		for _, r := range msg.Runes {
			frame.Type(r)
		}
	} else if msg.Type == tea.KeySpace {
		frame.Type(' ')
	}
	return false
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
	switch msg.String() {
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

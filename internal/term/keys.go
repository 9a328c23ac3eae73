// Package term runs sandfall worlds in a terminal through tcell.
package term

import (
	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
)

// Command is a front-end request that does not reach the simulation.
type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandStep
)

// MapKey translates a key press into a player action or a front-end command.
// Terminals report presses only, so every repeat of a held key moves once.
func MapKey(ev *tcell.EventKey) (core.Action, Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionNone, CommandQuit
	case tcell.KeyLeft:
		return core.ActionMoveLeft, CommandNone
	case tcell.KeyRight:
		return core.ActionMoveRight, CommandNone
	case tcell.KeyUp:
		return core.ActionJump, CommandNone
	case tcell.KeyRune:
	default:
		return core.ActionNone, CommandNone
	}

	switch ev.Rune() {
	case 'a', 'A', 'h':
		return core.ActionMoveLeft, CommandNone
	case 'd', 'D', 'l':
		return core.ActionMoveRight, CommandNone
	case ' ', 'w', 'W', 'k':
		return core.ActionJump, CommandNone
	case 'r', 'R':
		return core.ActionReset, CommandNone
	case 'p', 'P':
		return core.ActionNone, CommandPause
	case 'n', 'N':
		return core.ActionNone, CommandStep
	case 'q', 'Q':
		return core.ActionNone, CommandQuit
	}
	return core.ActionNone, CommandNone
}

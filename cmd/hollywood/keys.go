package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hollywood/engine"
)

// presetKeys binds the digit row to preset names
var presetKeys = map[rune]string{
	'1': "default",
	'2': "minimal",
	'3': "surveillance",
}

// action is what a key press asks of the host loop
type action struct {
	quit    bool
	command engine.Command
	ok      bool
}

// keyAction maps a key event to a quit request or an engine command
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{quit: true}
	case tcell.KeyRune:
	default:
		return action{}
	}

	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return action{quit: true}
	case 'r', 'R':
		return action{command: engine.Command{Kind: engine.CmdReboot}, ok: true}
	case 's', 'S':
		return action{command: engine.Command{Kind: engine.CmdToggleScaling}, ok: true}
	default:
		if name, found := presetKeys[r]; found {
			return action{command: engine.Command{Kind: engine.CmdApplyPreset, Preset: name}, ok: true}
		}
	}
	return action{}
}

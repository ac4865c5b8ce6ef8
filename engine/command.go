package engine

// CommandKind enumerates host commands
type CommandKind uint8

const (
	CmdReboot CommandKind = iota
	CmdToggleScaling
	CmdApplyPreset
)

// Command is a host request bound to a key or other trigger
type Command struct {
	Kind CommandKind
	// Preset names the preset for CmdApplyPreset
	Preset string
}

// HandleCommand applies a host command, commands are ignored while booting
// Returns whether the command was applied
func (e *Engine) HandleCommand(cmd Command) bool {
	if e.phase == PhaseBooting {
		return false
	}
	switch cmd.Kind {
	case CmdReboot:
		e.Reboot()
	case CmdToggleScaling:
		e.ToggleScaling()
	case CmdApplyPreset:
		if err := e.ApplyPreset(cmd.Preset); err != nil {
			return false
		}
	default:
		return false
	}
	return true
}

package engine

// Phase is the engine's top-level state
type Phase uint8

const (
	PhaseBooting Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

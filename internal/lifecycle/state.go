package lifecycle

// State is a step of the controller lifecycle.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateStopped
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // Waiting for health check and snapshots
	StateReady                   // Feeds loaded or loading
	StateOffline                 // Health check failed; showing cached pages
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateOffline:
		return "offline"
	default:
		return "unknown"
	}
}

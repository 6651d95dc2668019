package mapoverlay

// State is the overlay lifecycle state. Transitions are driven entirely by
// host events:
//
//	Unattached → Attached → Ready ⇄ Lost, any → Removed (terminal)
//
// The embedded engine and scene exist only in StateReady. They are destroyed
// in full on every Ready→Lost or →Removed transition and rebuilt from
// scratch on the next context-ready event; no handle from a previous context
// is ever reused.
type State int

// Lifecycle states.
const (
	// StateUnattached is the initial state: configured but not bound to a
	// host.
	StateUnattached State = iota

	// StateAttached means a host is bound but no rendering context has been
	// delivered yet.
	StateAttached

	// StateReady means engine, scene, and camera are live and draw callbacks
	// are serviced.
	StateReady

	// StateLost means the host reported context loss. Engine and scene are
	// disposed; the overlay waits for the context to be reacquired.
	StateLost

	// StateRemoved is terminal: the host detached the overlay.
	StateRemoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAttached:
		return "attached"
	case StateReady:
		return "ready"
	case StateLost:
		return "lost"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

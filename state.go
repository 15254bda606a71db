package flow

// State identifies one of the possible states a queue can be in.
// Transitions are driven by occupancy: pushes move the queue towards
// Warning and Failed, pulls walk Warning back to Normal. Failed is
// terminal until the owner calls Reset.
type State int

const (
	// StateNormal means occupancy is at or below the warn watermark.
	StateNormal State = iota
	// StateWarning means occupancy is above warn but within fail.
	StateWarning
	// StateFailed means occupancy would have exceeded the fail watermark.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateWarning:
		return "warning"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Listener observes queue state transitions. It is called by Push, Pull
// and Reset after the queue lock is released, so it may call back into
// the queue.
type Listener func(from, to State)

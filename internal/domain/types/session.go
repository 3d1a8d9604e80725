package types

// Capture is what the page collaborator extracts from a rendered document.
type Capture struct {
	FormMarkup  string
	FormAction  string
	DocumentURL string
	Cookies     string
}

// SessionState is the position of a pairing session in its lifecycle.
type SessionState int

const (
	StateInitializing SessionState = iota
	StateAwaitingChannel
	StateWriting
	StateCompleted
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAwaitingChannel:
		return "awaiting-channel"
	case StateWriting:
		return "writing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s SessionState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

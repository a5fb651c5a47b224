package models

// Order lifecycle states. Delivered and Cancelled are terminal.
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var validNext = map[string]map[string]bool{
	StatusPending:   {StatusAccepted: true, StatusCancelled: true},
	StatusAccepted:  {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	return validNext[from][to]
}

// TerminalStatus reports whether no further transitions are possible.
func TerminalStatus(s string) bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

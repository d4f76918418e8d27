package nav

// Decision is the outcome of probing one layer for a navigation request.
type Decision int

const (
	// Move means the layer had room and the probe already issued the focus
	// change as part of the same call. Resolution stops here.
	Move Decision = iota

	// Boundary means the layer is present but has no further room in the
	// requested direction. Resolution escalates to the next layer.
	Boundary

	// Unavailable means the layer is absent or unreachable (socket missing,
	// timeout, protocol mismatch). Resolution escalates to the next layer.
	Unavailable
)

// Escalates reports whether the decision hands the request to the next layer.
func (d Decision) Escalates() bool {
	return d == Boundary || d == Unavailable
}

// String returns the decision name for logs and diagnostics.
func (d Decision) String() string {
	switch d {
	case Move:
		return "move"
	case Boundary:
		return "boundary"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

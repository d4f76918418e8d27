package nav

// WindowID is the compositor-assigned identifier of a window. It is unique
// within one compositor session and is only ever compared, never interpreted.
type WindowID uint64

// Request is a single navigation request. It is created fresh per invocation
// and lives only for the duration of one resolution.
type Request struct {
	Direction Direction
	Window    WindowID
}

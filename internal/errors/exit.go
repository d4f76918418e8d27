package errors

// ExitCode maps the final command error to the process exit code.
// Successful dispatch exits 0, including the no-op case where the
// compositor reports a boundary; any fatal resolution or dispatch
// failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

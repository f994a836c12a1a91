package oerror

import "fmt"

// Error is the error type used throughout lagcomp for programmer-caused failures, such as
// opening a compensation session while another one is still open.
type Error struct {
	Err string
}

// New formats a new *Error.
func New(format string, args ...interface{}) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

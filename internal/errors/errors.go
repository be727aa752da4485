// Package errors defines the stable, client-visible error table of the API
// and a thin wrapper that records where an unexpected error surfaced.
package errors

import (
	"fmt"
	"runtime"
)

// Error carries an underlying cause together with the file and line where
// it was wrapped. The location is for the log only; Error() renders just
// the cause so nothing internal leaks into messages.
type Error struct {
	Cause    error
	Location string
}

// Wrap annotates err with the caller's location. skip counts additional
// stack frames to skip for helpers that wrap on behalf of their caller.
// A nil err stays nil.
func Wrap(err error, skip int) error {
	if err == nil {
		return nil
	}

	return &Error{
		Cause:    err,
		Location: getLocation(skip),
	}
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Format(s fmt.State, verb rune) {
	fmt.Fprintf(s, "%s\n", e.Cause.Error())
	fmt.Fprintf(s, "\t%s\n", e.Location)
}

func getLocation(skip int) string {
	_, file, line, _ := runtime.Caller(2 + skip)
	return fmt.Sprintf("%s:%d", file, line)
}

package llm

import "errors"

// tooBusyError signals that a generation slot could not be acquired in time.
type tooBusyError struct{ model string }

func (e tooBusyError) Error() string { return "too busy: " + e.model }

// StatusCode maps the error to HTTP 429.
func (e tooBusyError) StatusCode() int { return 429 }

// IsTooBusy reports whether err indicates backpressure.
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a missing runtime (e.g. llama support not
// compiled in, or no endpoint configured).
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// StatusCode maps the error to HTTP 503.
func (e dependencyUnavailableError) StatusCode() int { return 503 }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

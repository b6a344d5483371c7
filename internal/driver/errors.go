package driver

import (
	"errors"
	"fmt"

	"jsxstream/internal/typeinfo"
)

// ResourceError is an I/O failure: an unreadable source or an unwritable
// output or record. Callers may retry these; faults in the input are
// reported as diagnostics instead.
type ResourceError struct {
	Op   string // read, decode, write, open
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsResource reports whether err is, or wraps, a *ResourceError.
func IsResource(err error) bool {
	var re *ResourceError
	return errors.As(err, &re)
}

// resourceErr lifts a cache-side read failure into a ResourceError and
// passes other errors through.
func resourceErr(err error) error {
	var se *typeinfo.SourceError
	if errors.As(err, &se) {
		return &ResourceError{Op: "read", Path: se.Path, Err: se.Err}
	}
	return err
}

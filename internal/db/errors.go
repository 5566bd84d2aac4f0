package db

import (
	"errors"
)

var (
	// ErrQueryTimeout marks a statement that hit the per-query deadline.
	ErrQueryTimeout = errors.New("query timeout")
	// ErrTableMissing is returned when none of the candidate tables for an
	// entity exist in the catalog.
	ErrTableMissing = errors.New("table missing")
)

// QueryError carries the logical operation that failed along with the store
// error, whose message is surfaced to API clients.
type QueryError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return e.Op + ": unknown error"
	}
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryTimeout && e.Timeout
}

// OpOf returns the logical operation recorded on err, or "".
func OpOf(err error) string {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Op
	}
	return ""
}

package tsa

import "github.com/pkg/errors"

// StoreError wraps a failure surfaced by a concrete Store implementation.
// It carries a stack trace (via github.com/pkg/errors) so the enclosing
// transaction's rollback is traceable back to the query that failed.
type StoreError struct {
	Op  string
	err error
}

func (e *StoreError) Error() string {
	return "tsa: " + e.Op + ": " + e.err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.err
}

// WrapStoreError annotates err with the failing operation name and a stack
// trace, or returns nil if err is nil.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Op: op, err: errors.WithStack(err)}
}

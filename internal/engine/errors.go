package engine

import (
	"fmt"

	"github.com/pkg/errors"

	cn "github.com/fcrepo-go/ldprepo/common/constant"
	"github.com/fcrepo-go/ldprepo/internal/rcl"
)

// The helpers below (wrapStoreLookup and the rest of this file) translate
// rcl's typed errors, plus the lifecycle engine's own validation failures,
// into the business-error sentinels common.ValidateBusinessError dispatches
// on. Each is wrapped with %w so errors.Is keeps working through
// internal/txn's rollback path.

func wrapStoreLookup(uid string, err error) error {
	var notExists rcl.ErrResourceNotExists
	if errors.As(err, &notExists) {
		return fmt.Errorf("%s: %w", uid, cn.ResourceNotExistsBusinessError)
	}

	var tombstone rcl.ErrTombstone
	if errors.As(err, &tombstone) {
		return fmt.Errorf("%s: %w", uid, cn.TombstoneBusinessError)
	}

	return fmt.Errorf("%s: %w", uid, cn.StoreBusinessError)
}

// SingleSubjectError reports a provided graph carrying a subject other than
// the target resource's URN or one of its hash fragments.
type SingleSubjectError struct {
	UID     string
	Subject string
}

func (e SingleSubjectError) Error() string {
	return fmt.Sprintf("provided graph for %s carries foreign subject %s", e.UID, e.Subject)
}

func (e SingleSubjectError) Unwrap() error {
	return cn.SingleSubjectBusinessError
}

// RefIntViolationError reports a strict referential-integrity failure.
type RefIntViolationError struct {
	UID    string
	Object string
}

func (e RefIntViolationError) Error() string {
	return fmt.Sprintf("provided graph for %s references absent resource %s", e.UID, e.Object)
}

func (e RefIntViolationError) Unwrap() error {
	return cn.RefIntViolationBusinessError
}

// InvalidResourceError reports an operation that cannot proceed because the
// target resource is not in the state the operation requires (e.g.
// resurrect with no prior version).
type InvalidResourceError struct {
	UID    string
	Reason string
}

func (e InvalidResourceError) Error() string {
	return fmt.Sprintf("resource %s is invalid for the requested operation: %s", e.UID, e.Reason)
}

func (e InvalidResourceError) Unwrap() error {
	return cn.InvalidResourceBusinessError
}

package rcl

import "fmt"

// ErrResourceNotExists is returned by ExtractIMR when strict is set and no
// triples were found for the requested uid.
type ErrResourceNotExists struct {
	UID string
}

func (e ErrResourceNotExists) Error() string {
	return fmt.Sprintf("resource does not exist: %s", e.UID)
}

// ErrTombstone is returned by ExtractIMR when strict is set and the
// extracted graph is itself a tombstone, or carries a pointer to one.
type ErrTombstone struct {
	UID    string
	Parent string
}

func (e ErrTombstone) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("resource %s is beneath tombstoned ancestor %s", e.UID, e.Parent)
	}

	return fmt.Sprintf("resource is a tombstone: %s", e.UID)
}

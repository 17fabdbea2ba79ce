package rcl

import "github.com/fcrepo-go/ldprepo/internal/rdf"

// Resource is the in-memory representation of extract_imr's result: the
// merged graph describing a single logical resource, addressed by its
// internal URN.
type Resource struct {
	URN   string
	Graph *rdf.Graph
}

// IsTombstone reports whether the extracted graph marks the resource itself
// as a tombstone (rdf:type fcsystem:Tombstone).
func (r *Resource) IsTombstone() bool {
	for _, t := range r.Graph.ByPredicate(rdfType) {
		if t.Subject.Value == r.URN && t.Object.Value == tombstoneType {
			return true
		}
	}

	return false
}

// TombstoneParent returns the URN of the ancestor whose burial produced this
// resource's tombstone pointer, and whether such a pointer is present.
func (r *Resource) TombstoneParent() (string, bool) {
	for _, t := range r.Graph.ByPredicate(tombstonePredicate) {
		if t.Subject.Value == r.URN {
			return t.Object.Value, true
		}
	}

	return "", false
}

const (
	tombstoneType      = "info:fcsystem:Tombstone"
	tombstonePredicate = "info:fcsystem:tombstone"
)

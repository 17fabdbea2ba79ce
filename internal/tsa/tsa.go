// Package tsa defines the triple store adapter: the boundary between the
// resource-centric layout / lifecycle engine and a concrete quad store.
// Concrete implementations (see internal/tsa/postgres) translate the
// named-graph vocabulary used here into store-specific operations.
package tsa

import (
	"context"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
)

// Store is the triple store adapter surface the lifecycle engine and
// resource-centric layout depend on. A Store never exposes a SPARQL
// endpoint; CONSTRUCT/SELECT semantics are expressed through the narrower
// methods below, which a concrete adapter maps onto its own query language.
type Store interface {
	// Graph returns the full contents of a named graph, or an empty graph
	// if it does not exist.
	Graph(ctx context.Context, graphURI string) (*rdf.Graph, error)

	// AddToGraph inserts every triple of g into the named graph, creating
	// it implicitly if it does not already have any triples.
	AddToGraph(ctx context.Context, graphURI string, g *rdf.Graph) error

	// RemoveFromGraph deletes every triple of g from the named graph, if
	// present. It is not an error to remove a triple that is absent.
	RemoveFromGraph(ctx context.Context, graphURI string, g *rdf.Graph) error

	// DropGraph empties a named graph entirely (SPARQL Update DROP GRAPH).
	DropGraph(ctx context.Context, graphURI string) error

	// MoveGraph renames a graph in place, used by delete_rsrc_data to back
	// up a graph's contents before overwriting it (SPARQL Update MOVE).
	MoveGraph(ctx context.Context, fromURI, toURI string) error

	// ConstructBySubject returns every triple in graphURI whose subject
	// matches subjectURI (the narrow CONSTRUCT form RCL/LE actually need).
	ConstructBySubject(ctx context.Context, graphURI, subjectURI string) (*rdf.Graph, error)

	// InboundBySubject returns every triple, across any graph registered in
	// the meta graph as primaryTopic of a live resource, whose object
	// matches objectURI. This backs get_inbound_rel.
	InboundBySubject(ctx context.Context, metaGraphURI, objectURI string) (*rdf.Graph, error)

	// GraphsWithPrimaryTopic returns the URIs of every graph the meta graph
	// records as having the given subject as its foaf:primaryTopic.
	GraphsWithPrimaryTopic(ctx context.Context, metaGraphURI, subjectURI string) ([]string, error)

	// AskSubjectType reports whether graphURI contains a triple asserting
	// subjectURI rdf:type typeURI. Backs ask_rsrc_exists on a cache miss.
	AskSubjectType(ctx context.Context, graphURI, subjectURI, typeURI string) (bool, error)

	// Begin starts a transaction; all store operations performed through
	// the returned Tx are applied atomically on Commit and discarded on
	// Rollback.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a transactional view of Store: every Store method is also
// available scoped to the transaction, plus Commit/Rollback.
type Tx interface {
	Store

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

package postgres

import (
	"context"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
)

// Bootstrap runs schema migrations (via the embedded PostgresConnection,
// which applies golang-migrate migrations on Connect) and then seeds the
// repository root node's admin graph (its fcrepo:Resource and
// ldp:BasicContainer types) plus its meta-graph registration, mirroring the reference implementation's idempotent
// bootstrap: calling Bootstrap against an already-initialized store is a
// no-op thanks to the quads table's primary key.
func (r *Repository) Bootstrap(ctx context.Context) error {
	if _, err := r.connection.GetDB(ctx); err != nil {
		return err
	}

	adminGraph := "fcadmin:"
	rootURN := tbx.RootURN

	admin := rdf.NewGraph(
		rdf.Triple{
			Subject:   rdf.NewIRI(rootURN),
			Predicate: rdf.NewIRI(rdfType),
			Object:    rdf.NewIRI("info:fcrepo:Resource"),
		},
		rdf.Triple{
			Subject:   rdf.NewIRI(rootURN),
			Predicate: rdf.NewIRI(rdfType),
			Object:    rdf.NewIRI("http://www.w3.org/ns/ldp#BasicContainer"),
		},
	)

	if err := r.AddToGraph(ctx, adminGraph, admin); err != nil {
		return err
	}

	meta := rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI(adminGraph),
		Predicate: rdf.NewIRI(foafPrimaryTopic),
		Object:    rdf.NewIRI(rootURN),
	})

	return r.AddToGraph(ctx, tbx.MetaGraphURN, meta)
}

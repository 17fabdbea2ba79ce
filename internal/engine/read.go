package engine

import (
	"context"
	"strings"

	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
)

// Headers is head's result: the subset of a resource's admin bookkeeping
// that the HTTP layer renders as response headers, rather than a body.
type Headers struct {
	ETag         string
	LastModified string
	LinkTypes    []string
}

// ReadOptions controls get's optional expansions, mirroring the query
// parameters the HTTP layer exposes on GET /ldp/*uid.
type ReadOptions struct {
	InclInbound  bool
	InclChildren bool
}

// Get returns uid's globalized description graph, failing the same way
// ExtractIMR's strict mode does for a missing or tombstoned resource.
func (uc *UseCase) Get(ctx context.Context, uid string, opts ReadOptions) (*rdf.Graph, error) {
	res, err := uc.readLayout.ExtractIMR(ctx, uid, rcl.ExtractIMRFilter{
		Strict:       true,
		InclInbound:  opts.InclInbound,
		InclChildren: opts.InclChildren,
	})
	if err != nil {
		return nil, wrapStoreLookup(uid, err)
	}

	return uc.tb.GlobalizeGraph(res.Graph), nil
}

// Head returns the header-worthy subset of uid's admin bookkeeping, without
// materializing its full description.
func (uc *UseCase) Head(ctx context.Context, uid string) (Headers, error) {
	res, err := uc.readLayout.ExtractIMR(ctx, uid, rcl.ExtractIMRFilter{Strict: true})
	if err != nil {
		return Headers{}, wrapStoreLookup(uid, err)
	}

	h := Headers{
		ETag:         firstObject(res.Graph, res.URN, premisHasMessageDigest),
		LastModified: firstObject(res.Graph, res.URN, fcrepoLastModified),
	}

	for _, t := range res.Graph.ByPredicate(rdfType) {
		if t.Subject.Value == res.URN && strings.HasPrefix(t.Object.Value, "http://www.w3.org/ns/ldp#") {
			h.LinkTypes = append(h.LinkTypes, t.Object.Value)
		}
	}

	return h, nil
}

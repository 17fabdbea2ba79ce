package tbx

import "github.com/fcrepo-go/ldprepo/internal/rdf"

// LocalizeGraph rewrites every IRI term in g from its external webroot form
// to the internal URN form. Literal and blank terms are copied unchanged.
func (t *Toolbox) LocalizeGraph(g *rdf.Graph) *rdf.Graph {
	return t.rewriteGraph(g, t.LocalizeString)
}

// GlobalizeGraph rewrites every IRI term in g from internal URN form back
// to the external webroot form, for serving to clients.
func (t *Toolbox) GlobalizeGraph(g *rdf.Graph) *rdf.Graph {
	return t.rewriteGraph(g, t.GlobalizeString)
}

func (t *Toolbox) rewriteGraph(g *rdf.Graph, rewrite func(string) string) *rdf.Graph {
	out := rdf.NewGraph()
	if g == nil {
		return out
	}

	for _, tr := range g.Triples() {
		out.Add(rdf.Triple{
			Subject:   rewriteTerm(tr.Subject, rewrite),
			Predicate: rewriteTerm(tr.Predicate, rewrite),
			Object:    rewriteTerm(tr.Object, rewrite),
		})
	}

	return out
}

func rewriteTerm(term rdf.Term, rewrite func(string) string) rdf.Term {
	if term.Kind != rdf.IRI {
		return term
	}

	return rdf.NewIRI(rewrite(term.Value))
}

// RDFChecksum computes the canonical digest of a graph for use as
// premis:hasMessageDigest. It delegates to the rdf package's checksum so
// TBX callers never need to import rdf directly for this purpose.
func RDFChecksum(g *rdf.Graph) string {
	return rdf.MessageDigestURN(g)
}

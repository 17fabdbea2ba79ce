// Package rcl implements the resource-centric layout: it routes the triples
// of a logical resource into its admin/struct/main named graphs, and
// exposes the read/write operations the lifecycle engine composes into
// create/replace/delete/purge/version semantics.
package rcl

import "github.com/fcrepo-go/ldprepo/internal/rdf"

const (
	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// predicateDestination lists predicates that always route to a fixed
// destination graph family, regardless of the triple's object.
var predicateDestination = map[string]string{
	"info:fcrepo:created":                    destAdmin,
	"info:fcrepo:createdBy":                   destAdmin,
	"info:fcrepo:hasParent":                  destAdmin,
	"info:fcrepo:lastModified":                destAdmin,
	"info:fcrepo:lastModifiedBy":              destAdmin,
	"http://www.w3.org/ns/ldp#membershipResource":       destAdmin,
	"http://www.w3.org/ns/ldp#hasMemberRelation":        destAdmin,
	"http://www.w3.org/ns/ldp#insertedContentRelation":  destAdmin,
	"http://www.iana.org/assignments/relation/describedby": destAdmin,
	"info:premis:hasMessageDigest":            destAdmin,
	"info:premis:hasSize":                     destAdmin,
	"info:fcsystem:tombstone":                 destAdmin,

	"info:fcsystem:contains": destStruct,
	"http://www.w3.org/ns/ldp#contains": destStruct,
	"info:pcdm:hasMember":     destStruct,
}

// typeDestination lists rdf:type objects that route their triple (and only
// that triple) to a fixed destination, regardless of predicate — it only
// applies when the predicate is rdf:type.
var typeDestination = map[string]string{
	"info:fcrepo:Binary":    destAdmin,
	"info:fcrepo:Container": destAdmin,
	"info:fcrepo:Pairtree":  destAdmin,
	"info:fcrepo:Resource":  destAdmin,
	"info:fcsystem:Tombstone": destAdmin,

	"http://www.w3.org/ns/ldp#BasicContainer":   destAdmin,
	"http://www.w3.org/ns/ldp#Container":        destAdmin,
	"http://www.w3.org/ns/ldp#DirectContainer":  destAdmin,
	"http://www.w3.org/ns/ldp#IndirectContainer": destAdmin,
	"http://www.w3.org/ns/ldp#NonRDFSource":     destAdmin,
	"http://www.w3.org/ns/ldp#RDFSource":        destAdmin,
	"http://www.w3.org/ns/ldp#Resource":         destAdmin,
}

const (
	destAdmin  = "admin"
	destStruct = "struct"
	destMain   = "main"
)

// routeTriple returns the destination graph family ("admin", "struct" or
// "main") for a single triple, per the static predicate/type classification.
func routeTriple(t rdf.Triple) string {
	if dest, ok := predicateDestination[t.Predicate.Value]; ok {
		return dest
	}

	if t.Predicate.IsIRI(rdfType) {
		if dest, ok := typeDestination[t.Object.Value]; ok {
			return dest
		}
	}

	return destMain
}

// partitionByDestination splits g into up to three graphs, one per
// destination family, following routeTriple.
func partitionByDestination(g *rdf.Graph) map[string]*rdf.Graph {
	out := map[string]*rdf.Graph{
		destAdmin:  rdf.NewGraph(),
		destStruct: rdf.NewGraph(),
		destMain:   rdf.NewGraph(),
	}

	if g == nil {
		return out
	}

	for _, t := range g.Triples() {
		out[routeTriple(t)].Add(t)
	}

	return out
}

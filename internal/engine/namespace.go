package engine

// Well-known predicate and type IRIs the lifecycle engine reads or writes
// directly, mirroring the nsc namespace-collection constants the reference
// implementation resolves through a shared prefix table.
const (
	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	fcrepoResource           = "info:fcrepo:Resource"
	fcrepoBinary             = "info:fcrepo:Binary"
	fcrepoContainer          = "info:fcrepo:Container"
	fcrepoPairtree           = "info:fcrepo:Pairtree"
	fcrepoVersion            = "info:fcrepo:Version"
	fcrepoCreated            = "info:fcrepo:created"
	fcrepoCreatedBy          = "info:fcrepo:createdBy"
	fcrepoLastModified       = "info:fcrepo:lastModified"
	fcrepoLastModifiedBy     = "info:fcrepo:lastModifiedBy"
	fcrepoHasParent          = "info:fcrepo:hasParent"
	fcrepoHasVersion         = "info:fcrepo:hasVersion"
	fcrepoHasVersions        = "info:fcrepo:hasVersions"
	fcrepoHasVersionLabel    = "info:fcrepo:hasVersionLabel"

	premisHasMessageDigest = "info:premis:hasMessageDigest"

	ldpResource          = "http://www.w3.org/ns/ldp#Resource"
	ldpRDFSource         = "http://www.w3.org/ns/ldp#RDFSource"
	ldpNonRDFSource      = "http://www.w3.org/ns/ldp#NonRDFSource"
	ldpContainer         = "http://www.w3.org/ns/ldp#Container"
	ldpBasicContainer    = "http://www.w3.org/ns/ldp#BasicContainer"
	ldpDirectContainer   = "http://www.w3.org/ns/ldp#DirectContainer"
	ldpIndirectContainer = "http://www.w3.org/ns/ldp#IndirectContainer"
	ldpContains          = "http://www.w3.org/ns/ldp#contains"
	ldpMembershipResource       = "http://www.w3.org/ns/ldp#membershipResource"
	ldpHasMemberRelation        = "http://www.w3.org/ns/ldp#hasMemberRelation"
	ldpInsertedContentRelation  = "http://www.w3.org/ns/ldp#insertedContentRelation"

	fcsystemTombstone   = "info:fcsystem:Tombstone"
	fcsystemTombstoneP  = "info:fcsystem:tombstone"
	fcsystemFragmentOf  = "info:fcsystem:fragmentOf"

	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// protectedPredicates are never removed by a replace's dedup pass: they are
// either set once at creation or managed exclusively by set_containment.
var protectedPredicates = map[string]bool{
	fcrepoCreated:   true,
	fcrepoCreatedBy: true,
	ldpContains:     true,
}

// serverManagedPredicates are stripped from any graph revert_to_version
// treats as client-provided, along with the rdf:type objects below.
var serverManagedPredicates = map[string]bool{
	fcrepoCreated:        true,
	fcrepoCreatedBy:      true,
	fcrepoLastModified:   true,
	fcrepoLastModifiedBy: true,
	fcrepoHasParent:      true,
	fcrepoHasVersion:     true,
	fcrepoHasVersions:    true,
	premisHasMessageDigest: true,
}

var serverManagedTypes = map[string]bool{
	fcrepoResource:  true,
	fcrepoBinary:    true,
	fcrepoContainer: true,
	fcrepoVersion:   true,
}

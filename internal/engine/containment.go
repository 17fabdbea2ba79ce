package engine

import (
	"context"
	"strings"

	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
)

// setContainment resolves uid's nearest existing ancestor, fabricates any
// missing pairtree segments in between, records the containment edge and
// the hasParent back-reference, then propagates membership into a direct or
// indirect container parent if one applies. content is the resource's final
// content graph for this operation, consulted only to resolve an indirect
// container's insertedContentRelation value.
func (uc *UseCase) setContainment(ctx context.Context, layout *rcl.Layout, uid string, content *rdf.Graph) error {
	if uid == "" {
		return nil
	}

	urn := tbx.URNForUID(uid)
	segments := strings.Split(uid, "/")

	parentUID := ""

	for i := len(segments) - 1; i >= 1; i-- {
		candidateUID := strings.Join(segments[:i], "/")

		exists, err := layout.AskRsrcExists(ctx, candidateUID)
		if err != nil {
			return err
		}

		if exists {
			parentUID = candidateUID
			break
		}
	}

	startIdx := 0
	if parentUID != "" {
		startIdx = len(strings.Split(parentUID, "/"))
	}

	currentParentUID := parentUID
	currentParentURN := tbx.URNForUID(parentUID)

	for i := startIdx; i < len(segments)-1; i++ {
		childUID := strings.Join(segments[:i+1], "/")
		childURN := tbx.URNForUID(childUID)

		pairtree := rdf.NewGraph(
			rdf.Triple{Subject: rdf.NewIRI(childURN), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(ldpContainer)},
			rdf.Triple{Subject: rdf.NewIRI(childURN), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(ldpBasicContainer)},
			rdf.Triple{Subject: rdf.NewIRI(childURN), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(ldpRDFSource)},
			rdf.Triple{Subject: rdf.NewIRI(childURN), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoPairtree)},
			rdf.Triple{Subject: rdf.NewIRI(currentParentURN), Predicate: rdf.NewIRI(ldpContains), Object: rdf.NewIRI(childURN)},
		)

		if err := layout.ModifyRsrc(ctx, childUID, rdf.NewGraph(), pairtree); err != nil {
			return err
		}

		currentParentUID = childUID
		currentParentURN = childURN
	}

	structAdd := rdf.NewGraph(rdf.Triple{
		Subject: rdf.NewIRI(currentParentURN), Predicate: rdf.NewIRI(ldpContains), Object: rdf.NewIRI(urn),
	})
	if err := layout.ModifyRsrc(ctx, currentParentUID, rdf.NewGraph(), structAdd); err != nil {
		return err
	}

	hasParentAdd := rdf.NewGraph(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoHasParent), Object: rdf.NewIRI(currentParentURN),
	})
	if err := layout.ModifyRsrc(ctx, uid, rdf.NewGraph(), hasParentAdd); err != nil {
		return err
	}

	return uc.propagateContainerMembership(ctx, layout, currentParentUID, currentParentURN, urn, content)
}

// propagateContainerMembership implements the LDP direct/indirect container
// membership-triple propagation rule: a parent carrying
// ldp:membershipResource + ldp:hasMemberRelation asserts one extra triple on
// the membership resource's main graph whenever a child is added.
func (uc *UseCase) propagateContainerMembership(ctx context.Context, layout *rcl.Layout, parentUID, parentURN, childURN string, content *rdf.Graph) error {
	parent, err := layout.ExtractIMR(ctx, parentUID, rcl.ExtractIMRFilter{})
	if err != nil {
		return err
	}

	membershipResource := firstObject(parent.Graph, parentURN, ldpMembershipResource)
	hasMemberRelation := firstObject(parent.Graph, parentURN, ldpHasMemberRelation)

	if membershipResource == "" || hasMemberRelation == "" {
		return nil
	}

	var target string

	switch {
	case hasType(parent.Graph, parentURN, ldpDirectContainer):
		target = childURN
	case hasType(parent.Graph, parentURN, ldpIndirectContainer):
		contRel := firstObject(parent.Graph, parentURN, ldpInsertedContentRelation)
		if contRel == "" {
			return nil
		}

		target = firstObject(content, childURN, contRel)
		if target == "" {
			return nil
		}
	default:
		return nil
	}

	add := rdf.NewGraph(rdf.Triple{
		Subject: rdf.NewIRI(membershipResource), Predicate: rdf.NewIRI(hasMemberRelation), Object: rdf.NewIRI(target),
	})

	return layout.ModifyRsrc(ctx, tbx.UIDForURN(membershipResource), rdf.NewGraph(), add)
}

// firstObject returns the value of the first triple in g matching subject
// and predicate, or "" if none match.
func firstObject(g *rdf.Graph, subjectURN, predicate string) string {
	if g == nil {
		return ""
	}

	for _, t := range g.ByPredicate(predicate) {
		if t.Subject.Value == subjectURN {
			return t.Object.Value
		}
	}

	return ""
}

// hasType reports whether g asserts subjectURN rdf:type typeURI.
func hasType(g *rdf.Graph, subjectURN, typeURI string) bool {
	for _, t := range g.ByPredicate(rdfType) {
		if t.Subject.Value == subjectURN && t.Object.Value == typeURI {
			return true
		}
	}

	return false
}

package engine

import (
	"context"
	"strings"
	"time"

	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// CreateOrReplace creates uid if it does not already exist (or createOnly is
// set), otherwise replaces its content, and always re-runs containment
// setup. The provided graph is localized first, so client URIs under the
// webroot become internal URNs. It is the Go shape of _create_or_replace_rsrc.
func (uc *UseCase) CreateOrReplace(ctx context.Context, uid string, provided *rdf.Graph, createOnly bool) (txn.EventType, error) {
	var evType txn.EventType

	provided = uc.tb.LocalizeGraph(provided)

	err := uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, cl *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		var err error
		evType, err = uc.createOrReplaceTx(ctx, layout, cl, uid, provided, createOnly)

		return err
	})

	return evType, err
}

// createOrReplaceTx is the transaction-scoped body of CreateOrReplace. It is
// factored out so revert_to_version can reuse the same create/replace logic
// inside a transaction it already owns, rather than nesting transactions.
func (uc *UseCase) createOrReplaceTx(ctx context.Context, layout *rcl.Layout, cl *txn.Changelog, uid string, provided *rdf.Graph, createOnly bool) (txn.EventType, error) {
	urn := tbx.URNForUID(uid)

	exists, err := layout.AskRsrcExists(ctx, uid)
	if err != nil {
		return "", err
	}

	create := createOnly || !exists

	normalized, err := ensureSingleSubject(provided, urn)
	if err != nil {
		return "", err
	}

	managed := uc.addServerManagedTriples(normalized, urn, create, time.Now())

	filtered, err := uc.checkReferentialIntegrity(ctx, layout, uid, managed)
	if err != nil {
		return "", err
	}

	var evType txn.EventType

	if create {
		if err := layout.ModifyRsrc(ctx, uid, rdf.NewGraph(), filtered); err != nil {
			return "", err
		}

		evType = txn.EventCreated
	} else {
		existing, err := layout.ExtractIMR(ctx, uid, rcl.ExtractIMRFilter{})
		if err != nil {
			return "", err
		}

		baseline := withoutPredicates(existing.Graph, protectedPredicates)
		remove, add := rdf.Dedup(baseline, filtered)

		if err := layout.ModifyRsrc(ctx, uid, remove, add); err != nil {
			return "", err
		}

		evType = txn.EventUpdated
	}

	if err := uc.setContainment(ctx, layout, uid, filtered); err != nil {
		return "", err
	}

	cl.Append(txn.ChangelogEntry{
		UID:       uid,
		URN:       urn,
		EventType: evType,
		Time:      time.Now(),
		Types:     typesOfSubject(filtered, urn),
		Actor:     uc.cfg.DefaultUser,
	})

	return evType, nil
}

// ensureSingleSubject rejects a provided graph carrying a subject other than
// urn or one of urn's hash fragments, and appends a fcsystem:fragmentOf
// triple for every fragment subject found.
func ensureSingleSubject(g *rdf.Graph, urn string) (*rdf.Graph, error) {
	out := rdf.NewGraph()
	fragments := map[string]bool{}

	for _, t := range g.Triples() {
		switch {
		case t.Subject.IsIRI(urn):
			out.Add(t)
		case t.Subject.Kind == rdf.IRI && strings.HasPrefix(t.Subject.Value, urn+"#"):
			out.Add(t)
			fragments[t.Subject.Value] = true
		default:
			return nil, SingleSubjectError{UID: tbx.UIDForURN(urn), Subject: t.Subject.String()}
		}
	}

	for frag := range fragments {
		out.Add(rdf.Triple{
			Subject:   rdf.NewIRI(frag),
			Predicate: rdf.NewIRI(fcsystemFragmentOf),
			Object:    rdf.NewIRI(urn),
		})
	}

	return out, nil
}

// addServerManagedTriples adds the base types, the message digest and the
// creation/modification bookkeeping triples a client is never allowed to
// supply directly.
func (uc *UseCase) addServerManagedTriples(g *rdf.Graph, urn string, create bool, now time.Time) *rdf.Graph {
	out := rdf.NewGraph(g.Triples()...)

	for _, t := range []string{fcrepoResource, ldpResource, ldpRDFSource} {
		out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(t)})
	}

	removeSubjectPredicate(out, urn, premisHasMessageDigest)

	ts := rdf.NewLiteral(now.UTC().Format(time.RFC3339), xsdDateTime, "")

	if create {
		removeSubjectPredicate(out, urn, fcrepoCreated)
		removeSubjectPredicate(out, urn, fcrepoCreatedBy)
		out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoCreated), Object: ts})
		out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoCreatedBy), Object: rdf.NewLiteral(uc.cfg.DefaultUser, "", "")})
	}

	removeSubjectPredicate(out, urn, fcrepoLastModified)
	removeSubjectPredicate(out, urn, fcrepoLastModifiedBy)
	out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoLastModified), Object: ts})
	out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoLastModifiedBy), Object: rdf.NewLiteral(uc.cfg.DefaultUser, "", "")})

	digest := rdf.MessageDigestURN(out)
	out.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(premisHasMessageDigest), Object: rdf.NewLiteral(digest, "", "")})

	return out
}

// checkReferentialIntegrity inspects every internal-namespace object IRI: if
// it names a resource that does not exist, strict mode fails the operation
// and lenient mode silently drops the offending triple. off skips the check
// entirely.
func (uc *UseCase) checkReferentialIntegrity(ctx context.Context, layout *rcl.Layout, uid string, g *rdf.Graph) (*rdf.Graph, error) {
	if uc.cfg.ReferentialIntegrity == RefIntegrityOff {
		return g, nil
	}

	out := rdf.NewGraph()

	for _, t := range g.Triples() {
		if t.Object.Kind == rdf.IRI && strings.HasPrefix(t.Object.Value, tbx.NSFcres) {
			targetUID := tbx.UIDForURN(t.Object.Value)

			exists, err := layout.AskRsrcExists(ctx, targetUID)
			if err != nil {
				return nil, err
			}

			if !exists {
				if uc.cfg.ReferentialIntegrity == RefIntegrityStrict {
					return nil, RefIntViolationError{UID: uid, Object: t.Object.Value}
				}

				continue
			}
		}

		out.Add(t)
	}

	return out, nil
}

// withoutPredicates returns a copy of g with every triple whose predicate is
// in preds removed, used to strip protected predicates from a replace's
// baseline before diffing.
func withoutPredicates(g *rdf.Graph, preds map[string]bool) *rdf.Graph {
	out := rdf.NewGraph()

	for _, t := range g.Triples() {
		if !preds[t.Predicate.Value] {
			out.Add(t)
		}
	}

	return out
}

func removeSubjectPredicate(g *rdf.Graph, subjectURN, predicate string) {
	for _, t := range g.ByPredicate(predicate) {
		if t.Subject.Value == subjectURN {
			g.Remove(t)
		}
	}
}

// typesOfSubject returns the distinct rdf:type objects urn carries in g, for
// the changelog's Types field.
func typesOfSubject(g *rdf.Graph, urn string) []string {
	var out []string

	for _, t := range g.ByPredicate(rdfType) {
		if t.Subject.Value == urn {
			out = append(out, t.Object.Value)
		}
	}

	return out
}

package engine

import (
	"context"
	"time"

	"github.com/fcrepo-go/ldprepo/common"
	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// CreateVersion snapshots uid's current state under verUID, returning the
// new version's URN. It emits UPDATED for uid itself: the version label is
// bookkeeping, not a new addressable resource in its own right.
func (uc *UseCase) CreateVersion(ctx context.Context, uid, verUID string) (string, error) {
	var verURN string

	err := uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, cl *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		var err error
		verURN, err = uc.createVersionTx(ctx, layout, cl, uid, verUID)

		return err
	})

	return verURN, err
}

// createVersionTx is the transaction-scoped body shared by CreateVersion and
// RevertToVersion's optional pre-revert backup.
func (uc *UseCase) createVersionTx(ctx context.Context, layout *rcl.Layout, cl *txn.Changelog, uid, verUID string) (string, error) {
	exists, err := layout.AskRsrcExists(ctx, uid)
	if err != nil {
		return "", err
	}

	if !exists {
		return "", wrapStoreLookup(uid, rcl.ErrResourceNotExists{UID: uid})
	}

	verURN, err := layout.CreateSnapshot(ctx, uid, verUID)
	if err != nil {
		return "", err
	}

	cl.Append(txn.ChangelogEntry{
		UID:       uid,
		URN:       tbx.URNForUID(uid),
		EventType: txn.EventUpdated,
		Time:      time.Now(),
		Actor:     uc.cfg.DefaultUser,
	})

	return verURN, nil
}

// RevertToVersion replaces uid's current content with the content recorded
// under verUID, stripping the server-managed predicates and types a
// create_or_replace call is never allowed to receive directly, then routing
// the result through the ordinary replace path (set_containment included).
// If backup is set, the current state is snapshotted under a fresh version
// label before being overwritten.
func (uc *UseCase) RevertToVersion(ctx context.Context, uid, verUID string, backup bool) error {
	return uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, cl *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		exists, err := layout.AskRsrcExists(ctx, uid)
		if err != nil {
			return err
		}

		if !exists {
			return wrapStoreLookup(uid, rcl.ErrResourceNotExists{UID: uid})
		}

		if backup {
			if _, err := uc.createVersionTx(ctx, layout, cl, uid, common.GenerateUUIDv7().String()); err != nil {
				return err
			}
		}

		verGraph, err := layout.GetVersionGraph(ctx, uid, verUID)
		if err != nil {
			return err
		}

		if verGraph == nil || verGraph.Len() == 0 {
			return InvalidResourceError{UID: uid, Reason: "version " + verUID + " does not exist"}
		}

		provided := rewriteVersionSubject(verGraph, tbx.URNForUID(uid)+"/fcr:versions/"+verUID, tbx.URNForUID(uid))
		provided = stripServerManaged(provided)

		_, err = uc.createOrReplaceTx(ctx, layout, cl, uid, provided, false)

		return err
	})
}

// Resurrect restores uid from its most recent version after it has been
// tombstoned: a tombstoned resource carries no live content of its own, so
// there is nothing to revert from except its version history. Fails with
// InvalidResourceError if uid has no tombstone or no recorded version,
// rather than fabricating content.
func (uc *UseCase) Resurrect(ctx context.Context, uid string) error {
	return uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, cl *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		res, err := layout.ExtractIMR(ctx, uid, rcl.ExtractIMRFilter{})
		if err != nil {
			return err
		}

		if !res.IsTombstone() {
			return InvalidResourceError{UID: uid, Reason: "resource is not tombstoned"}
		}

		versions, err := layout.ListVersions(ctx, uid)
		if err != nil {
			return err
		}

		if len(versions) == 0 {
			return InvalidResourceError{UID: uid, Reason: "no version recorded to resurrect from"}
		}

		latest := versions[len(versions)-1]

		verGraph, err := layout.GetVersionGraph(ctx, uid, latest.Label)
		if err != nil {
			return err
		}

		if err := layout.ModifyRsrc(ctx, uid, res.Graph, rdf.NewGraph()); err != nil {
			return err
		}

		urn := tbx.URNForUID(uid)
		provided := rewriteVersionSubject(verGraph, latest.VerURN, urn)

		var preservedType string

		switch {
		case hasType(provided, urn, ldpNonRDFSource):
			preservedType = fcrepoBinary
		case hasType(provided, urn, ldpContainer):
			preservedType = fcrepoContainer
		}

		provided = stripServerManaged(provided)

		if preservedType != "" {
			provided.Add(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(preservedType)})
		}

		_, err = uc.createOrReplaceTx(ctx, layout, cl, uid, provided, true)

		return err
	})
}

// GetVersionInfo lists uid's recorded versions, oldest first.
func (uc *UseCase) GetVersionInfo(ctx context.Context, uid string) ([]rcl.VersionInfo, error) {
	return uc.readLayout.ListVersions(ctx, uid)
}

// GetVersion returns the globalized graph recorded under verUID for uid.
func (uc *UseCase) GetVersion(ctx context.Context, uid, verUID string) (*rdf.Graph, error) {
	g, err := uc.readLayout.GetVersionGraph(ctx, uid, verUID)
	if err != nil {
		return nil, err
	}

	if g == nil || g.Len() == 0 {
		return nil, InvalidResourceError{UID: uid, Reason: "version " + verUID + " does not exist"}
	}

	return uc.tb.GlobalizeGraph(g), nil
}

// rewriteVersionSubject returns a copy of g with every triple whose subject
// is fromURN re-subjected to toURN, the inverse of the subject rewrite
// CreateSnapshot applies when it records a version.
func rewriteVersionSubject(g *rdf.Graph, fromURN, toURN string) *rdf.Graph {
	out := rdf.NewGraph()

	for _, t := range g.Triples() {
		if t.Subject.Value == fromURN {
			t.Subject = rdf.NewIRI(toURN)
		}

		out.Add(t)
	}

	return out
}

// stripServerManaged removes the predicates and rdf:type objects the engine
// manages on every create_or_replace call, so a version graph can be
// re-offered to createOrReplaceTx as though it were client-provided.
func stripServerManaged(g *rdf.Graph) *rdf.Graph {
	out := rdf.NewGraph()

	for _, t := range g.Triples() {
		if serverManagedPredicates[t.Predicate.Value] {
			continue
		}

		if t.Predicate.Value == rdfType && serverManagedTypes[t.Object.Value] {
			continue
		}

		out.Add(t)
	}

	return out
}

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

// DeleteOptions controls delete's optional expansions, mirroring the query
// parameters the HTTP layer exposes on DELETE /ldp/*uid.
type DeleteOptions struct {
	Inbound        bool
	DeleteChildren bool
	LeaveTombstone bool
}

// Delete removes uid (and, if requested, its descendants), either leaving a
// tombstone behind or purging outright.
func (uc *UseCase) Delete(ctx context.Context, uid string, opts DeleteOptions) error {
	return uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, cl *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		inbound := opts.Inbound
		if uc.cfg.ReferentialIntegrity == RefIntegrityStrict {
			inbound = true
		}

		var children []string

		if opts.DeleteChildren {
			var err error

			children, err = uc.descendantUIDs(ctx, layout, uid)
			if err != nil {
				return err
			}
		}

		if opts.LeaveTombstone {
			if err := uc.buryResource(ctx, layout, cl, uid, inbound, ""); err != nil {
				return err
			}

			for _, childUID := range children {
				if err := uc.buryResource(ctx, layout, cl, childUID, inbound, uid); err != nil {
					return err
				}
			}

			return nil
		}

		if err := uc.purgeResource(ctx, layout, uid, inbound); err != nil {
			return err
		}

		for _, childUID := range children {
			if err := uc.purgeResource(ctx, layout, childUID, inbound); err != nil {
				return err
			}
		}

		return nil
	})
}

// Purge hard-deletes uid and all of its versions without leaving a
// tombstone. It emits no changelog entry, matching the source's @TODO on
// purge event semantics: revisit only if this contract is ever extended.
func (uc *UseCase) Purge(ctx context.Context, uid string, inbound bool) error {
	return uc.txm.WithTransaction(ctx, func(ctx context.Context, tx tsa.Tx, _ *txn.Changelog) error {
		layout := uc.layoutFor(tx)

		if uc.cfg.ReferentialIntegrity == RefIntegrityStrict {
			inbound = true
		}

		return uc.purgeResource(ctx, layout, uid, inbound)
	})
}

// buryResource snapshots uid, then replaces its main/struct graphs with
// nothing and its admin graph with either a tombstone marker (tombstoneParentUID == "")
// or a pointer to the tombstone of the ancestor being deleted.
func (uc *UseCase) buryResource(ctx context.Context, layout *rcl.Layout, cl *txn.Changelog, uid string, inbound bool, tombstoneParentUID string) error {
	urn := tbx.URNForUID(uid)

	backupVerUID := common.GenerateUUIDv7().String()
	if _, err := layout.CreateSnapshot(ctx, uid, backupVerUID); err != nil {
		return err
	}

	if err := layout.DeleteRsrcData(ctx, uid, ""); err != nil {
		return err
	}

	var marker *rdf.Graph

	if tombstoneParentUID != "" {
		marker = rdf.NewGraph(rdf.Triple{
			Subject:   rdf.NewIRI(urn),
			Predicate: rdf.NewIRI(fcsystemTombstoneP),
			Object:    rdf.NewIRI(tbx.URNForUID(tombstoneParentUID)),
		})
	} else {
		marker = rdf.NewGraph(
			rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcsystemTombstone)},
			rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(fcrepoCreated), Object: rdf.NewLiteral(time.Now().UTC().Format(time.RFC3339), xsdDateTime, "")},
		)
	}

	if err := layout.ModifyRsrc(ctx, uid, rdf.NewGraph(), marker); err != nil {
		return err
	}

	if inbound {
		if err := uc.removeInboundReferences(ctx, layout, urn); err != nil {
			return err
		}
	}

	cl.Append(txn.ChangelogEntry{
		UID:       uid,
		URN:       urn,
		EventType: txn.EventDeleted,
		Time:      time.Now(),
		Actor:     uc.cfg.DefaultUser,
	})

	return nil
}

// purgeResource hard-deletes uid's graphs, including its version history,
// and, if requested, every inbound reference to it (handled by PurgeRsrc
// itself, which removes each one from the referring graph it routes to).
func (uc *UseCase) purgeResource(ctx context.Context, layout *rcl.Layout, uid string, inbound bool) error {
	return layout.PurgeRsrc(ctx, uid, inbound)
}

// removeInboundReferences strips every triple, across all live graphs,
// whose object is urn; ModifyRsrc removes each from the graph its
// predicate routes to.
func (uc *UseCase) removeInboundReferences(ctx context.Context, layout *rcl.Layout, urn string) error {
	inbound, err := layout.GetInboundRel(ctx, urn)
	if err != nil {
		return err
	}

	byUID := map[string]*rdf.Graph{}

	for _, t := range inbound.Triples() {
		owningUID := tbx.UIDForURN(t.Subject.Value)
		if byUID[owningUID] == nil {
			byUID[owningUID] = rdf.NewGraph()
		}

		byUID[owningUID].Add(t)
	}

	for owningUID, triples := range byUID {
		if err := layout.ModifyRsrc(ctx, owningUID, triples, rdf.NewGraph()); err != nil {
			return err
		}
	}

	return nil
}

// descendantUIDs returns every uid transitively contained by uid via
// ldp:contains, breadth-first, with cycle protection.
func (uc *UseCase) descendantUIDs(ctx context.Context, layout *rcl.Layout, uid string) ([]string, error) {
	visited := map[string]bool{uid: true}

	var out []string

	queue := []string{uid}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curURN := tbx.URNForUID(cur)

		res, err := layout.ExtractIMR(ctx, cur, rcl.ExtractIMRFilter{InclChildren: true})
		if err != nil {
			return nil, err
		}

		for _, t := range res.Graph.ByPredicate(ldpContains) {
			if t.Subject.Value != curURN {
				continue
			}

			childUID := tbx.UIDForURN(t.Object.Value)
			if visited[childUID] {
				continue
			}

			visited[childUID] = true
			out = append(out, childUID)
			queue = append(queue, childUID)
		}
	}

	return out, nil
}

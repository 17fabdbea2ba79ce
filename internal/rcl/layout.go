package rcl

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

// ExistenceCache fronts ask_rsrc_exists with a cache-aside lookup, the same
// pattern the ledger's account lookup uses against Redis: a cache miss
// falls through to the store and repopulates the cache, while any write
// touching the resource's admin graph invalidates the entry.
type ExistenceCache interface {
	Get(ctx context.Context, uid string) (exists bool, found bool)
	Set(ctx context.Context, uid string, exists bool, ttl time.Duration)
	Invalidate(ctx context.Context, uid string)
}

// Layout is the resource-centric layout: the component that knows how a
// logical resource's triples are partitioned across its admin/struct/main
// graphs and how to extract, modify, snapshot and purge that partition.
type Layout struct {
	store tsa.Store
	tb    *tbx.Toolbox
	cache ExistenceCache
	log   mlog.Logger

	existsTTL time.Duration
}

// New builds a Layout over the given store, toolbox and existence cache.
func New(store tsa.Store, tb *tbx.Toolbox, cache ExistenceCache, log mlog.Logger) *Layout {
	return &Layout{store: store, tb: tb, cache: cache, log: log, existsTTL: 30 * time.Second}
}

// ExtractIMRFilter controls extract_imr's optional expansions.
type ExtractIMRFilter struct {
	Strict        bool
	InclInbound   bool
	InclChildren  bool
}

// ExtractIMR constructs a Resource's in-memory representation from its
// admin and main graphs (and struct, if InclChildren is set), matching the
// CONSTRUCT the reference layout runs over admin(uid) ∪ main(uid).
func (l *Layout) ExtractIMR(ctx context.Context, uid string, filter ExtractIMRFilter) (*Resource, error) {
	urn := tbx.URNForUID(uid)
	admin, structG, main := graphsFor(uid)

	adminGraph, err := l.store.ConstructBySubject(ctx, admin, urn)
	if err != nil {
		return nil, err
	}

	mainGraph, err := l.store.ConstructBySubject(ctx, main, urn)
	if err != nil {
		return nil, err
	}

	merged := adminGraph.Union(mainGraph)

	if filter.InclChildren {
		structGraph, err := l.store.ConstructBySubject(ctx, structG, urn)
		if err != nil {
			return nil, err
		}

		merged = merged.Union(structGraph)
	}

	if merged.Len() == 0 && filter.Strict {
		return nil, ErrResourceNotExists{UID: uid}
	}

	res := &Resource{URN: urn, Graph: merged}

	if filter.Strict {
		if res.IsTombstone() {
			return nil, ErrTombstone{UID: uid}
		}

		if parent, ok := res.TombstoneParent(); ok {
			return nil, ErrTombstone{UID: uid, Parent: parent}
		}
	} else {
		l.log.Debugf("resource extracted without strict checks: %s", uid)
	}

	if filter.InclInbound {
		inbound, err := l.GetInboundRel(ctx, urn)
		if err != nil {
			return nil, err
		}

		res.Graph = res.Graph.Union(inbound)
	}

	return res, nil
}

// GetInboundRel returns every triple, across live resources only, whose
// object is urn.
func (l *Layout) GetInboundRel(ctx context.Context, urn string) (*rdf.Graph, error) {
	return l.store.InboundBySubject(ctx, metaGraph, urn)
}

// AskRsrcExists checks whether uid names a live resource, fronted by the
// existence cache to keep the hottest read in the containment-resolution
// path off the store.
func (l *Layout) AskRsrcExists(ctx context.Context, uid string) (bool, error) {
	if l.cache != nil {
		if exists, found := l.cache.Get(ctx, uid); found {
			return exists, nil
		}
	}

	exists, err := l.store.AskSubjectType(ctx, AdminGraph(uid), tbx.URNForUID(uid), resourceType)
	if err != nil {
		return false, err
	}

	if l.cache != nil {
		l.cache.Set(ctx, uid, exists, l.existsTTL)
	}

	return exists, nil
}

// ModifyRsrc partitions remove/add by destination graph and applies each
// side against the corresponding per-resource graph, registering any newly
// touched destination in the meta graph.
func (l *Layout) ModifyRsrc(ctx context.Context, uid string, remove, add *rdf.Graph) error {
	urn := tbx.URNForUID(uid)
	removeByDest := partitionByDestination(remove)
	addByDest := partitionByDestination(add)

	destGraph := map[string]string{
		destAdmin:  AdminGraph(uid),
		destStruct: StructGraph(uid),
		destMain:   MainGraph(uid),
	}

	for _, dest := range []string{destAdmin, destStruct, destMain} {
		g := destGraph[dest]

		if rs := removeByDest[dest]; rs.Len() > 0 {
			if err := l.store.RemoveFromGraph(ctx, g, rs); err != nil {
				return err
			}
		}

		if as := addByDest[dest]; as.Len() > 0 {
			if err := l.store.AddToGraph(ctx, g, as); err != nil {
				return err
			}

			if err := l.registerPrimaryTopic(ctx, g, urn); err != nil {
				return err
			}
		}
	}

	if l.cache != nil {
		l.cache.Invalidate(ctx, uid)
	}

	return nil
}

func (l *Layout) registerPrimaryTopic(ctx context.Context, graphURI, urn string) error {
	existing, err := l.store.GraphsWithPrimaryTopic(ctx, metaGraph, urn)
	if err != nil {
		return err
	}

	for _, g := range existing {
		if g == graphURI {
			return nil
		}
	}

	entry := rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI(graphURI),
		Predicate: rdf.NewIRI(foafPrimaryTopic),
		Object:    rdf.NewIRI(urn),
	})

	return l.store.AddToGraph(ctx, metaGraph, entry)
}

// DeleteRsrcData drops a resource's graphs. If backupUID is non-empty the
// main graph is moved rather than dropped, preserving its content under an
// alternate uid (used when leave_tombstone backs up prior content).
func (l *Layout) DeleteRsrcData(ctx context.Context, uid, backupUID string) error {
	admin, structG, main := graphsFor(uid)

	if backupUID != "" {
		if err := l.store.MoveGraph(ctx, main, BackupMainGraph(backupUID)); err != nil {
			return err
		}
	} else if err := l.store.DropGraph(ctx, main); err != nil {
		return err
	}

	if err := l.store.DropGraph(ctx, structG); err != nil {
		return err
	}

	if err := l.store.DropGraph(ctx, admin); err != nil {
		return err
	}

	if l.cache != nil {
		l.cache.Invalidate(ctx, uid)
	}

	return nil
}

// PurgeRsrc drops every graph the meta graph records as belonging to uid,
// removes those meta-graph entries, and optionally removes inbound
// references from live graphs.
func (l *Layout) PurgeRsrc(ctx context.Context, uid string, inbound bool) error {
	urn := tbx.URNForUID(uid)

	graphs, err := l.store.GraphsWithPrimaryTopic(ctx, metaGraph, urn)
	if err != nil {
		return err
	}

	for _, g := range graphs {
		if err := l.store.DropGraph(ctx, g); err != nil {
			return err
		}

		entry := rdf.NewGraph(rdf.Triple{
			Subject:   rdf.NewIRI(g),
			Predicate: rdf.NewIRI(foafPrimaryTopic),
			Object:    rdf.NewIRI(urn),
		})

		if err := l.store.RemoveFromGraph(ctx, metaGraph, entry); err != nil {
			return err
		}
	}

	if inbound {
		rel, err := l.GetInboundRel(ctx, urn)
		if err != nil {
			return err
		}

		// Each inbound triple is removed from the graph of the referring
		// resource that its predicate routes to, the same routing ModifyRsrc
		// applies when the triple is added (e.g. ldp:contains in struct,
		// ordinary membership relations in main).
		byGraph := map[string]*rdf.Graph{}

		for _, t := range rel.Triples() {
			owningUID := tbx.UIDForURN(t.Subject.Value)
			graphURI := map[string]string{
				destAdmin:  AdminGraph(owningUID),
				destStruct: StructGraph(owningUID),
				destMain:   MainGraph(owningUID),
			}[routeTriple(t)]

			if byGraph[graphURI] == nil {
				byGraph[graphURI] = rdf.NewGraph()
			}

			byGraph[graphURI].Add(t)
		}

		for graphURI, triples := range byGraph {
			if err := l.store.RemoveFromGraph(ctx, graphURI, triples); err != nil {
				return err
			}
		}
	}

	if l.cache != nil {
		l.cache.Invalidate(ctx, uid)
	}

	return nil
}

// excludedVersionTypes and excludedVersionPredicates list the triples
// _create_rsrc_version leaves out of a version snapshot: the resource-kind
// types and the predicates that are meaningless, or actively wrong, once
// copied under a version's own URN.
var excludedVersionTypes = map[string]bool{
	fcrepoBinary:    true,
	fcrepoContainer: true,
	resourceType:    true,
}

var excludedVersionPredicates = map[string]bool{
	fcrepoHasParent:        true,
	fcrepoHasVersions:      true,
	premisHasMessageDigest: true,
}

// CreateSnapshot copies a resource's current admin+main state into an
// immutable version graph addressed by its own ver_urn (rewriting every
// triple's subject from urn to ver_urn, excluding the resource-kind types
// and the predicates listed above), records version metadata, and adds the
// fcrepo:hasVersion pointer to the resource's admin graph. It returns the
// version's URN.
func (l *Layout) CreateSnapshot(ctx context.Context, uid, verUID string) (string, error) {
	admin, _, main := graphsFor(uid)
	urn := tbx.URNForUID(uid)
	verURN := urn + "/fcr:versions/" + verUID

	mainGraph, err := l.store.Graph(ctx, main)
	if err != nil {
		return "", err
	}

	adminGraph, err := l.store.Graph(ctx, admin)
	if err != nil {
		return "", err
	}

	snapshot := rdf.NewGraph()

	for _, t := range mainGraph.Triples() {
		addVersionedTriple(snapshot, t, urn, verURN)
	}

	for _, t := range adminGraph.Triples() {
		addVersionedTriple(snapshot, t, urn, verURN)
	}

	mainVersioned := VersionedGraph(destMain, uid, verUID)

	if err := l.store.AddToGraph(ctx, mainVersioned, snapshot); err != nil {
		return "", err
	}

	if err := l.registerPrimaryTopic(ctx, mainVersioned, urn); err != nil {
		return "", err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	meta := rdf.NewGraph(
		rdf.Triple{Subject: rdf.NewIRI(verURN), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoVersion)},
		rdf.Triple{Subject: rdf.NewIRI(verURN), Predicate: rdf.NewIRI(fcrepoCreated), Object: rdf.NewLiteral(now, xsdDateTime, "")},
		rdf.Triple{Subject: rdf.NewIRI(verURN), Predicate: rdf.NewIRI(fcrepoHasVersionLabel), Object: rdf.NewLiteral(verUID, "", "")},
	)

	adminVersioned := VersionedGraph(destAdmin, uid, verUID)

	if err := l.store.AddToGraph(ctx, adminVersioned, meta); err != nil {
		return "", err
	}

	if err := l.registerPrimaryTopic(ctx, adminVersioned, urn); err != nil {
		return "", err
	}

	historicEntry := rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI(urn),
		Predicate: rdf.NewIRI(fcrepoHasVersion),
		Object:    rdf.NewIRI(verURN),
	})

	if err := l.store.AddToGraph(ctx, historicGraph, historicEntry); err != nil {
		return "", err
	}

	return verURN, l.store.AddToGraph(ctx, admin, historicEntry)
}

// addVersionedTriple copies t into snapshot with its subject rewritten from
// urn to verURN, unless t is one of the triples a version snapshot omits.
func addVersionedTriple(snapshot *rdf.Graph, t rdf.Triple, urn, verURN string) {
	if t.Subject.Value != urn {
		return
	}

	if t.Predicate.IsIRI(rdfType) && excludedVersionTypes[t.Object.Value] {
		return
	}

	if excludedVersionPredicates[t.Predicate.Value] {
		return
	}

	snapshot.Add(rdf.Triple{Subject: rdf.NewIRI(verURN), Predicate: t.Predicate, Object: t.Object})
}

// VersionInfo describes one version snapshot recorded for a resource.
type VersionInfo struct {
	Label   string
	Created time.Time
	VerURN  string
}

// ListVersions returns every version recorded for uid, oldest first, read
// from each version's admin-versioned graph metadata.
func (l *Layout) ListVersions(ctx context.Context, uid string) ([]VersionInfo, error) {
	urn := tbx.URNForUID(uid)

	graphs, err := l.store.GraphsWithPrimaryTopic(ctx, metaGraph, urn)
	if err != nil {
		return nil, err
	}

	adminPrefix := AdminGraph(uid) + ":"

	var out []VersionInfo

	for _, g := range graphs {
		if !strings.HasPrefix(g, adminPrefix) {
			continue
		}

		verUID := strings.TrimPrefix(g, adminPrefix)
		verURN := urn + "/fcr:versions/" + verUID

		content, err := l.store.Graph(ctx, g)
		if err != nil {
			return nil, err
		}

		info := VersionInfo{Label: verUID, VerURN: verURN}

		for _, t := range content.Triples() {
			if t.Subject.Value != verURN {
				continue
			}

			switch t.Predicate.Value {
			case fcrepoCreated:
				info.Created, _ = time.Parse(time.RFC3339, t.Object.Value)
			case fcrepoHasVersionLabel:
				info.Label = t.Object.Value
			}
		}

		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })

	return out, nil
}

// GetVersionGraph returns the content graph of a single version, with
// subjects still addressed by the version's own URN.
func (l *Layout) GetVersionGraph(ctx context.Context, uid, verUID string) (*rdf.Graph, error) {
	return l.store.Graph(ctx, VersionedGraph(destMain, uid, verUID))
}

// Bootstrap seeds the root node if the underlying store supports it.
func (l *Layout) Bootstrap(ctx context.Context) error {
	type bootstrapper interface {
		Bootstrap(ctx context.Context) error
	}

	if b, ok := l.store.(bootstrapper); ok {
		return b.Bootstrap(ctx)
	}

	return nil
}

const (
	resourceType     = "info:fcrepo:Resource"
	foafPrimaryTopic = "http://xmlns.com/foaf/0.1/primaryTopic"
	fcrepoHasVersion = "info:fcrepo:hasVersion"

	fcrepoBinary           = "info:fcrepo:Binary"
	fcrepoContainer        = "info:fcrepo:Container"
	fcrepoVersion          = "info:fcrepo:Version"
	fcrepoCreated          = "info:fcrepo:created"
	fcrepoHasParent        = "info:fcrepo:hasParent"
	fcrepoHasVersions      = "info:fcrepo:hasVersions"
	fcrepoHasVersionLabel  = "info:fcrepo:hasVersionLabel"
	premisHasMessageDigest = "info:premis:hasMessageDigest"

	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

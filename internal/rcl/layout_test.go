package rcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

// fakeStore is an in-memory tsa.Store used to exercise Layout without a
// database, the way the rest of this codebase favors fakes over mocks for
// pure-logic unit tests.
type fakeStore struct {
	graphs map[string]*rdf.Graph
}

func newFakeStore() *fakeStore {
	return &fakeStore{graphs: map[string]*rdf.Graph{}}
}

func (f *fakeStore) graph(uri string) *rdf.Graph {
	if f.graphs[uri] == nil {
		f.graphs[uri] = rdf.NewGraph()
	}

	return f.graphs[uri]
}

func (f *fakeStore) Graph(_ context.Context, graphURI string) (*rdf.Graph, error) {
	return rdf.NewGraph(f.graph(graphURI).Triples()...), nil
}

func (f *fakeStore) AddToGraph(_ context.Context, graphURI string, g *rdf.Graph) error {
	target := f.graph(graphURI)
	for _, t := range g.Triples() {
		target.Add(t)
	}

	return nil
}

func (f *fakeStore) RemoveFromGraph(_ context.Context, graphURI string, g *rdf.Graph) error {
	target := f.graph(graphURI)
	for _, t := range g.Triples() {
		target.Remove(t)
	}

	return nil
}

func (f *fakeStore) DropGraph(_ context.Context, graphURI string) error {
	delete(f.graphs, graphURI)
	return nil
}

func (f *fakeStore) MoveGraph(_ context.Context, fromURI, toURI string) error {
	f.graphs[toURI] = f.graph(fromURI)
	delete(f.graphs, fromURI)

	return nil
}

func (f *fakeStore) ConstructBySubject(_ context.Context, graphURI, subjectURI string) (*rdf.Graph, error) {
	out := rdf.NewGraph()
	for _, t := range f.graph(graphURI).Triples() {
		if t.Subject.Value == subjectURI {
			out.Add(t)
		}
	}

	return out, nil
}

func (f *fakeStore) InboundBySubject(_ context.Context, metaGraphURI, objectURI string) (*rdf.Graph, error) {
	live := map[string]bool{}
	for _, t := range f.graph(metaGraphURI).Triples() {
		live[t.Subject.Value] = true
	}

	out := rdf.NewGraph()

	for graphURI := range f.graphs {
		if !live[graphURI] {
			continue
		}

		for _, t := range f.graph(graphURI).Triples() {
			if t.Object.Value == objectURI {
				out.Add(t)
			}
		}
	}

	return out, nil
}

func (f *fakeStore) GraphsWithPrimaryTopic(_ context.Context, metaGraphURI, subjectURI string) ([]string, error) {
	var out []string

	for _, t := range f.graph(metaGraphURI).Triples() {
		if t.Object.Value == subjectURI {
			out = append(out, t.Subject.Value)
		}
	}

	return out, nil
}

func (f *fakeStore) AskSubjectType(_ context.Context, graphURI, subjectURI, typeURI string) (bool, error) {
	for _, t := range f.graph(graphURI).Triples() {
		if t.Subject.Value == subjectURI && t.Predicate.Value == rdfType && t.Object.Value == typeURI {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) Begin(_ context.Context) (tsa.Tx, error) {
	return nil, nil
}

func newTestLayout() (*Layout, *fakeStore) {
	store := newFakeStore()
	tb := tbx.New("http://example.org/ldp")

	return New(store, tb, nil, &mlog.NoneLogger{}), store
}

func TestModifyRsrcRoutesTriplesByDestination(t *testing.T) {
	layout, store := newTestLayout()

	add := rdf.NewGraph(
		rdf.Triple{
			Subject:   rdf.NewIRI(tbx.URNForUID("1")),
			Predicate: rdf.NewIRI("info:fcrepo:hasParent"),
			Object:    rdf.NewIRI(tbx.RootURN),
		},
		rdf.Triple{
			Subject:   rdf.NewIRI(tbx.URNForUID("1")),
			Predicate: rdf.NewIRI("http://example.org/title"),
			Object:    rdf.NewLiteral("hello", "", ""),
		},
	)

	err := layout.ModifyRsrc(context.Background(), "1", rdf.NewGraph(), add)
	require.NoError(t, err)

	admin, err := store.Graph(context.Background(), AdminGraph("1"))
	require.NoError(t, err)
	assert.Equal(t, 1, admin.Len())

	main, err := store.Graph(context.Background(), MainGraph("1"))
	require.NoError(t, err)
	assert.Equal(t, 1, main.Len())

	topics, err := store.GraphsWithPrimaryTopic(context.Background(), metaGraph, tbx.URNForUID("1"))
	require.NoError(t, err)
	assert.Contains(t, topics, AdminGraph("1"))
	assert.Contains(t, topics, MainGraph("1"))
}

func TestAskRsrcExistsReadsStoreWithoutCache(t *testing.T) {
	layout, store := newTestLayout()

	_, err := store.Graph(context.Background(), AdminGraph("1"))
	require.NoError(t, err)

	err = store.AddToGraph(context.Background(), AdminGraph("1"), rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI(tbx.URNForUID("1")),
		Predicate: rdf.NewIRI(rdfType),
		Object:    rdf.NewIRI(resourceType),
	}))
	require.NoError(t, err)

	exists, err := layout.AskRsrcExists(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = layout.AskRsrcExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtractIMRFailsStrictOnMissingResource(t *testing.T) {
	layout, _ := newTestLayout()

	_, err := layout.ExtractIMR(context.Background(), "missing", ExtractIMRFilter{Strict: true})
	assert.IsType(t, ErrResourceNotExists{}, err)
}

func TestExtractIMRDetectsTombstone(t *testing.T) {
	layout, store := newTestLayout()

	urn := tbx.URNForUID("1")
	err := store.AddToGraph(context.Background(), AdminGraph("1"), rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI(urn),
		Predicate: rdf.NewIRI(rdfType),
		Object:    rdf.NewIRI(tombstoneType),
	}))
	require.NoError(t, err)

	_, err = layout.ExtractIMR(context.Background(), "1", ExtractIMRFilter{Strict: true})
	assert.IsType(t, ErrTombstone{}, err)
}

func TestDeleteRsrcDataDropsAllThreeGraphs(t *testing.T) {
	layout, store := newTestLayout()

	for _, g := range []string{AdminGraph("1"), StructGraph("1"), MainGraph("1")} {
		require.NoError(t, store.AddToGraph(context.Background(), g, rdf.NewGraph(rdf.Triple{
			Subject: rdf.NewIRI("s"), Predicate: rdf.NewIRI("p"), Object: rdf.NewIRI("o"),
		})))
	}

	err := layout.DeleteRsrcData(context.Background(), "1", "")
	require.NoError(t, err)

	for _, g := range []string{AdminGraph("1"), StructGraph("1"), MainGraph("1")} {
		got, err := store.Graph(context.Background(), g)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	}
}

func TestDeleteRsrcDataBacksUpMainGraphWhenRequested(t *testing.T) {
	layout, store := newTestLayout()

	require.NoError(t, store.AddToGraph(context.Background(), MainGraph("1"), rdf.NewGraph(rdf.Triple{
		Subject: rdf.NewIRI("s"), Predicate: rdf.NewIRI("p"), Object: rdf.NewIRI("o"),
	})))

	err := layout.DeleteRsrcData(context.Background(), "1", "1/fcr:tombstone/backup")
	require.NoError(t, err)

	backup, err := store.Graph(context.Background(), BackupMainGraph("1/fcr:tombstone/backup"))
	require.NoError(t, err)
	assert.Equal(t, 1, backup.Len())
}

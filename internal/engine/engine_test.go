package engine

import (
	"context"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// fakeStore is an in-memory tsa.Store/tsa.Tx used to exercise the lifecycle
// engine end to end without a database, the way internal/rcl's own tests do.
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
	return &fakeTx{fakeStore: f}, nil
}

// fakeTx wraps fakeStore to satisfy tsa.Tx; every operation applies
// directly to the same in-memory graphs, since this fake has no concept of
// an uncommitted overlay.
type fakeTx struct {
	*fakeStore
}

func (f *fakeTx) Commit(_ context.Context) error   { return nil }
func (f *fakeTx) Rollback(_ context.Context) error { return nil }

type fakePublisher struct {
	published []txn.ChangelogEntry
}

func (p *fakePublisher) Publish(_ context.Context, e txn.ChangelogEntry) error {
	p.published = append(p.published, e)
	return nil
}

// testEnv bundles a fresh UseCase with the fakes backing it, so each test
// can inspect both behavior and recorded side effects.
type testEnv struct {
	uc    *UseCase
	store *fakeStore
	pub   *fakePublisher
}

func newTestEnv(cfg Config) *testEnv {
	store := newFakeStore()
	tb := tbx.New("http://example.org/ldp")
	pub := &fakePublisher{}
	txm := txn.NewManager(store, pub, nil, &mlog.NoneLogger{})

	if cfg.DefaultUser == "" {
		cfg.DefaultUser = "bypass"
	}

	uc := New(store, tb, nil, txm, &mlog.NoneLogger{}, cfg)

	return &testEnv{uc: uc, store: store, pub: pub}
}

func graphOf(triples ...rdf.Triple) *rdf.Graph {
	return rdf.NewGraph(triples...)
}

func adminGraph(env *testEnv, uid string) *rdf.Graph {
	g, _ := env.store.Graph(context.Background(), rcl.AdminGraph(uid))
	return g
}

func mainGraph(env *testEnv, uid string) *rdf.Graph {
	g, _ := env.store.Graph(context.Background(), rcl.MainGraph(uid))
	return g
}

func structGraph(env *testEnv, uid string) *rdf.Graph {
	g, _ := env.store.Graph(context.Background(), rcl.StructGraph(uid))
	return g
}

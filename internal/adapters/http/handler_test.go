package http

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/engine"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// fakeStore is a minimal in-memory tsa.Store/tsa.Tx, the same shape
// internal/engine's own tests use, duplicated here since it is unexported
// there and this package exercises the engine only through HTTP.
type fakeStore struct {
	graphs map[string]*rdf.Graph
}

func newFakeStore() *fakeStore { return &fakeStore{graphs: map[string]*rdf.Graph{}} }

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
	rdfType := "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

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

type fakeTx struct {
	*fakeStore
}

func (f *fakeTx) Commit(_ context.Context) error   { return nil }
func (f *fakeTx) Rollback(_ context.Context) error { return nil }

type fakePublisher struct{}

func (p *fakePublisher) Publish(_ context.Context, _ txn.ChangelogEntry) error { return nil }

func newTestApp() *fiber.App {
	store := newFakeStore()
	tb := tbx.New("http://example.org/ldp")
	txm := txn.NewManager(store, &fakePublisher{}, nil, &mlog.NoneLogger{})
	uc := engine.New(store, tb, nil, txm, &mlog.NoneLogger{}, engine.Config{DefaultUser: "bypass"})

	return NewRouter(&mlog.NoneLogger{}, uc, "fcrepo")
}

func TestPutThenGetRoundTrips(t *testing.T) {
	app := newTestApp()

	body := "<http://example.org/ldp/1> <http://example.org/title> \"hello\" .\n"
	req := httptest.NewRequest(fiber.MethodPut, "/ldp/1", bytes.NewBufferString(body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/ldp/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(got), "hello")
}

func TestGetMissingResourceReturns404(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/ldp/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteLeavesTombstoneThenPurge(t *testing.T) {
	app := newTestApp()

	body := "<http://example.org/ldp/1> <http://example.org/title> \"hello\" .\n"
	req := httptest.NewRequest(fiber.MethodPut, "/ldp/1", bytes.NewBufferString(body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodDelete, "/ldp/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/ldp/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodDelete, "/ldp/1/fcr:tombstone", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/ldp/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

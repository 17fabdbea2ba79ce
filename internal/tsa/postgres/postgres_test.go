package postgres

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return &Repository{q: db}, mock
}

func TestGraphReturnsStoredTriples(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"subject", "predicate", "object", "object_kind", "lang", "datatype"}).
		AddRow("info:fcres:1", "info:fcrepo:hasParent", "info:fcsystem:root", int(rdf.IRI), "", "")

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT subject, predicate, object, object_kind, lang, datatype FROM quads WHERE graph = $1`,
	)).WithArgs("fcadmin:1").WillReturnRows(rows)

	g, err := repo.Graph(context.Background(), "fcadmin:1")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToGraphSkipsEmptyGraph(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.AddToGraph(context.Background(), "fcadmin:1", rdf.NewGraph())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToGraphInsertsEachTriple(t *testing.T) {
	repo, mock := newMockRepository(t)

	g := rdf.NewGraph(rdf.Triple{
		Subject:   rdf.NewIRI("info:fcres:1"),
		Predicate: rdf.NewIRI("info:fcrepo:hasParent"),
		Object:    rdf.NewIRI("info:fcsystem:root"),
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quads")).
		WithArgs("fcadmin:1", "info:fcres:1", "info:fcrepo:hasParent", "info:fcsystem:root", int(rdf.IRI), "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddToGraph(context.Background(), "fcadmin:1", g)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAskSubjectTypeFalseOnNoRows(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM quads")).
		WithArgs("fcadmin:1", "info:fcrepo:Resource", rdfType, "info:fcres:1").
		WillReturnError(nil).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err := repo.AskSubjectType(context.Background(), "fcadmin:1", "info:fcres:1", "info:fcrepo:Resource")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropGraphDeletesByGraph(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM quads WHERE graph = $1")).
		WithArgs("fcadmin:1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.DropGraph(context.Background(), "fcadmin:1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

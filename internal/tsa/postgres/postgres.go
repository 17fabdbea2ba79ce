// Package postgres implements the triple store adapter (tsa.Store) against
// a single relational quads table, following the query-building style
// common/mpostgres-backed repositories in this codebase use: squirrel for
// SQL construction, database/sql (via the pgx stdlib driver) for execution.
package postgres

import (
	"context"
	"database/sql"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/fcrepo-go/ldprepo/common/mpostgres"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

const quadsTable = "quads"

// querier is satisfied by both dbresolver.DB (outside a transaction) and
// *sql.Tx (inside one), letting Repository's query-building code stay
// identical in both cases.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repository is the Postgres-backed tsa.Store.
type Repository struct {
	connection *mpostgres.PostgresConnection
	q          querier
}

// NewRepository returns a tsa.Store backed by the given Postgres connection.
func NewRepository(pc *mpostgres.PostgresConnection) *Repository {
	return &Repository{connection: pc}
}

func (r *Repository) db(ctx context.Context) (querier, error) {
	if r.q != nil {
		return r.q, nil
	}

	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, tsa.WrapStoreError("connect", err)
	}

	return db, nil
}

func builder() sqrl.StatementBuilderType {
	return sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar)
}

// Graph returns every triple currently stored under graphURI.
func (r *Repository) Graph(ctx context.Context, graphURI string) (*rdf.Graph, error) {
	return r.queryTriples(ctx, builder().
		Select("subject", "predicate", "object", "object_kind", "lang", "datatype").
		From(quadsTable).
		Where(sqrl.Eq{"graph": graphURI}))
}

// AddToGraph inserts every triple of g into graphURI. Existing identical
// quads are left untouched (the primary key makes this an upsert-as-noop).
func (r *Repository) AddToGraph(ctx context.Context, graphURI string, g *rdf.Graph) error {
	if g == nil || g.Len() == 0 {
		return nil
	}

	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	ins := builder().Insert(quadsTable).
		Columns("graph", "subject", "predicate", "object", "object_kind", "lang", "datatype").
		Suffix("ON CONFLICT (graph, subject, predicate, object) DO NOTHING")

	for _, t := range g.Triples() {
		ins = ins.Values(graphURI, t.Subject.Value, t.Predicate.Value,
			t.Object.Value, int(t.Object.Kind), t.Object.Lang, t.Object.Datatype)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return tsa.WrapStoreError("add_to_graph.build", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return tsa.WrapStoreError("add_to_graph.exec", err)
	}

	return nil
}

// RemoveFromGraph deletes every triple of g from graphURI, if present.
func (r *Repository) RemoveFromGraph(ctx context.Context, graphURI string, g *rdf.Graph) error {
	if g == nil || g.Len() == 0 {
		return nil
	}

	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	for _, t := range g.Triples() {
		query, args, err := builder().Delete(quadsTable).
			Where(sqrl.Eq{
				"graph":     graphURI,
				"subject":   t.Subject.Value,
				"predicate": t.Predicate.Value,
				"object":    t.Object.Value,
			}).ToSql()
		if err != nil {
			return tsa.WrapStoreError("remove_from_graph.build", err)
		}

		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return tsa.WrapStoreError("remove_from_graph.exec", err)
		}
	}

	return nil
}

// DropGraph empties a named graph entirely.
func (r *Repository) DropGraph(ctx context.Context, graphURI string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	query, args, err := builder().Delete(quadsTable).Where(sqrl.Eq{"graph": graphURI}).ToSql()
	if err != nil {
		return tsa.WrapStoreError("drop_graph.build", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return tsa.WrapStoreError("drop_graph.exec", err)
	}

	return nil
}

// MoveGraph renames fromURI to toURI, overwriting toURI's prior contents.
func (r *Repository) MoveGraph(ctx context.Context, fromURI, toURI string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	if err := r.DropGraph(ctx, toURI); err != nil {
		return err
	}

	query, args, err := builder().Update(quadsTable).
		Set("graph", toURI).
		Where(sqrl.Eq{"graph": fromURI}).ToSql()
	if err != nil {
		return tsa.WrapStoreError("move_graph.build", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return tsa.WrapStoreError("move_graph.exec", err)
	}

	return nil
}

// ConstructBySubject returns every triple in graphURI about subjectURI.
func (r *Repository) ConstructBySubject(ctx context.Context, graphURI, subjectURI string) (*rdf.Graph, error) {
	return r.queryTriples(ctx, builder().
		Select("subject", "predicate", "object", "object_kind", "lang", "datatype").
		From(quadsTable).
		Where(sqrl.Eq{"graph": graphURI, "subject": subjectURI}))
}

// InboundBySubject returns every triple, across any graph registered in the
// meta graph as primaryTopic of a live resource, whose object is objectURI.
// Restricting to graphs the meta graph still lists excludes tombstoned and
// historic resources, whose admin graph carries no primaryTopic record.
func (r *Repository) InboundBySubject(ctx context.Context, metaGraphURI, objectURI string) (*rdf.Graph, error) {
	liveGraphsSQL := `SELECT subject FROM quads WHERE graph = ? AND predicate = ?`

	query, args, err := builder().
		Select("subject", "predicate", "object", "object_kind", "lang", "datatype").
		From(quadsTable).
		Where(sqrl.Eq{"object": objectURI}).
		Where(quadsTable+".graph IN ("+liveGraphsSQL+")", metaGraphURI, foafPrimaryTopic).
		ToSql()
	if err != nil {
		return nil, tsa.WrapStoreError("inbound.build", err)
	}

	return r.runTripleQuery(ctx, query, args...)
}

// GraphsWithPrimaryTopic returns the graphs the meta graph records as
// having subjectURI as their foaf:primaryTopic.
func (r *Repository) GraphsWithPrimaryTopic(ctx context.Context, metaGraphURI, subjectURI string) ([]string, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := builder().
		Select("subject").
		From(quadsTable).
		Where(sqrl.Eq{"graph": metaGraphURI, "predicate": foafPrimaryTopic, "object": subjectURI}).
		ToSql()
	if err != nil {
		return nil, tsa.WrapStoreError("graphs_with_primary_topic.build", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, tsa.WrapStoreError("graphs_with_primary_topic.query", err)
	}
	defer rows.Close()

	var graphs []string

	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, tsa.WrapStoreError("graphs_with_primary_topic.scan", err)
		}

		graphs = append(graphs, g)
	}

	return graphs, rows.Err()
}

// AskSubjectType reports whether graphURI asserts subjectURI rdf:type typeURI.
func (r *Repository) AskSubjectType(ctx context.Context, graphURI, subjectURI, typeURI string) (bool, error) {
	db, err := r.db(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := builder().
		Select("1").
		From(quadsTable).
		Where(sqrl.Eq{"graph": graphURI, "subject": subjectURI, "predicate": rdfType, "object": typeURI}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, tsa.WrapStoreError("ask_subject_type.build", err)
	}

	var one int

	err = db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case err == sql.ErrNoRows:
		return false, nil
	default:
		return false, tsa.WrapStoreError("ask_subject_type.query", err)
	}
}

// Begin starts a transaction against the primary connection.
func (r *Repository) Begin(ctx context.Context) (tsa.Tx, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, tsa.WrapStoreError("begin.connect", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, tsa.WrapStoreError("begin", err)
	}

	return &txRepository{Repository: Repository{connection: r.connection, q: tx}, tx: tx}, nil
}

func (r *Repository) queryTriples(ctx context.Context, b sqrl.SelectBuilder) (*rdf.Graph, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, tsa.WrapStoreError("query.build", err)
	}

	return r.runTripleQuery(ctx, query, args...)
}

func (r *Repository) runTripleQuery(ctx context.Context, query string, args ...any) (*rdf.Graph, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, tsa.WrapStoreError("query.exec", err)
	}
	defer rows.Close()

	g := rdf.NewGraph()

	for rows.Next() {
		var subject, predicate, object, lang, datatype string

		var kind int

		if err := rows.Scan(&subject, &predicate, &object, &kind, &lang, &datatype); err != nil {
			return nil, tsa.WrapStoreError("query.scan", err)
		}

		g.Add(rdf.Triple{
			Subject:   rdf.NewIRI(subject),
			Predicate: rdf.NewIRI(predicate),
			Object:    objectTerm(object, rdf.TermKind(kind), datatype, lang),
		})
	}

	return g, rows.Err()
}

func objectTerm(value string, kind rdf.TermKind, datatype, lang string) rdf.Term {
	switch kind {
	case rdf.IRI:
		return rdf.NewIRI(value)
	case rdf.Blank:
		return rdf.NewBlank(value)
	default:
		return rdf.NewLiteral(value, datatype, lang)
	}
}

const (
	foafPrimaryTopic = "http://xmlns.com/foaf/0.1/primaryTopic"
	rdfType          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

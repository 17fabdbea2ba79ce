package rdf

import "sort"

// Graph is an unordered set of triples about (in principle) a single
// resource. The zero value is an empty graph ready to use.
type Graph struct {
	triples map[string]Triple
}

// NewGraph builds a graph from the given triples, deduplicating as it goes.
func NewGraph(triples ...Triple) *Graph {
	g := &Graph{triples: make(map[string]Triple, len(triples))}
	for _, t := range triples {
		g.Add(t)
	}

	return g
}

// Add inserts a triple into the graph. Idempotent.
func (g *Graph) Add(t Triple) {
	if g.triples == nil {
		g.triples = make(map[string]Triple)
	}

	g.triples[t.key()] = t
}

// Remove deletes a triple from the graph, if present.
func (g *Graph) Remove(t Triple) {
	delete(g.triples, t.key())
}

// Contains reports whether the exact triple is present in the graph.
func (g *Graph) Contains(t Triple) bool {
	_, ok := g.triples[t.key()]
	return ok
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the graph's triples in a stable (sorted) order, suitable
// for deterministic serialization and checksumming.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, len(g.triples))
	for _, t := range g.triples {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })

	return out
}

// Subjects returns the distinct subject terms present in the graph.
func (g *Graph) Subjects() []Term {
	seen := make(map[string]Term)
	for _, t := range g.triples {
		seen[t.Subject.String()] = t.Subject
	}

	out := make([]Term, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}

	return out
}

// ByPredicate returns every triple whose predicate matches p.
func (g *Graph) ByPredicate(p string) []Triple {
	var out []Triple

	for _, t := range g.triples {
		if t.Predicate.IsIRI(p) {
			out = append(out, t)
		}
	}

	return out
}

// Union returns a new graph containing every triple from either graph.
func (g *Graph) Union(other *Graph) *Graph {
	out := NewGraph(g.Triples()...)
	if other != nil {
		for _, t := range other.Triples() {
			out.Add(t)
		}
	}

	return out
}

// Subtract returns a new graph with every triple of other removed from g.
// This is the "a - b" half of dedup(a, b) in the lifecycle engine spec.
func (g *Graph) Subtract(other *Graph) *Graph {
	out := NewGraph()

	for _, t := range g.Triples() {
		if other == nil || !other.Contains(t) {
			out.Add(t)
		}
	}

	return out
}

// Dedup computes dedup(a, b) = (a - b, b - a): the triples to remove and the
// triples to add to turn a into b. It is idempotent: Dedup of the results of
// a prior Dedup call returns the same pair unchanged.
func Dedup(a, b *Graph) (remove, add *Graph) {
	return a.Subtract(b), b.Subtract(a)
}

package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupIsIdempotent(t *testing.T) {
	a := NewGraph(
		Triple{NewIRI("s"), NewIRI("p1"), NewLiteral("v1", "", "")},
		Triple{NewIRI("s"), NewIRI("p2"), NewLiteral("v2", "", "")},
	)
	b := NewGraph(
		Triple{NewIRI("s"), NewIRI("p2"), NewLiteral("v2", "", "")},
		Triple{NewIRI("s"), NewIRI("p3"), NewLiteral("v3", "", "")},
	)

	remove, add := Dedup(a, b)
	assert.Equal(t, 1, remove.Len())
	assert.Equal(t, 1, add.Len())

	remove2, add2 := Dedup(remove, add)
	assert.ElementsMatch(t, remove.Triples(), remove2.Triples())
	assert.ElementsMatch(t, add.Triples(), add2.Triples())
}

func TestGraphUnionSubtract(t *testing.T) {
	a := NewGraph(Triple{NewIRI("s"), NewIRI("p"), NewIRI("o1")})
	b := NewGraph(Triple{NewIRI("s"), NewIRI("p"), NewIRI("o2")})

	u := a.Union(b)
	assert.Equal(t, 2, u.Len())

	diff := u.Subtract(a)
	assert.Equal(t, 1, diff.Len())
	assert.True(t, diff.Contains(Triple{NewIRI("s"), NewIRI("p"), NewIRI("o2")}))
}

func TestGraphByPredicate(t *testing.T) {
	g := NewGraph(
		Triple{NewIRI("s"), NewIRI("rdf:type"), NewIRI("ldp:Container")},
		Triple{NewIRI("s"), NewIRI("ex:title"), NewLiteral("hello", "", "en")},
	)

	types := g.ByPredicate("rdf:type")
	assert.Len(t, types, 1)
	assert.Equal(t, "ldp:Container", types[0].Object.Value)
}

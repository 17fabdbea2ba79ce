package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumStableUnderTripleOrder(t *testing.T) {
	g1 := NewGraph(
		Triple{NewIRI("s"), NewIRI("p1"), NewLiteral("v1", "", "")},
		Triple{NewIRI("s"), NewIRI("p2"), NewLiteral("v2", "", "")},
	)
	g2 := NewGraph(
		Triple{NewIRI("s"), NewIRI("p2"), NewLiteral("v2", "", "")},
		Triple{NewIRI("s"), NewIRI("p1"), NewLiteral("v1", "", "")},
	)

	assert.Equal(t, Checksum(g1), Checksum(g2))
}

func TestChecksumSensitiveToContent(t *testing.T) {
	g1 := NewGraph(Triple{NewIRI("s"), NewIRI("p"), NewLiteral("v1", "", "")})
	g2 := NewGraph(Triple{NewIRI("s"), NewIRI("p"), NewLiteral("v2", "", "")})

	assert.NotEqual(t, Checksum(g1), Checksum(g2))
}

func TestMessageDigestURNFormat(t *testing.T) {
	g := NewGraph(Triple{NewIRI("s"), NewIRI("p"), NewLiteral("v", "", "")})
	urn := MessageDigestURN(g)

	assert.True(t, IsMessageDigestURN(urn))
}

package rdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteParseNTriplesRoundTrip(t *testing.T) {
	g := NewGraph(
		Triple{Subject: NewIRI("info:fcres:1"), Predicate: NewIRI("http://example.org/title"), Object: NewLiteral("hello", "", "")},
		Triple{Subject: NewIRI("info:fcres:1"), Predicate: NewIRI("http://example.org/size"), Object: NewLiteral("42", "http://www.w3.org/2001/XMLSchema#integer", "")},
		Triple{Subject: NewIRI("info:fcres:1"), Predicate: NewIRI("http://example.org/label"), Object: NewLiteral("bonjour", "", "fr")},
		Triple{Subject: NewIRI("info:fcres:1"), Predicate: NewIRI("http://example.org/ref"), Object: NewIRI("info:fcres:2")},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteNTriples(&buf, g))

	parsed, err := ParseNTriples(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), parsed.Len())

	for _, tr := range g.Triples() {
		assert.True(t, parsed.Contains(tr), "missing triple %s", tr.String())
	}
}

func TestParseNTriplesSkipsBlankLinesAndComments(t *testing.T) {
	input := "# a comment\n\n<info:fcres:1> <http://example.org/p> \"v\" .\n"

	g, err := ParseNTriples(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestParseNTriplesRejectsMalformedStatement(t *testing.T) {
	_, err := ParseNTriples(strings.NewReader("not a triple\n"))
	assert.Error(t, err)
}

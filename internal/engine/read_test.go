package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
)

func TestGetReturnsGlobalizedGraph(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	require.NoError(t, createFixture(env, "1"))

	g, err := env.uc.Get(context.Background(), "1", ReadOptions{InclChildren: true})
	require.NoError(t, err)
	assert.True(t, g.Contains(rdf.Triple{
		Subject: rdf.NewIRI("http://example.org/ldp/1"), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("1", "", ""),
	}))
}

func TestGetFailsOnMissingResource(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	_, err := env.uc.Get(context.Background(), "missing", ReadOptions{})
	require.Error(t, err)
}

func TestHeadReturnsETagAndLastModified(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	require.NoError(t, createFixture(env, "1"))

	h, err := env.uc.Head(context.Background(), "1")
	require.NoError(t, err)
	assert.NotEmpty(t, h.ETag)
	assert.NotEmpty(t, h.LastModified)
	assert.Contains(t, h.LinkTypes, ldpRDFSource)
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
)

func TestCreateVersionSnapshotsCurrentState(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	require.NoError(t, createFixture(env, "1"))

	verURN, err := env.uc.CreateVersion(context.Background(), "1", "v1")
	require.NoError(t, err)
	assert.Equal(t, urn+"/fcr:versions/v1", verURN)

	infos, err := env.uc.GetVersionInfo(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "v1", infos[0].Label)

	verGraph, err := env.uc.GetVersion(context.Background(), "1", "v1")
	require.NoError(t, err)
	assert.True(t, verGraph.Contains(rdf.Triple{
		Subject: rdf.NewIRI("http://example.org/ldp/1/fcr:versions/v1"), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("1", "", ""),
	}))
}

func TestRevertToVersionRestoresContent(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	require.NoError(t, createFixture(env, "1"))

	_, err := env.uc.CreateVersion(context.Background(), "1", "v1")
	require.NoError(t, err)

	_, err = env.uc.CreateOrReplace(context.Background(), "1", graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("changed", "", ""),
	}), false)
	require.NoError(t, err)

	err = env.uc.RevertToVersion(context.Background(), "1", "v1", false)
	require.NoError(t, err)

	main := mainGraph(env, "1")
	assert.True(t, main.Contains(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("1", "", ""),
	}))
	assert.False(t, main.Contains(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("changed", "", ""),
	}))
}

func TestResurrectRestoresFromMostRecentVersion(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	require.NoError(t, createFixture(env, "1"))

	_, err := env.uc.CreateVersion(context.Background(), "1", "v1")
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), "1", DeleteOptions{LeaveTombstone: true})
	require.NoError(t, err)

	err = env.uc.Resurrect(context.Background(), "1")
	require.NoError(t, err)

	main := mainGraph(env, "1")
	assert.True(t, main.Contains(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("1", "", ""),
	}))

	admin := adminGraph(env, "1")
	assert.False(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcsystemTombstone)}))
}

func TestResurrectRestoresPreservedNonRDFSourceType(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	_, err := env.uc.CreateOrReplace(context.Background(), "1", graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(ldpNonRDFSource),
	}), false)
	require.NoError(t, err)

	_, err = env.uc.CreateVersion(context.Background(), "1", "v1")
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), "1", DeleteOptions{LeaveTombstone: true})
	require.NoError(t, err)

	err = env.uc.Resurrect(context.Background(), "1")
	require.NoError(t, err)

	admin := adminGraph(env, "1")
	assert.True(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoBinary)}))
	assert.False(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoContainer)}))
}

func TestResurrectRestoresPreservedContainerType(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	_, err := env.uc.CreateOrReplace(context.Background(), "1", graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(ldpContainer),
	}), false)
	require.NoError(t, err)

	_, err = env.uc.CreateVersion(context.Background(), "1", "v1")
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), "1", DeleteOptions{LeaveTombstone: true})
	require.NoError(t, err)

	err = env.uc.Resurrect(context.Background(), "1")
	require.NoError(t, err)

	admin := adminGraph(env, "1")
	assert.True(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoContainer)}))
	assert.False(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcrepoBinary)}))
}

func TestResurrectFailsWithoutTombstone(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	require.NoError(t, createFixture(env, "1"))

	err := env.uc.Resurrect(context.Background(), "1")
	require.Error(t, err)
	assert.IsType(t, InvalidResourceError{}, err)
}

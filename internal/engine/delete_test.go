package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
)

func TestDeleteLeavesTombstoneByDefault(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	_, err := env.uc.CreateOrReplace(context.Background(), "1", graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("hello", "", ""),
	}), false)
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), "1", DeleteOptions{LeaveTombstone: true})
	require.NoError(t, err)

	assert.Equal(t, 0, mainGraph(env, "1").Len())

	admin := adminGraph(env, "1")
	assert.True(t, admin.Contains(rdf.Triple{Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI(rdfType), Object: rdf.NewIRI(fcsystemTombstone)}))
}

func TestPurgeRemovesResourceEntirely(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	urn := tbx.URNForUID("1")
	_, err := env.uc.CreateOrReplace(context.Background(), "1", graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral("hello", "", ""),
	}), false)
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), "1", DeleteOptions{LeaveTombstone: false})
	require.NoError(t, err)

	assert.Equal(t, 0, mainGraph(env, "1").Len())
	assert.Equal(t, 0, adminGraph(env, "1").Len())
}

func TestDeleteWithChildrenBuriesDescendants(t *testing.T) {
	env := newTestEnv(Config{ReferentialIntegrity: RefIntegrityOff})

	require.NoError(t, createFixture(env, "parent"))
	require.NoError(t, createFixture(env, "parent/child"))

	err := env.uc.Delete(context.Background(), "parent", DeleteOptions{LeaveTombstone: true, DeleteChildren: true})
	require.NoError(t, err)

	childAdmin := adminGraph(env, "parent/child")
	childURN := tbx.URNForUID("parent/child")
	assert.True(t, childAdmin.Contains(rdf.Triple{
		Subject: rdf.NewIRI(childURN), Predicate: rdf.NewIRI(fcsystemTombstoneP), Object: rdf.NewIRI(tbx.URNForUID("parent")),
	}))
}

func createFixture(env *testEnv, uid string) error {
	urn := tbx.URNForUID(uid)
	_, err := env.uc.CreateOrReplace(context.Background(), uid, graphOf(rdf.Triple{
		Subject: rdf.NewIRI(urn), Predicate: rdf.NewIRI("http://example.org/title"), Object: rdf.NewLiteral(uid, "", ""),
	}), false)

	return err
}

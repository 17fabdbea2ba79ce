package txn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

type fakeTx struct {
	tsa.Store
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(_ context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(_ context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeStore struct {
	tsa.Store
	tx *fakeTx
}

func (f *fakeStore) Begin(_ context.Context) (tsa.Tx, error) {
	return f.tx, nil
}

type fakePublisher struct {
	published []ChangelogEntry
}

func (p *fakePublisher) Publish(_ context.Context, e ChangelogEntry) error {
	p.published = append(p.published, e)
	return nil
}

type fakeArchiver struct {
	archived []ChangelogEntry
}

func (a *fakeArchiver) Archive(_ context.Context, entries []ChangelogEntry) error {
	a.archived = append(a.archived, entries...)
	return nil
}

func TestWithTransactionCommitsAndDrainsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	store := &fakeStore{tx: tx}
	pub := &fakePublisher{}
	arc := &fakeArchiver{}

	mgr := NewManager(store, pub, arc, &mlog.NoneLogger{})

	err := mgr.WithTransaction(context.Background(), func(_ context.Context, _ tsa.Tx, cl *Changelog) error {
		cl.Append(ChangelogEntry{UID: "1", EventType: EventCreated, Time: time.Now()})
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Len(t, pub.published, 1)
	assert.Len(t, arc.archived, 1)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	store := &fakeStore{tx: tx}
	pub := &fakePublisher{}

	mgr := NewManager(store, pub, nil, &mlog.NoneLogger{})

	wantErr := errors.New("boom")

	err := mgr.WithTransaction(context.Background(), func(_ context.Context, _ tsa.Tx, cl *Changelog) error {
		cl.Append(ChangelogEntry{UID: "1", EventType: EventCreated})
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Empty(t, pub.published)
}

package txn

import (
	"context"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

// Publisher is the subset of internal/event's emitter that WithTransaction
// needs: publish one notification per changelog entry after commit.
type Publisher interface {
	Publish(ctx context.Context, entry ChangelogEntry) error
}

// Archiver persists a committed changelog for replay/debugging, independent
// of the primary store. A nil Archiver disables archival.
type Archiver interface {
	Archive(ctx context.Context, entries []ChangelogEntry) error
}

// Manager wires a store, an event publisher and an archiver into the
// atomic()-equivalent transaction wrapper every lifecycle engine operation
// runs through.
type Manager struct {
	store     tsa.Store
	publisher Publisher
	archiver  Archiver
	log       mlog.Logger
}

// NewManager builds a Manager. publisher and archiver may be nil to disable
// event emission or archival respectively (useful in tests).
func NewManager(store tsa.Store, publisher Publisher, archiver Archiver, log mlog.Logger) *Manager {
	return &Manager{store: store, publisher: publisher, archiver: archiver, log: log}
}

// WithTransaction begins a store transaction, runs fn with it and a fresh
// Changelog, then commits and drains the changelog into the publisher and
// archiver on success, or rolls back and discards it on error — mirroring
// atomic()'s try/except/else around rdfly.store.commit()/rollback().
func (m *Manager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx tsa.Tx, cl *Changelog) error) error {
	tx, err := m.store.Begin(ctx)
	if err != nil {
		return err
	}

	cl := NewChangelog()

	if err := fn(ctx, tx, cl); err != nil {
		m.log.Warnf("rolling back transaction: %v", err)

		if rbErr := tx.Rollback(ctx); rbErr != nil {
			m.log.Errorf("rollback failed: %v", rbErr)
		}

		return err
	}

	m.log.Info("committing transaction")

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	m.drain(ctx, cl)

	return nil
}

// drain publishes and archives a committed changelog. Failures here are
// logged, not propagated: the store-side transaction has already committed
// and cannot be rolled back because notification fan-out failed.
func (m *Manager) drain(ctx context.Context, cl *Changelog) {
	entries := cl.Entries()
	if len(entries) == 0 {
		return
	}

	if m.publisher != nil {
		for _, e := range entries {
			if err := m.publisher.Publish(ctx, e); err != nil {
				m.log.Errorf("failed to publish event for %s: %v", e.UID, err)
			}
		}
	}

	if m.archiver != nil {
		if err := m.archiver.Archive(ctx, entries); err != nil {
			m.log.Errorf("failed to archive changelog: %v", err)
		}
	}
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/fcrepo-go/ldprepo/internal/tsa"
)

// txRepository is a Repository scoped to a single *sql.Tx: every Store
// method above resolves its querier to the transaction instead of the
// resolver-backed primary/replica pair.
type txRepository struct {
	Repository
	tx *sql.Tx
}

func (t *txRepository) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return tsa.WrapStoreError("commit", err)
	}

	return nil
}

func (t *txRepository) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return tsa.WrapStoreError("rollback", err)
	}

	return nil
}

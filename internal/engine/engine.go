// Package engine implements the LDP lifecycle operations (create, replace,
// delete, purge, version, revert, resurrect) on top of the resource-centric
// layout, the triple store adapter and the transaction/changelog machinery,
// the way Ldpr in the reference implementation composes rdfly/txn calls
// behind a single per-request object.
package engine

import (
	"context"
	"time"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// RefIntegrity selects how create_or_replace reacts to an object IRI that
// names a resource which does not exist.
type RefIntegrity string

const (
	RefIntegrityOff     RefIntegrity = "off"
	RefIntegrityLenient RefIntegrity = "lenient"
	RefIntegrityStrict  RefIntegrity = "strict"
)

// Config is the set of operator-tunable knobs passed to New; cmd/fcrepo
// fills it from the environment-bound service config. AskRsrcExistsCacheTTL
// is not applied: rcl.Layout caches existence flags for a fixed 30 seconds.
type Config struct {
	ReferentialIntegrity RefIntegrity
	Messaging            bool
	WebRoot              string
	DefaultUser          string
	AskRsrcExistsCacheTTL time.Duration
}

// UseCase aggregates the repositories and collaborators the lifecycle
// operations need: a store for read-only lookups, a transaction manager for
// every mutating operation, the URN/URI toolbox, and the existence cache the
// resource-centric layout fronts ask_rsrc_exists with — the same shape as
// the reference command/query UseCase structs, specialized to this domain.
type UseCase struct {
	store tsa.Store
	tb    *tbx.Toolbox
	cache rcl.ExistenceCache
	txm   *txn.Manager
	log   mlog.Logger
	cfg   Config

	readLayout *rcl.Layout
}

// New builds a UseCase. store is used for read-only operations (get, head,
// version reads); txm owns the transactional store the mutating operations
// run against.
func New(store tsa.Store, tb *tbx.Toolbox, cache rcl.ExistenceCache, txm *txn.Manager, log mlog.Logger, cfg Config) *UseCase {
	return &UseCase{
		store:      store,
		tb:         tb,
		cache:      cache,
		txm:        txm,
		log:        log,
		cfg:        cfg,
		readLayout: rcl.New(store, tb, cache, log),
	}
}

// layoutFor builds a Layout bound to a transaction's store view, so every
// mutating operation's reads and writes within WithTransaction see the same
// uncommitted state.
func (uc *UseCase) layoutFor(tx tsa.Tx) *rcl.Layout {
	return rcl.New(tx, uc.tb, uc.cache, uc.log)
}

// Bootstrap seeds the repository root resource if the underlying store
// supports it.
func (uc *UseCase) Bootstrap(ctx context.Context) error {
	return uc.readLayout.Bootstrap(ctx)
}

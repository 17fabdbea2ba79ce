// Package txn wraps a single user-facing lifecycle operation in a store
// transaction and accumulates a changelog of every resource it touched,
// draining that changelog into post-commit events on success and
// discarding it on rollback — the same atomic()/request.changelog pattern
// the reference engine uses, made explicit as a Go type instead of a
// decorator closing over per-request globals.
package txn

import "time"

// EventType mirrors the lifecycle engine's RES_CREATED/RES_UPDATED/
// RES_DELETED classification used to pick an AMQP routing key.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// ChangelogEntry records one resource mutation within a transaction: which
// resource, what kind of event, when, its types and the actor, which is
// enough to build a notification and an audit record without re-reading the
// store. The changed triples themselves are not recorded.
type ChangelogEntry struct {
	UID       string
	URN       string
	EventType EventType
	Time      time.Time
	Types     []string
	Actor     string
}

// Changelog accumulates entries for the lifetime of a single transaction.
// It is not safe for concurrent use; each request gets its own instance.
type Changelog struct {
	entries []ChangelogEntry
}

// NewChangelog returns an empty changelog.
func NewChangelog() *Changelog {
	return &Changelog{}
}

// Append records a changelog entry.
func (c *Changelog) Append(e ChangelogEntry) {
	c.entries = append(c.entries, e)
}

// Entries returns the accumulated entries in append order.
func (c *Changelog) Entries() []ChangelogEntry {
	return c.entries
}

// Len returns the number of accumulated entries.
func (c *Changelog) Len() int {
	return len(c.entries)
}

package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fcrepo-go/ldprepo/internal/txn"
)

func TestRoutingKeyJoinsEventTypeAndUID(t *testing.T) {
	entry := txn.ChangelogEntry{UID: "abc/def", EventType: txn.EventUpdated}

	assert.Equal(t, "updated.abc/def", routingKey(entry))
}

func TestNotificationForCopiesEntryFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := txn.ChangelogEntry{
		UID:       "abc",
		URN:       "info:fcres:abc",
		EventType: txn.EventCreated,
		Time:      now,
		Types:     []string{"info:fcrepo:Resource"},
		Actor:     "alice",
	}

	n := notificationFor(entry)

	assert.Equal(t, entry.URN, n.Subject)
	assert.Equal(t, string(entry.EventType), n.EventType)
	assert.Equal(t, entry.Time, n.Time)
	assert.Equal(t, entry.Types, n.Types)
	assert.Equal(t, entry.Actor, n.Actor)
}

package txn

import (
	"context"
	"strings"
	"time"

	"github.com/fcrepo-go/ldprepo/common"
	"github.com/fcrepo-go/ldprepo/common/mmongo"
	"github.com/fcrepo-go/ldprepo/common/mopentelemetry"
)

const changelogCollection = "changelog"

// changelogMongoModel is the persisted shape of a ChangelogEntry, built the
// way AuditMongoDBModel shadows its domain entity for bson (de)serialization.
type changelogMongoModel struct {
	UID       string    `bson:"uid"`
	URN       string    `bson:"urn"`
	EventType string    `bson:"event_type"`
	Time      time.Time `bson:"time"`
	Types     []string  `bson:"types"`
	Actor     string    `bson:"actor"`
}

// MongoArchiver persists committed changelog entries to MongoDB as an
// append-only audit trail, independent of the primary quad store, the same
// way AuditMongoDBRepository archives audit entities.
type MongoArchiver struct {
	connection *mmongo.MongoConnection
	database   string
}

// NewMongoArchiver returns an Archiver backed by the given MongoDB
// connection and database name.
func NewMongoArchiver(mc *mmongo.MongoConnection, database string) *MongoArchiver {
	return &MongoArchiver{connection: mc, database: database}
}

// Archive inserts every entry as a separate document in the changelog
// collection.
func (a *MongoArchiver) Archive(ctx context.Context, entries []ChangelogEntry) error {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "txn.archive_changelog")
	defer span.End()

	db, err := a.connection.GetDB(ctx)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to get mongodb connection", err)
		return err
	}

	coll := db.Database(strings.ToLower(a.database)).Collection(changelogCollection)

	docs := make([]any, 0, len(entries))

	for _, e := range entries {
		docs = append(docs, changelogMongoModel{
			UID:       e.UID,
			URN:       e.URN,
			EventType: string(e.EventType),
			Time:      e.Time,
			Types:     e.Types,
			Actor:     e.Actor,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to insert changelog entries", err)
		return err
	}

	return nil
}

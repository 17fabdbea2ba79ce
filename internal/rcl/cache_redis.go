package rcl

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fcrepo-go/ldprepo/common"
	"github.com/fcrepo-go/ldprepo/common/mopentelemetry"
	"github.com/fcrepo-go/ldprepo/common/mredis"
)

// RedisExistenceCache is the Redis-backed ExistenceCache used by Layout's
// ask_rsrc_exists cache-aside lookup, built the way RedisConsumerRepository
// wraps mredis.RedisConnection elsewhere in this codebase.
type RedisExistenceCache struct {
	conn *mredis.RedisConnection
}

// NewRedisExistenceCache returns an ExistenceCache backed by the given Redis
// connection, keyed "rcl:exists:<uid>".
func NewRedisExistenceCache(rc *mredis.RedisConnection) *RedisExistenceCache {
	return &RedisExistenceCache{conn: rc}
}

func existsKey(uid string) string { return "rcl:exists:" + uid }

// Get returns the cached existence flag for uid, and whether it was found.
func (c *RedisExistenceCache) Get(ctx context.Context, uid string) (exists bool, found bool) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "rcl.cache_get")
	defer span.End()

	client, err := c.conn.GetDB(ctx)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return false, false
	}

	val, err := client.Get(ctx, existsKey(uid)).Result()

	switch {
	case err == nil:
		return val == "1", true
	case errors.Is(err, goredis.Nil):
		return false, false
	default:
		logger.Warnf("rcl cache get failed for %s: %v", uid, err)
		return false, false
	}
}

// Set stores the existence flag for uid with the given TTL.
func (c *RedisExistenceCache) Set(ctx context.Context, uid string, exists bool, ttl time.Duration) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "rcl.cache_set")
	defer span.End()

	client, err := c.conn.GetDB(ctx)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return
	}

	value := "0"
	if exists {
		value = "1"
	}

	if err := client.Set(ctx, existsKey(uid), value, ttl).Err(); err != nil {
		logger.Warnf("rcl cache set failed for %s: %v", uid, err)
	}
}

// Invalidate removes uid's cached existence flag, called by any write that
// touches the resource's admin graph.
func (c *RedisExistenceCache) Invalidate(ctx context.Context, uid string) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "rcl.cache_invalidate")
	defer span.End()

	client, err := c.conn.GetDB(ctx)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return
	}

	_ = client.Del(ctx, existsKey(uid)).Err()
}

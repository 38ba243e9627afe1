package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker backed by SET NX PX leases. A holder that dies keeps
// the key at most TTL.
type Redis struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	retry  time.Duration
	prefix string
}

// NewRedis builds a Redis locker. ttl bounds how long a crashed holder can
// block others; prefix namespaces keys (default "lock").
func NewRedis(rdb redis.Cmdable, ttl time.Duration, prefix string) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "lock"
	}
	return &Redis{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond, prefix: prefix}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	k := r.prefix + ":" + key
	token := uuid.NewString()

	for {
		ok, err := r.rdb.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("lock: redis setnx %s: %w", k, err)
		}
		if ok {
			break
		}
		t := time.NewTimer(r.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release even if the request context is already done.
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, r.rdb, []string{k}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				log.Warn().Err(err).Str("key", k).Msg("lock_release_failed")
			}
		})
	}, nil
}

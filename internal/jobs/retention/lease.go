package retention

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultLeaseKey = "wellbore-architecture:retention:lease"

// Lease keeps two replicas from sweeping the same store at once.
type Lease interface {
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLease struct {
	rdb   *goredis.Client
	key   string
	token string
}

func NewRedisLease(rdb *goredis.Client, key string) (Lease, error) {
	if rdb == nil {
		return nil, errors.New("redis client required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultLeaseKey
	}
	return &redisLease{rdb: rdb, key: key, token: uuid.NewString()}, nil
}

func (l *redisLease) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, l.key, l.token, ttl).Result()
}

// Release drops the lease only if this holder still owns it.
func (l *redisLease) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Err()
}

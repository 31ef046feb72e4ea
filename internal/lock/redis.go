package lock

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/CryptoYield/CryptoYield/internal/uniuri"
)

const redisKeyPrefix = "cryptoyield:lock:"

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// Redis keeps leases as redis keys with an expiry.
type Redis struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

type redisLease struct {
	rdb   redis.UniversalClient
	key   string
	token string
}

// NewRedis creates a redis backed locker.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// Acquire takes the lease or returns ErrLocked.
// Redis failures are returned, the workflows never run unguarded.
func (r *Redis) Acquire(ctx context.Context, name string) (Lease, error) {
	key := redisKeyPrefix + name
	token := uniuri.New()

	ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire lease %s", name)
	}
	if !ok {
		return nil, ErrLocked
	}

	return &redisLease{rdb: r.rdb, key: key, token: token}, nil
}

// Release deletes the key if the token still matches.
func (l *redisLease) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Int64()
	if err != nil {
		return errors.Wrap(err, "failed to release lease")
	}
	if n == 0 {
		return ErrNotHeld
	}

	return nil
}

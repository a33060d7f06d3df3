package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("lock is held by another request")

// releases only when the caller still owns the token
const luaReleaseLock = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseScript = redis.NewScript(luaReleaseLock)

// Locker hands out short-lived exclusive locks keyed by name
type Locker struct {
	client *redis.Client
	prefix string
}

func NewLocker(client *redis.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// Lock is an acquired lock; call Release when done
type Lock struct {
	locker *Locker
	key    string
	token  string
}

// Acquire takes the named lock or returns ErrLockHeld. The lock expires after ttl
// even if never released.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	key := l.prefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &Lock{locker: l, key: key, token: token}, nil
}

// Release drops the lock if it is still owned
func (lk *Lock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, lk.locker.client, []string{lk.key}, lk.token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", lk.key, err)
	}
	return nil
}

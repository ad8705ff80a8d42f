package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
)

// SlotLocker serializes concurrent booking attempts on the same
// doctor/date/start tuple with a short-lived Redis lease. The database
// transaction remains the source of truth; the lease only narrows the
// check-then-write window across instances.
type SlotLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *SlotLocker {
	return &SlotLocker{
		rdb: rdb,
		ttl: 5 * time.Second,
	}
}

func Key(doctorID uint, day string, start string) string {
	return fmt.Sprintf("slotlock:%d:%s:%s", doctorID, day, start)
}

// compare-and-delete so an expired lease never releases a newer holder
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

// Acquire takes the lease for key and returns its release func. A held
// lease surfaces as a slot conflict. Redis being down degrades to the
// transaction-only path instead of failing the booking.
func (l *SlotLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if l == nil || l.rdb == nil {
		return func() {}, nil
	}

	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		log.Println("slot lock unavailable:", err)
		return func() {}, nil
	}
	if !ok {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	release := func() {
		if err := l.rdb.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && err != redis.Nil {
			log.Println("slot lock release error:", err)
		}
	}
	return release, nil
}

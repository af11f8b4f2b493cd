package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks live sessions in Redis with a sliding idle TTL. A bearer
// token is only honored while its session key exists; every privileged
// request refreshes the TTL, so an idle session expires server-side.
type Store struct {
	rdb     *redis.Client
	idleTTL time.Duration
}

func NewStore(rdb *redis.Client, idleTTL time.Duration) *Store {
	return &Store{rdb: rdb, idleTTL: idleTTL}
}

func sessionKey(uid string) string {
	return "session:" + uid
}

func (s *Store) Create(ctx context.Context, uid string) error {
	return s.rdb.Set(ctx, sessionKey(uid), time.Now().UTC().Format(time.RFC3339), s.idleTTL).Err()
}

// Touch refreshes the idle TTL and reports whether the session is still
// alive. An expired or destroyed session returns false.
func (s *Store) Touch(ctx context.Context, uid string) (bool, error) {
	ok, err := s.rdb.Expire(ctx, sessionKey(uid), s.idleTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) Destroy(ctx context.Context, uid string) error {
	return s.rdb.Del(ctx, sessionKey(uid)).Err()
}

package codes

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imararent/imararent/internal/common"
)

// RedisStore keeps verification codes in a redis hash per email, so a
// multi-instance deployment shares one code space. The hash is retained
// for twice the code TTL so an expired code can still be reported as
// expired rather than unknown.
type RedisStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int

	now func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration, maxAttempts int) *RedisStore {
	return &RedisStore{
		client:      client,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func (s *RedisStore) key(email string) string {
	return "verify:" + email
}

func (s *RedisStore) Save(ctx context.Context, email, code string) error {
	key := s.key(email)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", code,
		"issued", s.now().Format(time.RFC3339Nano),
		"attempts", 0,
	)
	pipe.Expire(ctx, key, 2*s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Check(ctx context.Context, email, code string) error {
	key := s.key(email)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis check: %w", err)
	}
	if len(fields) == 0 {
		return common.ErrCodeInvalid
	}

	issued, err := time.Parse(time.RFC3339Nano, fields["issued"])
	if err != nil {
		return fmt.Errorf("redis check: %w", err)
	}
	if s.now().Sub(issued) > s.ttl {
		s.client.Del(ctx, key)
		return common.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(fields["code"]), []byte(code)) != 1 {
		attempts, err := s.client.HIncrBy(ctx, key, "attempts", 1).Result()
		if err != nil {
			return fmt.Errorf("redis check: %w", err)
		}
		if int(attempts) >= s.maxAttempts {
			s.client.Del(ctx, key)
			return common.ErrCodeExpired
		}
		return common.ErrCodeInvalid
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis check: %w", err)
	}
	return nil
}

func (s *RedisStore) LastIssued(ctx context.Context, email string) (time.Time, error) {
	issued, err := s.client.HGet(ctx, s.key(email), "issued").Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis last issued: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, issued)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis last issued: %w", err)
	}
	if s.now().Sub(ts) > s.ttl {
		return time.Time{}, nil
	}
	return ts, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

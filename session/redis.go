package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fore:session:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// RedisStore keeps each session as JSON under fore:session:{id}. Every save
// pushes the expiry back by the ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  clock.Clock
}

func NewRedisStore(client *redis.Client, ttl time.Duration, clock clock.Clock) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, clock: clock}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	b, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("error decoding session %s: %w", id, err)
	}
	sess.normalize()
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.clock.Now().UTC()
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *RedisStore) Claim(ctx context.Context, id, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, claimKey(id, key), s.clock.Now().UTC().Unix(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error claiming %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, id, key string) error {
	if err := s.client.Del(ctx, claimKey(id, key)).Err(); err != nil {
		return fmt.Errorf("error releasing %s: %w", key, err)
	}
	return nil
}

// claimKey is fore:session:{id}:{key}.
func claimKey(id, key string) string {
	return keyPrefix + id + ":" + key
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

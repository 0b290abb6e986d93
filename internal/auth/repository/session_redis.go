package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srbeng/srb-site/internal/auth/domain"
)

// sessionIndexKey is a set of live tokens, used by List.
const sessionIndexKey = SessionKeyPrefix + "index"

// RedisSessionStore keeps sessions as JSON strings with a TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (r *RedisSessionStore) key(token string) string { return SessionKeyPrefix + token }

func (r *RedisSessionStore) Save(ctx context.Context, token string, s domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(token), data, ttl)
	pipe.SAdd(ctx, sessionIndexKey, token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, token string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(token))
	pipe.SRem(ctx, sessionIndexKey, token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List reads every indexed token. Tokens whose key has expired are dropped from
// the index.
func (r *RedisSessionStore) List(ctx context.Context) (map[string]domain.Session, error) {
	tokens, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	out := make(map[string]domain.Session, len(tokens))
	if len(tokens) == 0 {
		return out, nil
	}

	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = r.key(t)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	var stale []any
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, tokens[i])
			continue
		}
		var s domain.Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			stale = append(stale, tokens[i])
			continue
		}
		out[tokens[i]] = s
	}
	if len(stale) > 0 {
		if err := r.client.SRem(ctx, sessionIndexKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune session index: %w", err)
		}
	}
	return out, nil
}

// Close is a no-op; the redis client is owned by the caller.
func (r *RedisSessionStore) Close() error { return nil }

package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/platform/apperr"
	"spacematch_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore persists session contexts in Redis with a sliding TTL: every
// Save resets the expiry, so a session stays alive as long as the
// conversation does.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.SessionConfig) (*RedisStore, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}

	ttl := cfg.GetSessionTTL()
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		ttl:    ttl,
	}, nil
}

// NewRedisStoreWithClient wires an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (domain.SessionContext, error) {
	const op = "session.RedisStore.Load"

	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SessionContext{}, apperr.NotFound("session not found").WithOp(op)
	}
	if err != nil {
		return domain.SessionContext{}, apperr.Wrap(apperr.KindUnavailable, "load session", err).WithOp(op)
	}

	var sc domain.SessionContext
	if err := json.Unmarshal(raw, &sc); err != nil {
		return domain.SessionContext{}, apperr.Wrap(apperr.KindInternal, "decode session", err).WithOp(op)
	}
	if sc.CollectedDetails == nil {
		sc.CollectedDetails = domain.Details{}
	}
	return sc, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, sc domain.SessionContext) error {
	const op = "session.RedisStore.Save"

	raw, err := json.Marshal(sc)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode session", err).WithOp(op)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "save session", err).WithOp(op)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "delete session", err).WithOp("session.RedisStore.Delete")
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const maxUpdateAttempts = 5

// RedisStore keeps sessions in Redis as JSON with a sliding TTL.
// Updates use WATCH/MULTI so concurrent writers to one session never lose changes.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: "session:",
		logger: logger.With().Str("component", "redis-session-store").Logger(),
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(id), nil
		}
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to read session")
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	return decode(id, data)
}

func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	key := r.key(id)

	var (
		result *Session
		fnErr  error
	)

	txf := func(tx *redis.Tx) error {
		var s *Session
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			s = New(id)
		case err != nil:
			return err
		default:
			if s, err = decode(id, data); err != nil {
				return err
			}
		}

		if err := fn(s); err != nil {
			fnErr = err
			return err
		}

		encoded, err := encode(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err == nil {
			result = s
		}
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if fnErr != nil {
			return nil, fnErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			r.logger.Debug().Str("session_id", id).Int("attempt", attempt).Msg("session changed during update, retrying")
			continue
		}
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to update session")
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	r.logger.Warn().Str("session_id", id).Msg("gave up updating contended session")
	return nil, ErrConflict
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"factcheck-web/internal/resilience/circuitbreaker"
	"factcheck-web/internal/resilience/retry"
)

// maxTxAttempts bounds optimistic-lock retries when two requests of one
// session update it at the same time.
const maxTxAttempts = 5

// RedisStore keeps sessions as JSON values with a TTL. Updates use
// WATCH/MULTI so concurrent requests of one visitor never lose each other's
// changes.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
}

// NewRedisClient connects using a redis:// or rediss:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewRedisStore returns a store writing keys prefix+id.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	cbCfg := circuitbreaker.SessionStoreConfig()
	cbCfg.IsSuccessful = isStoreBreakerSuccess
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		breaker: circuitbreaker.New(cbCfg),
		retry:   retry.SessionStoreConfig(),
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (r *RedisStore) Breaker() *circuitbreaker.CircuitBreaker {
	return r.breaker
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

// callerError carries an error returned by an Update callback through the
// breaker and the transaction without counting as a store failure.
type callerError struct{ err error }

func (e *callerError) Error() string { return e.err.Error() }
func (e *callerError) Unwrap() error { return e.err }

func isStoreBreakerSuccess(err error) bool {
	var ce *callerError
	return circuitbreaker.IgnoreCancellation(err) || errors.Is(err, ErrNotFound) || errors.As(err, &ce)
}

// Get implements Store. Reads are retried on transient connection errors.
func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	var state *State
	err := retry.WithBackoff(ctx, r.retry, func() error {
		return r.breaker.Do(func() error {
			data, err := r.client.Get(ctx, r.key(id)).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			s, err := decodeState(data)
			if err != nil {
				return err
			}
			state = s
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return state, nil
}

// Update implements Store.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	key := r.key(id)
	var saved *State

	txf := func(tx *redis.Tx) error {
		state := NewState(id)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if state, err = decodeState(data); err != nil {
				slog.WarnContext(ctx, "discarding unreadable session", slog.Any("error", err))
				state = NewState(id)
			}
		}

		if err := fn(state); err != nil {
			return &callerError{err: err}
		}

		payload, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			saved = state
		}
		return err
	}

	err := r.breaker.Do(func() error {
		for attempt := 1; attempt <= maxTxAttempts; attempt++ {
			err := r.client.Watch(ctx, txf, key)
			if !errors.Is(err, redis.TxFailedErr) {
				return err
			}
			slog.DebugContext(ctx, "session update conflicted, retrying",
				slog.Int("attempt", attempt))
		}
		return fmt.Errorf("session update: %w after %d attempts", redis.TxFailedErr, maxTxAttempts)
	})
	if err != nil {
		var ce *callerError
		if errors.As(err, &ce) {
			return nil, ce.err
		}
		return nil, fmt.Errorf("session update: %w", err)
	}
	return saved, nil
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.breaker.Do(func() error {
		return r.client.Del(ctx, r.key(id)).Err()
	})
}

// Ping implements Store.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

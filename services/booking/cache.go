package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"rentwheels/models"
)

// QuoteStore holds issued quotes for their TTL. A confirm after expiry must
// fail without touching the interval store.
type QuoteStore interface {
	Save(ctx context.Context, q *models.Quote, ttl time.Duration) error
	Get(ctx context.Context, quoteID string) (*models.Quote, error)
	Delete(ctx context.Context, quoteID string) error
}

// IdempotencyStore maps confirmation idempotency keys to reservation ids so
// network retries of the same confirm never create a second reservation.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, reservationID string) error
}

const (
	quoteKeyPrefix = "quote:"
	idemKeyPrefix  = "confirm:"

	// Idempotency records outlive quotes so late retries still resolve.
	idemTTL = 24 * time.Hour
)

// RedisQuoteStore caches quotes as JSON with the quote TTL, the same way the
// booking session cache works.
type RedisQuoteStore struct {
	Client *redis.Client
}

func (s *RedisQuoteStore) Save(ctx context.Context, q *models.Quote, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote %s: %w", q.ID, err)
	}
	if err := s.Client.Set(ctx, quoteKeyPrefix+q.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote %s: %w", q.ID, err)
	}
	return nil
}

func (s *RedisQuoteStore) Get(ctx context.Context, quoteID string) (*models.Quote, error) {
	data, err := s.Client.Get(ctx, quoteKeyPrefix+quoteID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, NewQuoteExpiredError(quoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quote %s: %w", quoteID, err)
	}
	var q models.Quote
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		return nil, fmt.Errorf("failed to parse cached quote %s: %w", quoteID, err)
	}
	return &q, nil
}

func (s *RedisQuoteStore) Delete(ctx context.Context, quoteID string) error {
	return s.Client.Del(ctx, quoteKeyPrefix+quoteID).Err()
}

// RedisIdempotencyStore records completed confirmations per idempotency key.
type RedisIdempotencyStore struct {
	Client *redis.Client
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.Client.Get(ctx, idemKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return val, true, nil
}

func (s *RedisIdempotencyStore) Put(ctx context.Context, key, reservationID string) error {
	if err := s.Client.Set(ctx, idemKeyPrefix+key, reservationID, idemTTL).Err(); err != nil {
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}

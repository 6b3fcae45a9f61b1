package eventstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/michael-genson/usl-alexa-skill/types"
)

const defaultRedisKeyPrefix = "callback"

// RedisConfig holds the connection settings for a [Redis] store.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Redis is a Redis-backed implementation of [Store], intended for local
// development where no DynamoDB table is available. Records are stored as
// JSON under "<prefix>:<event_source>:<event_id>" with a native key TTL.
type Redis struct {
	client    redis.Cmdable
	keyPrefix string
	clock     func() time.Time
}

// NewRedis creates a Redis store and verifies the connection with a ping.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return newRedisWithClient(client, cfg.KeyPrefix), nil
}

// newRedisWithClient creates a Redis store around an existing client. This
// constructor is intended for testing purposes.
func newRedisWithClient(client redis.Cmdable, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}

	return &Redis{
		client:    client,
		keyPrefix: keyPrefix,
		clock:     time.Now,
	}
}

// Put writes a callback event under its (event source, event id) key,
// overwriting any previous record. When ttl is greater than zero it is
// applied as the Redis key TTL and recorded on the event as an absolute
// UNIX timestamp.
func (s *Redis) Put(ctx context.Context, event types.CallbackEvent, ttl time.Duration) error {
	if event.EventSource == "" {
		return errors.New("event source cannot be empty")
	}

	if event.EventID == "" {
		return errors.New("event id cannot be empty")
	}

	if ttl > 0 {
		event.Expires = s.clock().Add(ttl).Unix()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal callback event: %w", err)
	}

	if err := s.client.Set(ctx, s.key(event.EventSource, event.EventID), body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write callback event to Redis: %w", err)
	}

	return nil
}

// Get returns the callback event stored under (source, eventID), or
// [ErrNotFound] when the key is missing or expired.
func (s *Redis) Get(ctx context.Context, source, eventID string) (types.CallbackEvent, error) {
	if source == "" {
		return types.CallbackEvent{}, errors.New("event source cannot be empty")
	}

	if eventID == "" {
		return types.CallbackEvent{}, errors.New("event id cannot be empty")
	}

	body, err := s.client.Get(ctx, s.key(source, eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.CallbackEvent{}, ErrNotFound
	}

	if err != nil {
		return types.CallbackEvent{}, fmt.Errorf("failed to get callback event from Redis: %w", err)
	}

	var event types.CallbackEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return types.CallbackEvent{}, fmt.Errorf("failed to parse callback event %s/%s: %w", source, eventID, err)
	}

	return event, nil
}

func (s *Redis) key(source, eventID string) string {
	return s.keyPrefix + ":" + source + ":" + eventID
}

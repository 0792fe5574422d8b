// Package redis provides a Redis-backed EntityStore for workflows that
// share instance state across processes.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

// Store implements ports.EntityStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets an expiration for stored entities. Zero means no
// expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a store on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "espalier:instance:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(instanceID string) string {
	return s.prefix + instanceID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the entity and registers it in the instance index.
func (s *Store) Save(ctx context.Context, cfg *entity.InfraConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling entity: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(cfg.InstanceID()), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), cfg.InstanceID())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving to redis: %w", err)
	}
	return nil
}

// Load retrieves and revalidates an entity.
func (s *Store) Load(ctx context.Context, instanceID string) (*entity.InfraConfig, error) {
	val, err := s.client.Get(ctx, s.key(instanceID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, fmt.Errorf("instance %q: %w", instanceID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("reading from redis: %w", err)
	}

	var cfg entity.InfraConfig
	if err := json.Unmarshal([]byte(val), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling entity %q: %w", instanceID, err)
	}
	return &cfg, nil
}

// List returns known instance IDs, pruning index entries whose value
// key expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	var alive []string
	for _, id := range ids {
		exists, err := s.client.Exists(ctx, s.key(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("checking instance %q: %w", id, err)
		}
		if exists == 0 {
			// Lazy cleanup of expired entries.
			_ = s.client.SRem(ctx, s.indexKey(), id).Err()
			continue
		}
		alive = append(alive, id)
	}
	return alive, nil
}

// Delete removes the entity and its index entry.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(instanceID))
	pipe.SRem(ctx, s.indexKey(), instanceID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting from redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

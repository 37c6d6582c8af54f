package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/pkg/domain"
)

// Store implements ports.ProjectStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored projects.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored projects.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	st := &Store{
		client: rdb,
		prefix: "statuml:project:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(st)
	}

	return st
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	st := &Store{
		client: client,
		prefix: "statuml:project:",
		ttl:    0,
	}

	for _, opt := range opts {
		opt(st)
	}

	return st
}

func (s *Store) key(projectID string) string {
	return s.prefix + projectID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the project snapshot to Redis.
func (s *Store) Save(ctx context.Context, projectID string, p *domain.Project) error {
	data, err := store.Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save snapshot with TTL. 0 means no expiration.
	pipe.Set(ctx, s.key(projectID), data, s.ttl)

	// 2. Add to index (ZSET). Score = Now + TTL; with no TTL use a far-future
	// sentinel so lazy cleanup never prunes it.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: projectID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the project from Redis. Snapshots pass through the same
// decode path as files, so legacy material stored by older writers is
// normalized here too.
func (s *Store) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	val, err := s.client.Get(ctx, s.key(projectID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	return store.Decode([]byte(val))
}

// Delete removes the project.
func (s *Store) Delete(ctx context.Context, projectID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(projectID))
	pipe.ZRem(ctx, s.indexKey(), projectID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored project ids from the ZSET index, pruning expired
// entries lazily on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired projects: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

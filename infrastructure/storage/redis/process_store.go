package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

// ErrConnectionFailed indicates the Redis server could not be reached.
var ErrConnectionFailed = errors.New("redis connection failed")

// Config holds the connection settings the process store needs. Zero values
// fall back to a local server under the "goap:" namespace; anything beyond
// these knobs is left to the go-redis client defaults.
type Config struct {
	// Address is the Redis server address (host:port).
	Address string

	// Password for authentication (optional).
	Password string

	// DB selects the Redis database index.
	DB int

	// KeyPrefix namespaces every key this store writes.
	KeyPrefix string

	// DialTimeout bounds connection establishment and the startup ping.
	DialTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "goap:"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	return c
}

// ProcessStore is a Redis-backed implementation of process.Store. Snapshots
// are stored as JSON under <prefix>process:<id>; insertion order is kept in
// a list under <prefix>process-ids.
type ProcessStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewProcessStore creates a process store and verifies connectivity with a
// ping before returning it.
func NewProcessStore(cfg Config) (*ProcessStore, error) {
	cfg = cfg.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return &ProcessStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewProcessStoreFromClient creates a store from an existing Redis client.
func NewProcessStoreFromClient(client *redis.Client, keyPrefix string) *ProcessStore {
	return &ProcessStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *ProcessStore) processKey(id string) string {
	return s.keyPrefix + "process:" + id
}

func (s *ProcessStore) indexKey() string {
	return s.keyPrefix + "process-ids"
}

// Save persists a new process snapshot.
func (s *ProcessStore) Save(ctx context.Context, snap process.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		return process.ErrInvalidProcessID
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.processKey(snap.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	if !ok {
		return process.ErrProcessExists
	}

	if err := s.client.RPush(ctx, s.indexKey(), snap.ID).Err(); err != nil {
		return fmt.Errorf("redis save index: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by process id.
func (s *ProcessStore) Get(ctx context.Context, id string) (process.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return process.Snapshot{}, err
	}
	if id == "" {
		return process.Snapshot{}, process.ErrInvalidProcessID
	}

	data, err := s.client.Get(ctx, s.processKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return process.Snapshot{}, process.ErrProcessNotFound
		}
		return process.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}

	var snap process.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return process.Snapshot{}, err
	}
	return snap, nil
}

// Update replaces an existing snapshot.
func (s *ProcessStore) Update(ctx context.Context, snap process.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		return process.ErrInvalidProcessID
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, s.processKey(snap.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis update: %w", err)
	}
	if !ok {
		return process.ErrProcessNotFound
	}
	return nil
}

// Delete removes a snapshot by process id.
func (s *ProcessStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return process.ErrInvalidProcessID
	}

	deleted, err := s.client.Del(ctx, s.processKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	if deleted == 0 {
		return process.ErrProcessNotFound
	}

	if err := s.client.LRem(ctx, s.indexKey(), 1, id).Err(); err != nil {
		return fmt.Errorf("redis delete index: %w", err)
	}
	return nil
}

// List returns snapshots matching the filter, ordered by insertion.
func (s *ProcessStore) List(ctx context.Context, filter process.ListFilter) ([]process.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, err := s.client.LRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list index: %w", err)
	}
	if len(ids) == 0 {
		return []process.Snapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.processKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}

	result := make([]process.Snapshot, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a snapshot, e.g. a concurrent delete.
			continue
		}
		var snap process.Snapshot
		if err := json.Unmarshal([]byte(str), &snap); err != nil {
			continue
		}
		if filter.Matches(snap) {
			result = append(result, snap)
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []process.Snapshot{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Ping checks the Redis connection.
func (s *ProcessStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *ProcessStore) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client for advanced operations.
func (s *ProcessStore) Client() *redis.Client {
	return s.client
}

// Ensure ProcessStore implements process.Store
var _ process.Store = (*ProcessStore)(nil)

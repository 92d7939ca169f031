package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clusterkv/go-cache-gateway/internal/cache/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	storeKeyPrefix = "kv:meta:store:" // Store metadata: kv:meta:store:{store}
	entryKeyFormat = "kv:%s:entry:%s"
	keySetFormat   = "kv:%s:keys" // Set of entry keys per store

	defaultEntryTTL = 24 * time.Hour
)

// EntryRepository handles Redis operations for clustered store entries.
// Callers bound each call through the context deadline; the repository
// itself applies no timeouts.
type EntryRepository struct {
	client *redis.Client
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(client *redis.Client) *EntryRepository {
	return &EntryRepository{client: client}
}

// CreateStore registers store metadata. Fails if the store already exists.
func (r *EntryRepository) CreateStore(ctx context.Context, name string) (*domain.Store, error) {
	store := &domain.Store{
		Name:      name,
		Status:    domain.StoreStatusAvailable,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(store)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal store metadata: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.storeKey(name), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	if !ok {
		return nil, domain.ErrStoreExists
	}

	return store, nil
}

// GetStore retrieves store metadata
func (r *EntryRepository) GetStore(ctx context.Context, name string) (*domain.Store, error) {
	data, err := r.client.Get(ctx, r.storeKey(name)).Result()
	if err == redis.Nil {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	var store domain.Store
	if err := json.Unmarshal([]byte(data), &store); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store metadata: %w", err)
	}

	return &store, nil
}

// ValidateStore pings the cluster and checks that the store exists and is
// available for traffic.
func (r *EntryRepository) ValidateStore(ctx context.Context, name string) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping cluster: %w", err)
	}

	store, err := r.GetStore(ctx, name)
	if err != nil {
		return err
	}
	if store.Status != domain.StoreStatusAvailable {
		return domain.ErrStoreNotAvailable
	}

	return nil
}

// DestroyStore removes the store metadata, all of its entries and its key
// set. The store is marked destroying first so concurrent validations stop
// admitting traffic while entries are swept.
func (r *EntryRepository) DestroyStore(ctx context.Context, name string) error {
	store, err := r.GetStore(ctx, name)
	if err != nil {
		return err
	}

	store.Status = domain.StoreStatusDestroying
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to marshal store metadata: %w", err)
	}
	if err := r.client.Set(ctx, r.storeKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to mark store destroying: %w", err)
	}

	keys, err := r.client.SMembers(ctx, r.keySetKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to list store keys: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, r.entryKey(name, key))
	}
	pipe.Del(ctx, r.keySetKey(name))
	pipe.Del(ctx, r.storeKey(name))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to destroy store: %w", err)
	}

	return nil
}

// Get retrieves an entry by key
func (r *EntryRepository) Get(ctx context.Context, store, key string) (*domain.Entry, error) {
	data, err := r.client.Get(ctx, r.entryKey(store, key)).Result()
	if err == redis.Nil {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	var entry domain.Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &entry, nil
}

// Put writes an entry, rotating its version and keeping the store's key
// set in sync. A zero ttl falls back to the repository default.
func (r *EntryRepository) Put(ctx context.Context, store, key string, req *domain.PutRequest) (*domain.Entry, error) {
	now := time.Now().UTC()

	entry := &domain.Entry{
		Store:     store,
		Key:       key,
		Value:     req.Value,
		Version:   uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Preserve the original creation time on overwrite
	if existing, err := r.Get(ctx, store, key); err == nil {
		entry.CreatedAt = existing.CreatedAt
	}

	ttl := req.TTL
	if ttl == 0 {
		ttl = defaultEntryTTL
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.entryKey(store, key), data, ttl)
	pipe.SAdd(ctx, r.keySetKey(store), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to put entry: %w", err)
	}

	return entry, nil
}

// Remove deletes an entry
func (r *EntryRepository) Remove(ctx context.Context, store, key string) error {
	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, r.entryKey(store, key))
	pipe.SRem(ctx, r.keySetKey(store), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	if del.Val() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Keys lists the entry keys currently tracked for a store
func (r *EntryRepository) Keys(ctx context.Context, store string) ([]string, error) {
	keys, err := r.client.SMembers(ctx, r.keySetKey(store)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// ListStores scans for all store metadata records
func (r *EntryRepository) ListStores(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		names  []string
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, storeKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan stores: %w", err)
		}
		for _, k := range keys {
			names = append(names, k[len(storeKeyPrefix):])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return names, nil
}

// Helper methods for key generation
func (r *EntryRepository) storeKey(store string) string {
	return storeKeyPrefix + store
}

func (r *EntryRepository) entryKey(store, key string) string {
	return fmt.Sprintf(entryKeyFormat, store, key)
}

func (r *EntryRepository) keySetKey(store string) string {
	return fmt.Sprintf(keySetFormat, store)
}

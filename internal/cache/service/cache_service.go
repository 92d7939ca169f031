package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	cachecfg "github.com/clusterkv/go-cache-gateway/internal/cache/config"
	"github.com/clusterkv/go-cache-gateway/internal/cache/domain"
	"github.com/clusterkv/go-cache-gateway/internal/cache/repository"
)

// availabilityPollInterval is how often AwaitStoreAvailable re-validates
// while its lifecycle budget lasts.
const availabilityPollInterval = 100 * time.Millisecond

// OperationRecorder persists audit records of cache operations. Recording
// is best-effort: failures are logged, never surfaced to the caller.
type OperationRecorder interface {
	Record(ctx context.Context, rec *domain.OperationRecord) error
}

// CacheService is the clustered-cache client entity: every remote call it
// issues is bounded by the operation category's timeout.
type CacheService struct {
	repo     *repository.EntryRepository
	timeouts cachecfg.Timeouts
	recorder OperationRecorder // nil disables auditing
}

// NewCacheService creates a CacheService without auditing
func NewCacheService(repo *repository.EntryRepository, timeouts cachecfg.Timeouts) *CacheService {
	return &CacheService{repo: repo, timeouts: timeouts}
}

// NewCacheServiceWithAudit creates a CacheService that records every
// operation through the given recorder
func NewCacheServiceWithAudit(repo *repository.EntryRepository, timeouts cachecfg.Timeouts, recorder OperationRecorder) *CacheService {
	return &CacheService{repo: repo, timeouts: timeouts, recorder: recorder}
}

// Timeouts returns the timeout configuration the service runs under
func (s *CacheService) Timeouts() cachecfg.Timeouts {
	return s.timeouts
}

// Get retrieves an entry, bounded by the read operation timeout
func (s *CacheService) Get(ctx context.Context, store, key string) (*domain.Entry, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := s.run(ctx, store, "get", domain.CategoryRead, s.timeouts.ReadOperationTimeout(), func(opCtx context.Context) error {
		var err error
		entry, err = s.repo.Get(opCtx, store, key)
		return err
	})
	return entry, err
}

// Keys lists a store's entry keys, bounded by the read operation timeout
func (s *CacheService) Keys(ctx context.Context, store string) ([]string, error) {
	var keys []string
	err := s.run(ctx, store, "keys", domain.CategoryRead, s.timeouts.ReadOperationTimeout(), func(opCtx context.Context) error {
		var err error
		keys, err = s.repo.Keys(opCtx, store)
		return err
	})
	return keys, err
}

// Put writes an entry, bounded by the mutative operation timeout. The
// target store must exist and be available.
func (s *CacheService) Put(ctx context.Context, store, key string, req *domain.PutRequest) (*domain.Entry, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var entry *domain.Entry
	err := s.run(ctx, store, "put", domain.CategoryMutative, s.timeouts.MutativeOperationTimeout(), func(opCtx context.Context) error {
		if err := s.requireAvailable(opCtx, store); err != nil {
			return err
		}
		var err error
		entry, err = s.repo.Put(opCtx, store, key, req)
		return err
	})
	return entry, err
}

// Remove deletes an entry, bounded by the mutative operation timeout
func (s *CacheService) Remove(ctx context.Context, store, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	return s.run(ctx, store, "remove", domain.CategoryMutative, s.timeouts.MutativeOperationTimeout(), func(opCtx context.Context) error {
		return s.repo.Remove(opCtx, store, key)
	})
}

// CreateStore registers a new store, bounded by the lifecycle timeout
func (s *CacheService) CreateStore(ctx context.Context, name string) (*domain.Store, error) {
	if err := validateKey(name); err != nil {
		return nil, err
	}

	var store *domain.Store
	err := s.run(ctx, name, "create", domain.CategoryLifecycle, s.timeouts.LifecycleOperationTimeout(), func(opCtx context.Context) error {
		var err error
		store, err = s.repo.CreateStore(opCtx, name)
		return err
	})
	return store, err
}

// GetStore retrieves store metadata, bounded by the read timeout
func (s *CacheService) GetStore(ctx context.Context, name string) (*domain.Store, error) {
	var store *domain.Store
	err := s.run(ctx, name, "get_store", domain.CategoryRead, s.timeouts.ReadOperationTimeout(), func(opCtx context.Context) error {
		var err error
		store, err = s.repo.GetStore(opCtx, name)
		return err
	})
	return store, err
}

// ValidateStore checks cluster reachability and store availability,
// bounded by the lifecycle timeout
func (s *CacheService) ValidateStore(ctx context.Context, name string) error {
	return s.run(ctx, name, "validate", domain.CategoryLifecycle, s.timeouts.LifecycleOperationTimeout(), func(opCtx context.Context) error {
		return s.repo.ValidateStore(opCtx, name)
	})
}

// DestroyStore removes a store and its entries, bounded by the lifecycle
// timeout
func (s *CacheService) DestroyStore(ctx context.Context, name string) error {
	return s.run(ctx, name, "destroy", domain.CategoryLifecycle, s.timeouts.LifecycleOperationTimeout(), func(opCtx context.Context) error {
		return s.repo.DestroyStore(opCtx, name)
	})
}

// ListStores enumerates known stores, bounded by the read timeout
func (s *CacheService) ListStores(ctx context.Context) ([]string, error) {
	var names []string
	err := s.run(ctx, "", "list_stores", domain.CategoryRead, s.timeouts.ReadOperationTimeout(), func(opCtx context.Context) error {
		var err error
		names, err = s.repo.ListStores(opCtx)
		return err
	})
	return names, err
}

// AwaitStoreAvailable polls store validation until it succeeds or the
// lifecycle budget runs out. The remaining budget is recomputed on every
// iteration so slow validation attempts eat into it.
func (s *CacheService) AwaitStoreAvailable(ctx context.Context, name string) error {
	remaining := cachecfg.NanosStartingFromNow(s.timeouts.LifecycleOperationTimeout())

	for {
		left := remaining()
		if left <= 0 {
			return domain.ErrOperationTimedOut
		}

		attemptCtx, cancel := context.WithTimeout(ctx, time.Duration(left))
		err := s.repo.ValidateStore(attemptCtx, name)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-time.After(availabilityPollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// run executes op under the category timeout, maps deadline expiry to the
// domain sentinel and records the outcome.
func (s *CacheService) run(ctx context.Context, store, operation, category string, timeout time.Duration, op func(context.Context) error) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := op(opCtx)
	elapsed := time.Since(start)

	timedOut := errors.Is(err, context.DeadlineExceeded)
	if timedOut {
		err = domain.ErrOperationTimedOut
	}

	s.record(store, operation, category, elapsed, timedOut)

	return err
}

func (s *CacheService) record(store, operation, category string, elapsed time.Duration, timedOut bool) {
	if s.recorder == nil {
		return
	}

	rec := &domain.OperationRecord{
		Store:      store,
		Operation:  operation,
		Category:   category,
		DurationMs: elapsed.Milliseconds(),
		TimedOut:   timedOut,
		CreatedAt:  time.Now().UTC(),
	}

	// Auditing must never delay or fail the cache call itself
	recordCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.recorder.Record(recordCtx, rec); err != nil {
		log.Printf("[audit] failed to record %s %s on %q: %v", category, operation, store, err)
	}
}

func (s *CacheService) requireAvailable(ctx context.Context, store string) error {
	meta, err := s.repo.GetStore(ctx, store)
	if err != nil {
		return err
	}
	if meta.Status != domain.StoreStatusAvailable {
		return domain.ErrStoreNotAvailable
	}
	return nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, " \t\n:") {
		return domain.ErrInvalidKey
	}
	return nil
}

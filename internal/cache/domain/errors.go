package domain

import "errors"

var (
	ErrEntryNotFound     = errors.New("cache entry not found")
	ErrStoreNotFound     = errors.New("cache store not found")
	ErrStoreExists       = errors.New("cache store already exists")
	ErrStoreNotAvailable = errors.New("cache store is not available")
	ErrOperationTimedOut = errors.New("cache operation timed out")
	ErrInvalidKey        = errors.New("invalid cache key")
)

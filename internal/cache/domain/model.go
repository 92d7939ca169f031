package domain

import (
	"encoding/json"
	"time"
)

// Entry is a single value held in a clustered store
type Entry struct {
	Store     string          `json:"store"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   string          `json:"version"` // rotated on every write
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the metadata record of a clustered store tier
type Store struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // available, destroying
	CreatedAt time.Time `json:"created_at"`
}

// Store status constants
const (
	StoreStatusAvailable  = "available"
	StoreStatusDestroying = "destroying"
)

// PutRequest carries a write against a store entry
type PutRequest struct {
	Value json.RawMessage
	TTL   time.Duration // zero means the store default
}

// OperationRecord is one audited cache operation
type OperationRecord struct {
	ID         string    `json:"id"`
	Store      string    `json:"store"`
	Operation  string    `json:"operation"` // get, put, remove, create, validate, destroy
	Category   string    `json:"category"`  // read, mutative, lifecycle
	DurationMs int64     `json:"duration_ms"`
	TimedOut   bool      `json:"timed_out"`
	CreatedAt  time.Time `json:"created_at"`
}

// Operation categories
const (
	CategoryRead      = "read"
	CategoryMutative  = "mutative"
	CategoryLifecycle = "lifecycle"
)

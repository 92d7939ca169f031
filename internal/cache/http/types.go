package http

import (
	"encoding/json"
	"time"

	"github.com/clusterkv/go-cache-gateway/internal/audit"
	"github.com/clusterkv/go-cache-gateway/internal/cache/service"
)

// Handler handles HTTP requests for clustered store entries and lifecycle
type Handler struct {
	cacheService *service.CacheService
	auditRepo    *audit.OperationRepository // nil when auditing is disabled
}

// New creates a new Handler
func New(cacheService *service.CacheService, auditRepo *audit.OperationRepository) *Handler {
	return &Handler{
		cacheService: cacheService,
		auditRepo:    auditRepo,
	}
}

type createStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

type putEntryRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
	TTL   string          `json:"ttl,omitempty"` // Go duration string, e.g. "10m"
}

type entryResponse struct {
	Store     string          `json:"store"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   string          `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type keysResponse struct {
	Store string   `json:"store"`
	Keys  []string `json:"keys"`
}

type storesResponse struct {
	Stores []string `json:"stores"`
}

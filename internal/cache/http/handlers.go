package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/clusterkv/go-cache-gateway/internal/cache/domain"
	"github.com/gin-gonic/gin"
)

// CreateStore registers a new clustered store
func (h *Handler) CreateStore(c *gin.Context) {
	var body createStoreRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	store, err := h.cacheService.CreateStore(c.Request.Context(), body.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GetStore returns store metadata
func (h *Handler) GetStore(c *gin.Context) {
	store, err := h.cacheService.GetStore(c.Request.Context(), c.Param("store"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

// ListStores enumerates known stores
func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.cacheService.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if stores == nil {
		stores = []string{}
	}

	c.JSON(http.StatusOK, storesResponse{Stores: stores})
}

// ValidateStore checks the store is reachable and available
func (h *Handler) ValidateStore(c *gin.Context) {
	if err := h.cacheService.ValidateStore(c.Request.Context(), c.Param("store")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": c.Param("store"), "status": domain.StoreStatusAvailable})
}

// DestroyStore removes a store and all of its entries
func (h *Handler) DestroyStore(c *gin.Context) {
	if err := h.cacheService.DestroyStore(c.Request.Context(), c.Param("store")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEntry returns one entry
func (h *Handler) GetEntry(c *gin.Context) {
	entry, err := h.cacheService.Get(c.Request.Context(), c.Param("store"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryResponse{
		Store:     entry.Store,
		Key:       entry.Key,
		Value:     entry.Value,
		Version:   entry.Version,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	})
}

// PutEntry writes one entry
func (h *Handler) PutEntry(c *gin.Context) {
	var body putEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := &domain.PutRequest{Value: body.Value}
	if body.TTL != "" {
		ttl, err := time.ParseDuration(body.TTL)
		if err != nil || ttl < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ttl"})
			return
		}
		req.TTL = ttl
	}

	entry, err := h.cacheService.Put(c.Request.Context(), c.Param("store"), c.Param("key"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryResponse{
		Store:     entry.Store,
		Key:       entry.Key,
		Value:     entry.Value,
		Version:   entry.Version,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	})
}

// RemoveEntry deletes one entry
func (h *Handler) RemoveEntry(c *gin.Context) {
	if err := h.cacheService.Remove(c.Request.Context(), c.Param("store"), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListKeys lists the entry keys of a store
func (h *Handler) ListKeys(c *gin.Context) {
	keys, err := h.cacheService.Keys(c.Request.Context(), c.Param("store"))
	if err != nil {
		respondError(c, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}

	c.JSON(http.StatusOK, keysResponse{Store: c.Param("store"), Keys: keys})
}

// ListOperations returns the audit trail of a store, newest first
func (h *Handler) ListOperations(c *gin.Context) {
	if h.auditRepo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "auditing is disabled"})
		return
	}

	records, err := h.auditRepo.ListByStore(c.Request.Context(), c.Param("store"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list operations"})
		return
	}
	if records == nil {
		records = []*domain.OperationRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"store": c.Param("store"), "operations": records})
}

// respondError maps domain sentinels to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrStoreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOperationTimedOut):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

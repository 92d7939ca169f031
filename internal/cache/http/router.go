package http

import "github.com/gin-gonic/gin"

// Register registers the cache routes. Mutative and lifecycle routes go on
// guarded, the rest on rg; callers may pass the same group for both.
func (h *Handler) Register(rg, guarded *gin.RouterGroup) {
	rg.GET("/stores", h.ListStores)
	rg.GET("/stores/:store", h.GetStore)
	rg.GET("/stores/:store/entries", h.ListKeys)
	rg.GET("/stores/:store/entries/:key", h.GetEntry)
	rg.GET("/stores/:store/operations", h.ListOperations)

	guarded.POST("/stores", h.CreateStore)
	guarded.POST("/stores/:store/validate", h.ValidateStore)
	guarded.DELETE("/stores/:store", h.DestroyStore)
	guarded.PUT("/stores/:store/entries/:key", h.PutEntry)
	guarded.DELETE("/stores/:store/entries/:key", h.RemoveEntry)
}

package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	cachecfg "github.com/clusterkv/go-cache-gateway/internal/cache/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Cluster   string    `json:"cluster"`
	Audit     string    `json:"audit,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	redis       *redis.Client
	db          *sql.DB
	timeouts    cachecfg.Timeouts
}

func NewHealthHandler(serviceName, version string, rdb *redis.Client, db *sql.DB, timeouts cachecfg.Timeouts) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		redis:       rdb,
		db:          db,
		timeouts:    timeouts,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	// The cluster ping is a lifecycle-category probe
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), h.timeouts.LifecycleOperationTimeout())
	defer cancel()

	clusterStatus := "up"
	status := "healthy"
	code := http.StatusOK
	if err := h.redis.Ping(pingCtx).Err(); err != nil {
		clusterStatus = "down"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	auditStatus := "disabled"
	if h.db != nil {
		dbCtx, dbCancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer dbCancel()

		if err := h.db.PingContext(dbCtx); err != nil {
			auditStatus = "down"
		} else {
			auditStatus = "up"
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Cluster:   clusterStatus,
		Audit:     auditStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

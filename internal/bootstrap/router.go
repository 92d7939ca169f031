package bootstrap

import (
	"database/sql"

	"github.com/clusterkv/go-cache-gateway/config"
	httpapi "github.com/clusterkv/go-cache-gateway/internal/api/http"
	"github.com/clusterkv/go-cache-gateway/internal/api/http/middleware"
	"github.com/clusterkv/go-cache-gateway/internal/audit"
	cachehttp "github.com/clusterkv/go-cache-gateway/internal/cache/http"
	"github.com/clusterkv/go-cache-gateway/internal/cache/repository"
	"github.com/clusterkv/go-cache-gateway/internal/cache/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RouterDeps struct {
	Config *config.Config
	Redis  *redis.Client
	DB     *sql.DB // nil when auditing is disabled
}

// BuildRouter wires middleware, health and cache routes into a gin engine
// and returns the cache service it mounted.
func BuildRouter(dep RouterDeps) (*gin.Engine, *service.CacheService) {
	SetGinMode(dep.Config.App.Environment)

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(500), 1000)))

	entryRepo := repository.NewEntryRepository(dep.Redis)

	var (
		auditRepo    *audit.OperationRepository
		cacheService *service.CacheService
	)
	if dep.DB != nil {
		auditRepo = audit.NewOperationRepository(dep.DB)
		cacheService = service.NewCacheServiceWithAudit(entryRepo, dep.Config.Timeouts, auditRepo)
	} else {
		cacheService = service.NewCacheService(entryRepo, dep.Config.Timeouts)
	}

	healthHandler := httpapi.NewHealthHandler("go-cache-gateway", dep.Config.App.Version, dep.Redis, dep.DB, dep.Config.Timeouts)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	guarded := r.Group("/api/v1")
	guarded.Use(middleware.APIKey(dep.Config.App.APIKey))

	cacheHandler := cachehttp.New(cacheService, auditRepo)
	cacheHandler.Register(api, guarded)

	return r, cacheService
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

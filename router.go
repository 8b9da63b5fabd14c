package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/prdforge/prdforge/backend/go-services/handlers"
	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/generator"
	"github.com/prdforge/prdforge/backend/go-services/internal/llm"
	"github.com/prdforge/prdforge/backend/go-services/internal/pending"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/handler"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/repository"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/service"
	"github.com/prdforge/prdforge/backend/go-services/internal/users"
	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

// deps are the collaborators resolved at startup. Optional ones are nil.
type deps struct {
	cfg       *config.Config
	redis     *redis.Client
	verifier  middleware.Verifier
	prds      repository.Repository
	storeKind string
	users     users.UserRepository
	llm       llm.Generator
	archiver  service.Archiver
}

func newRouter(d deps) *gin.Engine {
	cfg := d.cfg
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readiness(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	var pendingRepo pending.Repository = pending.NewMemoryRepository()
	if d.redis != nil {
		pendingRepo = pending.NewRedisRepository(d.redis, "pending:")
	}
	pendingSvc := pending.NewService(pendingRepo, cfg.Pending.TTL)

	svc := service.New(d.prds, generator.New(d.llm), service.Options{Archiver: d.archiver})
	auth := middleware.AuthMiddleware(d.verifier)

	var limit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limit = middleware.RedisRateLimitMiddleware(d.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			limit = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	handler.New(svc, pendingSvc).Register(r, auth, limit)
	handlers.NewAuthHandler(cfg, users.NewService(d.users)).Register(r, auth)
	return r
}

// readiness returns 200 only when the configured dependencies are available.
func readiness(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := true
		deps := map[string]interface{}{"store": d.storeKind}

		if d.cfg.MongoDB.URI != "" && d.storeKind != "mongo" {
			deps["mongo"] = false
			ready = false
		}
		if d.cfg.Redis.Host != "" {
			ok := d.redis != nil && d.redis.Ping(c.Request.Context()).Err() == nil
			deps["redis"] = ok
			if !ok {
				ready = false
			}
		}
		deps["archive"] = d.archiver != nil
		deps["llm"] = d.llm != nil

		status, word := http.StatusOK, "ready"
		if !ready {
			status, word = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(status, gin.H{"status": word, "deps": deps, "uptime": time.Since(startTime).String()})
	}
}

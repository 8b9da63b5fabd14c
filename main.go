package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/database"
	"github.com/prdforge/prdforge/backend/go-services/internal/llm"
	"github.com/prdforge/prdforge/backend/go-services/internal/oidc"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/repository"
	"github.com/prdforge/prdforge/backend/go-services/internal/storage"
	"github.com/prdforge/prdforge/backend/go-services/internal/tokens"
	"github.com/prdforge/prdforge/backend/go-services/internal/users"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
	"github.com/prdforge/prdforge/backend/go-services/pkg/metrics"
	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logger.UseJSON()
	}
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: keycloak=%v mongo=%v sqlite=%v redis=%v minio=%v llm=%s",
		cfg.Keycloak.URL != "", cfg.MongoDB.URI != "", cfg.SQLite.Path != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.LLM.Provider)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := deps{cfg: cfg}

	// Redis backs pending ideas, the token blacklist and the shared rate limiter
	if cfg.Redis.Host != "" {
		rc := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
			_ = rc.Close()
		} else {
			d.redis = rc
			tokens.SetBlacklistClient(rc)
			defer rc.Close()
			logger.Infof("Connected to Redis: %s", cfg.Redis.Addr())
		}
	}

	d.verifier = buildVerifier(ctx, cfg)

	// document store: MongoDB, else SQLite, else memory
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, database.DefaultRetry)
		if err != nil {
			logger.Warnf("%v", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			db := client.Database(cfg.MongoDB.Database)
			repo := repository.NewMongoRepo(db.Collection("prds"))
			if err := repo.EnsureIndexes(ctx); err != nil {
				logger.Warnf("failed to create prd indexes: %v", err)
			}
			d.prds, d.storeKind = repo, "mongo"
			d.users = users.NewMongoUserRepository(db.Collection("users"))
		}
	}
	if d.prds == nil && cfg.SQLite.Path != "" {
		db, err := repository.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			logger.Warnf("failed to open SQLite store %s: %v", cfg.SQLite.Path, err)
		} else {
			d.prds, d.storeKind = repository.NewGormRepo(db), "sqlite"
		}
	}
	if d.prds == nil {
		logger.Warnf("no persistent store configured; documents are kept in memory")
		d.prds, d.storeKind = repository.NewMemoryRepo(), "memory"
	}
	if d.users == nil {
		d.users = users.NewMemoryUserRepository()
	}

	d.llm, err = llm.New(ctx, cfg.LLM)
	if err != nil {
		logger.Fatalf("failed to initialize LLM client: %v", err)
	}

	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStorage(cfg.MinIO)
		if err == nil {
			err = s.EnsureBucket(ctx)
		}
		if err != nil {
			logger.Warnf("object storage disabled: %v", err)
		} else {
			d.archiver = s
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(d)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Debugf("services: store=%s verifier=%T archiver=%v", d.storeKind, d.verifier, d.archiver != nil)
	logger.Infof("Starting prdforge service on %s", addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// buildVerifier picks Keycloak OIDC when configured, then the insecure
// integration verifier, then local HS256 tokens.
func buildVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		issuer := oidc.IssuerURL(cfg.Keycloak.URL, cfg.Keycloak.Realm)
		ver, err := oidc.NewVerifier(ctx, issuer, cfg.Keycloak.ClientID)
		if err == nil {
			logger.Infof("verifying tokens against OIDC issuer %s", issuer)
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure token verifier (integration mode)")
		return oidc.NewInsecureVerifier()
	}
	return oidc.NewHMACVerifier(cfg.JWT.Secret)
}

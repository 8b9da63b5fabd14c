package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/tokens"
	"github.com/prdforge/prdforge/backend/go-services/internal/users"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

// DevLoginRequest names the local user a development token is issued for.
type DevLoginRequest struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register mounts /auth/logout and /api/v1/me behind auth. /auth/dev-login
// is only mounted in development.
func (h *AuthHandler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	a := r.Group("/auth")
	if h.cfg.IsDevelopment() {
		a.POST("/dev-login", h.DevLogin)
	}
	a.POST("/logout", auth, h.Logout)
	r.GET("/api/v1/me", auth, h.Me)
}

// DevLogin upserts a local user and issues an HS256 access token for it.
func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "requestSucceeded": false})
		return
	}
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Sub) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email or sub is required", "requestSucceeded": false})
		return
	}
	sub := strings.TrimSpace(req.Sub)
	if sub == "" {
		sub = "dev:" + strings.ToLower(strings.TrimSpace(req.Email))
	}
	u, err := h.usersSvc.UpsertFromClaims(c.Request.Context(), map[string]interface{}{
		"sub":   sub,
		"email": req.Email,
		"name":  req.Name,
	})
	if err != nil || u == nil {
		logger.Errorf("user upsert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user upsert failed", "requestSucceeded": false})
		return
	}
	ttl := h.cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, ttl)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tokens.ErrNoSecret) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "failed to create access token", "requestSucceeded": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "user": u, "expiresIn": int(ttl.Seconds())})
}

// Logout blacklists the presented access token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	at := middleware.RawToken(c)
	if exp, err := parseExpFromJWT(at); err == nil {
		if ttl := time.Until(exp); ttl > 0 {
			if err := tokens.Revoke(c.Request.Context(), at, ttl); err != nil {
				logger.Errorf("failed to blacklist access token: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token", "requestSucceeded": false})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the caller's profile, creating it on first sight.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.usersSvc.UpsertFromClaims(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		logger.Errorf("user upsert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed", "requestSucceeded": false})
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, gin.H{"claims": middleware.Claims(c)})
		return
	}
	c.JSON(http.StatusOK, u)
}

// parseExpFromJWT decodes the JWT payload and returns the `exp` claim as time.Time.
// This performs payload-only parsing (no signature verification) and is suitable
// for computing remaining TTLs for blacklisting purposes.
func parseExpFromJWT(tok string) (time.Time, error) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid token")
	}
	payload := parts[1]
	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		// try standard base64 (pad) as a fallback
		b, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return time.Time{}, err
		}
	}
	var claims struct {
		Exp *json.Number `json:"exp"`
	}
	if err := json.Unmarshal(b, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.Exp == nil {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	if i64, err := claims.Exp.Int64(); err == nil {
		return time.Unix(i64, 0), nil
	}
	f, err := claims.Exp.Float64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(f), 0), nil
}

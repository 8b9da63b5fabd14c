package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/users"
)

// ErrNoSecret is returned when JWT_SECRET is empty.
var ErrNoSecret = errors.New("jwt secret not configured")

// GenerateAccessToken creates a signed JWT access token for the user
func GenerateAccessToken(cfg *config.Config, u *users.User, ttl time.Duration) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.Sub,
		"name":  u.Name,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken validates an HS256 token signed with secret and returns
// its claims. Tokens using any other algorithm are rejected.
func ParseAccessToken(secret, raw string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if exp, _ := claims.GetExpirationTime(); exp == nil {
		return nil, errors.New("parse access token: missing exp claim")
	}
	return claims, nil
}

package oidc

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/tokens"
	"github.com/prdforge/prdforge/backend/go-services/internal/users"
)

func TestHMACVerifier(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "verifier-secret-32-bytes-xxxxxxxxx"
	raw, err := tokens.GenerateAccessToken(cfg, &users.User{Sub: "owner-7", Email: "o@example.com"}, time.Minute)
	require.NoError(t, err)

	v := NewHMACVerifier(cfg.JWT.Secret)
	tok, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "owner-7", claims["sub"])

	_, err = NewHMACVerifier("wrong-secret-32-bytes-xxxxxxxxxxxxx").Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestInsecureVerifier(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "anyone"}).SignedString([]byte("x"))
	require.NoError(t, err)

	tok, err := NewInsecureVerifier().Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims struct {
		Sub string `json:"sub"`
	}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "anyone", claims.Sub)

	_, err = NewInsecureVerifier().Verify(context.Background(), "garbage")
	require.Error(t, err)
}

func TestInsecureVerifierRejectsNonObjectPayload(t *testing.T) {
	_, err := NewInsecureVerifier().Verify(context.Background(), "eyJhbGciOiJub25lIn0.bnVsbA.sig")
	require.ErrorIs(t, err, errMalformed)
}

func TestIssuerURL(t *testing.T) {
	require.Equal(t, "http://kc:8080/realms/prdforge", IssuerURL("http://kc:8080/", "prdforge"))
	require.Equal(t, "http://kc:8080/realms/x", IssuerURL("http://kc:8080/realms/x", ""))
}

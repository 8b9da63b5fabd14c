// Package oidc holds the bearer token verifiers used by the auth
// middleware: Keycloak OIDC, locally signed HS256 tokens, and an
// unverified decoder for integration runs.
package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

// IssuerURL builds the Keycloak issuer for realm. An empty realm means
// baseURL already is the issuer.
func IssuerURL(baseURL, realm string) string {
	if realm == "" {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/realms/" + realm
}

// Verifier checks Keycloak-issued tokens against the provider's keys.
type Verifier struct {
	issuer   string
	verifier *oidc.IDTokenVerifier
}

// NewVerifier runs provider discovery for issuer. Tokens must carry
// clientID in their audience.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover OIDC provider %s: %w", issuer, err)
	}
	return &Verifier{
		issuer:   issuer,
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *Verifier) Issuer() string { return v.issuer }

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	tok, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("oidc: %w", err)
	}
	return tok, nil
}

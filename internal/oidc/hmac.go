package oidc

import (
	"context"
	"encoding/json"

	"github.com/prdforge/prdforge/backend/go-services/internal/tokens"
	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

type claimsToken map[string]interface{}

func (t claimsToken) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(t))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// HMACVerifier accepts the HS256 access tokens issued by the dev-login
// endpoint. It is used when no OIDC issuer is configured.
type HMACVerifier struct {
	secret string
}

func NewHMACVerifier(secret string) *HMACVerifier { return &HMACVerifier{secret: secret} }

func (v *HMACVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims, err := tokens.ParseAccessToken(v.secret, raw)
	if err != nil {
		return nil, err
	}
	return claimsToken(claims), nil
}

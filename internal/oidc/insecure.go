package oidc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/prdforge/prdforge/backend/go-services/pkg/middleware"
)

var errMalformed = errors.New("malformed bearer token")

// InsecureVerifier decodes the payload without checking the signature.
// It is enabled only with ALLOW_INSECURE_TOKEN=true.
type InsecureVerifier struct{}

func NewInsecureVerifier() *InsecureVerifier { return &InsecureVerifier{} }

func (v *InsecureVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, errMalformed
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, errMalformed
	}
	var claims claimsToken
	if err := json.Unmarshal(data, &claims); err != nil || claims == nil {
		return nil, errMalformed
	}
	return claims, nil
}

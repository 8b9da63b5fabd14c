package users

import (
	"context"
	"strings"
)

// Service keeps the local profile of token subjects in sync with their claims.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// profileFromClaims reads sub, email and a display name. The name falls back
// to preferred_username, then given/family name, then the email local part.
func profileFromClaims(claims map[string]interface{}) User {
	str := func(k string) string {
		v, _ := claims[k].(string)
		return strings.TrimSpace(v)
	}
	u := User{Sub: str("sub"), Email: str("email"), Name: str("name")}
	if u.Name == "" {
		u.Name = str("preferred_username")
	}
	if u.Name == "" {
		u.Name = strings.TrimSpace(str("given_name") + " " + str("family_name"))
	}
	if u.Name == "" && u.Email != "" {
		u.Name, _, _ = strings.Cut(u.Email, "@")
	}
	return u
}

// UpsertFromClaims returns the stored user for the claims' subject, writing
// only when the profile is new or changed. Claims without a subject yield
// (nil, nil).
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*User, error) {
	p := profileFromClaims(claims)
	if p.Sub == "" {
		return nil, nil
	}
	cur, err := s.repo.GetBySub(ctx, p.Sub)
	if err != nil {
		return nil, err
	}
	if cur != nil && cur.Email == p.Email && cur.Name == p.Name {
		return cur, nil
	}
	return s.repo.UpsertBySub(ctx, &p)
}

func (s *Service) GetBySub(ctx context.Context, sub string) (*User, error) {
	return s.repo.GetBySub(ctx, sub)
}

package pending

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token is unknown, expired or already claimed.
var ErrNotFound = errors.New("pending idea not found")

// Idea is a startup idea submitted before sign-in, held until the user
// claims it or it expires.
type Idea struct {
	Token     string    `json:"token"`
	Idea      string    `json:"idea"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Repository stores pending ideas. Take returns and removes an entry in
// one step so a token can be redeemed at most once; it returns (nil, nil)
// when nothing is stored under the token.
type Repository interface {
	Create(ctx context.Context, p *Idea) error
	Take(ctx context.Context, token string) (*Idea, error)
}

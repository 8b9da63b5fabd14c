package pending

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
)

// Service issues and redeems one-shot tokens for ideas submitted before
// sign-in.
type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(r Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{repo: r, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// Submit stores idea and returns the stored entry with its token.
func (s *Service) Submit(ctx context.Context, idea string) (*Idea, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	now := s.now()
	p := &Idea{
		Token:     hex.EncodeToString(b),
		Idea:      strings.TrimSpace(idea),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Redeem takes the entry for token and hands its idea to use. When use
// fails the entry is stored again with its original expiry, so the caller
// can retry with the same token.
func (s *Service) Redeem(ctx context.Context, token string, use func(idea string) error) error {
	p, err := s.repo.Take(ctx, token)
	if err != nil {
		return err
	}
	if p == nil || s.now().After(p.ExpiresAt) {
		return ErrNotFound
	}
	if err := use(p.Idea); err != nil {
		if rerr := s.repo.Create(context.WithoutCancel(ctx), p); rerr != nil {
			logger.Warnf("failed to restore pending idea after failed claim: %v", rerr)
		}
		return err
	}
	return nil
}

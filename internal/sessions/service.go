package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotActive means the presented refresh token is not the user's current
// live token: the row is absent, holds a different token, is revoked, or has
// passed its stored expiry. Infrastructure errors are returned as-is and must
// not be collapsed into this value.
var ErrNotActive = errors.New("refresh token revoked or not found")

// Service wraps repository operations with the single-live-token policy.
type Service struct {
	repo    Repository
	timeout time.Duration
}

// NewService builds a Service. timeout bounds every store call; zero disables
// the bound.
func NewService(repo Repository, timeout time.Duration) *Service {
	return &Service{repo: repo, timeout: timeout}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Start records token as the user's only live refresh token, replacing any
// prior row and clearing the revoked flag.
func (s *Service) Start(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	rec := &RefreshRecord{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl),
		IsRevoked: false,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Validate returns nil when token is the user's current, non-revoked,
// unexpired refresh token. It returns ErrNotActive for every policy failure
// and the underlying error for store failures.
func (s *Service) Validate(ctx context.Context, userID int64, token string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	rec, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}
	if rec == nil || rec.Token != token || rec.IsRevoked {
		return ErrNotActive
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return ErrNotActive
	}
	return nil
}

// Revoke flips the user's row to revoked. The row stays in place.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.repo.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

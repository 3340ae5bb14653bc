package privileges

import (
	"context"
	"fmt"
	"time"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// Service resolves privilege sets. Results have set semantics: duplicate
// assignments collapse.
type Service struct {
	repo    Repository
	timeout time.Duration
}

func NewService(repo Repository, timeout time.Duration) *Service {
	return &Service{repo: repo, timeout: timeout}
}

// Resolve returns the set of privilege names granted to the user. A store
// failure propagates; callers must not treat it as an empty set.
func (s *Service) Resolve(ctx context.Context, userID int64) (map[string]struct{}, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	names, err := s.repo.NamesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve privileges: %w", err)
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// Satisfies reports whether the set grants the required privilege, honoring
// the Admin wildcard.
func Satisfies(set map[string]struct{}, required string) bool {
	if _, ok := set[models.AdminPrivilege]; ok {
		return true
	}
	_, ok := set[required]
	return ok
}

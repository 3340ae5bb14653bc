package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

var (
	// ErrInvalidCredentials covers both unknown identifier and bad password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials or user not found")
	// ErrInactive marks a known account that is disabled.
	ErrInactive = errors.New("account is inactive")
	// ErrNotFound marks an absent user on a direct lookup.
	ErrNotFound = errors.New("user not found")
)

// Service encapsulates user-related business logic
type Service struct {
	repo    Repository
	timeout time.Duration
}

func NewService(repo Repository, timeout time.Duration) *Service {
	return &Service{repo: repo, timeout: timeout}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Authenticate checks the identifier/password pair and the account's active
// flag, in that order: credentials are rejected before the inactive state is
// disclosed for a correct password.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	u, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrInactive
	}
	return u, nil
}

// Identity resolves the current claim fields for a user. Used on refresh so a
// re-issued token carries up-to-date display fields, not the stale claims of
// the refresh token.
func (s *Service) Identity(ctx context.Context, userID int64) (models.Identity, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("look up user: %w", err)
	}
	if u == nil {
		return models.Identity{}, ErrNotFound
	}
	return u.Identity(), nil
}

// Get returns the user or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Create hashes the password and stores the new user, returning its ID.
func (s *Service) Create(ctx context.Context, u *models.User, password string) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return s.repo.Create(ctx, u)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

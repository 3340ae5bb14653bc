package sessions

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fake repo for testing
type fakeRepo struct {
	rows   map[int64]*RefreshRecord
	getErr error
}

func (f *fakeRepo) Upsert(ctx context.Context, rec *RefreshRecord) error {
	if f.rows == nil {
		f.rows = map[int64]*RefreshRecord{}
	}
	cp := *rec
	f.rows[rec.UserID] = &cp
	return nil
}

func (f *fakeRepo) GetByUser(ctx context.Context, userID int64) (*RefreshRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) Revoke(ctx context.Context, userID int64) error {
	if rec, ok := f.rows[userID]; ok {
		rec.IsRevoked = true
	}
	return nil
}

func TestStartAndValidate(t *testing.T) {
	svc := NewService(&fakeRepo{}, 0)
	ctx := context.Background()

	if err := svc.Start(ctx, 1, "tok-a", time.Hour); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Validate(ctx, 1, "tok-a"); err != nil {
		t.Fatalf("expected token to validate, got %v", err)
	}
}

// A second login overwrites the row; the earlier token stops validating.
func TestStart_SupersedesPreviousToken(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, 0)
	ctx := context.Background()

	if err := svc.Start(ctx, 1, "first", time.Hour); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Start(ctx, 1, "second", time.Hour); err != nil {
		t.Fatalf("second start failed: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected exactly one row per user, got %d", len(repo.rows))
	}
	if err := svc.Validate(ctx, 1, "first"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("superseded token should fail with ErrNotActive, got %v", err)
	}
	if err := svc.Validate(ctx, 1, "second"); err != nil {
		t.Fatalf("current token should validate, got %v", err)
	}
}

func TestRevoke_BlocksValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, 0)
	ctx := context.Background()

	if err := svc.Start(ctx, 2, "tok", time.Hour); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Revoke(ctx, 2); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := svc.Validate(ctx, 2, "tok"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("revoked token should fail with ErrNotActive, got %v", err)
	}
}

func TestValidate_ExpiredRow(t *testing.T) {
	svc := NewService(&fakeRepo{}, 0)
	ctx := context.Background()

	if err := svc.Start(ctx, 3, "tok", -time.Minute); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Validate(ctx, 3, "tok"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expired row should fail with ErrNotActive, got %v", err)
	}
}

func TestValidate_MissingUser(t *testing.T) {
	svc := NewService(&fakeRepo{}, 0)
	if err := svc.Validate(context.Background(), 99, "tok"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("absent row should fail with ErrNotActive, got %v", err)
	}
}

// Store failures must stay distinct from policy failures.
func TestValidate_StoreErrorIsNotErrNotActive(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&fakeRepo{getErr: boom}, 0)
	err := svc.Validate(context.Background(), 1, "tok")
	if err == nil || errors.Is(err, ErrNotActive) {
		t.Fatalf("store error must not be reported as ErrNotActive, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("store error should be wrapped, got %v", err)
	}
}

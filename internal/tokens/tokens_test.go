package tokens

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

const (
	accessSecret  = "access-test-secret-32-bytes-xxxxxx"
	refreshSecret = "refresh-test-secret-32-bytes-xxxxx"
)

func TestIssueAccess_RoundTrip(t *testing.T) {
	ident := models.Identity{UserID: 42, Email: "test@example.com", FullName: "Test User"}
	raw, err := IssueAccess(accessSecret, ident, 2*time.Minute)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims, err := ParseAccess(accessSecret, raw)
	if err != nil {
		t.Fatalf("ParseAccess error: %v", err)
	}
	if claims.Identity() != ident {
		t.Fatalf("round trip lost information: got=%+v want=%+v", claims.Identity(), ident)
	}
}

func TestParseAccess_ExpiredIsDistinct(t *testing.T) {
	ident := models.Identity{UserID: 7}
	raw, err := IssueAccess(accessSecret, ident, -time.Minute)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	_, err = ParseAccess(accessSecret, raw)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if errors.Is(err, ErrInvalid) {
		t.Fatalf("expired token must not also report ErrInvalid")
	}
}

func TestParseAccess_WrongSecret(t *testing.T) {
	raw, err := IssueAccess(accessSecret, models.Identity{UserID: 1}, time.Minute)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	_, err = ParseAccess("different-secret-32-bytes-yyyyyyyy", raw)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

// A refresh token must never verify as an access token and vice versa.
func TestCrossSecretReplayRejected(t *testing.T) {
	refresh, err := IssueRefresh(refreshSecret, 9, time.Hour)
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}
	if _, err := ParseAccess(accessSecret, refresh); !errors.Is(err, ErrInvalid) {
		t.Fatalf("refresh token replayed as access token should be invalid, got %v", err)
	}

	access, err := IssueAccess(accessSecret, models.Identity{UserID: 9}, time.Hour)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	if _, err := ParseRefresh(refreshSecret, access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("access token replayed as refresh token should be invalid, got %v", err)
	}
}

func TestParseAccess_Malformed(t *testing.T) {
	_, err := ParseAccess(accessSecret, "not.a.jwt")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for malformed token, got %v", err)
	}
}

func TestParseAccess_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"id":1,"exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	_, err := ParseAccess(accessSecret, tok)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected alg=none token to be invalid, got %v", err)
	}
}

// Tampering with the payload must fail signature verification.
func TestParseAccess_TamperedPayload(t *testing.T) {
	raw, err := IssueAccess(accessSecret, models.Identity{UserID: 5, FullName: "victim"}, 5*time.Minute)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payload), "victim", "attacker", 1)))
	_, err = ParseAccess(accessSecret, strings.Join(parts, "."))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected signature verification to fail for tampered token, got %v", err)
	}
}

func TestParseRefresh_RoundTrip(t *testing.T) {
	raw, err := IssueRefresh(refreshSecret, 31, time.Hour)
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}
	claims, err := ParseRefresh(refreshSecret, raw)
	if err != nil {
		t.Fatalf("ParseRefresh error: %v", err)
	}
	if claims.UserID != 31 {
		t.Fatalf("unexpected userID: got=%d want=31", claims.UserID)
	}
}

package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// Verification outcomes. Expired is reported distinctly from Invalid because
// the middleware refreshes on the former and hard-rejects on the latter.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// AccessClaims is the signed payload of a short-lived access token.
type AccessClaims struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user ID; display fields are looked up fresh
// when a new access token is minted.
type RefreshClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Identity converts the claim set back into the request identity.
func (c *AccessClaims) Identity() models.Identity {
	return models.Identity{UserID: c.UserID, Email: c.Email, FullName: c.FullName}
}

// IssueAccess signs an HS256 access token for the identity, expiring at now+ttl.
func IssueAccess(secret string, ident models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   ident.UserID,
		Email:    ident.Email,
		FullName: ident.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssueRefresh signs an HS256 refresh token for the user, expiring at now+ttl.
func IssueRefresh(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccess verifies an access token. On failure the returned error wraps
// either ErrExpired or ErrInvalid.
func ParseAccess(secret, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parse(secret, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token with the refresh secret.
func ParseRefresh(secret, raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(secret, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parse(secret, raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !token.Valid {
		return ErrInvalid
	}
	return nil
}

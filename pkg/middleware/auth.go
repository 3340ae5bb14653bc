package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/config"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/privileges"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/response"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/sessions"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/tokens"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/logger"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/metrics"
)

// Cookie names and the context key shared with handlers.
const (
	AccessCookie  = "token"
	RefreshCookie = "refreshToken"

	identityKey = "identity"
)

// Authenticator verifies access tokens and transparently rotates them via the
// refresh token when they expire.
type Authenticator struct {
	cfg      *config.Config
	users    *users.Service
	sessions *sessions.Service
	privs    *privileges.Service
}

func NewAuthenticator(cfg *config.Config, u *users.Service, s *sessions.Service, p *privileges.Service) *Authenticator {
	return &Authenticator{cfg: cfg, users: u, sessions: s, privs: p}
}

// CurrentIdentity returns the identity attached by Authenticate.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}

// accessTokenFrom extracts the access token; the cookie wins over the header.
func accessTokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(AccessCookie); err == nil && v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}

// Authenticate verifies the request's access token. A valid token attaches
// the identity and continues; an expired token triggers the silent refresh
// path; everything else rejects with 401.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := accessTokenFrom(c)
		if raw == "" {
			response.Abort(c, http.StatusUnauthorized, "No token provided.")
			return
		}

		claims, err := tokens.ParseAccess(a.cfg.JWT.AccessSecret, raw)
		if err == nil {
			c.Set(identityKey, claims.Identity())
			c.Next()
			return
		}
		if !errors.Is(err, tokens.ErrExpired) {
			// signature/shape failure is terminal; no refresh attempted
			response.Abort(c, http.StatusUnauthorized, "Invalid Token.")
			return
		}

		a.refresh(c)
	}
}

// refresh rotates an expired access token using the refresh-token cookie and
// the revocation store, re-signing from the user's current stored fields.
func (a *Authenticator) refresh(c *gin.Context) {
	raw, err := c.Cookie(RefreshCookie)
	if err != nil || raw == "" {
		metrics.TokenRefreshes.WithLabelValues("missing").Inc()
		response.Abort(c, http.StatusUnauthorized, "Access token expired and no refresh token provided.")
		return
	}

	claims, err := tokens.ParseRefresh(a.cfg.JWT.RefreshSecret, raw)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("invalid").Inc()
		response.Abort(c, http.StatusUnauthorized, "Refresh token invalid or expired.")
		return
	}

	if err := a.sessions.Validate(c.Request.Context(), claims.UserID, raw); err != nil {
		if errors.Is(err, sessions.ErrNotActive) {
			metrics.TokenRefreshes.WithLabelValues("revoked").Inc()
			response.Abort(c, http.StatusUnauthorized, "Refresh token revoked or not found.")
			return
		}
		logger.Errorf("refresh: revocation store lookup failed for user %d: %v", claims.UserID, err)
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		response.Abort(c, http.StatusInternalServerError, "Session store unavailable.")
		return
	}

	// fresh lookup: display fields may have changed since the refresh token
	// was minted
	ident, err := a.users.Identity(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			metrics.TokenRefreshes.WithLabelValues("user_missing").Inc()
			response.Abort(c, http.StatusUnauthorized, "User not found during refresh.")
			return
		}
		logger.Errorf("refresh: user lookup failed for user %d: %v", claims.UserID, err)
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		response.Abort(c, http.StatusInternalServerError, "User store unavailable.")
		return
	}

	access, err := tokens.IssueAccess(a.cfg.JWT.AccessSecret, ident, a.cfg.JWT.AccessTokenTTL)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		response.Abort(c, http.StatusInternalServerError, "Failed to issue access token.")
		return
	}

	// surface rotation to both cookie and bearer-header clients
	c.SetCookie(AccessCookie, access, int(a.cfg.JWT.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.Header("Authorization", "Bearer "+access)

	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	c.Set(identityKey, ident)
	c.Next()
}

// RequirePrivilege gates a handler on the named privilege. Holding Admin
// satisfies every gate. Must run after Authenticate.
func (a *Authenticator) RequirePrivilege(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "User not authenticated.")
			return
		}

		set, err := a.privs.Resolve(c.Request.Context(), ident.UserID)
		if err != nil {
			logger.Errorf("authorize: privilege resolution failed for user %d: %v", ident.UserID, err)
			response.Abort(c, http.StatusInternalServerError, "Privilege store unavailable.")
			return
		}
		if !privileges.Satisfies(set, required) {
			metrics.AuthzDenied.WithLabelValues(required).Inc()
			response.Abort(c, http.StatusForbidden, "Require "+required+" Privilege!")
			return
		}
		c.Next()
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/config"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/response"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/sessions"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/tokens"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/logger"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/metrics"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/middleware"
)

// LoginRequest accepts either the email address or the numeric user ID in the
// identifier field.
type LoginRequest struct {
	Identifier string `json:"usernameoremail"`
	Password   string `json:"password"`
}

// AuthHandler owns the login/logout endpoints.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	auth        *middleware.Authenticator
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, auth *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, auth: auth}
}

// Register routes under /users
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.POST("/login", h.Login)
	g.POST("/logout", h.auth.Authenticate(), h.Logout)
}

// Login checks the credentials, mints an access/refresh token pair, records
// the refresh token as the user's single live session and sets both cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Username/email and password are required.")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Username/email and password are required.")
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			metrics.Logins.WithLabelValues("invalid_credentials").Inc()
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials or user not found.")
		case errors.Is(err, users.ErrInactive):
			metrics.Logins.WithLabelValues("inactive").Inc()
			response.Fail(c, http.StatusForbidden, "Account is inactive.")
		default:
			logger.Errorf("login: user lookup failed: %v", err)
			metrics.Logins.WithLabelValues("error").Inc()
			response.Fail(c, http.StatusInternalServerError, "Login failed.")
		}
		return
	}

	ident := u.Identity()
	access, err := tokens.IssueAccess(h.cfg.JWT.AccessSecret, ident, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("login: issue access token: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Login failed.")
		return
	}
	refresh, err := tokens.IssueRefresh(h.cfg.JWT.RefreshSecret, u.ID, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("login: issue refresh token: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Login failed.")
		return
	}

	// One live refresh token per user: this upsert supersedes any earlier
	// session, including on other devices.
	if err := h.sessionsSvc.Start(c.Request.Context(), u.ID, refresh, h.cfg.JWT.RefreshTokenTTL); err != nil {
		logger.Errorf("login: store refresh token: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Failed to store session.")
		return
	}

	c.SetCookie(middleware.AccessCookie, access, int(h.cfg.JWT.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie(middleware.RefreshCookie, refresh, int(h.cfg.JWT.RefreshTokenTTL.Seconds()), "/", "", false, true)

	metrics.Logins.WithLabelValues("ok").Inc()
	response.OK(c, http.StatusOK, "Login successful.", gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"fullName":     u.FullName,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Logout revokes the caller's refresh token and clears both cookies. The
// revocation is best effort: a store failure is logged but the cookies are
// cleared regardless, so the client ends up signed out either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	if err := h.sessionsSvc.Revoke(c.Request.Context(), ident.UserID); err != nil {
		logger.Errorf("logout: revoke refresh token for user %d: %v", ident.UserID, err)
	}

	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", false, true)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", "", false, true)
	response.OK(c, http.StatusOK, "Logged out successfully.", nil)
}

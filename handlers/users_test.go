package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/config"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/privileges"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/sessions"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/tokens"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/middleware"
)

type usersFixture struct {
	router   *gin.Engine
	cfg      *config.Config
	userRepo *fakeUserRepo
	privRepo *fakePrivRepo
}

func newUsersFixture(t *testing.T) *usersFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}}
	userRepo := &fakeUserRepo{byID: map[int64]*models.User{}}
	sessRepo := &fakeSessionRepo{rows: map[int64]*sessions.RefreshRecord{}}
	privRepo := &fakePrivRepo{names: map[int64][]string{}}

	usersSvc := users.NewService(userRepo, 0)
	sessionsSvc := sessions.NewService(sessRepo, 0)
	privsSvc := privileges.NewService(privRepo, 0)
	auth := middleware.NewAuthenticator(cfg, usersSvc, sessionsSvc, privsSvc)

	r := gin.New()
	NewUsersHandler(usersSvc, auth).Register(r.Group(""))
	return &usersFixture{router: r, cfg: cfg, userRepo: userRepo, privRepo: privRepo}
}

func (fx *usersFixture) seed(t *testing.T, id int64, email string, privs ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	fx.userRepo.byID[id] = &models.User{ID: id, Email: email, FullName: "Seeded", PasswordHash: string(hash), Active: true}
	fx.privRepo.names[id] = privs
}

func (fx *usersFixture) tokenFor(t *testing.T, id int64) string {
	t.Helper()
	u := fx.userRepo.byID[id]
	require.NotNil(t, u)
	tok, err := tokens.IssueAccess(fx.cfg.JWT.AccessSecret, u.Identity(), time.Minute)
	require.NoError(t, err)
	return tok
}

func (fx *usersFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	fx.router.ServeHTTP(w, req)
	return w
}

func TestCreateUser_AdminOnly(t *testing.T) {
	fx := newUsersFixture(t)
	fx.seed(t, 1, "admin@example.edu", models.AdminPrivilege)
	fx.seed(t, 2, "student@example.edu", "Student")

	body := `{"email":"new@example.edu","password":"pw12345","fullName":"New User"}`

	w := fx.do("POST", "/users/adduser", fx.tokenFor(t, 2), body)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = fx.do("POST", "/users/adduser", fx.tokenFor(t, 1), body)
	require.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Data struct {
			UserID int64 `json:"userID"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	created := fx.userRepo.byID[env.Data.UserID]
	require.NotNil(t, created)
	require.Equal(t, "new@example.edu", created.Email)
	require.True(t, created.Active)
	// stored as a hash, never the raw password
	require.NotEqual(t, "pw12345", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw12345")))
}

func TestCreateUser_MissingFields(t *testing.T) {
	fx := newUsersFixture(t)
	fx.seed(t, 1, "admin@example.edu", models.AdminPrivilege)

	for _, body := range []string{
		`{"email":"new@example.edu"}`,
		`{"password":"pw12345"}`,
		`nope`,
	} {
		w := fx.do("POST", "/users/adduser", fx.tokenFor(t, 1), body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestGetUser(t *testing.T) {
	fx := newUsersFixture(t)
	fx.seed(t, 1, "admin@example.edu", models.AdminPrivilege)
	fx.seed(t, 2, "student@example.edu", "Student")

	// any authenticated user can read a profile
	w := fx.do("GET", "/users/1", fx.tokenFor(t, 2), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "admin@example.edu")
	require.NotContains(t, w.Body.String(), "passwordHash")

	w = fx.do("GET", "/users/99", fx.tokenFor(t, 2), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = fx.do("GET", "/users/abc", fx.tokenFor(t, 2), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = fx.do("GET", "/users/1", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsers_AdminOnly(t *testing.T) {
	fx := newUsersFixture(t)
	fx.seed(t, 1, "admin@example.edu", models.AdminPrivilege)
	fx.seed(t, 2, "student@example.edu", "Student")

	w := fx.do("GET", "/users", fx.tokenFor(t, 2), "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = fx.do("GET", "/users", fx.tokenFor(t, 1), "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 2)
}

func TestListUsers_StoreError(t *testing.T) {
	fx := newUsersFixture(t)
	fx.seed(t, 1, "admin@example.edu", models.AdminPrivilege)
	token := fx.tokenFor(t, 1)
	fx.userRepo.err = errors.New("connection reset")

	w := fx.do("GET", "/users", token, "")
	// a store failure is a 500, never coerced to 401/403
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/response"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/logger"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/middleware"
)

// CreateUserRequest is the admin-facing account creation payload.
type CreateUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	PhoneNo      string `json:"phoneNo"`
	DepartmentID int64  `json:"departmentID"`
	Active       *bool  `json:"active"`
}

// UsersHandler owns the account management endpoints. Creation and listing
// are admin-only; a signed-in user may read any profile.
type UsersHandler struct {
	usersSvc *users.Service
	auth     *middleware.Authenticator
}

func NewUsersHandler(u *users.Service, auth *middleware.Authenticator) *UsersHandler {
	return &UsersHandler{usersSvc: u, auth: auth}
}

// Register routes under /users
func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", h.auth.Authenticate())
	g.GET("", h.auth.RequirePrivilege(models.AdminPrivilege), h.List)
	g.POST("/adduser", h.auth.RequirePrivilege(models.AdminPrivilege), h.Create)
	g.GET("/:id", h.Get)
}

// Create stores a new account. The password arrives raw and is hashed by the
// service; only the hash is persisted.
func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	u := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNo:      req.PhoneNo,
		DepartmentID: req.DepartmentID,
		Active:       active,
	}
	id, err := h.usersSvc.Create(c.Request.Context(), u, req.Password)
	if err != nil {
		logger.Errorf("create user: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}
	response.OK(c, http.StatusCreated, "User created.", gin.H{"userID": id})
}

// Get returns a single user by numeric ID.
func (h *UsersHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}
	u, err := h.usersSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found.")
			return
		}
		logger.Errorf("get user %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "User store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "User found.", u)
}

// List returns every account.
func (h *UsersHandler) List(c *gin.Context) {
	all, err := h.usersSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list users: %v", err)
		response.Fail(c, http.StatusInternalServerError, "User store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Users listed.", all)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/catalog"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/response"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/logger"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/middleware"
)

// CatalogHandler owns departments, lessons and lesson groups. Writes are
// admin-only; reads need only a signed-in user.
type CatalogHandler struct {
	catalogSvc *catalog.Service
	usersSvc   *users.Service
	auth       *middleware.Authenticator
}

func NewCatalogHandler(c *catalog.Service, u *users.Service, auth *middleware.Authenticator) *CatalogHandler {
	return &CatalogHandler{catalogSvc: c, usersSvc: u, auth: auth}
}

// Register routes under /departments, /lessons and /lessonGroups
func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	admin := h.auth.RequirePrivilege(models.AdminPrivilege)

	d := rg.Group("/departments", h.auth.Authenticate())
	d.POST("", admin, h.CreateDepartment)
	d.GET("", h.ListDepartments)
	d.GET("/:id", h.GetDepartment)
	d.PUT("/:id", admin, h.UpdateDepartment)
	d.DELETE("/:id", admin, h.DeleteDepartment)

	l := rg.Group("/lessons", h.auth.Authenticate())
	l.POST("", admin, h.CreateLesson)
	l.GET("", h.ListLessons)
	l.GET("/:id", h.GetLesson)
	l.DELETE("/:id", admin, h.DeleteLesson)

	g := rg.Group("/lessonGroups", h.auth.Authenticate())
	g.POST("", admin, h.CreateGroup)
	g.POST("/register", h.RegisterForGroup)
	g.GET("", h.ListGroups)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ID.")
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	var req struct {
		Name string `json:"departmentName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Fail(c, http.StatusBadRequest, "Content can not be empty!")
		return
	}
	id, err := h.catalogSvc.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		logger.Errorf("create department: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Failed to create department.")
		return
	}
	response.OK(c, http.StatusCreated, "Department created.", gin.H{"id": id, "departmentName": req.Name})
}

func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	out, err := h.catalogSvc.ListDepartments(c.Request.Context())
	if err != nil {
		logger.Errorf("list departments: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Catalog store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Departments list.", out)
}

func (h *CatalogHandler) GetDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := h.catalogSvc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Department not found")
			return
		}
		logger.Errorf("get department %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "Catalog store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Department details.", d)
}

func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"departmentName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Fail(c, http.StatusBadRequest, "Content can not be empty!")
		return
	}
	if err := h.catalogSvc.UpdateDepartment(c.Request.Context(), id, req.Name); err != nil {
		logger.Errorf("update department %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "Failed to update department.")
		return
	}
	response.OK(c, http.StatusOK, "Department updated successfully.", nil)
}

func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteDepartment(c.Request.Context(), id); err != nil {
		logger.Errorf("delete department %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "Failed to delete department.")
		return
	}
	response.OK(c, http.StatusOK, "Department deleted successfully!", nil)
}

func (h *CatalogHandler) CreateLesson(c *gin.Context) {
	var req models.Lesson
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Fail(c, http.StatusBadRequest, "Lesson Name is required.")
		return
	}
	id, err := h.catalogSvc.CreateLesson(c.Request.Context(), &req)
	if err != nil {
		logger.Errorf("create lesson: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Failed to create lesson.")
		return
	}
	response.OK(c, http.StatusCreated, "Lesson created.", gin.H{"id": id, "lessonName": req.Name})
}

// ListLessons scopes the listing to the caller's own department when the
// account has one; the departmentID query parameter applies otherwise.
func (h *CatalogHandler) ListLessons(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var callerDept int64
	u, err := h.usersSvc.Get(c.Request.Context(), ident.UserID)
	switch {
	case err == nil:
		callerDept = u.DepartmentID
	case errors.Is(err, users.ErrNotFound):
		// token outlived the account; list without a department scope
	default:
		logger.Errorf("list lessons: caller lookup failed for user %d: %v", ident.UserID, err)
		response.Fail(c, http.StatusInternalServerError, "User store unavailable.")
		return
	}

	var f catalog.LessonFilter
	if v, err := strconv.ParseInt(c.Query("departmentID"), 10, 64); err == nil {
		f.DepartmentID = v
	}
	if v, err := strconv.Atoi(c.Query("semesterNo")); err == nil {
		f.SemesterNo = v
	}

	out, err := h.catalogSvc.ListLessons(c.Request.Context(), callerDept, f)
	if err != nil {
		logger.Errorf("list lessons: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Catalog store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Lessons list.", out)
}

func (h *CatalogHandler) GetLesson(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	l, err := h.catalogSvc.GetLesson(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Lesson not found")
			return
		}
		logger.Errorf("get lesson %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "Catalog store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Lesson details.", l)
}

func (h *CatalogHandler) DeleteLesson(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteLesson(c.Request.Context(), id); err != nil {
		logger.Errorf("delete lesson %d: %v", id, err)
		response.Fail(c, http.StatusInternalServerError, "Failed to delete lesson.")
		return
	}
	response.OK(c, http.StatusOK, "Lesson deleted successfully!", nil)
}

func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var req models.LessonGroup
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.LessonID == 0 {
		response.Fail(c, http.StatusBadRequest, "Group Name and Lesson ID are required.")
		return
	}
	id, err := h.catalogSvc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		logger.Errorf("create lesson group: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Failed to create lesson group.")
		return
	}
	response.OK(c, http.StatusCreated, "Lesson Group created.", gin.H{"id": id, "lessonGroupName": req.Name})
}

// RegisterForGroup signs the calling user up for a group with a pending grade.
func (h *CatalogHandler) RegisterForGroup(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	var req struct {
		LessonGroupID int64 `json:"lessonGroupID"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.LessonGroupID == 0 {
		response.Fail(c, http.StatusBadRequest, "Lesson Group ID is required.")
		return
	}
	id, err := h.catalogSvc.Register(c.Request.Context(), ident.UserID, req.LessonGroupID)
	if err != nil {
		logger.Errorf("group registration: user %d group %d: %v", ident.UserID, req.LessonGroupID, err)
		response.Fail(c, http.StatusInternalServerError, "Failed to register.")
		return
	}
	response.OK(c, http.StatusCreated, "Registration request successful.", gin.H{"id": id})
}

func (h *CatalogHandler) ListGroups(c *gin.Context) {
	var lessonID int64
	if v, err := strconv.ParseInt(c.Query("lessonID"), 10, 64); err == nil {
		lessonID = v
	}
	out, err := h.catalogSvc.ListGroups(c.Request.Context(), lessonID)
	if err != nil {
		logger.Errorf("list lesson groups: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Catalog store unavailable.")
		return
	}
	response.OK(c, http.StatusOK, "Lesson Groups list.", out)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// ErrNotFound marks an absent catalog entity on a direct lookup.
var ErrNotFound = errors.New("not found")

// Service wraps the catalog repository with store-call timeouts.
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

func (s *Service) CreateDepartment(ctx context.Context, name string) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.CreateDepartment(ctx, name)
}

func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.ListDepartments(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	d, err := s.repo.GetDepartment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up department: %w", err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, name string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.UpdateDepartment(ctx, id, name)
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.DeleteDepartment(ctx, id)
}

func (s *Service) CreateLesson(ctx context.Context, l *models.Lesson) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.CreateLesson(ctx, l)
}

// ListLessons applies the caller's department when it has one; the explicit
// filter only matters for users without a department of their own.
func (s *Service) ListLessons(ctx context.Context, callerDepartmentID int64, f LessonFilter) ([]models.Lesson, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if callerDepartmentID != 0 {
		f.DepartmentID = callerDepartmentID
	}
	return s.repo.ListLessons(ctx, f)
}

func (s *Service) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	l, err := s.repo.GetLesson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up lesson: %w", err)
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *Service) DeleteLesson(ctx context.Context, id int64) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.DeleteLesson(ctx, id)
}

func (s *Service) CreateGroup(ctx context.Context, g *models.LessonGroup) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.CreateGroup(ctx, g)
}

func (s *Service) ListGroups(ctx context.Context, lessonID int64) ([]models.LessonGroup, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.ListGroups(ctx, lessonID)
}

// Register requests membership in a group for the user; the grade starts as
// pending until confirmed.
func (s *Service) Register(ctx context.Context, userID, groupID int64) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	reg := &models.GroupRegistration{GroupID: groupID, UserID: userID, Grade: models.GradePending}
	return s.repo.CreateRegistration(ctx, reg)
}

package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/repository"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

type studentRepository interface {
	Create(firstName, lastName, email string) (models.Student, error)
	FindByID(id int) (models.Student, error)
	FindByEmail(email string) (models.Student, error)
	List() []models.Student
	Count() int
	Delete(id int) error
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,personname"`
	LastName  string `json:"last_name" validate:"required,lastname"`
	Email     string `json:"email" validate:"required,mailaddr"`
}

// StudentService handles registry use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns every current student.
func (s *StudentService) List(ctx context.Context) []models.Student {
	return s.repo.List()
}

// Count returns the number of current students.
func (s *StudentService) Count(ctx context.Context) int {
	return s.repo.Count()
}

// Get returns the student with the given id.
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translateStudentErr(err, "failed to load student")
	}
	return &student, nil
}

// GetByEmail returns the student registered with the email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	student, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, translateStudentErr(err, "failed to load student")
	}
	return &student, nil
}

// Create validates and registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.Create(req.FirstName, req.LastName, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.Wrap(err, appErrors.ErrEmailTaken.Code, appErrors.ErrEmailTaken.Status, appErrors.ErrEmailTaken.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.metrics.RecordStudentRegistered()
	s.logger.Debug("student registered", zap.Int("student_id", student.ID))
	return &student, nil
}

// Delete removes a student. Their awards stay in the ledger.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(id); err != nil {
		return translateStudentErr(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int("student_id", id))
	return nil
}

func translateStudentErr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/repository"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

type pointsRegistry interface {
	ApplyPointAward(id int, points models.CoursePoints) (models.Student, error)
	Reset()
}

type awardRepository interface {
	Record(studentID int, points models.CoursePoints) (models.PointAward, error)
	FindByID(id int) (models.PointAward, error)
	List() []models.PointAward
	ListByCourse(courseID models.CourseID) []models.PointAward
	Delete(id int) error
	Reset()
}

// AddPointsRequest holds one point award for a student.
type AddPointsRequest struct {
	StudentID int                 `json:"student_id"`
	Points    models.CoursePoints `json:"points" validate:"coursepoints"`
}

// AwardResult pairs the recorded award with the student's updated totals.
type AwardResult struct {
	Award   models.PointAward `json:"award"`
	Student models.Student    `json:"student"`
}

// PointsService accepts point awards: it updates the registry totals, which may queue
// completion notices, and appends the award to the ledger.
type PointsService struct {
	registry  pointsRegistry
	awards    awardRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger

	mu sync.Mutex
}

// NewPointsService constructs the points service.
func NewPointsService(registry pointsRegistry, awards awardRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *PointsService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PointsService{registry: registry, awards: awards, validator: validate, metrics: metrics, logger: logger}
}

// Add applies the award to the student's totals and records it in the ledger.
// Awards for unknown students are rejected and not recorded.
func (s *PointsService) Add(ctx context.Context, req AddPointsRequest) (*AwardResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid points payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := s.registry.ApplyPointAward(req.StudentID, req.Points)
	if err != nil {
		return nil, translateStudentErr(err, "failed to apply points")
	}
	award, err := s.awards.Record(req.StudentID, req.Points)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record award")
	}

	s.metrics.RecordPointAward(award)
	s.logger.Debug("points awarded",
		zap.Int("student_id", req.StudentID),
		zap.Int("award_id", award.ID),
		zap.Ints("points", req.Points[:]),
	)
	return &AwardResult{Award: award, Student: student}, nil
}

// List returns every award in the ledger.
func (s *PointsService) List(ctx context.Context) []models.PointAward {
	return s.awards.List()
}

// ListByCourse returns the awards with positive points for the course.
func (s *PointsService) ListByCourse(ctx context.Context, courseID models.CourseID) []models.PointAward {
	return s.awards.ListByCourse(courseID)
}

// Get returns one award.
func (s *PointsService) Get(ctx context.Context, id int) (*models.PointAward, error) {
	award, err := s.awards.FindByID(id)
	if err != nil {
		return nil, translateAwardErr(err, "failed to load award")
	}
	return &award, nil
}

// Delete removes an award from the ledger. Student totals are not recomputed.
func (s *PointsService) Delete(ctx context.Context, id int) error {
	if err := s.awards.Delete(id); err != nil {
		return translateAwardErr(err, "failed to delete award")
	}
	s.logger.Info("award deleted", zap.Int("award_id", id))
	return nil
}

// Reset empties the registry and the ledger together. Student and award ids keep
// counting from where they were.
func (s *PointsService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.awards.Reset()
	s.registry.Reset()
	s.logger.Warn("tracker data reset")
}

func translateAwardErr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "award not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

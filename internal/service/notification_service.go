package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/repository"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
	"github.com/noah-isme/learning-tracker/pkg/notify"
)

// Deliverer hands a completion notice to a delivery channel.
type Deliverer interface {
	Deliver(ctx context.Context, notice models.CompletionNotice) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, notice models.CompletionNotice) error

// Deliver calls f.
func (f DelivererFunc) Deliver(ctx context.Context, notice models.CompletionNotice) error {
	return f(ctx, notice)
}

// QueuedDeliverer accepts notices for later delivery and reports each outcome. Notices
// handed to it stay Pending until the outcome confirms delivery.
type QueuedDeliverer interface {
	Deliverer
	Submit(ctx context.Context, notice models.CompletionNotice, outcome notify.Outcome) (bool, error)
}

type notificationRegistry interface {
	List() []models.Student
	SetNotificationStatus(id int, courseID models.CourseID, status models.NotificationStatus) error
}

// NotificationService advances completion notices from Pending to Notified.
type NotificationService struct {
	registry  notificationRegistry
	deliverer Deliverer
	metrics   *MetricsService
	logger    *zap.Logger

	// serializes dispatch passes
	mu sync.Mutex
}

// NewNotificationService constructs the notification service.
func NewNotificationService(registry notificationRegistry, deliverer Deliverer, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{registry: registry, deliverer: deliverer, metrics: metrics, logger: logger}
}

// Pending lists the notices that the next dispatch pass would deliver.
func (s *NotificationService) Pending(ctx context.Context) []models.CompletionNotice {
	notices := make([]models.CompletionNotice, 0)
	for _, student := range s.registry.List() {
		notices = append(notices, pendingNotices(student)...)
	}
	return notices
}

// SendPending delivers every pending completion notice and marks it Notified.
// It returns how many notices were delivered. A notice whose delivery fails stays
// Pending for the next pass and its error is included in the returned error.
//
// With a QueuedDeliverer the count is of notices queued by this pass; each is marked
// Notified only when the queue reports it delivered.
func (s *NotificationService) SendPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deliverer == nil {
		return 0, appErrors.Clone(appErrors.ErrInternal, "no notification deliverer configured")
	}
	queued, async := s.deliverer.(QueuedDeliverer)

	sent := 0
	var failures []error
	for _, student := range s.registry.List() {
		for _, notice := range pendingNotices(student) {
			if async {
				accepted, err := queued.Submit(ctx, notice, s.settle)
				if err != nil {
					s.deliveryFailed(notice, err)
					failures = append(failures, fmt.Errorf("student %d course %s: %w", notice.StudentID, notice.CourseName, err))
				} else if accepted {
					sent++
				}
				continue
			}

			if err := s.deliverer.Deliver(ctx, notice); err != nil {
				s.deliveryFailed(notice, err)
				failures = append(failures, fmt.Errorf("student %d course %s: %w", notice.StudentID, notice.CourseName, err))
				continue
			}
			sent++
			s.delivered(notice)
		}
	}

	s.logger.Info("completion notices dispatched", zap.Int("sent", sent), zap.Int("failed", len(failures)))
	if len(failures) > 0 {
		return sent, appErrors.Wrap(errors.Join(failures...), appErrors.ErrDeliveryFailure.Code, appErrors.ErrDeliveryFailure.Status, appErrors.ErrDeliveryFailure.Message)
	}
	return sent, nil
}

// settle runs on a queue worker and must not take s.mu.
func (s *NotificationService) settle(notice models.CompletionNotice, err error) {
	if err != nil {
		s.deliveryFailed(notice, err)
		return
	}
	s.delivered(notice)
}

func (s *NotificationService) delivered(notice models.CompletionNotice) {
	s.metrics.RecordNotification(notice.CourseName, true)
	err := s.registry.SetNotificationStatus(notice.StudentID, notice.CourseID, models.NotificationNotified)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("mark notice delivered failed",
			zap.Int("student_id", notice.StudentID),
			zap.String("course", notice.CourseName),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) deliveryFailed(notice models.CompletionNotice, err error) {
	s.metrics.RecordNotification(notice.CourseName, false)
	s.logger.Warn("completion notice delivery failed",
		zap.Int("student_id", notice.StudentID),
		zap.String("course", notice.CourseName),
		zap.Error(err),
	)
}

func pendingNotices(student models.Student) []models.CompletionNotice {
	var notices []models.CompletionNotice
	for _, course := range models.Courses() {
		if student.Course(course.ID).Status != models.NotificationPending {
			continue
		}
		notices = append(notices, models.CompletionNotice{
			StudentID:  student.ID,
			Email:      student.Email,
			FullName:   student.FullName(),
			CourseID:   course.ID,
			CourseName: course.Name,
		})
	}
	return notices
}

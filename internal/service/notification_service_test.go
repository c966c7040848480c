package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
	"github.com/noah-isme/learning-tracker/pkg/jobs"
	"github.com/noah-isme/learning-tracker/pkg/notify"
)

type capturingDeliverer struct {
	notices []models.CompletionNotice
	failFor map[int]bool
}

func (c *capturingDeliverer) Deliver(ctx context.Context, notice models.CompletionNotice) error {
	if c.failFor[notice.StudentID] {
		return errors.New("mailbox unavailable")
	}
	c.notices = append(c.notices, notice)
	return nil
}

func TestNotificationServiceScenario(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	bob := f.addStudent(t, "Bob", "Jones", "bob@x.com")
	require.Equal(t, 10000, alice)
	require.Equal(t, 10001, bob)

	f.award(t, alice, models.NewCoursePoints(600, 0, 0, 0))

	deliverer := &capturingDeliverer{}
	svc := NewNotificationService(f.students, deliverer, NewMetricsService(), zap.NewNop())
	require.Len(t, svc.Pending(context.Background()), 1)

	sent, err := svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, deliverer.notices, 1)
	assert.Equal(t, "To: alice@x.com\nRe: Your Learning Progress\nHello, Alice Smith! You have accomplished our Java course!",
		notify.Render(deliverer.notices[0]))

	student, err := f.students.FindByID(alice)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationNotified, student.Course(models.CourseJava).Status)

	other, err := f.students.FindByID(bob)
	require.NoError(t, err)
	for _, course := range models.Courses() {
		assert.Equal(t, models.NotificationNotComplete, other.Course(course.ID).Status)
	}

	sent, err = svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, deliverer.notices, 1)
}

func TestNotificationServiceMultipleCourses(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(600, 400, 100, 550))

	deliverer := &capturingDeliverer{}
	svc := NewNotificationService(f.students, deliverer, nil, zap.NewNop())

	sent, err := svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	names := []string{}
	for _, n := range deliverer.notices {
		names = append(names, n.CourseName)
	}
	assert.Equal(t, []string{"Java", "DSA", "Spring"}, names)
}

func TestNotificationServiceDeliveryFailureStaysPending(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	bob := f.addStudent(t, "Bob", "Jones", "bob@x.com")
	f.award(t, alice, models.NewCoursePoints(0, 400, 0, 0))
	f.award(t, bob, models.NewCoursePoints(0, 400, 0, 0))

	deliverer := &capturingDeliverer{failFor: map[int]bool{alice: true}}
	svc := NewNotificationService(f.students, deliverer, nil, zap.NewNop())

	sent, err := svc.SendPending(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDeliveryFailure))
	assert.Equal(t, 1, sent)

	student, err := f.students.FindByID(alice)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationPending, student.Course(models.CourseDSA).Status)

	deliverer.failFor = nil
	sent, err = svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestNotificationServiceWithoutDeliverer(t *testing.T) {
	f := newTrackerFixture(t)
	svc := NewNotificationService(f.students, nil, nil, zap.NewNop())

	_, err := svc.SendPending(context.Background())
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
}

func TestDelivererFunc(t *testing.T) {
	called := false
	var d Deliverer = DelivererFunc(func(ctx context.Context, notice models.CompletionNotice) error {
		called = true
		return nil
	})
	require.NoError(t, d.Deliver(context.Background(), models.CompletionNotice{}))
	assert.True(t, called)
}

func TestNotificationServiceQueuedNoticeMarkedOnDelivery(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(600, 0, 0, 0))

	inner := &capturingDeliverer{}
	queued := notify.NewQueueDeliverer(inner, jobs.QueueConfig{Workers: 1})
	queued.Start(context.Background())
	svc := NewNotificationService(f.students, queued, nil, zap.NewNop())

	sent, err := svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	queued.Stop()

	require.Len(t, inner.notices, 1)
	student, err := f.students.FindByID(alice)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationNotified, student.Course(models.CourseJava).Status)
	assert.Empty(t, svc.Pending(context.Background()))
}

func TestNotificationServiceQueuedFailureStaysPending(t *testing.T) {
	f := newTrackerFixture(t)
	alice := f.addStudent(t, "Alice", "Smith", "alice@x.com")
	f.award(t, alice, models.NewCoursePoints(600, 0, 0, 0))

	inner := &capturingDeliverer{failFor: map[int]bool{alice: true}}
	queued := notify.NewQueueDeliverer(inner, jobs.QueueConfig{Workers: 1, MaxRetries: 1, RetryDelay: time.Millisecond})
	queued.Start(context.Background())
	svc := NewNotificationService(f.students, queued, nil, zap.NewNop())

	sent, err := svc.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	queued.Stop()

	assert.Empty(t, inner.notices)
	student, err := f.students.FindByID(alice)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationPending, student.Course(models.CourseJava).Status)
	require.Len(t, svc.Pending(context.Background()), 1)

	retry := NewNotificationService(f.students, &capturingDeliverer{}, nil, zap.NewNop())
	sent, err = retry.SendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

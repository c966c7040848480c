package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/pkg/jobs"
)

const jobType = "completion_notice"

// Outcome receives the final result of a queued notice: nil once the inner deliverer
// accepted it, or the last error once the queue gave up on it.
type Outcome func(notice models.CompletionNotice, err error)

type queuedNotice struct {
	notice  models.CompletionNotice
	outcome Outcome
}

type noticeKey struct {
	studentID int
	courseID  models.CourseID
}

// QueueDeliverer accepts notices immediately and delivers them from a worker pool,
// retrying failures through the queue. A notice is held in flight from Submit until
// its outcome is known and is not queued twice meanwhile.
type QueueDeliverer struct {
	queue *jobs.Queue
	next  Deliverer

	mu       sync.Mutex
	inflight map[noticeKey]struct{}
}

// NewQueueDeliverer wraps next with an asynchronous queue. Call Start before use and
// Stop to flush buffered notices. cfg.OnFailure is replaced.
func NewQueueDeliverer(next Deliverer, cfg jobs.QueueConfig) *QueueDeliverer {
	d := &QueueDeliverer{next: next, inflight: make(map[noticeKey]struct{})}
	cfg.OnFailure = d.giveUp
	d.queue = jobs.NewQueue("notifications", d.handle, cfg)
	return d
}

// Start launches the workers.
func (d *QueueDeliverer) Start(ctx context.Context) {
	d.queue.Start(ctx)
}

// Stop waits for buffered notices to be delivered. Notices still waiting for a retry
// get a failed outcome.
func (d *QueueDeliverer) Stop() {
	d.queue.Stop()
}

// Submit queues the notice and reports the delivery result to outcome from a worker.
// It returns false without queueing when the same student and course is already in flight.
func (d *QueueDeliverer) Submit(_ context.Context, notice models.CompletionNotice, outcome Outcome) (bool, error) {
	key := noticeKey{studentID: notice.StudentID, courseID: notice.CourseID}

	d.mu.Lock()
	if _, busy := d.inflight[key]; busy {
		d.mu.Unlock()
		return false, nil
	}
	d.inflight[key] = struct{}{}
	d.mu.Unlock()

	if err := d.queue.Enqueue(jobs.Job{Type: jobType, Payload: queuedNotice{notice: notice, outcome: outcome}}); err != nil {
		d.release(key)
		return false, err
	}
	return true, nil
}

// Deliver implements Deliverer by queueing the notice without waiting for its outcome.
func (d *QueueDeliverer) Deliver(ctx context.Context, notice models.CompletionNotice) error {
	_, err := d.Submit(ctx, notice, nil)
	return err
}

func (d *QueueDeliverer) handle(ctx context.Context, job jobs.Job) error {
	queued, ok := job.Payload.(queuedNotice)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	if err := d.next.Deliver(ctx, queued.notice); err != nil {
		return err
	}
	d.finish(queued, nil)
	return nil
}

func (d *QueueDeliverer) giveUp(job jobs.Job, err error) {
	if queued, ok := job.Payload.(queuedNotice); ok {
		d.finish(queued, err)
	}
}

func (d *QueueDeliverer) finish(queued queuedNotice, err error) {
	if queued.outcome != nil {
		queued.outcome(queued.notice, err)
	}
	d.release(noticeKey{studentID: queued.notice.StudentID, courseID: queued.notice.CourseID})
}

func (d *QueueDeliverer) release(key noticeKey) {
	d.mu.Lock()
	delete(d.inflight, key)
	d.mu.Unlock()
}

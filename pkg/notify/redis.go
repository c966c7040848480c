package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// DefaultRedisKey is the list notices are pushed to when no key is configured.
const DefaultRedisKey = "tracker:notifications"

type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisMessage is the payload pushed to the outbox list for a mail worker to pick up.
type RedisMessage struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	StudentID int       `json:"student_id"`
	Course    string    `json:"course"`
	QueuedAt  time.Time `json:"queued_at"`
}

// RedisDeliverer appends rendered notices to a Redis list.
type RedisDeliverer struct {
	client listPusher
	key    string
	now    func() time.Time
}

// NewRedisDeliverer builds a deliverer pushing to key on client.
func NewRedisDeliverer(client listPusher, key string) *RedisDeliverer {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisDeliverer{client: client, key: key, now: func() time.Time { return time.Now().UTC() }}
}

// Deliver implements Deliverer.
func (d *RedisDeliverer) Deliver(ctx context.Context, notice models.CompletionNotice) error {
	payload, err := json.Marshal(RedisMessage{
		To:        notice.Email,
		Subject:   Subject,
		Body:      Render(notice),
		StudentID: notice.StudentID,
		Course:    notice.CourseName,
		QueuedAt:  d.now(),
	})
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := d.client.RPush(ctx, d.key, payload).Err(); err != nil {
		return fmt.Errorf("redis rpush %s: %w", d.key, err)
	}
	return nil
}

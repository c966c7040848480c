// Package bootstrap is the composition root shared by the API server and the console.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/handler"
	"github.com/noah-isme/learning-tracker/internal/repository"
	"github.com/noah-isme/learning-tracker/internal/service"
	"github.com/noah-isme/learning-tracker/pkg/cache"
	"github.com/noah-isme/learning-tracker/pkg/config"
	"github.com/noah-isme/learning-tracker/pkg/jobs"
	"github.com/noah-isme/learning-tracker/pkg/notify"
)

// Tracker holds the stores and services of one process.
type Tracker struct {
	Students *repository.StudentRepository
	Awards   *repository.AwardRepository

	Metrics       *service.MetricsService
	StudentSvc    *service.StudentService
	PointsSvc     *service.PointsService
	StatisticsSvc *service.StatisticsService
	ExportSvc     *service.ExportService
	NotifySvc     *service.NotificationService

	logger  *zap.Logger
	ready   func() bool
	closers []func()
}

// New wires the tracker. Console notices are written to console when the console sink
// is configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, console io.Writer) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		Students: repository.NewStudentRepository(),
		Awards:   repository.NewAwardRepository(),
		logger:   logger,
	}
	if cfg.EnableMetrics {
		t.Metrics = service.NewMetricsService()
	}

	deliverer, err := t.deliverer(ctx, cfg.Notify, cfg.Redis, console)
	if err != nil {
		t.Close()
		return nil, err
	}

	validate := service.NewValidator()
	t.StudentSvc = service.NewStudentService(t.Students, validate, t.Metrics, logger)
	t.PointsSvc = service.NewPointsService(t.Students, t.Awards, validate, t.Metrics, logger)
	t.StatisticsSvc = service.NewStatisticsService(t.Awards, t.Students, logger)
	t.ExportSvc = service.NewExportService(t.StatisticsSvc, logger)
	t.NotifySvc = service.NewNotificationService(t.Students, deliverer, t.Metrics, logger)
	return t, nil
}

func (t *Tracker) deliverer(ctx context.Context, cfg config.NotifyConfig, redisCfg config.RedisConfig, console io.Writer) (notify.Deliverer, error) {
	var deliverer notify.Deliverer
	switch cfg.Sink {
	case config.NotifySinkRedis:
		client, err := cache.NewRedis(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("notification sink: %w", err)
		}
		t.closers = append(t.closers, func() { _ = client.Close() })
		t.ready = redisReady(client)
		deliverer = notify.NewRedisDeliverer(client, cfg.RedisKey)
		t.logger.Info("completion notices go to redis", zap.String("key", cfg.RedisKey))
	default:
		deliverer = notify.NewConsoleDeliverer(console)
	}

	if !cfg.Async {
		return deliverer, nil
	}
	queued := notify.NewQueueDeliverer(deliverer, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Logger:     t.logger,
	})
	queued.Start(ctx)
	t.closers = append(t.closers, queued.Stop)
	return queued, nil
}

func redisReady(client *redis.Client) func() bool {
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}

// Handlers builds the HTTP handlers over the tracker services.
func (t *Tracker) Handlers() handler.Handlers {
	return handler.Handlers{
		Students:      handler.NewStudentHandler(t.StudentSvc),
		Points:        handler.NewPointsHandler(t.PointsSvc),
		Statistics:    handler.NewStatisticsHandler(t.StatisticsSvc, t.ExportSvc),
		Notifications: handler.NewNotificationHandler(t.NotifySvc),
	}
}

// MetricsHandler builds the observability handler.
func (t *Tracker) MetricsHandler() *handler.MetricsHandler {
	return handler.NewMetricsHandler(t.Metrics, t.ready)
}

// Close flushes queued notices and releases connections, newest first.
func (t *Tracker) Close() {
	for i := len(t.closers) - 1; i >= 0; i-- {
		t.closers[i]()
	}
	t.closers = nil
}
